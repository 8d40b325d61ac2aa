package filings

import (
	"context"
	"strings"

	"github.com/effective-security/fintools/pkg/secapi"
)

// DefaultFormType is the annual report
const DefaultFormType = "10-K"

// Locator finds the most recent filing of a filer
type Locator struct {
	api secapi.QueryAPI
}

// NewLocator returns Locator
func NewLocator(api secapi.QueryAPI) *Locator {
	return &Locator{api: api}
}

// Latest returns the most recent filing of formType for the CIK,
// or nil if the filer has no such filings.
func (l *Locator) Latest(ctx context.Context, cik, formType string) (*secapi.Filing, error) {
	cik = strings.TrimSpace(cik)
	if cik == "" {
		return nil, invalidArgument("CIK must be provided")
	}
	formType = strings.TrimSpace(formType)
	if formType == "" {
		formType = DefaultFormType
	}

	res, err := l.api.GetFilings(ctx, secapi.NewLatestFilingQuery(cik, formType))
	if err != nil {
		return nil, upstreamUnavailable(err, "failed to query %s filings for CIK %s", formType, cik)
	}
	if res == nil || len(res.Filings) == 0 {
		return nil, nil
	}
	return res.Filings[0], nil
}
