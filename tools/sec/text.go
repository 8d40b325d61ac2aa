package sec

import (
	"context"

	"github.com/effective-security/fintools/pkg/filings"
	"github.com/effective-security/fintools/tools"
	"github.com/effective-security/xlog"
)

// FilingTextRequest is the input of get_latest_10k_text
type FilingTextRequest struct {
	Ticker   string `json:"ticker" yaml:"ticker" jsonschema:"title=ticker,description=Stock ticker symbol such as AAPL."`
	Sections string `json:"sections,omitempty" yaml:"sections,omitempty" jsonschema:"title=sections,description=Optional comma separated item numbers to extract when the whole document is not available such as 1A and 7."`
}

// FilingTextResult is the output of get_latest_10k_text.
// Text is nil when the filing is not found, or it has no extractable text.
type FilingTextResult struct {
	Ticker          string  `json:"ticker" yaml:"ticker"`
	CIK             string  `json:"cik" yaml:"cik"`
	AccessionNumber string  `json:"accessionNumber,omitempty" yaml:"accessionNumber,omitempty"`
	Text            *string `json:"text" yaml:"text"`
}

// LatestFilingTextTool returns normalized text of the latest annual report
type LatestFilingTextTool struct {
	base
}

// ensure LatestFilingTextTool implements the interfaces
var (
	_ tools.Tool[FilingTextRequest, FilingTextResult] = (*LatestFilingTextTool)(nil)
	_ tools.Tagged                                    = (*LatestFilingTextTool)(nil)
	_ tools.Annotated                                 = (*LatestFilingTextTool)(nil)
)

func NewLatestFilingTextTool(provider filings.Provider) *LatestFilingTextTool {
	return &LatestFilingTextTool{
		base: newBase(provider,
			ToolLatestFilingText,
			"Extract text from the latest 10-K filing of a ticker symbol. Optionally limit to specific sections.",
			FilingTextRequest{},
			&tools.Annotations{Title: "Get Latest 10-K Text", ReadOnly: true, OpenWorld: true},
			"sec", "filing", "10-K", "text",
		),
	}
}

func (t *LatestFilingTextTool) Run(ctx context.Context, req *FilingTextRequest) (*FilingTextResult, error) {
	sections := filings.ParseSections(req.Sections)

	cik, err := t.provider.ResolveCIK(ctx, req.Ticker)
	if err != nil {
		return nil, err
	}
	res := &FilingTextResult{
		Ticker: filings.NormalizeTicker(req.Ticker),
		CIK:    cik,
	}

	filing, err := t.provider.LatestFiling(ctx, cik)
	if err != nil {
		return nil, err
	}
	if filing == nil {
		logger.ContextKV(ctx, xlog.DEBUG,
			"status", "filing_not_found",
			"ticker", res.Ticker,
			"cik", cik,
			"form", t.provider.FormType(),
		)
		return res, nil
	}

	res.AccessionNumber = filing.AccessionNo
	if text, ok := t.provider.ExtractText(ctx, filing, sections); ok {
		res.Text = &text
	}
	return res, nil
}

func (t *LatestFilingTextTool) Call(ctx context.Context, input string) (string, error) {
	return call(ctx, t, input)
}
