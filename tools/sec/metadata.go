package sec

import (
	"context"

	"github.com/effective-security/fintools/pkg/filings"
	"github.com/effective-security/fintools/pkg/secapi"
	"github.com/effective-security/fintools/tools"
)

// FilingMetadataResult is the output of get_latest_10k_metadata,
// Filing is nil when the company has no filing of the form type.
type FilingMetadataResult struct {
	Ticker string         `json:"ticker" yaml:"ticker"`
	CIK    string         `json:"cik" yaml:"cik"`
	Filing *secapi.Filing `json:"filing" yaml:"filing"`
}

// LatestFilingMetadataTool returns metadata of the latest annual report
type LatestFilingMetadataTool struct {
	base
}

// ensure LatestFilingMetadataTool implements the interfaces
var (
	_ tools.Tool[TickerRequest, FilingMetadataResult] = (*LatestFilingMetadataTool)(nil)
	_ tools.Tagged                                    = (*LatestFilingMetadataTool)(nil)
	_ tools.Annotated                                 = (*LatestFilingMetadataTool)(nil)
)

func NewLatestFilingMetadataTool(provider filings.Provider) *LatestFilingMetadataTool {
	return &LatestFilingMetadataTool{
		base: newBase(provider,
			ToolLatestFilingMetadata,
			"Fetch metadata for the latest 10-K filing of a ticker symbol.",
			TickerRequest{},
			&tools.Annotations{Title: "Get Latest 10-K Metadata", ReadOnly: true, OpenWorld: true},
			"sec", "filing", "10-K", "metadata",
		),
	}
}

func (t *LatestFilingMetadataTool) Run(ctx context.Context, req *TickerRequest) (*FilingMetadataResult, error) {
	cik, err := t.provider.ResolveCIK(ctx, req.Ticker)
	if err != nil {
		return nil, err
	}
	filing, err := t.provider.LatestFiling(ctx, cik)
	if err != nil {
		return nil, err
	}
	return &FilingMetadataResult{
		Ticker: filings.NormalizeTicker(req.Ticker),
		CIK:    cik,
		Filing: filing,
	}, nil
}

func (t *LatestFilingMetadataTool) Call(ctx context.Context, input string) (string, error) {
	return call(ctx, t, input)
}
