package sec

import (
	"context"

	"github.com/effective-security/fintools/pkg/filings"
	"github.com/effective-security/fintools/tools"
)

// TickerRequest is the input of the ticker tools
type TickerRequest struct {
	Ticker string `json:"ticker" yaml:"ticker" jsonschema:"title=ticker,description=Stock ticker symbol such as AAPL."`
}

// TickerResult is the output of map_ticker_to_cik
type TickerResult struct {
	Ticker string `json:"ticker" yaml:"ticker"`
	CIK    string `json:"cik" yaml:"cik"`
}

// MapTickerTool maps a ticker symbol to CIK
type MapTickerTool struct {
	base
}

// ensure MapTickerTool implements the interfaces
var (
	_ tools.Tool[TickerRequest, TickerResult] = (*MapTickerTool)(nil)
	_ tools.Tagged                            = (*MapTickerTool)(nil)
	_ tools.Annotated                         = (*MapTickerTool)(nil)
)

func NewMapTickerTool(provider filings.Provider) *MapTickerTool {
	return &MapTickerTool{
		base: newBase(provider,
			ToolMapTickerToCIK,
			"Map a stock ticker symbol to its Central Index Key (CIK).",
			TickerRequest{},
			&tools.Annotations{Title: "Map Ticker to CIK", ReadOnly: true, OpenWorld: true},
			"sec", "mapping", "ticker", "cik",
		),
	}
}

func (t *MapTickerTool) Run(ctx context.Context, req *TickerRequest) (*TickerResult, error) {
	cik, err := t.provider.ResolveCIK(ctx, req.Ticker)
	if err != nil {
		return nil, err
	}
	return &TickerResult{
		Ticker: filings.NormalizeTicker(req.Ticker),
		CIK:    cik,
	}, nil
}

func (t *MapTickerTool) Call(ctx context.Context, input string) (string, error) {
	return call(ctx, t, input)
}
