package secapi

import (
	"context"
)

//go:generate mockgen -source=api.go -destination=../../mocks/mocksecapi/secapi_mock.gen.go -package mocksecapi

// Output formats of the extractor
const (
	FormatText = "text"
	FormatHTML = "html"
)

// ItemAll selects the whole document in the extractor
const ItemAll = "all"

// MappingAPI resolves identifiers of the filers
type MappingAPI interface {
	// Resolve returns the filer records matching the value of kind,
	// for example: Resolve(ctx, "ticker", "AAPL")
	Resolve(ctx context.Context, kind, value string) (MappingResponse, error)
}

// QueryAPI searches the filings
type QueryAPI interface {
	GetFilings(ctx context.Context, q *Query) (*QueryResult, error)
}

// ExtractorAPI extracts text of a filing document
type ExtractorAPI interface {
	// GetSection returns the item of the filing at url in the requested format.
	// Use ItemAll to extract the whole document.
	GetSection(ctx context.Context, url, item, format string) (string, error)
}

// API is the full SEC API surface
type API interface {
	MappingAPI
	QueryAPI
	ExtractorAPI
}
