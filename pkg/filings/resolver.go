package filings

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/pkg/metricskey"
	"github.com/effective-security/fintools/pkg/secapi"
	"github.com/effective-security/fintools/store"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/fintools/pkg", "filings")

// MappingKindTicker is the mapping kind for ticker symbols
const MappingKindTicker = "ticker"

// IdentifierFields are the record fields probed for the identifier, in order
var IdentifierFields = []string{"cik", "CIK", "cik_str", "cikNumber"}

// NormalizeTicker returns upper-cased ticker without surrounding spaces
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// FirstIdentifier returns the first non-empty identifier found in records
func FirstIdentifier(records []secapi.Record) string {
	for _, rec := range records {
		for _, field := range IdentifierFields {
			if v := rec.String(field); v != "" {
				return v
			}
		}
	}
	return ""
}

// Resolver maps ticker symbols to CIK with a cache.
// Concurrent first lookups of the same ticker may call the mapping service
// more than once, the cache converges on the same value.
type Resolver struct {
	api   secapi.MappingAPI
	cache store.Cache
}

// NewResolver returns Resolver, if cache is nil then in-memory cache is used
func NewResolver(api secapi.MappingAPI, cache store.Cache) *Resolver {
	if cache == nil {
		cache = store.NewMemoryStore()
	}
	return &Resolver{
		api:   api,
		cache: cache,
	}
}

// Resolve returns CIK for the ticker
func (r *Resolver) Resolve(ctx context.Context, ticker string) (string, error) {
	symbol := NormalizeTicker(ticker)
	if symbol == "" {
		return "", invalidArgument("ticker symbol must be provided")
	}

	key := MappingKindTicker + "/" + symbol
	cik, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		logger.ContextKV(ctx, xlog.WARNING,
			"reason", "cache_get",
			"ticker", symbol,
			"err", err.Error(),
		)
	} else if ok && cik != "" {
		metricskey.StatsIdentifierCacheHits.IncrCounter(1, MappingKindTicker)
		return cik, nil
	}
	metricskey.StatsIdentifierCacheMisses.IncrCounter(1, MappingKindTicker)

	res, err := r.api.Resolve(ctx, MappingKindTicker, symbol)
	if err != nil {
		return "", upstreamUnavailable(err, "failed to resolve ticker %q", symbol)
	}

	var records []secapi.Record
	if res != nil {
		records = res.Records()
	}
	cik = FirstIdentifier(records)
	if cik == "" {
		return "", errors.Mark(errors.Newf("unable to map ticker %q to a CIK", symbol), ErrResolutionFailed)
	}

	if err = r.cache.Set(ctx, key, cik); err != nil {
		logger.ContextKV(ctx, xlog.WARNING,
			"reason", "cache_set",
			"ticker", symbol,
			"err", err.Error(),
		)
	}

	logger.ContextKV(ctx, xlog.DEBUG, "ticker", symbol, "cik", cik)
	return cik, nil
}
