package filings

import (
	"context"

	"github.com/effective-security/fintools/pkg/secapi"
	"github.com/effective-security/fintools/store"
)

//go:generate mockgen -source=service.go -destination=../../mocks/mockfilings/filings_mock.gen.go -package mockfilings

// Provider is the filing lookups used by the SEC tools
type Provider interface {
	// ResolveCIK returns CIK for the ticker
	ResolveCIK(ctx context.Context, ticker string) (string, error)
	// LatestFiling returns the most recent filing of the configured form type,
	// or nil if not found
	LatestFiling(ctx context.Context, cik string) (*secapi.Filing, error)
	// ExtractText returns normalized text of the filing, or false if not available
	ExtractText(ctx context.Context, filing *secapi.Filing, sections []string) (string, bool)
	// FormType returns the configured form type
	FormType() string
}

// Config for the Service
type Config struct {
	FormType        string
	DefaultSections []string
}

// Service implements Provider
type Service struct {
	resolver *Resolver
	locator  *Locator
	pipeline *Pipeline
	formType string
}

// ensure Service implements Provider
var _ Provider = (*Service)(nil)

// NewService returns Service
func NewService(api secapi.API, cache store.Cache, fetcher Fetcher, cfg Config) *Service {
	formType := cfg.FormType
	if formType == "" {
		formType = DefaultFormType
	}
	return &Service{
		resolver: NewResolver(api, cache),
		locator:  NewLocator(api),
		pipeline: NewPipeline(api, fetcher, cfg.DefaultSections),
		formType: formType,
	}
}

func (s *Service) ResolveCIK(ctx context.Context, ticker string) (string, error) {
	return s.resolver.Resolve(ctx, ticker)
}

func (s *Service) LatestFiling(ctx context.Context, cik string) (*secapi.Filing, error) {
	return s.locator.Latest(ctx, cik, s.formType)
}

func (s *Service) ExtractText(ctx context.Context, filing *secapi.Filing, sections []string) (string, bool) {
	return s.pipeline.Extract(ctx, filing, sections)
}

func (s *Service) FormType() string {
	return s.formType
}
