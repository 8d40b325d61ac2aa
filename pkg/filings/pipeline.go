package filings

import (
	"context"
	"strings"
	"time"

	"github.com/effective-security/fintools/pkg/metricskey"
	"github.com/effective-security/fintools/pkg/secapi"
	"github.com/effective-security/xlog"
)

// Extraction stages
const (
	StageDocument = "document"
	StageSections = "sections"
	StageRaw      = "raw"
)

// Stage status values reported in metrics
const (
	stageOK    = "ok"
	stageEmpty = "empty"
)

// stage returns the text and true, or false to continue with the next stage
type stage struct {
	name string
	run  func(ctx context.Context, filing *secapi.Filing, sections []string) (string, bool)
}

// Pipeline extracts plain text of a filing
type Pipeline struct {
	extractor secapi.ExtractorAPI
	fetcher   Fetcher
	defaults  []string
	stages    []stage
}

// NewPipeline returns Pipeline,
// if defaultSections is empty then DefaultSections are used.
// The fetcher is optional, the raw document stage is skipped without it.
func NewPipeline(extractor secapi.ExtractorAPI, fetcher Fetcher, defaultSections []string) *Pipeline {
	defaults := FilterSections(defaultSections)
	if len(defaults) == 0 {
		defaults = DefaultSections
	}
	p := &Pipeline{
		extractor: extractor,
		fetcher:   fetcher,
		defaults:  defaults,
	}
	p.stages = []stage{
		{name: StageDocument, run: p.wholeDocument},
		{name: StageSections, run: p.bySections},
		{name: StageRaw, run: p.rawDocument},
	}
	return p
}

// DefaultSections returns the sections used when none are requested
func (p *Pipeline) DefaultSections() []string {
	return p.defaults
}

// Extract returns normalized text of the filing,
// or false if no stage could produce the text.
// Stages never fail the extraction, errors are logged.
func (p *Pipeline) Extract(ctx context.Context, filing *secapi.Filing, sections []string) (string, bool) {
	if filing == nil {
		return "", false
	}

	started := time.Now()
	defer metricskey.PerfTextExtraction.MeasureSince(started, formTag(filing))

	effective := FilterSections(sections)
	if len(effective) == 0 {
		effective = p.defaults
	}

	for _, st := range p.stages {
		raw, ok := st.run(ctx, filing, effective)
		if !ok || strings.TrimSpace(raw) == "" {
			metricskey.StatsExtractionStage.IncrCounter(1, st.name, stageEmpty)
			continue
		}

		text := Normalize(raw)
		if text == "" {
			metricskey.StatsExtractionStage.IncrCounter(1, st.name, stageEmpty)
			continue
		}

		metricskey.StatsExtractionStage.IncrCounter(1, st.name, stageOK)
		logger.ContextKV(ctx, xlog.DEBUG,
			"stage", st.name,
			"accession", filing.AccessionNo,
			"size", len(text),
		)
		return text, true
	}

	logger.ContextKV(ctx, xlog.INFO,
		"reason", "no_text",
		"accession", filing.AccessionNo,
	)
	return "", false
}

func (p *Pipeline) wholeDocument(ctx context.Context, filing *secapi.Filing, _ []string) (string, bool) {
	if filing.LinkToFilingDetails == "" || p.extractor == nil {
		return "", false
	}

	text, err := p.extractor.GetSection(ctx, filing.LinkToFilingDetails, secapi.ItemAll, secapi.FormatText)
	if err != nil {
		logger.ContextKV(ctx, xlog.WARNING,
			"reason", "extract_document",
			"url", filing.LinkToFilingDetails,
			"err", err.Error(),
		)
		return "", false
	}
	return text, true
}

func (p *Pipeline) bySections(ctx context.Context, filing *secapi.Filing, sections []string) (string, bool) {
	if filing.LinkToFilingDetails == "" || p.extractor == nil {
		return "", false
	}

	var parts []string
	for _, section := range sections {
		text, err := p.extractor.GetSection(ctx, filing.LinkToFilingDetails, section, secapi.FormatText)
		if err != nil {
			logger.ContextKV(ctx, xlog.DEBUG,
				"reason", "extract_section",
				"url", filing.LinkToFilingDetails,
				"section", section,
				"err", err.Error(),
			)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		parts = append(parts, "Item "+section+"\n"+text)
	}

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n\n"), true
}

func (p *Pipeline) rawDocument(ctx context.Context, filing *secapi.Filing, _ []string) (string, bool) {
	if filing.LinkToTxt == "" || p.fetcher == nil {
		return "", false
	}
	return p.fetcher.Fetch(ctx, filing.LinkToTxt)
}

func formTag(filing *secapi.Filing) string {
	if filing.FormType == "" {
		return "unknown"
	}
	return filing.FormType
}
