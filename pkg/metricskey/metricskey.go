package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	// StatsToolCallsSucceeded is base for counter metric for tool calls succeeded
	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool", "kind"},
	}

	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls failed",
		RequiredTags: []string{"tool", "kind"},
	}

	StatsToolCallsNotFound = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_not_found",
		Help:         "stats_tool_calls_not_found provides total tool calls not found",
		RequiredTags: []string{"tool"},
	}

	StatsIdentifierCacheHits = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_identifier_cache_hits",
		Help:         "stats_identifier_cache_hits provides total identifier lookups served from cache",
		RequiredTags: []string{"kind"},
	}

	StatsIdentifierCacheMisses = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_identifier_cache_misses",
		Help:         "stats_identifier_cache_misses provides total identifier lookups sent upstream",
		RequiredTags: []string{"kind"},
	}

	StatsUpstreamCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_upstream_calls_failed",
		Help:         "stats_upstream_calls_failed provides total failed calls to upstream APIs",
		RequiredTags: []string{"endpoint"},
	}

	StatsExtractionStage = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_extraction_stage",
		Help:         "stats_extraction_stage provides total text extraction stage outcomes",
		RequiredTags: []string{"stage", "status"},
	}

	StatsMirrorToolsPublished = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_mirror_tools_published",
		Help:         "stats_mirror_tools_published provides total remote tools published by a mirror",
		RequiredTags: []string{"group"},
	}
)

// Perf
var (
	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides duration of tool call",
		RequiredTags: []string{"tool"},
	}

	PerfUpstreamCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_upstream_call",
		Help:         "perf_upstream_call provides duration of upstream API call",
		RequiredTags: []string{"endpoint"},
	}

	PerfTextExtraction = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_text_extraction",
		Help:         "perf_text_extraction provides duration of filing text extraction",
		RequiredTags: []string{"form"},
	}

	PerfRegistryInitialize = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_registry_initialize",
		Help:         "perf_registry_initialize provides duration of registry initialization",
		RequiredTags: []string{"registry"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfRegistryInitialize,
	&PerfTextExtraction,
	&PerfToolCall,
	&PerfUpstreamCall,
	&StatsExtractionStage,
	&StatsIdentifierCacheHits,
	&StatsIdentifierCacheMisses,
	&StatsMirrorToolsPublished,
	&StatsToolCallsFailed,
	&StatsToolCallsNotFound,
	&StatsToolCallsSucceeded,
	&StatsUpstreamCallsFailed,
}
