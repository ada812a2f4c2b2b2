package brain

import "time"

const (
	// SystemCortexFallback labels a deep-tier directive answered by the
	// fast tier after the deep tier failed.
	SystemCortexFallback = "cortex_fallback"

	// ReportContent is the failure notice written by ReportPolicy.
	ReportContent = "[DEEP] Strategy analysis for %q could not be completed (stage %s failed). Retry later or narrow the directive."

	PolicyFallback = "fallback"
	PolicyReport   = "report"

	DefaultDeepTimeout = 30 * time.Second

	LogPrefixProcess = "internal.brain.ProcessDirective"
	LogPrefixPrompt  = "internal.brain.LoadSystemPrompt"
)
