package fast

import "time"

const (
	// DefaultBudget is the hard deadline given to the local model.
	DefaultBudget = 200 * time.Millisecond

	// TemplateContent is the deterministic acknowledgement.
	TemplateContent = "[FAST] Processed: %s"

	LogPrefixExecute = "internal.tier.fast.Execute"
)
