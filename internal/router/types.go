package router

// Intent is the classified category of a directive.
type Intent string

const (
	IntentQuickAction Intent = "QuickAction"
	IntentStrategy    Intent = "Strategy"
	IntentUnknown     Intent = "Unknown"
)

// String returns the variant name.
func (i Intent) String() string { return string(i) }

// Rules is the data driving RuleRouter. It is plain configuration so the
// keyword sets can grow without touching dispatch code.
type Rules struct {
	StrategyKeywords     []string
	InterrogativeMarkers []string
	ShortInputThreshold  int // inputs with fewer runes than this are QuickAction
}

// Rule names reported by Explain.
const (
	RuleStrategyKeyword = "strategy_keyword"
	RuleShortInput      = "short_input"
	RuleInterrogative   = "interrogative"
	RuleFallthrough     = "fallthrough"
)

// Decision explains why an input received its intent.
type Decision struct {
	Intent  Intent `json:"intent"`
	Rule    string `json:"rule"`
	Matched string `json:"matched,omitempty"` // keyword or marker that fired
}
