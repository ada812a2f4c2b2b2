package router

import (
	"strings"
	"unicode/utf8"
)

// Classify returns the intent for input.
func (r *RuleRouter) Classify(input string) Intent {
	return r.Explain(input).Intent
}

// Explain classifies input and reports which rule fired.
//
// Precedence: a strategy keyword wins even on long inputs; then short inputs
// or interrogative markers give QuickAction; anything else is Unknown.
func (r *RuleRouter) Explain(input string) Decision {
	lower := strings.ToLower(input)

	for _, kw := range r.strategy {
		if strings.Contains(lower, kw) {
			return Decision{Intent: IntentStrategy, Rule: RuleStrategyKeyword, Matched: kw}
		}
	}

	if utf8.RuneCountInString(input) < r.threshold {
		return Decision{Intent: IntentQuickAction, Rule: RuleShortInput}
	}

	for _, m := range r.interrogative {
		if strings.Contains(lower, m) {
			return Decision{Intent: IntentQuickAction, Rule: RuleInterrogative, Matched: m}
		}
	}

	return Decision{Intent: IntentUnknown, Rule: RuleFallthrough}
}
