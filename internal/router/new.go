package router

import "strings"

// Classifier maps free text to an Intent. Implementations must be total,
// deterministic and free of I/O so a learned model can replace the rule set
// behind the same contract.
type Classifier interface {
	Classify(input string) Intent
}

// RuleRouter classifies with ordered keyword rules.
type RuleRouter struct {
	strategy      []string
	interrogative []string
	threshold     int
}

var _ Classifier = (*RuleRouter)(nil)

// DefaultRules returns the built-in rule data.
func DefaultRules() Rules {
	return Rules{
		StrategyKeywords:     append([]string(nil), DefaultStrategyKeywords...),
		InterrogativeMarkers: append([]string(nil), DefaultInterrogativeMarkers...),
		ShortInputThreshold:  DefaultShortInputThreshold,
	}
}

// New creates a RuleRouter. Empty keyword lists and a non-positive threshold
// fall back to the defaults.
func New(rules Rules) *RuleRouter {
	strategy := normalize(rules.StrategyKeywords)
	if len(strategy) == 0 {
		strategy = normalize(DefaultStrategyKeywords)
	}
	interrogative := normalize(rules.InterrogativeMarkers)
	if len(interrogative) == 0 {
		interrogative = normalize(DefaultInterrogativeMarkers)
	}
	threshold := rules.ShortInputThreshold
	if threshold <= 0 {
		threshold = DefaultShortInputThreshold
	}

	return &RuleRouter{
		strategy:      strategy,
		interrogative: interrogative,
		threshold:     threshold,
	}
}

// Rules returns a copy of the effective rule data.
func (r *RuleRouter) Rules() Rules {
	return Rules{
		StrategyKeywords:     append([]string(nil), r.strategy...),
		InterrogativeMarkers: append([]string(nil), r.interrogative...),
		ShortInputThreshold:  r.threshold,
	}
}

func normalize(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
