package brain

import (
	"sync"

	"aegnt-unltd/internal/metrics"
	"aegnt-unltd/internal/router"
	"aegnt-unltd/internal/tier"
	"aegnt-unltd/pkg/log"
)

// Brain is the Dispatcher.
type Brain struct {
	l          log.Logger
	cfg        Config
	classifier router.Classifier
	fast       tier.Executor
	deep       tier.Executor
	policy     DegradePolicy
	metrics    metrics.Recorder

	mu           sync.RWMutex
	systemPrompt string
}

var _ Dispatcher = (*Brain)(nil)

// New creates a Brain with an empty system prompt. Missing optional deps
// get the default rules, FallbackPolicy and no metrics.
func New(l log.Logger, cfg Config, deps Deps) (*Brain, error) {
	if deps.Fast == nil || deps.Deep == nil {
		return nil, ErrMissingExecutor
	}
	if deps.Classifier == nil {
		deps.Classifier = router.New(router.DefaultRules())
	}
	if deps.Policy == nil {
		deps.Policy = FallbackPolicy{}
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	if cfg.DeepTimeout <= 0 {
		cfg.DeepTimeout = DefaultDeepTimeout
	}

	return &Brain{
		l:          l,
		cfg:        cfg,
		classifier: deps.Classifier,
		fast:       deps.Fast,
		deep:       deps.Deep,
		policy:     deps.Policy,
		metrics:    deps.Metrics,
	}, nil
}

// Config returns the immutable configuration.
func (b *Brain) Config() Config {
	return b.cfg
}

// Classify exposes the classifier.
func (b *Brain) Classify(input string) router.Intent {
	return b.classifier.Classify(input)
}
