// Package app assembles the dispatcher and its collaborators from config.
// Both binaries share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"aegnt-unltd/config"
	"aegnt-unltd/internal/brain"
	"aegnt-unltd/internal/grounding"
	"aegnt-unltd/internal/knowledge"
	"aegnt-unltd/internal/metrics"
	"aegnt-unltd/internal/router"
	"aegnt-unltd/internal/tier/deep"
	"aegnt-unltd/internal/tier/fast"
	"aegnt-unltd/pkg/llmprovider"
	"aegnt-unltd/pkg/log"
	"aegnt-unltd/pkg/ollama"
	"aegnt-unltd/pkg/qdrant"
	"aegnt-unltd/pkg/voyage"
)

const LogPrefix = "internal.app.New"

var ErrVectorNotConfigured = errors.New("app: qdrant.url and voyage.api_key are required")

// App is the assembled dispatch core.
type App struct {
	Brain   *brain.Brain
	Router  *router.RuleRouter
	Metrics *metrics.Exporter
}

// New wires every collaborator named in cfg. Optional backends that are not
// configured are skipped with a log line; only invalid config is an error.
func New(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	rr := router.New(router.Rules{
		StrategyKeywords:     cfg.Router.StrategyKeywords,
		InterrogativeMarkers: cfg.Router.InterrogativeMarkers,
		ShortInputThreshold:  cfg.Router.ShortInputThreshold,
	})

	fastTier, err := newFastTier(ctx, cfg, l)
	if err != nil {
		return nil, err
	}

	deepTier, err := newDeepTier(ctx, cfg, l)
	if err != nil {
		return nil, err
	}

	policy, err := brain.ParsePolicy(cfg.Brain.DegradePolicy)
	if err != nil {
		return nil, err
	}

	exporter := metrics.New(metrics.DefaultConfig())

	b, err := brain.New(l, brain.Config{
		FastModel:     cfg.Brain.FastModel,
		SlowModel:     cfg.Brain.SlowModel,
		MemoryPath:    cfg.Brain.MemoryPath,
		KnowledgePath: cfg.Brain.KnowledgePath,
		DeepTimeout:   cfg.Brain.DeepTimeout,
	}, brain.Deps{
		Classifier: rr,
		Fast:       fastTier,
		Deep:       deepTier,
		Policy:     policy,
		Metrics:    exporter,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogPrefix, err)
	}

	return &App{Brain: b, Router: rr, Metrics: exporter}, nil
}

func newFastTier(ctx context.Context, cfg *config.Config, l log.Logger) (*fast.Executor, error) {
	if cfg.Fast.BaseURL == "" {
		l.Infof(ctx, "%s: fast.base_url not set, cortex answers from template", LogPrefix)
		return fast.New(l, nil, cfg.Fast.Budget), nil
	}

	model, err := ollama.New(ollama.Config{
		BaseURL: cfg.Fast.BaseURL,
		APIKey:  cfg.Fast.APIKey,
		Model:   cfg.Brain.FastModel,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: fast model: %w", LogPrefix, err)
	}
	l.Infof(ctx, "%s: cortex backed by %s at %s", LogPrefix, model.Model(), cfg.Fast.BaseURL)
	return fast.New(l, model, cfg.Fast.Budget), nil
}

func newDeepTier(ctx context.Context, cfg *config.Config, l log.Logger) (*deep.Executor, error) {
	retriever, err := newRetriever(ctx, cfg, l)
	if err != nil {
		return nil, err
	}

	var generator deep.Generator = deep.NewTemplateGenerator(cfg.Brain.SlowModel)
	if cfg.LLM.Enabled() {
		manager, err := llmprovider.NewManagerFromConfig(ctx, &cfg.LLM, l)
		if err != nil {
			return nil, fmt.Errorf("%s: slow model: %w", LogPrefix, err)
		}
		generator = deep.NewLLMGenerator(manager, cfg.LLM.Temperature, cfg.LLM.MaxTokens)
		l.Infof(ctx, "%s: deep_mind generating with %s", LogPrefix, manager.Primary())
	} else {
		l.Infof(ctx, "%s: no llm providers enabled, deep_mind writes template plans", LogPrefix)
	}

	return deep.New(l, retriever, grounding.New(cfg.Brain.ConstitutionPath), generator, cfg.Knowledge.MaxPassages), nil
}

// newRetriever prefers the vector store, then the knowledge directory. A
// nil Retriever means no knowledge is available.
func newRetriever(ctx context.Context, cfg *config.Config, l log.Logger) (knowledge.Retriever, error) {
	var base knowledge.Retriever
	switch {
	case cfg.VectorKnowledge():
		embedder, store, err := VectorClients(cfg)
		if err != nil {
			return nil, err
		}
		base = knowledge.NewVectorRetriever(embedder, store, cfg.Qdrant.CollectionName, cfg.Knowledge.MinScore)
	case cfg.Brain.KnowledgePath != "":
		// The default ./knowledge is optional; a missing directory at startup
		// runs the deep tier without passages instead of failing every call.
		if _, err := os.Stat(cfg.Brain.KnowledgePath); errors.Is(err, fs.ErrNotExist) {
			l.Warnf(ctx, "%s: knowledge path %s does not exist, deep_mind runs without passages", LogPrefix, cfg.Brain.KnowledgePath)
			return nil, nil
		}
		base = knowledge.NewFileRetriever(cfg.Brain.KnowledgePath)
	default:
		return nil, nil
	}
	l.Infof(ctx, "%s: knowledge from %s", LogPrefix, base.Location())

	if cfg.Knowledge.CacheSize <= 0 {
		return base, nil
	}
	return knowledge.NewCache(base, cfg.Knowledge.CacheSize, cfg.Knowledge.CacheTTL), nil
}

// VectorClients builds the Voyage embedder and Qdrant store from cfg.
func VectorClients(cfg *config.Config) (*voyage.Client, *qdrant.Client, error) {
	if !cfg.VectorKnowledge() {
		return nil, nil, ErrVectorNotConfigured
	}

	embedder, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: voyage: %w", LogPrefix, err)
	}
	embedder.WithModel(cfg.Voyage.Model)

	store := qdrant.NewClient(cfg.Qdrant.URL).WithAPIKey(cfg.Qdrant.APIKey)
	return embedder, store, nil
}
