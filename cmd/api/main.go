package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"aegnt-unltd/config"
	_ "aegnt-unltd/docs" // Swagger docs
	"aegnt-unltd/internal/app"
	directiveHTTP "aegnt-unltd/internal/directive/delivery/http"
	"aegnt-unltd/internal/httpserver"
	"aegnt-unltd/internal/middleware"
	"aegnt-unltd/internal/watcher"
	"aegnt-unltd/pkg/log"
)

// @title       aegnt directive router API
// @description Classifies directives and dispatches them to the cortex or deep_mind tier.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting aegnt directive router...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Dispatch core
	core, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to build dispatcher: ", err)
		return
	}

	// A missing prompt file is not fatal: the brain runs with an empty prompt.
	if err := core.Brain.LoadSystemPrompt(ctx, cfg.Brain.SystemPromptPath); err != nil {
		logger.Warnf(ctx, "System prompt not loaded, continuing with empty prompt: %v", err)
	}

	// 4. HTTP Server
	mw := middleware.New(logger, cfg.RateLimit.PerMin)
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:             cfg.HTTPServer.Port,
		Mode:             cfg.HTTPServer.Mode,
		Environment:      cfg.Environment.Name,
		Middleware:       mw,
		DirectiveHandler: directiveHTTP.New(logger, core.Brain, cfg.Brain.SystemPromptPath),
		MetricsHandler:   core.Metrics.Handler(),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpServer.Run(gctx) })

	if cfg.Brain.WatchSystemPrompt && cfg.Brain.SystemPromptPath != "" {
		w, err := watcher.New(logger, cfg.Brain.SystemPromptPath, core.Brain, watcher.DefaultDebounce)
		if err != nil {
			logger.Warnf(ctx, "System prompt watcher disabled: %v", err)
		} else {
			g.Go(func() error { return w.Run(gctx) })
		}
	}

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
