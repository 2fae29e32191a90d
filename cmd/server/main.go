package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/doccheck/internal/api"
	"github.com/dgallion1/doccheck/internal/compare"
	"github.com/dgallion1/doccheck/internal/config"
	"github.com/dgallion1/doccheck/internal/parser"
	"github.com/dgallion1/doccheck/internal/pipeline"
	"github.com/dgallion1/doccheck/internal/segment"
	"github.com/dgallion1/doccheck/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize template storage and clients.
	templates, err := store.Open(cfg.TemplateDir)
	if err != nil {
		log.Error("template store init failed", "error", err)
		os.Exit(1)
	}
	claude := compare.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	parser.PDFFallback = cfg.PDFFallbackPdftotext

	synonyms := compare.DefaultSynonyms()
	if cfg.StatusSynonyms != "" {
		synonyms = compare.ExtendSynonyms(synonyms, cfg.StatusSynonyms)
	}
	engine := compare.NewEngine(claude, log, compare.Config{
		MaxConcurrent:   cfg.MaxConcurrentCompare,
		MaxPromptTokens: cfg.MaxPromptTokens,
		Synonyms:        synonyms,
	})

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, engine, templates, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	segmenter := segment.New(cfg.HeadingMaxLen)
	srv := api.NewServer(orch, claude, templates, segmenter, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		// Stop accepting requests before stopping the workers, so no
		// handler can submit to a stopped pipeline.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		claude.Close()
	}()

	log.Info("starting doccheck", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
