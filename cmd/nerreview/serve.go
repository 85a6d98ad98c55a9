package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/anthropic"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/api"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/category"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/config"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/extractor"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/hermes"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/openai"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/processor"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/review"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and event bus consumer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), loadConfig())
		},
	}
}

func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("nerreview starting", "port", cfg.Port, "provider", cfg.Provider())

	if err := cfg.Validate(); err != nil {
		return err
	}
	backend := newBackend(cfg)
	slog.Info("extraction backend ready", "backend", backend.Name())

	// Audit log (optional)
	var (
		runs   processor.RunRecorder
		lister api.RunLister
	)
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}
		runs, lister = db, db
		slog.Info("database connected")
	} else {
		slog.Warn("DATABASE_URL not set, extraction runs will not be recorded")
	}

	// NATS/Hermes (optional)
	var (
		events       processor.Publisher
		hermesClient *hermes.Client
	)
	if cfg.NatsURL != "" {
		c, err := hermes.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			return err
		}
		defer c.Close()
		hermesClient, events = c, c
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS_URL not set, review events will not be published")
	}

	reg := category.Default()
	session := review.NewSession(reg, processor.NewObserver(events, slog.Default()), slog.Default())
	proc := processor.New(session, backend, runs, events, cfg.ExtractionTimeout, slog.Default())

	if hermesClient != nil {
		if err := hermesClient.Subscribe(hermes.SubjectTranscriptSubmitted, proc.HandleTranscriptSubmitted); err != nil {
			return err
		}
	}

	srv := api.NewServer(proc, reg, api.Options{
		Port:        cfg.Port,
		APIToken:    cfg.APIToken,
		CORSOrigins: cfg.CORSOrigins,
		Runs:        lister,
	}, slog.Default())

	slog.Info("nerreview ready", "port", cfg.Port, "session", session.ID())
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	slog.Info("nerreview stopped")
	return nil
}

func newBackend(cfg config.Config) extractor.Backend {
	switch cfg.Provider() {
	case config.ProviderRemote:
		return extractor.NewRemote(cfg.ExtractorURL, cfg.ExtractionTimeout)
	case config.ProviderAnthropic:
		llm := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.ExtractionTimeout)
		return extractor.New(llm, cfg.ExtractionMaxTokens, slog.Default())
	default:
		llm := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.ExtractionTimeout)
		return extractor.New(llm, cfg.ExtractionMaxTokens, slog.Default())
	}
}
