package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/config"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "nerreview",
		Short:         "Clinical extraction review service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCmd()
	root.RunE = serve.RunE
	root.AddCommand(serve, newNormalizeCmd(), newMCPCmd())

	if err := root.Execute(); err != nil {
		slog.Error("nerreview failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)
	return cfg
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
