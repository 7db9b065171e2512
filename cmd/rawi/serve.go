package main

import (
	"context"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	_ "github.com/rawihq/rawi/docs" // generated swagger docs

	"github.com/rawihq/rawi/internal/health"
	"github.com/rawihq/rawi/internal/server"
	"github.com/rawihq/rawi/internal/tts"
	"github.com/rawihq/rawi/internal/tts/mms"
	"github.com/rawihq/rawi/internal/tts/piper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		cfg, assistant, db, err := setup(ctx)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		slog.Info("rawi starting", "version", version)

		// Initialize the TTS backend if enabled.
		var synthesizer tts.Synthesizer
		if cfg.TTS.Enabled {
			switch cfg.TTS.Backend {
			case "mms":
				synthesizer = mms.New(cfg.TTS.MMS)
				slog.Info("using mms synthesizer", "endpoint", cfg.TTS.MMS.Endpoint)
			default:
				synthesizer = piper.New(cfg.TTS.Piper)
				slog.Info("using piper synthesizer", "endpoint", cfg.TTS.Piper.Endpoint)
			}
			defer synthesizer.Close()
		}

		healthServer := health.New(cfg.Server.HealthPort)
		healthServer.SetTestMode(db == nil)
		go func() {
			if err := healthServer.ListenAndServe(ctx); err != nil {
				slog.Error("health server failed", "error", err)
			}
		}()

		httpServer := server.New(cfg.Server.Port, assistant, synthesizer)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := httpServer.ListenAndServe(ctx); err != nil {
				slog.Error("http server failed", "error", err)
				cancel()
			}
		}()

		healthServer.SetReady(true)
		slog.Info("rawi ready",
			"port", cfg.Server.Port,
			"health_port", cfg.Server.HealthPort,
			"test_mode", db == nil)

		<-ctx.Done()
		slog.Info("shutdown signal received, draining...")

		if err := httpServer.Close(); err != nil {
			slog.Error("http server close error", "error", err)
		}
		wg.Wait()
		slog.Info("rawi stopped")
		return nil
	},
}
