package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rawihq/rawi/internal/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the interactive Arabic REPL",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		_, assistant, db, err := setup(ctx)
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		slog.Info("rawi console starting", "version", version, "test_mode", db == nil)
		return console.Run(ctx, assistant)
	},
}
