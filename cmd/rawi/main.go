// Rawi is an Arabic voice/text natural-language-to-SQL assistant.
//
// A user asks a question in Arabic (spoken or typed); rawi translates it to
// SQL against the configured MySQL schema, executes it, and answers in
// Arabic prose, optionally synthesized to speech.
//
// Usage:
//
//	rawi serve [--config rawi.yaml]
//	rawi console [--config rawi.yaml]
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rawihq/rawi/internal/config"
	"github.com/rawihq/rawi/internal/database"
	"github.com/rawihq/rawi/internal/llm"
	"github.com/rawihq/rawi/internal/pipeline"
	"github.com/rawihq/rawi/internal/schema"
	"github.com/rawihq/rawi/internal/transcribe"
)

// version is set at build time via ldflags.
var version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:           "rawi",
	Short:         "Arabic voice/text to SQL assistant",
	Long:          "Rawi answers Arabic natural-language questions from a MySQL database,\nusing a locally hosted language model for SQL generation.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rawi version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rawi %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file (e.g. configs/rawi.yaml)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(consoleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config and builds the assistant. The returned db is nil in
// test mode; callers close it when non-nil.
func setup(ctx context.Context) (*config.Config, *pipeline.Assistant, *sql.DB, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	config.SetupLogging(cfg.Logging)

	// Unreachable database switches the whole pipeline into test mode
	// (fixed schema, canned results) instead of failing.
	var (
		db       *sql.DB
		executor database.Executor
	)
	db, err = database.Open(cfg.Database)
	if err != nil {
		slog.Warn("database unreachable, running in test mode", "error", err)
		db = nil
		executor = database.NewCanned()
	} else {
		executor = database.NewLive(db)
	}

	schemaText := schema.Load(ctx, db)

	assistant := pipeline.New(
		schemaText,
		llm.New(cfg.LLM),
		executor,
		transcribe.New(cfg.Transcriber),
	)
	return cfg, assistant, db, nil
}
