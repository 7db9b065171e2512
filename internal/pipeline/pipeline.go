// Package pipeline sequences the assistant's stages: transcription (for
// audio), prompt construction, SQL generation, execution, and Arabic
// response formatting.
//
// The Assistant is the explicit context object shared by the HTTP server and
// the console: it owns the rendered schema, the model clients, and the
// executor, so nothing lives in package globals. Every stage failure degrades
// to a defined fallback; nothing escapes the orchestrator uncaught except a
// failed transcription, which the surfaces report to the caller.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rawihq/rawi/internal/database"
	"github.com/rawihq/rawi/internal/extract"
	"github.com/rawihq/rawi/internal/format"
	"github.com/rawihq/rawi/internal/llm"
	"github.com/rawihq/rawi/internal/prompt"
	"github.com/rawihq/rawi/internal/transcribe"
)

// Completer generates a raw model response for a message sequence.
type Completer interface {
	Complete(ctx context.Context, messages []prompt.Message) (string, error)
}

// Assistant runs the full question-to-answer pipeline.
type Assistant struct {
	schema      string
	completer   Completer
	executor    database.Executor
	transcriber transcribe.Transcriber
}

// New creates an Assistant over an already-rendered schema and the given
// collaborators. transcriber may be nil when no audio entry point is needed.
func New(schema string, completer Completer, executor database.Executor, transcriber transcribe.Transcriber) *Assistant {
	return &Assistant{
		schema:      schema,
		completer:   completer,
		executor:    executor,
		transcriber: transcriber,
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Input is the Arabic question (transcribed, for audio entry).
	Input string `json:"input"`

	// SQL is the extracted statement that was executed.
	SQL string `json:"sql"`

	// Response is the Arabic answer text.
	Response string `json:"response"`
}

// AskText runs the pipeline for an Arabic text question. It always produces
// a Result: model failure degrades to the fallback query, execution failure
// to the no-results answer.
func (a *Assistant) AskText(ctx context.Context, arabicText string) *Result {
	start := time.Now()

	messages := prompt.Build(a.schema, arabicText)
	response, err := a.completer.Complete(ctx, messages)

	var query string
	if err != nil {
		slog.Error("completion failed, using fallback query", "error", err)
		query = llm.FallbackQuery
	} else {
		query = extract.SQL(response)
	}

	result, err := a.executor.Query(ctx, query)
	if err != nil {
		// Failure collapses into the empty sentinel: callers see the
		// no-results answer either way. The log line is the only place the
		// two outcomes stay distinguishable.
		slog.Error("query execution failed", "sql", query, "error", err)
		result = database.Result{}
	}

	answer := format.Response(result)
	slog.Info("pipeline complete",
		"input_length", len(arabicText),
		"sql", query,
		"rows", len(result.Rows),
		"duration", time.Since(start))

	return &Result{Input: arabicText, SQL: query, Response: answer}
}

// AskAudio transcribes the audio and runs the text pipeline on the
// transcript. Transcription failure is the one error surfaced to callers.
func (a *Assistant) AskAudio(ctx context.Context, audio []byte) (*Result, error) {
	if a.transcriber == nil {
		return nil, fmt.Errorf("no transcriber configured")
	}

	res, err := a.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return nil, fmt.Errorf("transcribing audio: %w", err)
	}

	slog.Debug("audio transcribed", "text", res.Text)
	return a.AskText(ctx, res.Text), nil
}
