// Package console runs the interactive Arabic REPL.
//
// Each line of input is an Arabic question; the loop prints the generated
// SQL and the Arabic answer, and optionally plays nothing — audio output is
// a server-mode feature. Pipeline failures print the standard Arabic apology
// instead of a stack trace.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/rawihq/rawi/internal/format"
	"github.com/rawihq/rawi/internal/pipeline"
)

// Run starts the REPL and blocks until EOF, interrupt, or context cancel.
func Run(ctx context.Context, assistant *pipeline.Assistant) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "rawi> ",
		HistoryLimit:      500,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()

	// Closing readline unblocks Readline() when the context is cancelled.
	go func() {
		<-ctx.Done()
		rl.Close()
	}()

	fmt.Println("اكتب سؤالك بالعربية، أو اضغط Ctrl+D للخروج.")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF || ctx.Err() != nil {
				fmt.Println()
				return nil
			}
			return fmt.Errorf("readline: %w", err)
		}

		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}

		result := ask(ctx, assistant, question)
		fmt.Println(result)
	}
}

// ask runs one question and renders the console output, converting any
// panic-free pipeline outcome into printable text.
func ask(ctx context.Context, assistant *pipeline.Assistant, question string) string {
	res := assistant.AskText(ctx, question)
	if res == nil {
		return format.Apology
	}
	return fmt.Sprintf("SQL: %s\n%s", res.SQL, res.Response)
}
