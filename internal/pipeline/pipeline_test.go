package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rawihq/rawi/internal/database"
	"github.com/rawihq/rawi/internal/format"
	"github.com/rawihq/rawi/internal/llm"
	"github.com/rawihq/rawi/internal/prompt"
	"github.com/rawihq/rawi/internal/transcribe"
)

type fakeCompleter struct {
	response string
	err      error
	gotMsgs  []prompt.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []prompt.Message) (string, error) {
	f.gotMsgs = messages
	return f.response, f.err
}

type fakeExecutor struct {
	result   database.Result
	err      error
	gotQuery string
}

func (f *fakeExecutor) Query(ctx context.Context, query string) (database.Result, error) {
	f.gotQuery = query
	return f.result, f.err
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte) (*transcribe.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &transcribe.Result{Text: f.text}, nil
}

func TestAskTextHappyPath(t *testing.T) {
	completer := &fakeCompleter{response: "```sql\nSELECT * FROM employees;\n```"}
	executor := &fakeExecutor{result: database.Result{
		Columns: []string{"first_name_ar"},
		Rows:    [][]any{{"أحمد"}},
	}}

	res := New("CREATE TABLE employees ();", completer, executor, nil).
		AskText(context.Background(), "اعرض الموظفين")

	if executor.gotQuery != "SELECT * FROM employees;" {
		t.Fatalf("executed query = %q", executor.gotQuery)
	}
	if res.SQL != "SELECT * FROM employees;" {
		t.Fatalf("result SQL = %q", res.SQL)
	}
	if !strings.HasPrefix(res.Response, "وجدت النتائج التالية:") {
		t.Fatalf("response = %q", res.Response)
	}
	if res.Input != "اعرض الموظفين" {
		t.Fatalf("input = %q", res.Input)
	}
	// The completer must have received the two-message prompt.
	if len(completer.gotMsgs) != 2 || completer.gotMsgs[0].Role != "system" {
		t.Fatalf("prompt messages = %+v", completer.gotMsgs)
	}
}

func TestAskTextCompletionFailureUsesFallbackQuery(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("status 500")}
	executor := &fakeExecutor{result: database.Result{}}

	res := New("schema", completer, executor, nil).AskText(context.Background(), "سؤال")

	if executor.gotQuery != llm.FallbackQuery {
		t.Fatalf("executed query = %q, want fallback", executor.gotQuery)
	}
	if res.SQL != "SELECT * FROM employees LIMIT 5;" {
		t.Fatalf("result SQL = %q", res.SQL)
	}
}

func TestAskTextExecutionFailureRendersNoResults(t *testing.T) {
	completer := &fakeCompleter{response: "SELECT broken FROM nowhere;"}
	executor := &fakeExecutor{err: errors.New("table does not exist")}

	res := New("schema", completer, executor, nil).AskText(context.Background(), "سؤال")

	if res.Response != format.NoResults {
		t.Fatalf("response = %q, want no-results message", res.Response)
	}
}

func TestAskTextEmptyResultRendersNoResults(t *testing.T) {
	completer := &fakeCompleter{response: "SELECT * FROM employees;"}
	executor := &fakeExecutor{result: database.Result{Columns: []string{"id"}}}

	res := New("schema", completer, executor, nil).AskText(context.Background(), "سؤال")
	if res.Response != format.NoResults {
		t.Fatalf("response = %q", res.Response)
	}
}

func TestAskAudioTranscribesThenAsks(t *testing.T) {
	completer := &fakeCompleter{response: "```sql\nSELECT 1;\n```"}
	executor := &fakeExecutor{result: database.Result{Columns: []string{"c"}, Rows: [][]any{{1}}}}
	assistant := New("schema", completer, executor, &fakeTranscriber{text: "كم عدد الأقسام؟"})

	res, err := assistant.AskAudio(context.Background(), []byte("RIFFaudio"))
	if err != nil {
		t.Fatalf("AskAudio() error = %v", err)
	}
	if res.Input != "كم عدد الأقسام؟" {
		t.Fatalf("input = %q", res.Input)
	}
	if res.SQL != "SELECT 1;" {
		t.Fatalf("sql = %q", res.SQL)
	}
}

func TestAskAudioTranscriptionFailureSurfaces(t *testing.T) {
	assistant := New("schema", &fakeCompleter{}, &fakeExecutor{}, &fakeTranscriber{err: errors.New("bad audio")})
	if _, err := assistant.AskAudio(context.Background(), []byte("x")); err == nil {
		t.Fatalf("AskAudio() should surface transcription failure")
	}
}

func TestAskAudioWithoutTranscriber(t *testing.T) {
	assistant := New("schema", &fakeCompleter{}, &fakeExecutor{}, nil)
	if _, err := assistant.AskAudio(context.Background(), []byte("x")); err == nil {
		t.Fatalf("AskAudio() without transcriber should fail")
	}
}
