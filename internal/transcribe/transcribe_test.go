package transcribe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rawihq/rawi/internal/config"
)

func newTestClient(url string) *Client {
	return New(config.TranscriberConfig{
		Endpoint: url,
		APIKey:   "test-key",
		Model:    "openai/whisper-large-v3",
		Timeout:  5 * time.Second,
	})
}

func TestTranscribeStructuredResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "RIFFfake" {
			t.Errorf("audio body = %q", body)
		}
		_, _ = w.Write([]byte(`{"text": " كم عدد الموظفين؟ "}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Transcribe(context.Background(), []byte("RIFFfake"))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if res.Text != "كم عدد الموظفين؟" {
		t.Fatalf("Text = %q", res.Text)
	}
}

func TestTranscribePlainStringResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"اعرض الأقسام"`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Transcribe(context.Background(), []byte("audio"))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if res.Text != "اعرض الأقسام" {
		t.Fatalf("Text = %q", res.Text)
	}
}

func TestTranscribeRawTextResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("  نص عادي  "))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Transcribe(context.Background(), []byte("audio"))
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if res.Text != "نص عادي" {
		t.Fatalf("Text = %q", res.Text)
	}
}

func TestTranscribeNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Transcribe(context.Background(), []byte("audio")); err == nil {
		t.Fatalf("Transcribe() on 429 should return an error")
	}
}

func TestTranscribeEmptyAudioRejected(t *testing.T) {
	if _, err := newTestClient("http://unused").Transcribe(context.Background(), nil); err == nil {
		t.Fatalf("Transcribe() with no audio should return an error")
	}
}
