// Package transcribe implements the speech-to-text boundary.
//
// Audio is sent as raw bytes to a hosted Whisper inference endpoint
// (Hugging Face Inference through the fal-ai provider by default). The
// service answers either a JSON object with a text field or a bare string;
// both shapes normalize into the same Result.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rawihq/rawi/internal/config"
)

// Result is the normalized transcription outcome. Text is always populated
// on success, regardless of the wire shape the service used.
type Result struct {
	Text string
}

// Transcriber converts audio bytes to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (*Result, error)
}

// Client sends audio to a hosted automatic-speech-recognition endpoint.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// New creates a transcription client from config.
func New(cfg config.TranscriberConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Transcribe posts the raw audio bytes and normalizes the response.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (*Result, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("creating transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "audio/wav")
	if c.model != "" {
		req.Header.Set("X-Model", c.model)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading transcription response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcription failed (status %d): %.256s", resp.StatusCode, body)
	}

	text := normalize(body)
	if text == "" {
		return nil, fmt.Errorf("transcription returned no text")
	}

	slog.Debug("transcription complete", "text_length", len(text))
	return &Result{Text: text}, nil
}

// normalize accepts either {"text": "..."} JSON or a plain string body and
// returns the trimmed transcript.
func normalize(body []byte) string {
	var structured struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && structured.Text != "" {
		return strings.TrimSpace(structured.Text)
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil {
		return strings.TrimSpace(plain)
	}

	return strings.TrimSpace(string(body))
}
