// Package llm implements the chat-completion client for the locally hosted
// SQL-generation model.
//
// The server speaks the OpenAI-compatible /v1/chat/completions protocol
// (LM Studio, Ollama, vLLM all qualify). Sampling parameters are fixed low
// to keep SQL generation as deterministic as the model allows.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rawihq/rawi/internal/config"
	"github.com/rawihq/rawi/internal/prompt"
)

// FallbackQuery is substituted by the pipeline whenever the completion call
// fails, so the request degrades to a harmless default instead of aborting.
const FallbackQuery = "SELECT * FROM employees LIMIT 5;"

// Fixed sampling parameters for SQL generation.
const (
	temperature = 0.1
	topP        = 0.8
	maxTokens   = 1024
)

// Client talks to an OpenAI-compatible chat-completion endpoint.
type Client struct {
	endpoint string
	model    string
	client   *http.Client
}

// New creates a completion client from config.
func New(cfg config.LLMConfig) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/") + "/v1/chat/completions",
		model:    cfg.Model,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type chatRequest struct {
	Model       string           `json:"model,omitempty"`
	Messages    []prompt.Message `json:"messages"`
	Temperature float64          `json:"temperature"`
	TopP        float64          `json:"top_p"`
	MaxTokens   int              `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the message sequence and returns the raw completion text.
func (c *Client) Complete(ctx context.Context, messages []prompt.Message) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshalling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("chat failed (status %d): %s", resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from chat API")
	}

	content := chatResp.Choices[0].Message.Content
	slog.Debug("completion received", "length", len(content), "duration", time.Since(start))
	return content, nil
}
