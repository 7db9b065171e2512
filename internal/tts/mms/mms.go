// Package mms implements the TTS Synthesizer against a hosted inference
// endpoint serving facebook/mms-tts-ara.
//
// The endpoint accepts {"inputs": "<text>"} and answers with audio bytes.
// MMS produces single-channel audio at its native 16 kHz rate; when the
// service returns raw PCM the client wraps it in a WAV container so every
// backend hands the caller the same shape.
package mms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rawihq/rawi/internal/config"
	"github.com/rawihq/rawi/internal/tts"
)

// nativeSampleRate is the MMS VITS model's output rate in Hz.
const nativeSampleRate = 16000

// Synthesizer implements tts.Synthesizer over a hosted inference endpoint.
type Synthesizer struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// New creates a hosted MMS synthesizer from config.
func New(cfg config.MMSConfig) *Synthesizer {
	return &Synthesizer{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Synthesize posts the text and returns the WAV audio.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, opts tts.SynthesizeOpts) (*tts.Result, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text for synthesis")
	}
	if s.endpoint == "" {
		return nil, fmt.Errorf("no mms endpoint configured")
	}

	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("marshalling synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("synthesis failed (status %d): %s", resp.StatusCode, respBody)
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, 50<<20))
	if err != nil {
		return nil, fmt.Errorf("reading synthesis response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis returned no audio")
	}

	// Raw PCM (no RIFF preamble) gets wrapped; WAV passes through.
	if !bytes.HasPrefix(audio, []byte("RIFF")) {
		audio = tts.PCMToWAV(audio, nativeSampleRate, 1, 2)
	}

	slog.Debug("mms synthesis complete", "audio_bytes", len(audio))
	return &tts.Result{
		Audio:       audio,
		ContentType: "audio/wav",
		SampleRate:  nativeSampleRate,
		Channels:    1,
	}, nil
}

// Close is a no-op — requests are stateless.
func (s *Synthesizer) Close() error { return nil }
