// Package server exposes the assistant pipeline over HTTP.
//
// The API mirrors the browser client's expectations: form-encoded requests,
// JSON responses, and errors reported inside the JSON body. Swagger UI is
// mounted at /swagger/ for the generated OpenAPI docs.
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rawihq/rawi/internal/pipeline"
	"github.com/rawihq/rawi/internal/tts"
)

// maxAudioBytes caps uploaded audio payloads (base64 inflates by 4/3).
const maxAudioBytes = 25 << 20

// Server hosts the assistant's HTTP API.
type Server struct {
	port        int
	assistant   *pipeline.Assistant
	synthesizer tts.Synthesizer // nil if TTS is disabled
	server      *http.Server
}

// New creates an HTTP server for the given assistant. synthesizer may be nil
// when TTS is disabled; /text_to_speech then reports an error response.
func New(port int, assistant *pipeline.Assistant, synthesizer tts.Synthesizer) *Server {
	return &Server{port: port, assistant: assistant, synthesizer: synthesizer}
}

// Handler returns the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /process_text", s.handleProcessText)
	mux.HandleFunc("POST /process_audio", s.handleProcessAudio)
	mux.HandleFunc("POST /text_to_speech", s.handleTextToSpeech)
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	return mux
}

// ListenAndServe starts the HTTP server. It blocks until the context is
// cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http server listening", "port", s.port)

	go func() {
		<-ctx.Done()
		slog.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// Close gracefully shuts down the HTTP server.
func (s *Server) Close() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleProcessText runs the pipeline on an Arabic text question.
//
// @Summary     Answer an Arabic text question from the database
// @Description Translates the Arabic question to SQL, executes it, and returns an Arabic answer.
// @Tags        pipeline
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       text  formData  string  true  "Arabic question"
// @Success     200  {object}  pipeline.Result
// @Router      /process_text [post]
func (s *Server) handleProcessText(w http.ResponseWriter, r *http.Request) {
	arabicText := r.FormValue("text")
	result := s.assistant.AskText(r.Context(), arabicText)
	writeJSON(w, result)
}

// handleProcessAudio transcribes uploaded audio and runs the pipeline.
//
// @Summary     Answer a spoken Arabic question from the database
// @Description Accepts a base64 data-URL audio payload, transcribes it, then runs the text pipeline.
// @Tags        pipeline
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       audio  formData  string  true  "Base64 data-URL encoded WAV audio"
// @Success     200  {object}  pipeline.Result
// @Router      /process_audio [post]
func (s *Server) handleProcessAudio(w http.ResponseWriter, r *http.Request) {
	audioData := r.FormValue("audio")
	if audioData == "" {
		writeJSON(w, map[string]string{"error": "No audio data received"})
		return
	}

	audio, err := decodeDataURL(audioData)
	if err != nil {
		slog.Warn("rejecting audio payload", "error", err)
		writeJSON(w, map[string]string{"error": err.Error()})
		return
	}

	result, err := s.assistant.AskAudio(r.Context(), audio)
	if err != nil {
		slog.Error("audio pipeline failed", "error", err)
		writeJSON(w, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, result)
}

// handleTextToSpeech synthesizes Arabic text to WAV audio.
//
// @Summary     Synthesize Arabic text to speech
// @Tags        tts
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       text  formData  string  true  "Arabic text to speak"
// @Success     200  {object}  map[string]string  "base64 WAV audio under the audio key"
// @Router      /text_to_speech [post]
func (s *Server) handleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue("text")
	if text == "" {
		writeJSON(w, map[string]string{"error": "No text received"})
		return
	}
	if s.synthesizer == nil {
		writeJSON(w, map[string]string{"error": "text-to-speech is disabled"})
		return
	}

	result, err := s.synthesizer.Synthesize(r.Context(), text, tts.SynthesizeOpts{})
	if err != nil {
		slog.Error("synthesis failed", "error", err)
		writeJSON(w, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, map[string]string{
		"audio": base64.StdEncoding.EncodeToString(result.Audio),
	})
}

// decodeDataURL strips an optional "data:...;base64," prefix and decodes the
// payload.
func decodeDataURL(data string) ([]byte, error) {
	payload := data
	if idx := strings.Index(data, ","); idx >= 0 {
		payload = data[idx+1:]
	}
	if payload == "" {
		return nil, fmt.Errorf("empty audio payload")
	}
	audio, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding audio payload: %w", err)
	}
	if len(audio) > maxAudioBytes {
		return nil, fmt.Errorf("audio payload exceeds %d bytes", maxAudioBytes)
	}
	return audio, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
