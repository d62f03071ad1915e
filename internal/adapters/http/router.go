package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rsharda/civic-translator/internal/core/domain"
	"github.com/rsharda/civic-translator/internal/core/ports"
	"github.com/rsharda/civic-translator/internal/observability/metrics"
)

// multipartMemoryLimit is the in-memory threshold for multipart parsing;
// larger parts spill to temp files. The pipeline's own 10 MiB gate runs
// against the declared part size before the body is read.
const multipartMemoryLimit = 16 << 20

type Router struct {
	processor ports.DocumentProcessor
	speech    ports.SpeechService
	metrics   *metrics.PipelineMetrics
	service   string
}

func NewRouter(
	processor ports.DocumentProcessor,
	speech ports.SpeechService,
	m *metrics.PipelineMetrics,
	service string,
) *Router {
	return &Router{
		processor: processor,
		speech:    speech,
		metrics:   m,
		service:   service,
	}
}

// Handler assembles the route table with the middleware chain. The metrics
// endpoint is mounted outside the CORS/logging chain by the caller.
func (rt *Router) Handler(allowedOrigin string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/process-document", rt.processDocument)
	mux.HandleFunc("/api/ocr-only", rt.extractOnly)
	mux.HandleFunc("/api/speak", rt.speak)

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	handler = corsMiddleware(allowedOrigin, handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) processDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: "Invalid upload", Details: err.Error()})
		return
	}
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: "Invalid upload", Details: "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	var user domain.UserContext
	if raw := r.FormValue("user_context"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: "Invalid upload", Details: "user_context is not valid JSON"})
			return
		}
	}

	start := time.Now()
	result, err := rt.processor.Process(r.Context(), fileHeader.Filename, fileHeader.Size, file, user)
	if err != nil {
		outcome := errorOutcome(err)
		rt.recordDocument(outcome, start)
		status, title := mapPipelineError(err)
		writeJSON(w, status, errorEnvelope{
			Error:     title,
			Details:   err.Error(),
			RequestID: requestIDFromContext(r.Context()),
		})
		return
	}

	rt.recordDocument(string(result.Type), start)
	switch result.Type {
	case domain.TypeIdentityBlock, domain.TypeScam:
		if rt.metrics != nil {
			rt.metrics.RecordSafetyBlock(rt.service, string(result.Type))
		}
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	writeJSON(w, http.StatusOK, result)
}

// extractOnly is the debugging surface: extraction without classification or
// analysis, returning the raw success/text/confidence shape.
func (rt *Router) extractOnly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: "Invalid upload", Details: "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	type extractionEnvelope struct {
		Success    bool    `json:"success"`
		Text       string  `json:"text,omitempty"`
		Confidence float64 `json:"confidence,omitempty"`
		Error      string  `json:"error,omitempty"`
	}

	extraction, err := rt.processor.ExtractOnly(r.Context(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		status, _ := mapPipelineError(err)
		writeJSON(w, status, extractionEnvelope{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, extractionEnvelope{
		Success:    true,
		Text:       extraction.Text,
		Confidence: extraction.Confidence,
	})
}

func (rt *Router) speak(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: "Invalid request", Details: "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: "Text is required", Details: "text must be non-empty"})
		return
	}

	audio, err := rt.speech.Speak(r.Context(), req.Text, req.Language)
	if rt.metrics != nil {
		rt.metrics.RecordSpeech(rt.service, err)
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorEnvelope{
			Error:     "Speech synthesis failed",
			Details:   err.Error(),
			RequestID: requestIDFromContext(r.Context()),
		})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (rt *Router) recordDocument(outcome string, start time.Time) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordDocument(rt.service, outcome, time.Since(start))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
