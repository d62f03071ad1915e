package httpadapter

import (
	"net/http"

	"github.com/rsharda/civic-translator/internal/core/domain"
)

// errorEnvelope is the distinguishable error shape for terminal request
// failures that never produced an AnalysisResult.
type errorEnvelope struct {
	Error     string `json:"error"`
	Details   string `json:"details"`
	RequestID string `json:"request_id,omitempty"`
}

func mapPipelineError(err error) (int, string) {
	switch {
	case domain.IsKind(err, domain.ErrSizeLimitExceeded):
		return http.StatusRequestEntityTooLarge, "File too large"
	case domain.IsKind(err, domain.ErrFetch):
		return http.StatusBadRequest, "URL processing failed"
	case domain.IsKind(err, domain.ErrUnsupportedEncoding),
		domain.IsKind(err, domain.ErrUnsupportedFileType),
		domain.IsKind(err, domain.ErrNoTextExtracted):
		return http.StatusBadRequest, "OCR failed"
	case domain.IsKind(err, domain.ErrUpstreamService):
		return http.StatusServiceUnavailable, "Processing failed"
	default:
		return http.StatusInternalServerError, "Processing failed"
	}
}

func errorOutcome(err error) string {
	switch {
	case domain.IsKind(err, domain.ErrSizeLimitExceeded):
		return "rejected_size"
	case domain.IsKind(err, domain.ErrFetch):
		return "fetch_error"
	case domain.IsKind(err, domain.ErrUnsupportedEncoding),
		domain.IsKind(err, domain.ErrUnsupportedFileType):
		return "rejected_type"
	case domain.IsKind(err, domain.ErrNoTextExtracted):
		return "no_text"
	default:
		return "error"
	}
}
