package ports

import (
	"context"
	"io"

	"github.com/rsharda/civic-translator/internal/core/domain"
)

// DocumentProcessor is the inbound contract for the full submission pipeline:
// ingestion gate, extraction, safety classification and analysis.
type DocumentProcessor interface {
	Process(ctx context.Context, filename string, size int64, body io.Reader, user domain.UserContext) (domain.AnalysisResult, error)
	ExtractOnly(ctx context.Context, filename string, size int64, body io.Reader) (domain.Extraction, error)
}

// SpeechService is the inbound contract for spoken renderings of a result.
type SpeechService interface {
	Speak(ctx context.Context, text, languageCode string) ([]byte, error)
}
