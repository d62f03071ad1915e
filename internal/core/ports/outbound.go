package ports

import (
	"context"

	"github.com/rsharda/civic-translator/internal/core/domain"
)

// ExtractionStrategy converts an artifact's raw bytes into normalized text.
// Failures are terminal for the request; there is no cross-strategy fallback.
type ExtractionStrategy interface {
	Extract(ctx context.Context, data []byte) (domain.Extraction, error)
}

// StrategySelector picks the extraction strategy for a classified artifact.
type StrategySelector interface {
	ForKind(kind domain.ArtifactKind) (ExtractionStrategy, error)
}

// VisionExtractor recovers text from image bytes via an external multimodal
// completion capability. It returns an empty string on any failure; callers
// decide at their own layer whether empty text is fatal.
type VisionExtractor interface {
	ExtractImageText(ctx context.Context, jpegData []byte) string
}

// SafetyClassifier inspects extracted text before any external analysis call.
type SafetyClassifier interface {
	Classify(text string) domain.Verdict
}

// DocumentAnalyzer turns extracted text into the structured explanation.
// It never returns an error: every failure mode is folded into a
// type=error AnalysisResult.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, text string, user domain.UserContext) domain.AnalysisResult
}

// SpeechSynthesizer converts narration text into compressed audio bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}
