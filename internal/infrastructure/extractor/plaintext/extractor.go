// Package plaintext passes already-decoded text through unchanged. The
// ingestion gate has validated UTF-8 before this strategy is selected.
package plaintext

import (
	"context"

	"github.com/rsharda/civic-translator/internal/core/domain"
)

type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, data []byte) (domain.Extraction, error) {
	return domain.Extraction{
		Text:       string(data),
		Confidence: domain.ConfidencePlainText,
	}, nil
}
