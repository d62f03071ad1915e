// Package extractor maps artifact kinds onto extraction strategies. Each
// strategy is a variant of the same capability: bytes in, normalized text
// plus a fixed trust score out.
package extractor

import (
	"fmt"

	"github.com/rsharda/civic-translator/internal/core/domain"
	"github.com/rsharda/civic-translator/internal/core/ports"
)

type Selector struct {
	strategies map[domain.ArtifactKind]ports.ExtractionStrategy
}

func NewSelector(url, pdf, image, plain ports.ExtractionStrategy) *Selector {
	return &Selector{
		strategies: map[domain.ArtifactKind]ports.ExtractionStrategy{
			domain.KindURL:       url,
			domain.KindPDF:       pdf,
			domain.KindImage:     image,
			domain.KindPlainText: plain,
		},
	}
}

func (s *Selector) ForKind(kind domain.ArtifactKind) (ports.ExtractionStrategy, error) {
	strategy, ok := s.strategies[kind]
	if !ok || strategy == nil {
		return nil, domain.WrapError(domain.ErrUnsupportedFileType, "select strategy",
			fmt.Errorf("no extraction strategy for kind %q", kind))
	}
	return strategy, nil
}
