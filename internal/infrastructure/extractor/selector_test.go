package extractor

import (
	"context"
	"testing"

	"github.com/rsharda/civic-translator/internal/core/domain"
	"github.com/rsharda/civic-translator/internal/infrastructure/extractor/plaintext"
)

type stubStrategy struct {
	name string
}

func (s *stubStrategy) Extract(context.Context, []byte) (domain.Extraction, error) {
	return domain.Extraction{Text: s.name}, nil
}

func TestForKindRoutesEachStrategy(t *testing.T) {
	s := NewSelector(
		&stubStrategy{name: "url"},
		&stubStrategy{name: "pdf"},
		&stubStrategy{name: "image"},
		&stubStrategy{name: "plain"},
	)

	for kind, want := range map[domain.ArtifactKind]string{
		domain.KindURL:       "url",
		domain.KindPDF:       "pdf",
		domain.KindImage:     "image",
		domain.KindPlainText: "plain",
	} {
		strategy, err := s.ForKind(kind)
		if err != nil {
			t.Fatalf("ForKind(%q): %v", kind, err)
		}
		extraction, _ := strategy.Extract(context.Background(), nil)
		if extraction.Text != want {
			t.Fatalf("ForKind(%q) routed to %q, want %q", kind, extraction.Text, want)
		}
	}
}

func TestForKindUnknownKindFails(t *testing.T) {
	s := NewSelector(&stubStrategy{}, &stubStrategy{}, &stubStrategy{}, &stubStrategy{})
	if _, err := s.ForKind(domain.ArtifactKind("spreadsheet")); !domain.IsKind(err, domain.ErrUnsupportedFileType) {
		t.Fatalf("expected unsupported file type error, got %v", err)
	}
}

func TestForKindNilStrategyFails(t *testing.T) {
	s := NewSelector(nil, &stubStrategy{}, &stubStrategy{}, &stubStrategy{})
	if _, err := s.ForKind(domain.KindURL); !domain.IsKind(err, domain.ErrUnsupportedFileType) {
		t.Fatalf("expected unsupported file type error, got %v", err)
	}
}

func TestPlainTextPassthrough(t *testing.T) {
	extraction, err := plaintext.New().Extract(context.Background(), []byte("hello notice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extraction.Text != "hello notice" {
		t.Fatalf("unexpected text %q", extraction.Text)
	}
	if extraction.Confidence != domain.ConfidencePlainText {
		t.Fatalf("unexpected confidence %v", extraction.Confidence)
	}
}
