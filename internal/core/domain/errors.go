package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSizeLimitExceeded   = errors.New("size limit exceeded")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFetch               = errors.New("fetch failed")
	ErrNoTextExtracted     = errors.New("no text extracted")
	ErrAnalysisTimeout     = errors.New("analysis timed out")
	ErrAnalysisParse       = errors.New("analysis output unparseable")
	ErrUpstreamService     = errors.New("upstream service failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
