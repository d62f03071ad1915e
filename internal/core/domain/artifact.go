package domain

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type ArtifactKind string

const (
	KindURL       ArtifactKind = "url"
	KindImage     ArtifactKind = "image"
	KindPDF       ArtifactKind = "pdf"
	KindPlainText ArtifactKind = "text"
)

// MaxUploadBytes is the hard ceiling for a submitted artifact.
const MaxUploadBytes int64 = 10 * 1024 * 1024

var imageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"bmp":  {},
	"tiff": {},
}

// FileExtension returns the lowercased extension of a filename without the dot.
func FileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// CheckSize rejects oversized artifacts using the declared size only, so the
// gate never needs the payload in memory.
func CheckSize(declared int64, limit int64) error {
	if limit <= 0 {
		limit = MaxUploadBytes
	}
	if declared > limit {
		return WrapError(ErrSizeLimitExceeded, "ingestion gate", errors.New("artifact exceeds upload ceiling"))
	}
	return nil
}

// DetectKind classifies an artifact by declared extension and content.
// A .txt file whose whole content is one http(s) token is a URL reference,
// not text to analyze. Everything outside the pdf/image sets must decode as
// UTF-8 or the submission is rejected.
func DetectKind(ext string, data []byte) (ArtifactKind, error) {
	if _, ok := imageExtensions[ext]; ok {
		return KindImage, nil
	}
	if ext == "pdf" {
		return KindPDF, nil
	}
	if !utf8.Valid(data) {
		return "", WrapError(ErrUnsupportedEncoding, "ingestion gate",
			errors.New("file with extension ."+ext+" is not valid UTF-8 text"))
	}
	if ext == "txt" && IsBareURL(string(data)) {
		return KindURL, nil
	}
	return KindPlainText, nil
}

// IsBareURL reports whether text is exactly one whitespace-free http(s) token.
func IsBareURL(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return false
	}
	return len(strings.Fields(trimmed)) == 1
}
