// Package imagevision extracts text from a whole image by normalizing it and
// delegating recognition to the vision completion capability. The image is
// flattened to opaque RGB, downscaled so its longer edge fits 1024px, and
// re-encoded as reduced-quality JPEG to bound the payload sent upstream.
package imagevision

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"log/slog"

	"github.com/disintegration/imaging"

	"github.com/rsharda/civic-translator/internal/core/domain"
	"github.com/rsharda/civic-translator/internal/core/ports"
)

const (
	maxEdge     = 1024
	jpegQuality = 75
)

type Extractor struct {
	vision ports.VisionExtractor
	log    *slog.Logger
}

func New(vision ports.VisionExtractor, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{vision: vision, log: log}
}

func (e *Extractor) Extract(ctx context.Context, data []byte) (domain.Extraction, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrUnsupportedFileType, "decode image", err)
	}

	jpegData, err := normalizeJPEG(img)
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrUpstreamService, "encode image", err)
	}

	text := e.vision.ExtractImageText(ctx, jpegData)
	if text == "" {
		return domain.Extraction{}, domain.WrapError(domain.ErrNoTextExtracted, "vision extract",
			errors.New("no text extracted by vision API"))
	}

	e.log.Debug("image_extract_complete", "text_length", len(text), "payload_bytes", len(jpegData))
	return domain.Extraction{
		Text:       text,
		Confidence: domain.ConfidenceImageOCR,
	}, nil
}

// normalizeJPEG flattens transparency onto white, downscales with Lanczos
// resampling when the longer edge exceeds the cap, and encodes as JPEG.
func normalizeJPEG(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	flat := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	if bounds.Dx() > maxEdge || bounds.Dy() > maxEdge {
		flat = imaging.Fit(flat, maxEdge, maxEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
