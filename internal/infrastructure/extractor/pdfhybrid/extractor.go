// Package pdfhybrid extracts text from PDFs page by page: direct embedded
// text where the page carries enough of it, vision OCR over a 150 DPI render
// otherwise. Processing is capped at the first pages of the document as a
// latency and cost bound; extra pages are silently ignored.
package pdfhybrid

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"log/slog"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"

	"github.com/rsharda/civic-translator/internal/core/domain"
	"github.com/rsharda/civic-translator/internal/core/ports"
)

const (
	DefaultMaxPages = 10

	// A page whose embedded text exceeds this many characters is treated
	// as digital; shorter pages are assumed scanned and rendered for OCR.
	digitalTextThreshold = 50

	renderDPI   = 150
	jpegQuality = 85
)

type Extractor struct {
	vision   ports.VisionExtractor
	maxPages int
	log      *slog.Logger
}

func New(vision ports.VisionExtractor, maxPages int, log *slog.Logger) *Extractor {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{vision: vision, maxPages: maxPages, log: log}
}

func (e *Extractor) Extract(ctx context.Context, data []byte) (extraction domain.Extraction, err error) {
	// The parser panics on some malformed cross-reference data instead of
	// returning an error; a hostile upload must surface as a normal
	// unsupported-file rejection.
	defer func() {
		if r := recover(); r != nil {
			extraction = domain.Extraction{}
			err = domain.WrapError(domain.ErrUnsupportedFileType, "parse pdf",
				fmt.Errorf("malformed document: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.Extraction{}, domain.WrapError(domain.ErrUnsupportedFileType, "open pdf", err)
	}

	pageCount := reader.NumPage()
	if pageCount > e.maxPages {
		pageCount = e.maxPages
	}

	// The rasterizer is opened lazily: fully digital documents never pay
	// for it. Each page's render is encoded and released before the next
	// page starts, bounding peak memory.
	var raster *rasterizer
	defer func() {
		if raster != nil {
			raster.Close()
		}
	}()

	sections := make([]string, 0, pageCount)
	for num := 1; num <= pageCount; num++ {
		text := directPageText(reader, num)
		if len(text) > digitalTextThreshold {
			e.log.Debug("pdf_page_digital", "page", num, "chars", len(text))
			sections = append(sections, pageSection(num, false, text))
			continue
		}

		if raster == nil {
			raster, err = newRasterizer(data)
			if err != nil {
				return domain.Extraction{}, domain.WrapError(domain.ErrUnsupportedFileType, "render pdf", err)
			}
		}
		jpegData, err := raster.renderJPEG(num)
		if err != nil {
			return domain.Extraction{}, domain.WrapError(domain.ErrUpstreamService, "render pdf page", err)
		}

		// Per-page OCR failure degrades to an empty-text marker; it does
		// not abort the rest of the document.
		ocrText := e.vision.ExtractImageText(ctx, jpegData)
		e.log.Debug("pdf_page_scanned", "page", num, "ocr_chars", len(ocrText))
		sections = append(sections, pageSection(num, true, ocrText))
	}

	return domain.Extraction{
		Text:       strings.TrimSpace(strings.Join(sections, "\n\n")),
		Confidence: domain.ConfidencePDFHybrid,
	}, nil
}

// directPageText attempts embedded-text extraction for one page. Any per-page
// parse failure yields an empty string, which routes the page to OCR.
func directPageText(reader *pdf.Reader, num int) string {
	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// pageSection formats one page's text with its marker. Pages that went
// through OCR are labeled so the analyzer's input preserves provenance.
func pageSection(num int, ocr bool, text string) string {
	if ocr {
		return fmt.Sprintf("--- Page %d (OCR) ---\n%s", num, text)
	}
	return fmt.Sprintf("--- Page %d ---\n%s", num, text)
}

type rasterizer struct {
	doc *fitz.Document
}

func newRasterizer(data []byte) (*rasterizer, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return &rasterizer{doc: doc}, nil
}

// renderJPEG renders one page (1-based) at the fixed DPI and re-encodes it as
// compressed JPEG for the vision call.
func (r *rasterizer) renderJPEG(num int) ([]byte, error) {
	img, err := r.doc.ImageDPI(num-1, renderDPI)
	if err != nil {
		return nil, fmt.Errorf("rasterize page %d: %w", num, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode page %d: %w", num, err)
	}
	return buf.Bytes(), nil
}

func (r *rasterizer) Close() {
	_ = r.doc.Close()
}
