package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rsharda/civic-translator/internal/core/domain"
	"github.com/rsharda/civic-translator/internal/core/ports"
)

// ProcessSubmissionUseCase drives one submission through the fixed chain
// Received -> SizeChecked -> TypeDetermined -> Extracted -> Classified ->
// {Blocked | Analyzed}. Every entity it touches is request-scoped; nothing is
// cached or shared across calls.
type ProcessSubmissionUseCase struct {
	selector   ports.StrategySelector
	classifier ports.SafetyClassifier
	analyzer   ports.DocumentAnalyzer

	maxUploadBytes int64
	log            *slog.Logger
}

func NewProcessSubmissionUseCase(
	selector ports.StrategySelector,
	classifier ports.SafetyClassifier,
	analyzer ports.DocumentAnalyzer,
	maxUploadBytes int64,
	log *slog.Logger,
) *ProcessSubmissionUseCase {
	if maxUploadBytes <= 0 {
		maxUploadBytes = domain.MaxUploadBytes
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProcessSubmissionUseCase{
		selector:       selector,
		classifier:     classifier,
		analyzer:       analyzer,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

func (uc *ProcessSubmissionUseCase) Process(
	ctx context.Context,
	filename string,
	size int64,
	body io.Reader,
	user domain.UserContext,
) (domain.AnalysisResult, error) {
	requestID := domain.NewRequestID()
	log := uc.log.With("request_id", requestID, "filename", filename)

	extraction, err := uc.extract(ctx, log, filename, size, body)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	// The safety gates run against the final extracted text, before any
	// external analysis call. This ordering is the privacy boundary.
	verdict := uc.classifier.Classify(extraction.Text)

	var result domain.AnalysisResult
	switch verdict {
	case domain.VerdictIdentityDocument:
		log.Info("pipeline_blocked", "verdict", verdict)
		result = domain.IdentityBlockResult()
	case domain.VerdictScam:
		log.Info("pipeline_blocked", "verdict", verdict)
		result = domain.ScamResult()
	default:
		start := time.Now()
		result = uc.analyzer.Analyze(ctx, extraction.Text, user)
		log.Info("analysis_complete",
			"type", result.Type,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	// Additive metadata only; analyzer-produced fields are never overwritten.
	result.OCRConfidence = extraction.Confidence
	result.ExtractedTextLength = len(extraction.Text)
	result.RequestID = requestID
	result.NormalizeLists()
	return result, nil
}

func (uc *ProcessSubmissionUseCase) ExtractOnly(
	ctx context.Context,
	filename string,
	size int64,
	body io.Reader,
) (domain.Extraction, error) {
	requestID := domain.NewRequestID()
	log := uc.log.With("request_id", requestID, "filename", filename)
	return uc.extract(ctx, log, filename, size, body)
}

func (uc *ProcessSubmissionUseCase) extract(
	ctx context.Context,
	log *slog.Logger,
	filename string,
	size int64,
	body io.Reader,
) (domain.Extraction, error) {
	if err := domain.CheckSize(size, uc.maxUploadBytes); err != nil {
		log.Warn("size_rejected", "declared_bytes", size)
		return domain.Extraction{}, err
	}

	data, err := io.ReadAll(io.LimitReader(body, uc.maxUploadBytes+1))
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("read submission body: %w", err)
	}
	if int64(len(data)) > uc.maxUploadBytes {
		return domain.Extraction{}, domain.WrapError(domain.ErrSizeLimitExceeded, "ingestion gate",
			fmt.Errorf("payload larger than declared size"))
	}

	kind, err := domain.DetectKind(domain.FileExtension(filename), data)
	if err != nil {
		return domain.Extraction{}, err
	}

	strategy, err := uc.selector.ForKind(kind)
	if err != nil {
		return domain.Extraction{}, err
	}

	start := time.Now()
	extraction, err := strategy.Extract(ctx, data)
	if err != nil {
		log.Warn("extraction_failed", "kind", kind, "error", err)
		return domain.Extraction{}, err
	}

	log.Info("extraction_complete",
		"kind", kind,
		"text_length", len(extraction.Text),
		"confidence", extraction.Confidence,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return extraction, nil
}
