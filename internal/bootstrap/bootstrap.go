package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/rsharda/civic-translator/internal/config"
	"github.com/rsharda/civic-translator/internal/core/ports"
	"github.com/rsharda/civic-translator/internal/core/usecase"
	"github.com/rsharda/civic-translator/internal/infrastructure/extractor"
	"github.com/rsharda/civic-translator/internal/infrastructure/extractor/imagevision"
	"github.com/rsharda/civic-translator/internal/infrastructure/extractor/pdfhybrid"
	"github.com/rsharda/civic-translator/internal/infrastructure/extractor/plaintext"
	"github.com/rsharda/civic-translator/internal/infrastructure/extractor/urlfetch"
	"github.com/rsharda/civic-translator/internal/infrastructure/llm/groq"
	"github.com/rsharda/civic-translator/internal/infrastructure/resilience"
	"github.com/rsharda/civic-translator/internal/infrastructure/safety"
	"github.com/rsharda/civic-translator/internal/infrastructure/speech/murf"
	"github.com/rsharda/civic-translator/internal/observability/metrics"
)

type App struct {
	Config config.Config
	Log    *slog.Logger

	Metrics *metrics.PipelineMetrics

	ProcessUC ports.DocumentProcessor
	SpeakUC   ports.SpeechService
}

func New(cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	exec := resilience.NewExecutor(resilience.DefaultConfig())

	groqClient := groq.New(groq.Config{
		BaseURL:           cfg.GroqBaseURL,
		APIKey:            cfg.GroqAPIKey,
		AnalysisModel:     cfg.GroqAnalysisModel,
		VisionModel:       cfg.GroqVisionModel,
		RequestsPerSecond: cfg.GroqRequestsPerSecond,
	}, exec, log)

	var (
		classifier *safety.Classifier
		err        error
	)
	if cfg.SafetyRulesPath != "" {
		classifier, err = safety.NewClassifierFromFile(cfg.SafetyRulesPath)
	} else {
		classifier, err = safety.NewClassifier()
	}
	if err != nil {
		return nil, fmt.Errorf("load safety rules: %w", err)
	}

	selector := extractor.NewSelector(
		urlfetch.New(cfg.FetchTimeout, cfg.URLTextLimit, log),
		pdfhybrid.New(groqClient, cfg.MaxPDFPages, log),
		imagevision.New(groqClient, log),
		plaintext.New(),
	)

	analyzer := groq.NewAnalyzer(groqClient, cfg.AnalysisTimeout, log)
	processUC := usecase.NewProcessSubmissionUseCase(selector, classifier, analyzer, cfg.MaxUploadBytes, log)

	murfClient := murf.New(cfg.MurfBaseURL, cfg.MurfAPIKey, cfg.SpeechTimeout, exec, log)
	speakUC := usecase.NewSpeakUseCase(murfClient, log)

	return &App{
		Config:    cfg,
		Log:       log,
		Metrics:   metrics.NewPipelineMetrics("civic-translator"),
		ProcessUC: processUC,
		SpeakUC:   speakUC,
	}, nil
}
