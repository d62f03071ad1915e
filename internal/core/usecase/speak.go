package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/rsharda/civic-translator/internal/core/ports"
)

// SpeakUseCase renders previously produced narration text as audio. It is
// invoked independently of the document pipeline, on demand.
type SpeakUseCase struct {
	synth ports.SpeechSynthesizer
	log   *slog.Logger
}

func NewSpeakUseCase(synth ports.SpeechSynthesizer, log *slog.Logger) *SpeakUseCase {
	if log == nil {
		log = slog.Default()
	}
	return &SpeakUseCase{synth: synth, log: log}
}

func (uc *SpeakUseCase) Speak(ctx context.Context, text, languageCode string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("text is required")
	}

	start := time.Now()
	audio, err := uc.synth.Synthesize(ctx, text, languageCode)
	if err != nil {
		uc.log.Warn("speech_failed", "language", languageCode, "error", err)
		return nil, err
	}
	uc.log.Info("speech_complete",
		"language", languageCode,
		"text_length", len(text),
		"audio_bytes", len(audio),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return audio, nil
}
