package groq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rsharda/civic-translator/internal/core/domain"
)

const DefaultAnalysisTimeout = 30 * time.Second

// Analyzer implements the structured analysis stage. It never propagates a
// raw failure to its caller: timeouts, API errors, unparseable output and
// contract violations all come back as a type=error AnalysisResult.
type Analyzer struct {
	client  *Client
	timeout time.Duration
	log     *slog.Logger
}

func NewAnalyzer(client *Client, timeout time.Duration, log *slog.Logger) *Analyzer {
	if timeout <= 0 {
		timeout = DefaultAnalysisTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Analyzer{client: client, timeout: timeout, log: log}
}

func (a *Analyzer) Analyze(ctx context.Context, text string, user domain.UserContext) domain.AnalysisResult {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.client.CompleteAnalysis(ctx, buildSystemPrompt(user), buildUserPrompt(text, user))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			timeoutErr := domain.WrapError(domain.ErrAnalysisTimeout, "analysis", err)
			a.log.Warn("analysis_timeout", "timeout", a.timeout, "error", timeoutErr)
			return domain.ErrorResult(fmt.Sprintf("analysis timed out after %s. Please try again.", a.timeout))
		}
		a.log.Warn("analysis_call_failed", "error", err)
		return domain.ErrorResult(err.Error())
	}

	payload := []byte(StripCodeFence(raw))
	if err := ValidateAnalysisJSON(payload); err != nil {
		parseErr := domain.WrapError(domain.ErrAnalysisParse, "analysis", err)
		a.log.Warn("analysis_output_rejected", "error", parseErr, "response_bytes", len(raw))
		return domain.ErrorResult(err.Error())
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		a.log.Warn("analysis_output_rejected", "error", err)
		return domain.ErrorResult(err.Error())
	}
	result.NormalizeLists()
	return result
}
