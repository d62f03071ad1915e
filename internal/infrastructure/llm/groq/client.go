// Package groq is the adapter for the hosted structured-completion service.
// It exposes the two capabilities the pipeline needs: verbatim text recovery
// from an image, and JSON analysis of extracted text. The client is a
// process-wide handle, constructed once and shared read-only across requests.
package groq

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rsharda/civic-translator/internal/core/domain"
	"github.com/rsharda/civic-translator/internal/infrastructure/resilience"
)

const visionInstruction = "Extract ALL text from this image exactly as written. Return ONLY the extracted text, no explanation."

type Config struct {
	BaseURL       string
	APIKey        string
	AnalysisModel string
	VisionModel   string

	// RequestsPerSecond bounds API load across concurrent requests.
	// Zero disables the limiter.
	RequestsPerSecond float64
}

type Client struct {
	baseURL       string
	apiKey        string
	analysisModel string
	visionModel   string

	httpClient *http.Client
	limiter    *rate.Limiter
	exec       *resilience.Executor
	log        *slog.Logger
}

func New(cfg Config, exec *resilience.Executor, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		analysisModel: cfg.AnalysisModel,
		visionModel:   cfg.VisionModel,
		httpClient:    &http.Client{Timeout: 120 * time.Second},
		limiter:       limiter,
		exec:          exec,
		log:           log,
	}
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Complete sends a chat-completion request and returns the first choice's
// trimmed content.
func (c *Client) complete(ctx context.Context, operation string, req chatRequest) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/chat/completions", req, &response, operation)
	}
	var err error
	if c.exec != nil {
		err = c.exec.Execute(ctx, operation, call, classifyGroqError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		if resilience.IsCircuitOpen(err) {
			return "", domain.WrapError(domain.ErrUpstreamService, operation, err)
		}
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("groq %s: no choices in response", operation)
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// CompleteAnalysis runs the analysis model over a system and user prompt at
// low temperature.
func (c *Client) CompleteAnalysis(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.complete(ctx, "analysis", chatRequest{
		Model: c.analysisModel,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.1,
		MaxTokens:   2000,
	})
}

// ExtractImageText submits JPEG bytes to the vision model at zero temperature
// and returns the verbatim extracted text. On any failure it returns an empty
// string rather than an error; callers decide whether empty text is fatal.
func (c *Client) ExtractImageText(ctx context.Context, jpegData []byte) string {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)

	text, err := c.complete(ctx, "vision", chatRequest{
		Model: c.visionModel,
		Messages: []message{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: visionInstruction},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				},
			},
		},
		Temperature: 0,
		MaxTokens:   2000,
	})
	if err != nil {
		c.log.Warn("vision_extract_failed", "error", err, "image_bytes", len(jpegData))
		return ""
	}
	return text
}
