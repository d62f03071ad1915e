// Package murf adapts the hosted voice API. Synthesis is a two-step flow:
// a generate call returns a URL for the rendered clip, which is then
// downloaded and streamed back as MP3 bytes.
package murf

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rsharda/civic-translator/internal/core/domain"
	"github.com/rsharda/civic-translator/internal/infrastructure/resilience"
)

const (
	DefaultBaseURL = "https://api.murf.ai"
	DefaultTimeout = 30 * time.Second

	defaultVoice = "en-US-alicia"
)

// voiceByLanguage maps short language codes onto hosted voice identifiers.
// Unknown or missing codes fall back to the default voice rather than erroring.
var voiceByLanguage = map[string]string{
	"en": "en-US-alicia",
	"hi": "hi-IN-aman",
	"ta": "ta-IN-murali",
	"gu": "gu-IN-suresh",
	"mr": "mr-IN-ananya",
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	exec       *resilience.Executor
	log        *slog.Logger
}

func New(baseURL, apiKey string, timeout time.Duration, exec *resilience.Executor, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		exec:       exec,
		log:        log,
	}
}

// classifySpeechError keeps caller cancellation out of the breaker counts;
// everything else reaching this point is an upstream problem.
func classifySpeechError(err error) resilience.ErrorClassification {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{RecordFailure: false}
	}
	return resilience.ErrorClassification{RecordFailure: true}
}

// VoiceFor resolves a language code to a voice identifier.
func VoiceFor(languageCode string) string {
	if voice, ok := voiceByLanguage[strings.ToLower(strings.TrimSpace(languageCode))]; ok {
		return voice
	}
	return defaultVoice
}

func (c *Client) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, domain.WrapError(domain.ErrUpstreamService, "speech generate",
			errors.New("speech API key is not configured"))
	}

	voice := VoiceFor(languageCode)

	var audio []byte
	synthesize := func(callCtx context.Context) error {
		audioURL, err := c.generate(callCtx, voice, text)
		if err != nil {
			return err
		}
		audio, err = c.download(callCtx, audioURL)
		return err
	}

	var err error
	if c.exec != nil {
		err = c.exec.Execute(ctx, "speech", synthesize, classifySpeechError)
		if resilience.IsCircuitOpen(err) {
			err = domain.WrapError(domain.ErrUpstreamService, "speech generate", err)
		}
	} else {
		err = synthesize(ctx)
	}
	if err != nil {
		return nil, err
	}

	c.log.Debug("speech_synthesized", "voice", voice, "audio_bytes", len(audio))
	return audio, nil
}

func (c *Client) generate(ctx context.Context, voice, text string) (string, error) {
	payload := map[string]any{
		"voiceId":     voice,
		"text":        text,
		"format":      "MP3",
		"channelType": "MONO",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/speech/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create speech request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.WrapError(domain.ErrUpstreamService, "speech generate", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", domain.WrapError(domain.ErrUpstreamService, "speech generate",
			fmt.Errorf("voice API returned %s: %s", resp.Status, strings.TrimSpace(string(raw))))
	}

	var result struct {
		AudioFile string `json:"audioFile"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", domain.WrapError(domain.ErrUpstreamService, "speech generate", err)
	}
	if result.AudioFile == "" {
		return "", domain.WrapError(domain.ErrUpstreamService, "speech generate",
			errors.New("no audio URL returned"))
	}
	return result.AudioFile, nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create audio request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUpstreamService, "speech download", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.WrapError(domain.ErrUpstreamService, "speech download",
			fmt.Errorf("audio fetch returned %s", resp.Status))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUpstreamService, "speech download", err)
	}
	return audio, nil
}
