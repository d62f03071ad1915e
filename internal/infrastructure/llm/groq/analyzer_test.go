package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rsharda/civic-translator/internal/core/domain"
)

func completionServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:       srv.URL,
		APIKey:        "test-key",
		AnalysisModel: "llama-3.3-70b-versatile",
		VisionModel:   "llama-3.2-90b-vision-preview",
	}, nil, nil)
}

func respondWithContent(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	if err != nil {
		t.Errorf("encode completion: %v", err)
	}
}

func TestAnalyzeParsesFencedJSON(t *testing.T) {
	content := "```json\n" + `{
  "type": "scheme",
  "title": "PM Housing Scheme",
  "summary": "Subsidized housing for rural families.",
  "targetAudience": "Rural families below poverty line",
  "personalImpact": "You may qualify for a housing subsidy.",
  "actionItems": ["Visit the gram panchayat office"],
  "benefits": ["Rs 2.5 lakh subsidy"],
  "deadlines": [],
  "trustNote": "Verify on the official portal",
  "voice_script": "This scheme offers housing support."
}` + "\n```"

	client := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "llama-3.3-70b-versatile" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if req.Temperature != 0.1 || req.MaxTokens != 2000 {
			t.Errorf("unexpected sampling params: temp=%v max=%d", req.Temperature, req.MaxTokens)
		}
		respondWithContent(t, w, content)
	})

	result := NewAnalyzer(client, 0, nil).Analyze(context.Background(), "scheme text", domain.UserContext{Occupation: "farmer"})
	if result.Type != domain.TypeScheme {
		t.Fatalf("expected scheme, got %q", result.Type)
	}
	if result.Title != "PM Housing Scheme" {
		t.Fatalf("unexpected title %q", result.Title)
	}
	if len(result.Benefits) != 1 || result.Benefits[0] != "Rs 2.5 lakh subsidy" {
		t.Fatalf("unexpected benefits %v", result.Benefits)
	}
	if result.Deadlines == nil {
		t.Fatalf("deadlines must be an empty slice, not nil")
	}
}

func TestAnalyzeNonJSONOutputIsErrorResult(t *testing.T) {
	client := completionServer(t, func(w http.ResponseWriter, _ *http.Request) {
		respondWithContent(t, w, "I could not analyze this document, sorry.")
	})

	result := NewAnalyzer(client, 0, nil).Analyze(context.Background(), "text", domain.UserContext{})
	if result.Type != domain.TypeError {
		t.Fatalf("expected error result, got %q", result.Type)
	}
	if !strings.HasPrefix(result.Summary, "Failed to analyze: ") {
		t.Fatalf("unexpected summary %q", result.Summary)
	}
}

func TestAnalyzeSchemaViolationIsErrorResult(t *testing.T) {
	client := completionServer(t, func(w http.ResponseWriter, _ *http.Request) {
		respondWithContent(t, w, `{"type": "recipe", "title": "x", "summary": "y"}`)
	})

	result := NewAnalyzer(client, 0, nil).Analyze(context.Background(), "text", domain.UserContext{})
	if result.Type != domain.TypeError {
		t.Fatalf("expected error result for unknown type value, got %q", result.Type)
	}
}

func TestAnalyzeMissingRequiredFieldIsErrorResult(t *testing.T) {
	client := completionServer(t, func(w http.ResponseWriter, _ *http.Request) {
		respondWithContent(t, w, `{"type": "notice", "title": "Missing summary"}`)
	})

	result := NewAnalyzer(client, 0, nil).Analyze(context.Background(), "text", domain.UserContext{})
	if result.Type != domain.TypeError {
		t.Fatalf("expected error result for missing summary, got %q", result.Type)
	}
}

func TestAnalyzeTimeoutIsErrorResult(t *testing.T) {
	client := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
		respondWithContent(t, w, "{}")
	})

	result := NewAnalyzer(client, 50*time.Millisecond, nil).Analyze(context.Background(), "text", domain.UserContext{})
	if result.Type != domain.TypeError {
		t.Fatalf("expected error result, got %q", result.Type)
	}
	if !strings.Contains(result.Summary, "timed out") {
		t.Fatalf("summary must mention the timeout, got %q", result.Summary)
	}
}

func TestAnalyzeUpstreamFailureIsErrorResult(t *testing.T) {
	client := completionServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "over capacity"}`, http.StatusServiceUnavailable)
	})

	result := NewAnalyzer(client, 0, nil).Analyze(context.Background(), "text", domain.UserContext{})
	if result.Type != domain.TypeError {
		t.Fatalf("expected error result, got %q", result.Type)
	}
}

func TestAnalyzeIsDeterministicForIdenticalInput(t *testing.T) {
	content := `{"type": "notice", "title": "Tax Notice", "summary": "Pay by Friday.", "benefits": ["None"]}`
	client := completionServer(t, func(w http.ResponseWriter, _ *http.Request) {
		respondWithContent(t, w, content)
	})

	analyzer := NewAnalyzer(client, 0, nil)
	first := analyzer.Analyze(context.Background(), "notice text", domain.UserContext{Language: "hi"})
	second := analyzer.Analyze(context.Background(), "notice text", domain.UserContext{Language: "hi"})

	if first.Type != second.Type || first.Title != second.Title {
		t.Fatalf("results differ: %+v vs %+v", first, second)
	}
	if len(first.Benefits) != len(second.Benefits) || first.Benefits[0] != second.Benefits[0] {
		t.Fatalf("benefit sets differ: %v vs %v", first.Benefits, second.Benefits)
	}
}

func TestExtractImageTextReturnsEmptyOnFailure(t *testing.T) {
	client := completionServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	if got := client.ExtractImageText(context.Background(), []byte{0xff, 0xd8}); got != "" {
		t.Fatalf("expected empty string on failure, got %q", got)
	}
}

func TestExtractImageTextSendsDataURL(t *testing.T) {
	client := completionServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content []contentPart `json:"content"`
			} `json:"messages"`
			Temperature float64 `json:"temperature"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "llama-3.2-90b-vision-preview" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if req.Temperature != 0 {
			t.Errorf("vision calls must be deterministic, temp=%v", req.Temperature)
		}
		if len(req.Messages) != 1 || len(req.Messages[0].Content) != 2 {
			t.Errorf("unexpected message shape")
		} else if url := req.Messages[0].Content[1].ImageURL.URL; !strings.HasPrefix(url, "data:image/jpeg;base64,") {
			t.Errorf("unexpected image url %q", url)
		}
		respondWithContent(t, w, "EXTRACTED TEXT")
	})

	if got := client.ExtractImageText(context.Background(), []byte("jpeg-bytes")); got != "EXTRACTED TEXT" {
		t.Fatalf("unexpected vision text %q", got)
	}
}
