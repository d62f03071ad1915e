package groq

import (
	"strings"
	"testing"

	"github.com/rsharda/civic-translator/internal/core/domain"
)

func TestBuildSystemPromptInterpolatesLanguage(t *testing.T) {
	prompt := buildSystemPrompt(domain.UserContext{Language: "ta"})
	if !strings.Contains(prompt, "selected language (ta)") {
		t.Fatalf("expected language interpolated into prompt")
	}
	if !strings.Contains(prompt, `"2%", "Subsidy"`) {
		t.Fatalf("expected literal percent example preserved")
	}
}

func TestBuildSystemPromptDefaultsToEnglish(t *testing.T) {
	prompt := buildSystemPrompt(domain.UserContext{})
	if !strings.Contains(prompt, "selected language (en)") {
		t.Fatalf("expected english default")
	}
}

func TestBuildUserPromptFillsMissingContext(t *testing.T) {
	prompt := buildUserPrompt("document body", domain.UserContext{})
	if !strings.Contains(prompt, "document body") {
		t.Fatalf("document text missing from prompt")
	}
	if !strings.Contains(prompt, "Occupation: N/A") || !strings.Contains(prompt, "Location: N/A") {
		t.Fatalf("expected N/A defaults, got:\n%s", prompt)
	}
}

func TestBuildUserPromptIncludesContext(t *testing.T) {
	prompt := buildUserPrompt("text", domain.UserContext{Occupation: "farmer", Location: "Pune", Language: "mr"})
	if !strings.Contains(prompt, "Occupation: farmer") {
		t.Fatalf("occupation missing")
	}
	if !strings.Contains(prompt, "Location: Pune") {
		t.Fatalf("location missing")
	}
	if !strings.Contains(prompt, "Language Code: mr") {
		t.Fatalf("language missing")
	}
}
