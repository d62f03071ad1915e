package domain

import "testing"

func TestNewRequestIDLength(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := NewRequestID()
		if len(id) != 8 {
			t.Fatalf("expected 8-char id, got %q", id)
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Fatalf("request ids are not unique")
	}
}

func TestTargetLanguageDefaultsToEnglish(t *testing.T) {
	if got := (UserContext{}).TargetLanguage(); got != "en" {
		t.Fatalf("expected en default, got %q", got)
	}
	if got := (UserContext{Language: "  "}).TargetLanguage(); got != "en" {
		t.Fatalf("expected en for blank language, got %q", got)
	}
	if got := (UserContext{Language: "ta"}).TargetLanguage(); got != "ta" {
		t.Fatalf("expected ta, got %q", got)
	}
}

func TestNormalizeListsReplacesNils(t *testing.T) {
	r := AnalysisResult{ActionItems: []string{"keep"}}
	r.NormalizeLists()
	if len(r.ActionItems) != 1 || r.ActionItems[0] != "keep" {
		t.Fatalf("existing list modified: %v", r.ActionItems)
	}
	if r.Benefits == nil || r.Deadlines == nil {
		t.Fatalf("nil lists not replaced")
	}
	if len(r.Benefits) != 0 || len(r.Deadlines) != 0 {
		t.Fatalf("replaced lists must be empty")
	}
}

func TestSynthesizedResultsAreWellFormed(t *testing.T) {
	identity := IdentityBlockResult()
	if identity.Type != TypeIdentityBlock {
		t.Fatalf("unexpected type %q", identity.Type)
	}
	if identity.Title != "Private Document Detected" {
		t.Fatalf("unexpected title %q", identity.Title)
	}
	if len(identity.Benefits) != 0 || identity.Benefits == nil {
		t.Fatalf("identity block benefits must be an empty slice")
	}

	scam := ScamResult()
	if scam.Type != TypeScam {
		t.Fatalf("unexpected type %q", scam.Type)
	}
	if len(scam.ActionItems) == 0 {
		t.Fatalf("scam result must carry protective actions")
	}

	errRes := ErrorResult("upstream unavailable")
	if errRes.Type != TypeError {
		t.Fatalf("unexpected type %q", errRes.Type)
	}
	if errRes.Summary != "Failed to analyze: upstream unavailable" {
		t.Fatalf("unexpected summary %q", errRes.Summary)
	}
}
