package safety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rsharda/civic-translator/internal/core/domain"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier()
	if err != nil {
		t.Fatalf("load embedded rules: %v", err)
	}
	return c
}

func TestClassifySingleIdentityMarkerBlocks(t *testing.T) {
	c := newTestClassifier(t)
	cases := []string{
		"Aadhaar enrollment slip attached",
		"issued by UIDAI office",
		"PAN Card copy for verification",
		"EPIC No: ABC1234567",
	}
	for _, text := range cases {
		if got := c.Classify(text); got != domain.VerdictIdentityDocument {
			t.Fatalf("Classify(%q) = %q, want identity_document", text, got)
		}
	}
}

func TestClassifyScamNeedsTwoDistinctMarkers(t *testing.T) {
	c := newTestClassifier(t)

	if got := c.Classify("URGENT ACTION required for your account"); got != domain.VerdictNone {
		t.Fatalf("single scam marker must not block, got %q", got)
	}
	if got := c.Classify("Urgent action: you are a lottery winner!"); got != domain.VerdictScam {
		t.Fatalf("two distinct markers must block, got %q", got)
	}
}

func TestClassifyRepeatedMarkerCountsOnce(t *testing.T) {
	c := newTestClassifier(t)
	text := "send money now. please send money today. send money immediately."
	if got := c.Classify(text); got != domain.VerdictNone {
		t.Fatalf("repeated marker must count once, got %q", got)
	}
}

func TestClassifyIdentityGateWinsOverScam(t *testing.T) {
	c := newTestClassifier(t)
	text := "urgent action: share OTP to verify your aadhaar"
	if got := c.Classify(text); got != domain.VerdictIdentityDocument {
		t.Fatalf("identity gate is evaluated first, got %q", got)
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	c := newTestClassifier(t)
	if got := c.Classify("AADHAAR"); got != domain.VerdictIdentityDocument {
		t.Fatalf("expected case-insensitive match, got %q", got)
	}
}

func TestClassifyCleanTextPasses(t *testing.T) {
	c := newTestClassifier(t)
	text := "Public notice: water supply will be interrupted on Monday for maintenance."
	if got := c.Classify(text); got != domain.VerdictNone {
		t.Fatalf("clean text must pass, got %q", got)
	}
}

func TestNewClassifierFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	rules := []byte("categories:\n  - name: scam\n    threshold: 1\n    markers:\n      - lottery winner\n")
	if err := os.WriteFile(path, rules, 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	c, err := NewClassifierFromFile(path)
	if err != nil {
		t.Fatalf("load rules from file: %v", err)
	}
	if got := c.Classify("you are a lottery winner"); got != domain.VerdictScam {
		t.Fatalf("expected scam verdict from custom table, got %q", got)
	}
}

func TestNewClassifierRejectsIncompleteTable(t *testing.T) {
	if _, err := newFromYAML([]byte("categories:\n  - name: scam\n    threshold: 0\n    markers: [x]\n")); err == nil {
		t.Fatalf("expected error for zero threshold")
	}
	if _, err := newFromYAML([]byte("categories: []\n")); err == nil {
		t.Fatalf("expected error for empty table")
	}
}
