package domain

import (
	"strings"

	"github.com/google/uuid"
)

type DocumentType string

const (
	TypeScheme        DocumentType = "scheme"
	TypeNotice        DocumentType = "notice"
	TypeCertificate   DocumentType = "certificate"
	TypeIdentity      DocumentType = "identity"
	TypeUnknown       DocumentType = "unknown"
	TypeIdentityBlock DocumentType = "identity_block"
	TypeScam          DocumentType = "scam"
	TypeError         DocumentType = "error"
)

// UserContext is the citizen-supplied context record attached to a submission.
type UserContext struct {
	Occupation string `json:"occupation"`
	Location   string `json:"location"`
	Language   string `json:"language"`
}

// TargetLanguage returns the requested output language, defaulting to English.
func (u UserContext) TargetLanguage() string {
	if lang := strings.TrimSpace(u.Language); lang != "" {
		return lang
	}
	return "en"
}

// AnalysisResult is the single response shape for every terminal pipeline
// outcome: successful analysis, safety block, and analyzer failure all render
// through the same fields, keyed off Type.
type AnalysisResult struct {
	Type           DocumentType `json:"type"`
	Title          string       `json:"title"`
	Summary        string       `json:"summary"`
	TargetAudience string       `json:"targetAudience"`
	PersonalImpact string       `json:"personalImpact"`
	ActionItems    []string     `json:"actionItems"`
	Benefits       []string     `json:"benefits"`
	Deadlines      []string     `json:"deadlines"`
	TrustNote      string       `json:"trustNote"`
	VoiceScript    string       `json:"voice_script"`

	// Extraction metadata, attached by the pipeline after analysis.
	OCRConfidence       float64 `json:"ocr_confidence"`
	ExtractedTextLength int     `json:"extracted_text_length"`
	RequestID           string  `json:"request_id"`
}

// NormalizeLists replaces nil slices with empty ones so every rendered result
// carries arrays, never nulls.
func (r *AnalysisResult) NormalizeLists() {
	if r.ActionItems == nil {
		r.ActionItems = []string{}
	}
	if r.Benefits == nil {
		r.Benefits = []string{}
	}
	if r.Deadlines == nil {
		r.Deadlines = []string{}
	}
}

// NewRequestID returns the short correlation identifier attached to every
// response.
func NewRequestID() string {
	return uuid.NewString()[:8]
}

// IdentityBlockResult is the locally synthesized result for submissions that
// trip the identity-document gate. The external analyzer is never invoked.
func IdentityBlockResult() AnalysisResult {
	return AnalysisResult{
		Type:           TypeIdentityBlock,
		Title:          "Private Document Detected",
		Summary:        "private messages cannot be summarized",
		TargetAudience: "N/A",
		PersonalImpact: "This document contains sensitive personal information.",
		ActionItems:    []string{"We do not process Aadhaar, PAN, or Voter Cards for privacy reasons."},
		Benefits:       []string{},
		Deadlines:      []string{},
		TrustNote:      "🔒 Privacy Protection Active",
		VoiceScript:    "This is a private identity document. Depending on privacy rules, private messages cannot be summarized.",
	}
}

// ScamResult is the locally synthesized result for submissions that trip the
// scam gate.
func ScamResult() AnalysisResult {
	return AnalysisResult{
		Type:           TypeScam,
		Title:          "⚠️ Potential Scam Detected",
		Summary:        "This document shows fraud characteristics.",
		TargetAudience: "Anyone who received this",
		PersonalImpact: "DO NOT share personal information.",
		ActionItems:    []string{"Do not respond", "Report to cybercrime.gov.in"},
		Benefits:       []string{},
		Deadlines:      []string{},
		TrustNote:      "⚠️ FRAUD WARNING",
		VoiceScript:    "Warning. This document shows signs of being a scam or fraud. Do not share your personal information. Do not send money.",
	}
}

// ErrorResult converts an analyzer failure into a well-formed result, so
// failure is a data outcome rather than a fault for downstream consumers.
func ErrorResult(message string) AnalysisResult {
	return AnalysisResult{
		Type:           TypeError,
		Title:          "Analysis Error",
		Summary:        "Failed to analyze: " + message,
		TargetAudience: "N/A",
		PersonalImpact: "Please try again",
		ActionItems:    []string{"Check document quality"},
		Benefits:       []string{},
		Deadlines:      []string{},
		TrustNote:      "Error occurred during analysis",
	}
}
