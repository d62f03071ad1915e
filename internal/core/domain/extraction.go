package domain

// Fixed per-strategy trust scores. These are documented constants from the
// product, not computed probabilities: the PDF composite stays 90 no matter
// how many pages fell back to vision OCR.
const (
	ConfidenceURLFetch  = 100.0
	ConfidencePlainText = 100.0
	ConfidenceImageOCR  = 95.0
	ConfidencePDFHybrid = 90.0
)

// Extraction is the normalized output of an extraction strategy.
// Failure is carried on the error return of ExtractionStrategy.Extract,
// so an Extraction value always represents extracted text.
type Extraction struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type Verdict string

const (
	VerdictNone             Verdict = "none"
	VerdictIdentityDocument Verdict = "identity_document"
	VerdictScam             Verdict = "scam"
)
