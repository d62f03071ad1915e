package groq

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// analysisSchema is the fixed output contract for the analysis model. The
// model's implicit promise to honor it is unchecked at the source, so the
// parsed payload is validated here before anything downstream trusts it.
const analysisSchema = `{
  "type": "object",
  "properties": {
    "type": {
      "type": "string",
      "enum": ["scheme", "notice", "certificate", "identity", "unknown", "identity_block", "scam", "error"]
    },
    "title": {"type": "string"},
    "summary": {"type": "string"},
    "targetAudience": {"type": "string"},
    "personalImpact": {"type": "string"},
    "actionItems": {"type": "array", "items": {"type": "string"}},
    "benefits": {"type": "array", "items": {"type": "string"}},
    "deadlines": {"type": "array", "items": {"type": "string"}},
    "trustNote": {"type": "string"},
    "voice_script": {"type": "string"}
  },
  "required": ["type", "title", "summary"]
}`

var compiledAnalysisSchema = jsonschema.MustCompileString("analysis.schema.json", analysisSchema)

// ValidateAnalysisJSON checks the parsed analyzer payload against the output
// contract: required fields present and type within the closed enumeration.
func ValidateAnalysisJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal analysis: %w", err)
	}
	if err := compiledAnalysisSchema.Validate(v); err != nil {
		return fmt.Errorf("analysis does not match contract: %w", err)
	}
	return nil
}
