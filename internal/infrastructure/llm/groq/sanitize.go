package groq

import "strings"

// StripCodeFence removes an optional markdown code-fence wrapper from a model
// response. Models sometimes emit ```json ... ``` despite instructions not to.
func StripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
