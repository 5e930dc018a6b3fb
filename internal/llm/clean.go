package llm

import "strings"

// CleanJSON strips markdown code fences that models wrap around JSON output.
// It returns the trimmed payload between the fences, or the trimmed input when
// no fences are present.
func CleanJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```JSON")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		return strings.TrimSpace(s)
	}

	// Some models prepend prose before the fence. Keep only the fenced block
	// when one exists anywhere in the response.
	if start := strings.Index(s, "```json"); start >= 0 {
		rest := s[start+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	return s
}
