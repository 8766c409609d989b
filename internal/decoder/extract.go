package decoder

import "strings"

const (
	fence     = "```"
	jsonFence = "```json"
)

// Extract strips fences, prose and trailing blocks from raw model output and
// returns the text of the single JSON object it most likely contains.
func Extract(raw string) (string, error) {
	text := stripFences(raw)
	text = strings.TrimSpace(text)

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", &ExtractionError{Raw: raw}
	}
	text = text[start:]

	// Anything after the first balanced object is chatter or a second block.
	if end := firstObjectEnd(text); end > 0 {
		return text[:end], nil
	}

	// Unbalanced: drop trailing chatter after the last closing brace.
	if end := strings.LastIndexByte(text, '}'); end >= 0 {
		text = text[:end+1]
	}
	return strings.TrimSpace(text), nil
}

// stripFences returns the interior of the last ```json block, else of the
// first fenced block of any kind, else the text unchanged.
func stripFences(text string) string {
	if i := strings.LastIndex(text, jsonFence); i >= 0 {
		return untilFence(text[i+len(jsonFence):])
	}
	if i := strings.Index(text, fence); i >= 0 {
		interior := untilFence(text[i+len(fence):])
		return dropInfoString(interior)
	}
	return text
}

func untilFence(text string) string {
	if j := strings.Index(text, fence); j >= 0 {
		return text[:j]
	}
	return text
}

// dropInfoString removes a language label such as "JSON" or "javascript"
// left at the start of a fenced block.
func dropInfoString(text string) string {
	trimmed := strings.TrimLeft(text, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	if trimmed == text {
		return text
	}
	if rest := strings.TrimLeft(trimmed, " \t"); strings.HasPrefix(rest, "\n") || strings.HasPrefix(rest, "\r") {
		return rest
	}
	return text
}

// firstObjectEnd returns the offset just past the brace that closes the
// object opened at text[0], or 0 when the braces never balance. Braces
// inside string literals are ignored.
func firstObjectEnd(text string) int {
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case escaped:
			escaped = false
		case inString && ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return 0
}
