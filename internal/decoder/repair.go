package decoder

import (
	"fmt"
	"regexp"
	"strings"
)

// Stage names the repair pass after which the candidate first parsed.
type Stage string

const (
	StageDirect       Stage = "direct"
	StageSchemaCommas Stage = "schema_commas"
	StageSanitized    Stage = "sanitized"
)

var (
	tripleQuotedPattern    = regexp.MustCompile(`(?s)"""(.*?)"""`)
	adjacentStringsPattern = regexp.MustCompile(`"\s*\n\s*"`)
	summaryCommaPattern    = regexp.MustCompile(`(?s)("summary":\s*".*?")\s*"key_points"`)
	keyPointsCommaPattern  = regexp.MustCompile(`(?s)("key_points":\s*\[.*?\])\s*"action_items"`)
)

type repairPass struct {
	stage Stage
	apply func(string) string
}

// repairPasses run in order. Each pass rewrites the output of the previous
// one and is followed by a parse attempt; the first success wins.
var repairPasses = []repairPass{
	{stage: StageDirect, apply: cleanup},
	{stage: StageSchemaCommas, apply: insertSchemaCommas},
	{stage: StageSanitized, apply: sanitizeStrings},
}

// Repair parses candidate into a JSON object, applying the textual repairs
// in order until one parse succeeds.
func Repair(candidate string) (Value, Stage, error) {
	text := candidate
	var lastErr error
	for _, pass := range repairPasses {
		text = pass.apply(text)
		obj, err := parseObject(text)
		if err == nil {
			return obj, pass.stage, nil
		}
		lastErr = err
	}
	return Null, "", lastErr
}

func parseObject(text string) (Value, error) {
	v, err := Parse(text)
	if err != nil {
		return Null, err
	}
	if v.Kind != KindObject {
		return Null, fmt.Errorf("top-level value is %s, want object", v.Kind)
	}
	return v, nil
}

// cleanup applies the unconditional passes: comments, trailing commas,
// triple-quoted literals and missing commas between lines.
func cleanup(text string) string {
	text = stripLineComments(text)
	text = removeTrailingCommas(text)
	text = collapseTripleQuoted(text)
	return insertMissingCommas(text)
}

// stripLineComments removes // comments that start outside string literals.
func stripLineComments(text string) string {
	if !strings.Contains(text, "//") {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
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
		case !inString && ch == '/' && i+1 < len(text) && text[i+1] == '/':
			for i < len(text) && text[i] != '\n' {
				i++
			}
			if i < len(text) {
				sb.WriteByte('\n')
			}
			continue
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

// removeTrailingCommas drops a comma that starts outside string literals
// and is followed, after optional whitespace, by a closing brace or bracket.
func removeTrailingCommas(text string) string {
	if !strings.Contains(text, ",") {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
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
		case !inString && ch == ',' && closesAfter(text[i+1:]):
			continue
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

func closesAfter(text string) bool {
	rest := strings.TrimLeft(text, " \t\r\n")
	return rest != "" && (rest[0] == '}' || rest[0] == ']')
}

func collapseTripleQuoted(text string) string {
	return tripleQuotedPattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := tripleQuotedPattern.FindStringSubmatch(m)[1]
		inner = strings.ReplaceAll(inner, "\n", " ")
		inner = strings.ReplaceAll(inner, `"`, `\"`)
		return `"` + strings.TrimSpace(inner) + `"`
	})
}

// insertMissingCommas adds the comma a model forgot between a value ending
// one line and a key starting the next.
func insertMissingCommas(text string) string {
	return adjacentStringsPattern.ReplaceAllString(text, "\",\n  \"")
}

func insertSchemaCommas(text string) string {
	text = summaryCommaPattern.ReplaceAllString(text, `$1, "key_points"`)
	return keyPointsCommaPattern.ReplaceAllString(text, `$1, "action_items"`)
}

// sanitizeStrings replaces raw newlines, carriage returns and tabs inside
// string literals with a space.
func sanitizeStrings(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			inString = !inString
		case inString && (ch == '\n' || ch == '\r' || ch == '\t'):
			ch = ' '
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}
