package decoder

import "fmt"

// ExtractionError means no plausible JSON object boundary was found in the
// model output.
type ExtractionError struct {
	Raw string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no JSON object found in model output (%d bytes)", len(e.Raw))
}

// UnrecoverableParseError means every repair pass was applied and the text
// still failed to parse as a JSON object.
type UnrecoverableParseError struct {
	Raw       string
	Candidate string
	Err       error
}

func (e *UnrecoverableParseError) Error() string {
	return fmt.Sprintf("model output is not valid JSON after all repairs: %v", e.Err)
}

func (e *UnrecoverableParseError) Unwrap() error {
	return e.Err
}

// SchemaError describes an action item that was dropped during
// normalization. It never aborts a decode.
type SchemaError struct {
	Index  int
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("action item %d: %s", e.Index, e.Reason)
}

// Excerpt shortens raw model output for logs.
func Excerpt(raw string, limit int) string {
	if len(raw) <= limit {
		return raw
	}
	return raw[:limit] + "..."
}
