// Package decoder turns raw LLM output that claims to be a meeting summary
// into a validated entities.SummaryResult.
//
// Decoding runs three stages: Extract isolates one JSON object from fences
// and surrounding chatter, Repair applies a fixed ladder of textual fixes
// until a strict parse succeeds, and Normalize reconciles field aliases and
// filters, deduplicates, merges and sorts the action items.
//
// Everything here is pure and synchronous. Functions hold no state between
// calls and are safe to use from any number of goroutines.
package decoder

import "github.com/johnquangdev/meetmind/internal/domain/entities"

// Report describes how a successful decode went.
type Report struct {
	// Stage is the repair pass after which the candidate parsed.
	Stage Stage
	// Dropped lists action items that had to be discarded.
	Dropped []*SchemaError
}

// Decode runs the full pipeline over raw model output.
func Decode(raw string) (*entities.SummaryResult, error) {
	result, _, err := DecodeWithReport(raw)
	return result, err
}

// DecodeWithReport is Decode plus diagnostics for the caller to log or
// record. Extraction and parse failures abort with *ExtractionError or
// *UnrecoverableParseError; per-item problems only show up in the report.
func DecodeWithReport(raw string) (*entities.SummaryResult, *Report, error) {
	candidate, err := Extract(raw)
	if err != nil {
		return nil, nil, err
	}

	obj, stage, err := Repair(candidate)
	if err != nil {
		return nil, nil, &UnrecoverableParseError{Raw: raw, Candidate: candidate, Err: err}
	}

	result, dropped := Normalize(obj)
	return result, &Report{Stage: stage, Dropped: dropped}, nil
}
