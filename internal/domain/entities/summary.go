package entities

import "strings"

// Priority is the urgency of an action item
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

const (
	DefaultOwner    = "Unassigned"
	DefaultDeadline = "Not Mentioned"
)

// ParsePriority maps free text onto a Priority, case-insensitively.
// Anything unrecognised becomes Medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Rank orders priorities by urgency: High (0) before Medium (1) before Low (2)
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// ActionItem is a single follow-up extracted from a meeting
type ActionItem struct {
	Task     string   `json:"task" validate:"required"`
	Owner    string   `json:"owner"`
	Deadline string   `json:"deadline"`
	Priority Priority `json:"priority" validate:"omitempty,oneof=High Medium Low"`
}

// SummaryResult is the canonical structured summary of one transcript
type SummaryResult struct {
	Summary     string       `json:"summary"`
	KeyPoints   []string     `json:"key_points"`
	ActionItems []ActionItem `json:"action_items"`
}

// NewSummaryResult returns an empty result with non-nil lists so it always
// encodes as arrays.
func NewSummaryResult() *SummaryResult {
	return &SummaryResult{
		KeyPoints:   make([]string, 0),
		ActionItems: make([]ActionItem, 0),
	}
}
