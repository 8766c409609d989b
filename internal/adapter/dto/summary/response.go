package summary

import "github.com/johnquangdev/meetmind/internal/domain/entities"

// SummaryResponse is the summary as the web client consumes it: no
// envelope, same keys as the model is asked to produce
type SummaryResponse struct {
	Summary     string       `json:"summary"`
	KeyPoints   []string     `json:"key_points"`
	ActionItems []ActionItem `json:"action_items"`
}

// FromResult converts a decoded summary
func FromResult(res *entities.SummaryResult) *SummaryResponse {
	out := &SummaryResponse{
		Summary:     res.Summary,
		KeyPoints:   append([]string{}, res.KeyPoints...),
		ActionItems: make([]ActionItem, len(res.ActionItems)),
	}
	for i, item := range res.ActionItems {
		out.ActionItems[i] = ActionItem{
			Task:     item.Task,
			Owner:    item.Owner,
			Deadline: item.Deadline,
			Priority: string(item.Priority),
		}
	}
	return out
}
