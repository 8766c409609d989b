package summary

import (
	"strings"

	"github.com/johnquangdev/meetmind/internal/domain/entities"
)

// SummarizeRequest represents the request to summarize a transcript
type SummarizeRequest struct {
	Transcript string   `json:"transcript"`
	Title      string   `json:"title,omitempty" validate:"max=255"`
	Tags       []string `json:"tags,omitempty" validate:"max=20,dive,notblank,max=50"`
}

// AudioRequest represents the request to summarize a recording by URL.
// Multipart uploads send the same fields as form values next to "file".
type AudioRequest struct {
	AudioURL string   `json:"audio_url" form:"audio_url" validate:"omitempty,url"`
	Title    string   `json:"title,omitempty" form:"title" validate:"max=255"`
	Tags     []string `json:"tags,omitempty" form:"tags" validate:"max=20,dive,notblank,max=50"`
}

// ActionItem is an action item as clients send and receive it
type ActionItem struct {
	Task     string `json:"task" validate:"notblank"`
	Owner    string `json:"owner"`
	Deadline string `json:"deadline"`
	Priority string `json:"priority" validate:"priority"`
}

// ToEntity fills defaults and canonicalizes the priority
func (a ActionItem) ToEntity() entities.ActionItem {
	owner := strings.TrimSpace(a.Owner)
	if owner == "" {
		owner = entities.DefaultOwner
	}
	deadline := strings.TrimSpace(a.Deadline)
	if deadline == "" {
		deadline = entities.DefaultDeadline
	}
	return entities.ActionItem{
		Task:     strings.TrimSpace(a.Task),
		Owner:    owner,
		Deadline: deadline,
		Priority: entities.ParsePriority(a.Priority),
	}
}

// ToEntities converts a request's action items
func ToEntities(items []ActionItem) []entities.ActionItem {
	out := make([]entities.ActionItem, len(items))
	for i, item := range items {
		out[i] = item.ToEntity()
	}
	return out
}
