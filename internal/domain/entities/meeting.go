package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	// MultipleOwners labels a meeting whose action items span several people
	MultipleOwners = "Multiple"

	transcriptSampleRunes = 100
)

// Meeting is a stored summary, listed in the history view
type Meeting struct {
	ID               uuid.UUID                       `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID          *uuid.UUID                      `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	Title            string                          `gorm:"type:varchar(255);not null;default:''" json:"title"`
	Summary          string                          `gorm:"type:text;not null;default:''" json:"summary"`
	KeyPoints        datatypes.JSONSlice[string]     `gorm:"type:jsonb;not null" json:"key_points"`
	ActionItems      datatypes.JSONSlice[ActionItem] `gorm:"type:jsonb;not null" json:"action_items"`
	Tags             datatypes.JSONSlice[string]     `gorm:"type:jsonb;not null" json:"tags"`
	Owner            string                          `gorm:"type:varchar(255);not null;default:''" json:"owner"`
	TranscriptSample string                          `gorm:"type:text;not null;default:''" json:"transcript_sample"`
	ModelUsed        string                          `gorm:"type:varchar(255);not null;default:''" json:"model_used"`
	DecodeStage      string                          `gorm:"type:varchar(32);not null;default:''" json:"decode_stage"`
	DroppedItems     int                             `gorm:"not null;default:0" json:"dropped_items"`
	CreatedAt        time.Time                       `gorm:"not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// Result returns the stored summary in its API shape
func (m *Meeting) Result() *SummaryResult {
	res := NewSummaryResult()
	res.Summary = m.Summary
	res.KeyPoints = append(res.KeyPoints, m.KeyPoints...)
	res.ActionItems = append(res.ActionItems, m.ActionItems...)
	return res
}

// NewMeeting builds a history record from a decoded summary
func NewMeeting(result *SummaryResult, transcript, title string, tags []string) *Meeting {
	if tags == nil {
		tags = []string{}
	}
	return &Meeting{
		ID:               uuid.New(),
		Title:            title,
		Summary:          result.Summary,
		KeyPoints:        datatypes.NewJSONSlice(append([]string{}, result.KeyPoints...)),
		ActionItems:      datatypes.NewJSONSlice(append([]ActionItem{}, result.ActionItems...)),
		Tags:             datatypes.NewJSONSlice(tags),
		Owner:            MeetingOwner(result.ActionItems),
		TranscriptSample: TranscriptSample(transcript),
	}
}

// MeetingOwner is the single distinct action item owner, "Multiple" when
// there are several, or DefaultOwner when there are none.
func MeetingOwner(items []ActionItem) string {
	owner := ""
	for _, item := range items {
		if item.Owner == "" {
			continue
		}
		if owner == "" {
			owner = item.Owner
		} else if owner != item.Owner {
			return MultipleOwners
		}
	}
	if owner == "" {
		return DefaultOwner
	}
	return owner
}

// TranscriptSample keeps the first 100 runes of a transcript
func TranscriptSample(transcript string) string {
	runes := []rune(transcript)
	if len(runes) <= transcriptSampleRunes {
		return transcript
	}
	return string(runes[:transcriptSampleRunes])
}
