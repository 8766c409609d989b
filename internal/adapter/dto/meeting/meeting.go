package meeting

import (
	"time"

	"github.com/johnquangdev/meetmind/internal/adapter/dto/common"
	"github.com/johnquangdev/meetmind/internal/adapter/dto/summary"
)

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Page     int `query:"page" validate:"min=1"`
	PageSize int `query:"page_size" validate:"min=1,max=100"`
}

// MeetingResponse represents a stored meeting
type MeetingResponse struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Date             time.Time            `json:"date"`
	Summary          string               `json:"summary"`
	KeyPoints        []string             `json:"key_points"`
	ActionItems      []summary.ActionItem `json:"action_items"`
	Tags             []string             `json:"tags"`
	Owner            string               `json:"owner"`
	TranscriptSample string               `json:"transcript_sample"`
	ModelUsed        string               `json:"model_used"`
	DecodeStage      string               `json:"decode_stage"`
}

// ListMeetingsResponse represents a page of meetings
type ListMeetingsResponse struct {
	Meetings   []*MeetingResponse         `json:"meetings"`
	Pagination *common.PaginationResponse `json:"pagination"`
}
