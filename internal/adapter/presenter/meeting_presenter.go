package presenter

import (
	"github.com/johnquangdev/meetmind/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetmind/internal/adapter/dto/summary"
	"github.com/johnquangdev/meetmind/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	res := summary.FromResult(m.Result())

	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}

	return &meeting.MeetingResponse{
		ID:               m.ID.String(),
		Title:            m.Title,
		Date:             m.CreatedAt,
		Summary:          res.Summary,
		KeyPoints:        res.KeyPoints,
		ActionItems:      res.ActionItems,
		Tags:             tags,
		Owner:            m.Owner,
		TranscriptSample: m.TranscriptSample,
		ModelUsed:        m.ModelUsed,
		DecodeStage:      m.DecodeStage,
	}
}

// ToMeetingResponses converts a list of meetings
func ToMeetingResponses(meetings []*entities.Meeting) []*meeting.MeetingResponse {
	out := make([]*meeting.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, ToMeetingResponse(m))
	}
	return out
}
