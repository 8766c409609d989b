package meeting

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/johnquangdev/meetmind/errors"
	"github.com/johnquangdev/meetmind/internal/domain/entities"
	"github.com/johnquangdev/meetmind/internal/domain/repositories"
)

// Page is one page of a history listing
type Page struct {
	Meetings []*entities.Meeting
	Total    int64
	Page     int
	PageSize int
}

// Service defines meeting history methods. A non-nil viewer restricts
// every call to that user's meetings.
type Service interface {
	List(ctx context.Context, viewer *uuid.UUID, page, pageSize int) (*Page, error)
	Get(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*entities.Meeting, error)
	Delete(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) error
}

type meetingService struct {
	repo repositories.MeetingRepository
}

// NewService constructs the meeting history service
func NewService(repo repositories.MeetingRepository) Service {
	return &meetingService{repo: repo}
}

// List returns meetings newest first
func (s *meetingService) List(ctx context.Context, viewer *uuid.UUID, page, pageSize int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	meetings, total, err := s.repo.List(ctx, repositories.MeetingFilter{
		OwnerID: viewer,
		Limit:   pageSize,
		Offset:  (page - 1) * pageSize,
	})
	if err != nil {
		return nil, errors.ErrDBQueryFailed("list meetings", err)
	}

	return &Page{Meetings: meetings, Total: total, Page: page, PageSize: pageSize}, nil
}

// Get returns one meeting
func (s *meetingService) Get(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) (*entities.Meeting, error) {
	m, err := s.repo.GetByID(ctx, id)
	if stderrors.Is(err, repositories.ErrMeetingNotFound) {
		return nil, errors.ErrMeetingNotFound(id.String())
	}
	if err != nil {
		return nil, errors.ErrDBQueryFailed("get meeting", err)
	}
	if !visible(m, viewer) {
		return nil, errors.ErrMeetingNotFound(id.String())
	}
	return m, nil
}

// Delete removes a meeting the viewer can see
func (s *meetingService) Delete(ctx context.Context, viewer *uuid.UUID, id uuid.UUID) error {
	if _, err := s.Get(ctx, viewer, id); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	if stderrors.Is(err, repositories.ErrMeetingNotFound) {
		return errors.ErrMeetingNotFound(id.String())
	}
	if err != nil {
		return errors.ErrDBQueryFailed("delete meeting", err)
	}
	return nil
}

// Other users' meetings are reported as missing rather than forbidden
func visible(m *entities.Meeting, viewer *uuid.UUID) bool {
	if viewer == nil {
		return true
	}
	return m.OwnerID != nil && *m.OwnerID == *viewer
}
