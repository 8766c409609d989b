package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/johnquangdev/meetmind/internal/domain/entities"
)

// ErrMeetingNotFound is returned when no meeting matches the lookup
var ErrMeetingNotFound = errors.New("meeting not found")

// MeetingFilter narrows a history listing
type MeetingFilter struct {
	OwnerID *uuid.UUID
	Limit   int
	Offset  int
}

// MeetingRepository defines the interface for meeting history data access
type MeetingRepository interface {
	// Create stores a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// GetByID finds a meeting by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// List returns meetings newest first, plus the total matching the filter
	List(ctx context.Context, filter MeetingFilter) ([]*entities.Meeting, int64, error)

	// Delete removes a meeting; deleting a missing ID is ErrMeetingNotFound
	Delete(ctx context.Context, id uuid.UUID) error
}
