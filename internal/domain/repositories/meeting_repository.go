package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/meetwise/meetwise/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindByRoomName retrieves a meeting by its LiveKit room name
	FindByRoomName(ctx context.Context, roomName string) (*entities.Meeting, error)

	// Update updates an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// Delete deletes a meeting
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves meetings with filters and pagination
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)

	// FindByHostID retrieves all meetings hosted by a user
	FindByHostID(ctx context.Context, hostID uuid.UUID, limit, offset int) ([]*entities.Meeting, error)

	// FindLiveMeetings retrieves all currently live meetings
	FindLiveMeetings(ctx context.Context) ([]*entities.Meeting, error)

	// IncrementParticipantCount increases the participant count
	IncrementParticipantCount(ctx context.Context, meetingID uuid.UUID) error

	// DecrementParticipantCount decreases the participant count
	DecrementParticipantCount(ctx context.Context, meetingID uuid.UUID) error

	// UpdateStatus updates the meeting status
	UpdateStatus(ctx context.Context, meetingID uuid.UUID, status entities.MeetingStatus) error

	// EndMeeting marks a meeting as ended and calculates duration
	EndMeeting(ctx context.Context, meetingID uuid.UUID) error
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	Type      *entities.MeetingType
	Status    *entities.MeetingStatus
	HostID    *uuid.UUID
	Search    string // Search in title, description
	Limit     int
	Offset    int
	SortBy    string // "created_at", "started_at", "title"
	SortOrder string // "asc", "desc"
}
