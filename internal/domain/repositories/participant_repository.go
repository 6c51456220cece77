package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/meetwise/meetwise/internal/domain/entities"
)

// ParticipantRepository defines the interface for roster data access
type ParticipantRepository interface {
	// Create creates a new participant record
	Create(ctx context.Context, participant *entities.MeetingParticipant) error

	// CreateBatch creates several roster entries at once
	CreateBatch(ctx context.Context, participants []*entities.MeetingParticipant) error

	// FindByID retrieves a participant by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingParticipant, error)

	// FindByMeetingAndUser retrieves a participant by meeting and user ID
	FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.MeetingParticipant, error)

	// Update updates an existing participant
	Update(ctx context.Context, participant *entities.MeetingParticipant) error

	// Delete deletes a participant record
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByMeetingID retrieves the full roster of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error)

	// FindActiveByMeetingID retrieves all currently joined participants
	FindActiveByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error)

	// CountActiveByMeetingID counts currently joined participants
	CountActiveByMeetingID(ctx context.Context, meetingID uuid.UUID) (int64, error)

	// IsUserInMeeting checks if a user is currently in a meeting
	IsUserInMeeting(ctx context.Context, meetingID, userID uuid.UUID) (bool, error)

	// FindHostByMeetingID retrieves the host participant of a meeting
	FindHostByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingParticipant, error)

	// UpdateStatus updates participant status
	UpdateStatus(ctx context.Context, participantID uuid.UUID, status entities.ParticipantStatus) error

	// MarkAsJoined marks a participant as joined
	MarkAsJoined(ctx context.Context, participantID uuid.UUID) error

	// MarkAsLeft marks a participant as left
	MarkAsLeft(ctx context.Context, participantID uuid.UUID) error

	// PromoteToHost promotes a participant to host
	PromoteToHost(ctx context.Context, participantID uuid.UUID) error
}
