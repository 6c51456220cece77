package meeting

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/domain/repositories"
	"github.com/meetwise/meetwise/internal/usecase/extraction"
)

// Service defines the interface for meeting use case
type Service interface {
	// CreateMeeting creates a new meeting (instant, scheduled or upload)
	CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error)

	// GetMeeting retrieves a meeting by ID
	GetMeeting(ctx context.Context, meetingID uuid.UUID) (*entities.Meeting, error)

	// ListMeetings retrieves meetings with filters
	ListMeetings(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error)

	// JoinMeeting allows a user to join a live or scheduled meeting
	JoinMeeting(ctx context.Context, input JoinMeetingInput) (*entities.Meeting, *entities.MeetingParticipant, error)

	// LeaveMeeting allows a user to leave a meeting; the last leave auto-ends it
	LeaveMeeting(ctx context.Context, meetingID, userID uuid.UUID) error

	// EndMeeting ends a meeting (host only)
	EndMeeting(ctx context.Context, meetingID, userID uuid.UUID) error

	// AddParticipants adds roster entries (name + email) to a meeting
	AddParticipants(ctx context.Context, meetingID, hostID uuid.UUID, entries []RosterEntry) ([]*entities.MeetingParticipant, error)

	// GetParticipants retrieves the full roster of a meeting
	GetParticipants(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error)

	// GenerateRoomToken generates a LiveKit access token for a roster member
	GenerateRoomToken(ctx context.Context, meetingID, userID uuid.UUID) (string, error)

	// GetLivekitURL returns the LiveKit server URL
	GetLivekitURL() string

	// GetMeetingByRoomName retrieves a meeting by LiveKit room name (for webhooks)
	GetMeetingByRoomName(ctx context.Context, roomName string) (*entities.Meeting, error)

	// AttachUpload registers uploaded audio and enqueues a transcription job
	AttachUpload(ctx context.Context, input AttachUploadInput) (*entities.ProcessingJob, error)

	// ListLiveParticipants lists the identities currently connected to the
	// LiveKit room (participants only, no egress workers)
	ListLiveParticipants(ctx context.Context, meetingID, userID uuid.UUID) ([]LiveParticipant, error)

	// KickParticipant removes a connected participant from the room (host only)
	KickParticipant(ctx context.Context, meetingID, hostID uuid.UUID, identity string) error

	// Roster builds the extraction roster for a meeting
	Roster(ctx context.Context, meetingID uuid.UUID) ([]extraction.Participant, error)
}

// Ensure meetingService implements Service interface
var _ Service = (*meetingService)(nil)
