package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/meetwise/meetwise/internal/domain/entities"
)

// TranscriptRepository defines the interface for transcript data access
type TranscriptRepository interface {
	// Create stores a transcript
	Create(ctx context.Context, transcript *entities.Transcript) error

	// FindByID retrieves a transcript by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)

	// FindByMeetingID retrieves the latest transcript for a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error)

	// FindByExternalID retrieves a transcript by the STT provider id
	FindByExternalID(ctx context.Context, externalID string) (*entities.Transcript, error)

	// Update updates a transcript
	Update(ctx context.Context, transcript *entities.Transcript) error

	// Delete deletes a transcript
	Delete(ctx context.Context, id uuid.UUID) error
}
