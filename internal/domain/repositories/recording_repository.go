package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/meetwise/meetwise/internal/domain/entities"
)

// RecordingRepository defines the interface for recording data access
type RecordingRepository interface {
	// Create stores a recording
	Create(ctx context.Context, recording *entities.Recording) error

	// FindByID retrieves a recording by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Recording, error)

	// FindByEgressID retrieves a recording by its egress id
	FindByEgressID(ctx context.Context, egressID string) (*entities.Recording, error)

	// FindByMeetingID retrieves all recordings for a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Recording, error)

	// Update updates a recording
	Update(ctx context.Context, recording *entities.Recording) error

	// Delete soft deletes a recording (status=deleted)
	Delete(ctx context.Context, id uuid.UUID) error
}
