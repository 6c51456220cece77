package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/meetwise/meetwise/internal/domain/entities"
)

// SummaryRepository defines the interface for meeting summary data access
type SummaryRepository interface {
	// Create stores a summary
	Create(ctx context.Context, summary *entities.MeetingSummary) error

	// Upsert replaces the summary for a meeting if one already exists
	Upsert(ctx context.Context, summary *entities.MeetingSummary) error

	// FindByID retrieves a summary by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingSummary, error)

	// FindByMeetingID retrieves the summary for a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingSummary, error)

	// Delete deletes a summary
	Delete(ctx context.Context, id uuid.UUID) error
}
