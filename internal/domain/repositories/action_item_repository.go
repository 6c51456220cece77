package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/meetwise/meetwise/internal/domain/entities"
)

// ActionItemRepository defines the interface for action item data access
type ActionItemRepository interface {
	// CreateBatch stores a batch of extracted action items
	CreateBatch(ctx context.Context, items []*entities.ActionItem) error

	// FindByID retrieves an action item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error)

	// ListByMeeting retrieves all action items for a meeting, confidence descending
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)

	// ListByAssigneeEmail retrieves all action items assigned to an email address
	ListByAssigneeEmail(ctx context.Context, email string, limit, offset int) ([]*entities.ActionItem, error)

	// Update updates an action item
	Update(ctx context.Context, item *entities.ActionItem) error

	// UpdateStatus updates the status of an action item
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// MarkJiraSynced records the created issue key and URL
	MarkJiraSynced(ctx context.Context, id uuid.UUID, issueKey, issueURL string) error

	// DeleteByMeeting removes all action items for a meeting (reprocess)
	DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) error
}
