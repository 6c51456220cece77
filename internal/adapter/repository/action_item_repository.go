package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/domain/repositories"
)

// actionItemRepository implements the ActionItemRepository interface
type actionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository
func NewActionItemRepository(db *gorm.DB) repositories.ActionItemRepository {
	return &actionItemRepository{db: db}
}

// CreateBatch stores a batch of extracted action items
func (r *actionItemRepository) CreateBatch(ctx context.Context, items []*entities.ActionItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(items).Error
}

// FindByID retrieves an action item by ID
func (r *actionItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	var item entities.ActionItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByMeeting retrieves all action items for a meeting, confidence descending
func (r *actionItemRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("confidence DESC, created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByAssigneeEmail retrieves all action items assigned to an email address
func (r *actionItemRepository) ListByAssigneeEmail(ctx context.Context, email string, limit, offset int) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	query := r.db.WithContext(ctx).
		Where("assignee_email = ?", email).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update updates an action item
func (r *actionItemRepository) Update(ctx context.Context, item *entities.ActionItem) error {
	if item == nil {
		return errors.New("action item cannot be nil")
	}
	return r.db.WithContext(ctx).Save(item).Error
}

// UpdateStatus updates the status of an action item
func (r *actionItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	updates := map[string]interface{}{
		"status":    status,
		"completed": status == entities.ActionItemStatusCompleted,
	}
	if status == entities.ActionItemStatusCompleted {
		updates["completed_at"] = gorm.Expr("NOW()")
	} else {
		updates["completed_at"] = nil
	}
	return r.db.WithContext(ctx).
		Model(&entities.ActionItem{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

// MarkJiraSynced records the created issue key and URL
func (r *actionItemRepository) MarkJiraSynced(ctx context.Context, id uuid.UUID, issueKey, issueURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.ActionItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"jira_issue_key": issueKey,
			"jira_issue_url": issueURL,
			"jira_synced_at": gorm.Expr("NOW()"),
		}).
		Error
}

// DeleteByMeeting removes all action items for a meeting (reprocess)
func (r *actionItemRepository) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Delete(&entities.ActionItem{}).
		Error
}
