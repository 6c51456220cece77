package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/domain/repositories"
)

// summaryRepository implements the SummaryRepository interface
type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) repositories.SummaryRepository {
	return &summaryRepository{db: db}
}

// Create stores a summary
func (r *summaryRepository) Create(ctx context.Context, summary *entities.MeetingSummary) error {
	if summary == nil {
		return errors.New("summary cannot be nil")
	}
	return r.db.WithContext(ctx).Create(summary).Error
}

// Upsert replaces the summary for a meeting if one already exists. Reprocess
// runs land here, so one meeting keeps exactly one summary.
func (r *summaryRepository) Upsert(ctx context.Context, summary *entities.MeetingSummary) error {
	if summary == nil {
		return errors.New("summary cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "meeting_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"transcript_id", "text", "key_points", "assignments",
				"method", "processing_time", "updated_at",
			}),
		}).
		Create(summary).Error
}

// FindByID retrieves a summary by ID
func (r *summaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingSummary, error) {
	var summary entities.MeetingSummary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// FindByMeetingID retrieves the summary for a meeting
func (r *summaryRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingSummary, error) {
	var summary entities.MeetingSummary
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// Delete deletes a summary
func (r *summaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.MeetingSummary{}, id).Error
}
