package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Host").
		Where("id = ?", id).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// FindByRoomName retrieves a meeting by its LiveKit room name
func (r *meetingRepository) FindByRoomName(ctx context.Context, roomName string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Host").
		Where("livekit_room_name = ?", roomName).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// Update updates an existing meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// Delete deletes a meeting
func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Meeting{}, id).Error
}

// List retrieves meetings with filters and pagination
func (r *meetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	var meetings []*entities.Meeting
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Meeting{}).Preload("Host")

	// Apply filters
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.HostID != nil {
		query = query.Where("host_id = ?", *filters.HostID)
	}
	if filters.Search != "" {
		searchPattern := fmt.Sprintf("%%%s%%", filters.Search)
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply sorting
	sortBy := "created_at"
	if filters.SortBy != "" {
		sortBy = filters.SortBy
	}
	sortOrder := "DESC"
	if filters.SortOrder != "" {
		sortOrder = filters.SortOrder
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	// Apply pagination
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	err := query.Find(&meetings).Error
	return meetings, total, err
}

// FindByHostID retrieves all meetings hosted by a user
func (r *meetingRepository) FindByHostID(ctx context.Context, hostID uuid.UUID, limit, offset int) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	query := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&meetings).Error
	return meetings, err
}

// FindLiveMeetings retrieves all currently live meetings
func (r *meetingRepository) FindLiveMeetings(ctx context.Context) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Host").
		Where("status = ?", entities.MeetingStatusLive).
		Order("started_at DESC").
		Find(&meetings).Error
	return meetings, err
}

// IncrementParticipantCount increases the participant count
func (r *meetingRepository) IncrementParticipantCount(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		UpdateColumn("current_participants", gorm.Expr("current_participants + 1")).
		Error
}

// DecrementParticipantCount decreases the participant count
func (r *meetingRepository) DecrementParticipantCount(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND current_participants > 0", meetingID).
		UpdateColumn("current_participants", gorm.Expr("current_participants - 1")).
		Error
}

// UpdateStatus updates the meeting status
func (r *meetingRepository) UpdateStatus(ctx context.Context, meetingID uuid.UUID, status entities.MeetingStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		Update("status", status).
		Error
}

// EndMeeting marks a meeting as ended and calculates duration
func (r *meetingRepository) EndMeeting(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ?", meetingID).
		Updates(map[string]interface{}{
			"status":   entities.MeetingStatusProcessing,
			"ended_at": gorm.Expr("NOW()"),
			"duration": gorm.Expr("EXTRACT(EPOCH FROM NOW() - started_at)::int"),
		}).
		Error
}
