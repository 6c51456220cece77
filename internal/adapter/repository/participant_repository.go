package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/domain/repositories"
)

// participantRepository implements the ParticipantRepository interface
type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) repositories.ParticipantRepository {
	return &participantRepository{db: db}
}

// Create creates a new participant record
func (r *participantRepository) Create(ctx context.Context, participant *entities.MeetingParticipant) error {
	return r.db.WithContext(ctx).Create(participant).Error
}

// CreateBatch creates several roster entries at once
func (r *participantRepository) CreateBatch(ctx context.Context, participants []*entities.MeetingParticipant) error {
	if len(participants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(participants).Error
}

// FindByID retrieves a participant by ID
func (r *participantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingParticipant, error) {
	var participant entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Meeting").
		Where("id = ?", id).
		First(&participant).Error

	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByMeetingAndUser retrieves a participant by meeting and user ID
func (r *participantRepository) FindByMeetingAndUser(ctx context.Context, meetingID, userID uuid.UUID) (*entities.MeetingParticipant, error) {
	var participant entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Meeting").
		Where("meeting_id = ? AND user_id = ?", meetingID, userID).
		First(&participant).Error

	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// Update updates an existing participant
func (r *participantRepository) Update(ctx context.Context, participant *entities.MeetingParticipant) error {
	return r.db.WithContext(ctx).Save(participant).Error
}

// Delete deletes a participant record
func (r *participantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.MeetingParticipant{}, id).Error
}

// FindByMeetingID retrieves the full roster of a meeting
func (r *participantRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	var participants []*entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&participants).Error
	return participants, err
}

// FindActiveByMeetingID retrieves all currently joined participants
func (r *participantRepository) FindActiveByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	var participants []*entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("meeting_id = ? AND status = ? AND left_at IS NULL", meetingID, entities.ParticipantStatusJoined).
		Order("joined_at ASC").
		Find(&participants).Error
	return participants, err
}

// CountActiveByMeetingID counts currently joined participants
func (r *participantRepository) CountActiveByMeetingID(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.MeetingParticipant{}).
		Where("meeting_id = ? AND status = ? AND left_at IS NULL", meetingID, entities.ParticipantStatusJoined).
		Count(&count).Error
	return count, err
}

// IsUserInMeeting checks if a user is currently in a meeting
func (r *participantRepository) IsUserInMeeting(ctx context.Context, meetingID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.MeetingParticipant{}).
		Where("meeting_id = ? AND user_id = ? AND status = ? AND left_at IS NULL", meetingID, userID, entities.ParticipantStatusJoined).
		Count(&count).Error
	return count > 0, err
}

// FindHostByMeetingID retrieves the host participant of a meeting
func (r *participantRepository) FindHostByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingParticipant, error) {
	var participant entities.MeetingParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("meeting_id = ? AND role = ?", meetingID, entities.ParticipantRoleHost).
		First(&participant).Error

	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// UpdateStatus updates participant status
func (r *participantRepository) UpdateStatus(ctx context.Context, participantID uuid.UUID, status entities.ParticipantStatus) error {
	return r.db.WithContext(ctx).
		Model(&entities.MeetingParticipant{}).
		Where("id = ?", participantID).
		Update("status", status).
		Error
}

// MarkAsJoined marks a participant as joined
func (r *participantRepository) MarkAsJoined(ctx context.Context, participantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.MeetingParticipant{}).
		Where("id = ?", participantID).
		Updates(map[string]interface{}{
			"status":    entities.ParticipantStatusJoined,
			"joined_at": gorm.Expr("NOW()"),
			"left_at":   nil,
		}).
		Error
}

// MarkAsLeft marks a participant as left
func (r *participantRepository) MarkAsLeft(ctx context.Context, participantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.MeetingParticipant{}).
		Where("id = ?", participantID).
		Updates(map[string]interface{}{
			"status":  entities.ParticipantStatusLeft,
			"left_at": gorm.Expr("NOW()"),
		}).
		Error
}

// PromoteToHost promotes a participant to host
func (r *participantRepository) PromoteToHost(ctx context.Context, participantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.MeetingParticipant{}).
		Where("id = ?", participantID).
		Updates(map[string]interface{}{
			"role":            entities.ParticipantRoleHost,
			"can_record":      true,
			"can_mute_others": true,
		}).
		Error
}
