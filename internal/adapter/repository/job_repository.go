package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/domain/repositories"
)

// jobRepository implements the JobRepository interface
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new processing job repository
func NewJobRepository(db *gorm.DB) repositories.JobRepository {
	return &jobRepository{db: db}
}

// Create enqueues a job
func (r *jobRepository) Create(ctx context.Context, job *entities.ProcessingJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID retrieves a job by ID
func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ProcessingJob, error) {
	var job entities.ProcessingJob
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// FindByExternalID retrieves a job by the STT provider transcript id
func (r *jobRepository) FindByExternalID(ctx context.Context, externalID string) (*entities.ProcessingJob, error) {
	var job entities.ProcessingJob
	if err := r.db.WithContext(ctx).Where("external_job_id = ?", externalID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// FindByMeetingID retrieves all jobs for a meeting
func (r *jobRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.ProcessingJob, error) {
	var jobs []*entities.ProcessingJob
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ClaimPending atomically claims the oldest pending or retrying job of the
// given type. The guarded UPDATE keeps two workers from claiming the same
// row: the loser sees RowsAffected == 0 and moves on.
func (r *jobRepository) ClaimPending(ctx context.Context, jobType entities.JobType) (*entities.ProcessingJob, error) {
	var job entities.ProcessingJob
	err := r.db.WithContext(ctx).
		Where("job_type = ? AND status IN ?", jobType,
			[]entities.JobStatus{entities.JobStatusPending, entities.JobStatusRetrying}).
		Order("created_at ASC").
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Model(&entities.ProcessingJob{}).
		Where("id = ? AND status IN ?", job.ID,
			[]entities.JobStatus{entities.JobStatusPending, entities.JobStatusRetrying}).
		Updates(map[string]interface{}{
			"status":     entities.JobStatusProcessing,
			"started_at": time.Now(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Another worker claimed it first.
		return nil, nil
	}

	job.MarkAsProcessing()
	return &job, nil
}

// FindStuck retrieves jobs submitted or processing for longer than the threshold
func (r *jobRepository) FindStuck(ctx context.Context, threshold time.Duration) ([]*entities.ProcessingJob, error) {
	var jobs []*entities.ProcessingJob
	cutoff := time.Now().Add(-threshold)
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND updated_at < ?",
			[]entities.JobStatus{entities.JobStatusSubmitted, entities.JobStatusProcessing}, cutoff).
		Order("updated_at ASC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Update updates a job
func (r *jobRepository) Update(ctx context.Context, job *entities.ProcessingJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).Save(job).Error
}
