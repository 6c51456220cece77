package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/meetwise/meetwise/internal/domain/entities"
)

// JobRepository defines the interface for processing job data access
type JobRepository interface {
	// Create enqueues a job
	Create(ctx context.Context, job *entities.ProcessingJob) error

	// FindByID retrieves a job by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ProcessingJob, error)

	// FindByExternalID retrieves a job by the STT provider transcript id
	FindByExternalID(ctx context.Context, externalID string) (*entities.ProcessingJob, error)

	// FindByMeetingID retrieves all jobs for a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.ProcessingJob, error)

	// ClaimPending atomically claims one pending or retrying job of the given
	// type. Returns nil when nothing is claimable.
	ClaimPending(ctx context.Context, jobType entities.JobType) (*entities.ProcessingJob, error)

	// FindStuck retrieves jobs submitted or processing for longer than the
	// threshold, for re-queueing.
	FindStuck(ctx context.Context, threshold time.Duration) ([]*entities.ProcessingJob, error)

	// Update updates a job
	Update(ctx context.Context, job *entities.ProcessingJob) error
}
