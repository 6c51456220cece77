// Package jobcontext scopes worker job executions: every claimed job runs
// under a derived context carrying its metadata and a hard timeout, so a
// hung speech-to-text submission cannot stall a worker forever.
package jobcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const metadataKey contextKey = "job_metadata"

// DefaultTimeout bounds a single job execution
const DefaultTimeout = 5 * time.Minute

// Metadata identifies a job execution
type Metadata struct {
	JobID     uuid.UUID
	JobType   string
	WorkerID  int
	StartedAt time.Time
}

// Begin derives a job-scoped context with metadata and the default timeout.
// The returned cancel must be called when the job finishes.
func Begin(parent context.Context, jobID uuid.UUID, jobType string, workerID int) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, DefaultTimeout)
	ctx = context.WithValue(ctx, metadataKey, Metadata{
		JobID:     jobID,
		JobType:   jobType,
		WorkerID:  workerID,
		StartedAt: time.Now(),
	})
	return ctx, cancel
}

// FromContext returns the job metadata, if the context came from Begin
func FromContext(ctx context.Context) (Metadata, bool) {
	md, ok := ctx.Value(metadataKey).(Metadata)
	return md, ok
}

// Elapsed reports how long the job has been running
func Elapsed(ctx context.Context) time.Duration {
	md, ok := FromContext(ctx)
	if !ok {
		return 0
	}
	return time.Since(md.StartedAt)
}
