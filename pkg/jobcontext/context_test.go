package jobcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBeginCarriesMetadata(t *testing.T) {
	jobID := uuid.New()
	ctx, cancel := Begin(context.Background(), jobID, "transcription", 3)
	defer cancel()

	md, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, jobID, md.JobID)
	assert.Equal(t, "transcription", md.JobType)
	assert.Equal(t, 3, md.WorkerID)
	assert.False(t, md.StartedAt.IsZero())

	deadline, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(DefaultTimeout), deadline, time.Second)
}

func TestFromContextMissing(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Zero(t, Elapsed(context.Background()))
}

func TestCancelStopsJobContext(t *testing.T) {
	ctx, cancel := Begin(context.Background(), uuid.New(), "transcription", 0)
	cancel()

	select {
	case <-ctx.Done():
	default:
		t.Fatal("expected context to be done after cancel")
	}
}
