package processing

import (
	"context"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/pkg/jobcontext"
)

// Start launches the worker pool: N transcription workers polling for
// claimable jobs plus one ticker re-queueing stuck jobs.
func (s *processingService) Start(ctx context.Context) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if s.running {
		return fmt.Errorf("worker pool already running")
	}
	s.running = true
	s.stopChan = make(chan struct{})

	workerCount := s.cfg.Worker.Count
	if workerCount <= 0 {
		workerCount = 1
	}

	s.logger.Info("🚀 Starting processing worker pool",
		zap.Int("worker_count", workerCount),
		zap.Duration("poll_interval", s.cfg.Worker.PollInterval))

	for i := 0; i < workerCount; i++ {
		s.workerWg.Add(1)
		go s.transcriptionWorker(ctx, i)
	}

	s.workerWg.Add(1)
	go s.stuckJobWorker(ctx)

	return nil
}

// Stop gracefully stops all worker goroutines
func (s *processingService) Stop() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return fmt.Errorf("worker pool not running")
	}

	s.logger.Info("🛑 Stopping processing worker pool...")
	close(s.stopChan)
	s.workerWg.Wait()
	s.running = false
	s.logger.Info("✅ Processing worker pool stopped")

	return nil
}

// EnqueueTranscription creates a pending transcription job for a meeting
func (s *processingService) EnqueueTranscription(ctx context.Context, meetingID uuid.UUID, audioURL string) (*entities.ProcessingJob, error) {
	job := entities.NewProcessingJob(meetingID, entities.JobTypeTranscription, audioURL)
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to enqueue transcription job: %w", err)
	}

	s.logger.Info("📋 Transcription job enqueued",
		zap.String("job_id", job.ID.String()),
		zap.String("meeting_id", meetingID.String()))

	return job, nil
}

// transcriptionWorker polls for claimable transcription jobs and submits them
func (s *processingService) transcriptionWorker(parentCtx context.Context, workerID int) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(s.pollInterval())
	defer ticker.Stop()

	s.logger.Info("👷 Transcription worker started", zap.Int("worker_id", workerID))

	for {
		select {
		case <-s.stopChan:
			s.logger.Info("👷 Transcription worker stopping", zap.Int("worker_id", workerID))
			return

		case <-ticker.C:
			job, err := s.jobRepo.ClaimPending(parentCtx, entities.JobTypeTranscription)
			if err != nil {
				s.logger.Error("❌ Failed to claim job",
					zap.Int("worker_id", workerID),
					zap.Error(err))
				continue
			}
			if job == nil {
				continue
			}

			s.logger.Info("👷 Worker claimed job",
				zap.Int("worker_id", workerID),
				zap.String("job_id", job.ID.String()),
				zap.String("meeting_id", job.MeetingID.String()),
				zap.Int("retry_count", job.RetryCount))

			jobCtx, cancel := jobcontext.Begin(parentCtx, job.ID, string(job.JobType), workerID)
			if err := s.SubmitTranscription(jobCtx, job); err != nil {
				s.logger.Error("❌ Failed to submit transcription",
					zap.String("job_id", job.ID.String()),
					zap.Duration("elapsed", jobcontext.Elapsed(jobCtx)),
					zap.Error(err))
			}
			cancel()
		}
	}
}

// SubmitTranscription submits a claimed job to the speech-to-text API with
// exponential backoff. The transcript id is stored on the job before the
// webhook can arrive.
func (s *processingService) SubmitTranscription(ctx context.Context, job *entities.ProcessingJob) error {
	if s.sttClient == nil {
		return fmt.Errorf("speech-to-text client not configured")
	}

	audioURL := strings.TrimSpace(job.AudioURL)
	if audioURL == "" {
		s.markJobFailed(ctx, job, "audio URL is empty")
		return fmt.Errorf("audio URL is required")
	}

	webhookURL := strings.TrimRight(s.cfg.Server.PublicURL, "/") + "/v1/webhooks/transcripts"

	var transcriptID string
	submitFn := func() error {
		id, err := s.sttClient.TranscribeAudio(ctx, audioURL, webhookURL,
			"X-Webhook-Secret", s.cfg.AssemblyAI.WebhookSecret)
		if err != nil {
			return err
		}
		transcriptID = id
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		s.markJobFailed(ctx, job, fmt.Sprintf("failed to submit transcription: %v", err))
		return err
	}

	// Store the transcript id before the webhook can race us
	job.MarkAsSubmitted(transcriptID)
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return fmt.Errorf("failed to record transcript id: %w", err)
	}

	s.logger.Info("✅ Transcription submitted",
		zap.String("job_id", job.ID.String()),
		zap.String("transcript_id", transcriptID))

	return nil
}

// stuckJobWorker re-queues jobs that stayed submitted or processing past the
// configured threshold.
func (s *processingService) stuckJobWorker(parentCtx context.Context) {
	defer s.workerWg.Done()

	ticker := time.NewTicker(2 * time.Minute)
	defer ticker.Stop()

	s.logger.Info("👷 Stuck job worker started",
		zap.Duration("threshold", s.cfg.Worker.StuckThreshold))

	for {
		select {
		case <-s.stopChan:
			s.logger.Info("👷 Stuck job worker stopping")
			return

		case <-ticker.C:
			jobs, err := s.jobRepo.FindStuck(parentCtx, s.cfg.Worker.StuckThreshold)
			if err != nil {
				s.logger.Error("❌ Failed to query stuck jobs", zap.Error(err))
				continue
			}
			for _, job := range jobs {
				s.requeueStuckJob(parentCtx, job)
			}
		}
	}
}

func (s *processingService) requeueStuckJob(ctx context.Context, job *entities.ProcessingJob) {
	s.logger.Warn("🧹 Re-queueing stuck job",
		zap.String("job_id", job.ID.String()),
		zap.String("status", string(job.Status)),
		zap.Duration("stuck_for", time.Since(job.UpdatedAt)))

	if job.RetryCount >= job.MaxRetries {
		job.MarkAsFailed("stuck past threshold with no retries left")
		if err := s.jobRepo.Update(ctx, job); err != nil {
			s.logger.Error("❌ Failed to fail stuck job", zap.Error(err))
		}
		return
	}

	job.IncrementRetry("stuck past threshold, re-queued")
	if err := s.jobRepo.Update(ctx, job); err != nil {
		s.logger.Error("❌ Failed to re-queue stuck job", zap.Error(err))
	}
}

// markJobFailed records the failure and downgrades to retrying while the
// retry budget lasts.
func (s *processingService) markJobFailed(ctx context.Context, job *entities.ProcessingJob, errMsg string) {
	if job.RetryCount < job.MaxRetries {
		job.IncrementRetry(errMsg)
	} else {
		job.MarkAsFailed(errMsg)
		s.markMeetingFailed(ctx, job.MeetingID)
	}
	if err := s.jobRepo.Update(ctx, job); err != nil {
		s.logger.Error("❌ Failed to update job after failure",
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
	}
}

func (s *processingService) markMeetingFailed(ctx context.Context, meetingID uuid.UUID) {
	if err := s.meetingRepo.UpdateStatus(ctx, meetingID, entities.MeetingStatusFailed); err != nil {
		s.logger.Error("❌ Failed to mark meeting failed",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err))
	}
}

func (s *processingService) pollInterval() time.Duration {
	if s.cfg.Worker.PollInterval > 0 {
		return s.cfg.Worker.PollInterval
	}
	return 5 * time.Second
}
