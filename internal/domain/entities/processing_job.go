package entities

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the status of a processing job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"    // Waiting to be picked up by a worker
	JobStatusSubmitted  JobStatus = "submitted"  // Submitted to the STT provider, waiting for the webhook
	JobStatusProcessing JobStatus = "processing" // Summary + extraction running
	JobStatusCompleted  JobStatus = "completed"  // All processing done
	JobStatusFailed     JobStatus = "failed"     // Processing failed
	JobStatusRetrying   JobStatus = "retrying"   // Retrying after failure
	JobStatusCancelled  JobStatus = "cancelled"  // Job was cancelled
)

// JobType represents the type of processing job
type JobType string

const (
	JobTypeTranscription JobType = "transcription" // Speech to text
	JobTypeAnalysis      JobType = "analysis"      // Summary + action item extraction
	JobTypeNotification  JobType = "notification"  // Assignee email digests
)

// ProcessingJob is one unit of queued pipeline work for a meeting.
type ProcessingJob struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID     uuid.UUID  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	JobType       JobType    `json:"job_type" gorm:"type:varchar(50);not null;index"`
	Status        JobStatus  `json:"status" gorm:"type:varchar(50);not null;index;default:'pending'"`
	ExternalJobID *string    `json:"external_job_id,omitempty" gorm:"type:varchar(255);index"` // STT transcript id (nullable)
	AudioURL      string     `json:"audio_url" gorm:"type:text;not null"`
	TranscriptID  *uuid.UUID `json:"transcript_id,omitempty" gorm:"type:uuid;index"`

	// Processing details
	StartedAt   *time.Time `json:"started_at,omitempty" gorm:"type:timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`
	RetryCount  int        `json:"retry_count" gorm:"type:integer;default:0"`
	MaxRetries  int        `json:"max_retries" gorm:"type:integer;default:3"`
	LastError   *string    `json:"last_error,omitempty" gorm:"type:text"`

	// Metadata
	Metadata JobMetadata `json:"metadata,omitempty" gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// JobMetadata stores additional metadata for processing jobs
type JobMetadata struct {
	DurationSeconds  int                    `json:"duration_seconds,omitempty"`
	Language         string                 `json:"language,omitempty"`
	SpeakerCount     int                    `json:"speaker_count,omitempty"`
	ProcessingTimeMs int64                  `json:"processing_time_ms,omitempty"`
	ErrorDetails     map[string]interface{} `json:"error_details,omitempty"`
	WebhookAttempts  int                    `json:"webhook_attempts,omitempty"`
}

// Scan implements sql.Scanner interface for GORM
func (m *JobMetadata) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &m)
}

// Value implements driver.Valuer interface for GORM
func (m JobMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// NewProcessingJob creates a new pending job
func NewProcessingJob(meetingID uuid.UUID, jobType JobType, audioURL string) *ProcessingJob {
	return &ProcessingJob{
		ID:         uuid.New(),
		MeetingID:  meetingID,
		JobType:    jobType,
		Status:     JobStatusPending,
		AudioURL:   audioURL,
		RetryCount: 0,
		MaxRetries: 3,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// IsRetryable checks if job can be retried
func (j *ProcessingJob) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries && j.Status == JobStatusFailed
}

// CanBeSubmitted checks if job is ready to be submitted
func (j *ProcessingJob) CanBeSubmitted() bool {
	return j.Status == JobStatusPending || (j.Status == JobStatusFailed && j.IsRetryable())
}

// MarkAsSubmitted marks job as submitted to the external service
func (j *ProcessingJob) MarkAsSubmitted(externalJobID string) {
	j.Status = JobStatusSubmitted
	j.ExternalJobID = &externalJobID
	now := time.Now()
	j.StartedAt = &now
	j.UpdatedAt = now
}

// MarkAsProcessing marks job as being processed
func (j *ProcessingJob) MarkAsProcessing() {
	j.Status = JobStatusProcessing
	j.UpdatedAt = time.Now()
}

// MarkAsCompleted marks job as completed successfully
func (j *ProcessingJob) MarkAsCompleted(transcriptID *uuid.UUID) {
	j.Status = JobStatusCompleted
	j.TranscriptID = transcriptID
	now := time.Now()
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsFailed marks job as failed with error message
func (j *ProcessingJob) MarkAsFailed(errMsg string) {
	j.Status = JobStatusFailed
	j.LastError = &errMsg
	j.UpdatedAt = time.Now()
}

// IncrementRetry increments retry count and marks for retry
func (j *ProcessingJob) IncrementRetry(errMsg string) {
	j.RetryCount++
	j.Status = JobStatusRetrying
	j.LastError = &errMsg
	j.UpdatedAt = time.Now()
}

// MarkAsCancelled marks job as cancelled
func (j *ProcessingJob) MarkAsCancelled() {
	j.Status = JobStatusCancelled
	now := time.Now()
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// TableName specifies the table name for GORM
func (ProcessingJob) TableName() string {
	return "processing_jobs"
}
