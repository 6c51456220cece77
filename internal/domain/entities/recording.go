package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RecordingStatus represents the status of a recording
type RecordingStatus string

const (
	RecordingStatusRecording  RecordingStatus = "recording"
	RecordingStatusProcessing RecordingStatus = "processing"
	RecordingStatusCompleted  RecordingStatus = "completed"
	RecordingStatusFailed     RecordingStatus = "failed"
	RecordingStatusDeleted    RecordingStatus = "deleted"
)

// Recording represents a meeting recording produced by the room egress.
type Recording struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID       uuid.UUID       `json:"meeting_id" gorm:"type:uuid;not null;index"`
	StartedBy       *uuid.UUID      `json:"started_by,omitempty" gorm:"type:uuid"`
	EgressID        *string         `json:"egress_id,omitempty" gorm:"type:varchar(255);unique"`
	Status          RecordingStatus `json:"status" gorm:"type:varchar(20);not null;default:'recording';index"`
	FileURL         *string         `json:"file_url,omitempty" gorm:"type:text"`
	FilePath        *string         `json:"file_path,omitempty" gorm:"type:text"`
	FileSize        *int64          `json:"file_size,omitempty"`
	FileFormat      string          `json:"file_format" gorm:"type:varchar(20);default:'mp4'"`
	Duration        *int            `json:"duration,omitempty"`
	StartedAt       time.Time       `json:"started_at" gorm:"not null;default:now()"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	ProcessingError *string         `json:"processing_error,omitempty" gorm:"type:text"`
	Metadata        datatypes.JSON  `json:"metadata,omitempty" gorm:"type:jsonb;default:'{}'"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Recording) TableName() string {
	return "recordings"
}

// NewRecording creates a recording row for a started egress.
func NewRecording(meetingID uuid.UUID, egressID string) *Recording {
	return &Recording{
		ID:        uuid.New(),
		MeetingID: meetingID,
		EgressID:  &egressID,
		Status:    RecordingStatusRecording,
		StartedAt: time.Now(),
	}
}

// IsCompleted checks if recording is completed
func (r *Recording) IsCompleted() bool {
	return r.Status == RecordingStatusCompleted
}

// IsFailed checks if recording failed
func (r *Recording) IsFailed() bool {
	return r.Status == RecordingStatusFailed
}

// MarkAsProcessing marks recording as processing
func (r *Recording) MarkAsProcessing() {
	r.Status = RecordingStatusProcessing
}

// MarkAsCompleted marks recording as completed with its stored file
func (r *Recording) MarkAsCompleted(fileURL string) {
	r.Status = RecordingStatusCompleted
	r.FileURL = &fileURL
	now := time.Now()
	r.CompletedAt = &now
}

// MarkAsFailed marks recording as failed
func (r *Recording) MarkAsFailed(errorMsg string) {
	r.Status = RecordingStatusFailed
	r.ProcessingError = &errorMsg
	now := time.Now()
	r.CompletedAt = &now
}
