package entities

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingType represents how the meeting entered the system
type MeetingType string

const (
	MeetingTypeInstant   MeetingType = "instant"
	MeetingTypeScheduled MeetingType = "scheduled"
	MeetingTypeUpload    MeetingType = "upload" // audio uploaded for offline processing
)

// MeetingStatus represents the current status of a meeting
type MeetingStatus string

const (
	MeetingStatusScheduled  MeetingStatus = "scheduled"
	MeetingStatusLive       MeetingStatus = "live"
	MeetingStatusProcessing MeetingStatus = "processing"
	MeetingStatusCompleted  MeetingStatus = "completed"
	MeetingStatusFailed     MeetingStatus = "failed"
)

// Meeting is the central record: a live room, a scheduled session or an
// uploaded recording all flow through the same entity and pipeline.
type Meeting struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title               string         `gorm:"type:varchar(255);not null" json:"title"`
	Description         *string        `gorm:"type:text" json:"description,omitempty"`
	HostID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"host_id"`
	Host                *User          `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Type                MeetingType    `gorm:"type:varchar(20);not null;default:'instant';index" json:"type"`
	Status              MeetingStatus  `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	LivekitRoomName     string         `gorm:"type:varchar(255);unique;not null" json:"livekit_room_name"`
	LivekitRoomID       *string        `gorm:"type:varchar(255)" json:"livekit_room_id,omitempty"`
	MaxParticipants     int            `gorm:"default:10;check:max_participants >= 2 AND max_participants <= 100" json:"max_participants"`
	CurrentParticipants int            `gorm:"default:0" json:"current_participants"`
	AudioObjectKey      *string        `gorm:"type:varchar(500)" json:"audio_object_key,omitempty"`
	AudioURL            *string        `gorm:"type:text" json:"audio_url,omitempty"`
	Settings            datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"settings"`
	ScheduledStartTime  *time.Time     `gorm:"index" json:"scheduled_start_time,omitempty"`
	ScheduledEndTime    *time.Time     `json:"scheduled_end_time,omitempty"`
	StartedAt           *time.Time     `json:"started_at,omitempty"`
	EndedAt             *time.Time     `json:"ended_at,omitempty"`
	Duration            *int           `json:"duration,omitempty"` // seconds
	Tags                datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags,omitempty"`
	Metadata            datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	CreatedAt           time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a meeting with a fresh LiveKit room name.
func NewMeeting(title string, hostID uuid.UUID, meetingType MeetingType) *Meeting {
	return &Meeting{
		ID:              uuid.New(),
		Title:           title,
		HostID:          hostID,
		Type:            meetingType,
		Status:          MeetingStatusScheduled,
		LivekitRoomName: GenerateRoomName(),
		MaxParticipants: 10,
	}
}

// GenerateRoomName returns a unique LiveKit room name of the form mw-<hex>.
func GenerateRoomName() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("mw-%s", uuid.New().String()[:12])
	}
	return fmt.Sprintf("mw-%s", hex.EncodeToString(b))
}

// DefaultSettings returns default meeting settings
func DefaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"enable_recording":     true,
		"enable_chat":          true,
		"enable_screen_share":  true,
		"require_approval":     false,
		"mute_on_join":         false,
		"auto_record":          false,
		"enable_transcription": true,
	}
}

// IsLive checks if the meeting is currently live
func (m *Meeting) IsLive() bool {
	return m.Status == MeetingStatusLive
}

// IsCompleted checks if the meeting pipeline has finished
func (m *Meeting) IsCompleted() bool {
	return m.Status == MeetingStatusCompleted
}

// IsFull checks if the meeting has reached max capacity
func (m *Meeting) IsFull() bool {
	return m.CurrentParticipants >= m.MaxParticipants
}

// CanJoin checks if a user can join this meeting
func (m *Meeting) CanJoin() bool {
	return m.IsLive() && !m.IsFull()
}

// Start marks the meeting as live
func (m *Meeting) Start() {
	now := time.Now()
	m.Status = MeetingStatusLive
	m.StartedAt = &now
}

// End marks the meeting as ended and calculates duration. The status moves
// to processing; the pipeline promotes it to completed.
func (m *Meeting) End() {
	now := time.Now()
	m.Status = MeetingStatusProcessing
	m.EndedAt = &now

	if m.StartedAt != nil {
		duration := int(now.Sub(*m.StartedAt).Seconds())
		m.Duration = &duration
	}
}

// MarkProcessing marks the meeting as being processed by the pipeline
func (m *Meeting) MarkProcessing() {
	m.Status = MeetingStatusProcessing
}

// MarkCompleted marks the pipeline as finished for this meeting
func (m *Meeting) MarkCompleted() {
	m.Status = MeetingStatusCompleted
}

// MarkFailed marks the pipeline as failed for this meeting
func (m *Meeting) MarkFailed() {
	m.Status = MeetingStatusFailed
}

// IncrementParticipants increases the participant count
func (m *Meeting) IncrementParticipants() {
	m.CurrentParticipants++
}

// DecrementParticipants decreases the participant count
func (m *Meeting) DecrementParticipants() {
	if m.CurrentParticipants > 0 {
		m.CurrentParticipants--
	}
}
