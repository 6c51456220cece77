package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SummaryMethod records how a summary was produced.
type SummaryMethod string

const (
	SummaryMethodRule  SummaryMethod = "rule"
	SummaryMethodModel SummaryMethod = "model"
)

// MeetingSummary is the stored structured summary of one meeting.
type MeetingSummary struct {
	ID             uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID      uuid.UUID      `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex"`
	TranscriptID   uuid.UUID      `json:"transcript_id" gorm:"type:uuid;index"`
	Text           string         `json:"text" gorm:"type:text;not null"`
	KeyPoints      datatypes.JSON `json:"key_points,omitempty" gorm:"type:jsonb"`
	Assignments    datatypes.JSON `json:"assignments,omitempty" gorm:"type:jsonb"`
	Method         SummaryMethod  `json:"method" gorm:"type:varchar(20);default:'rule'"`
	ProcessingTime int            `json:"processing_time,omitempty"` // milliseconds
	CreatedAt      time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for MeetingSummary
func (MeetingSummary) TableName() string {
	return "meeting_summaries"
}

// NewMeetingSummary creates a rule-method summary record.
func NewMeetingSummary(meetingID, transcriptID uuid.UUID, text string) *MeetingSummary {
	return &MeetingSummary{
		ID:           uuid.New(),
		MeetingID:    meetingID,
		TranscriptID: transcriptID,
		Text:         text,
		Method:       SummaryMethodRule,
	}
}
