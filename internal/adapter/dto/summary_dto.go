package dto

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentDTO is one "who does what" line of a summary
type AssignmentDTO struct {
	Assignee string `json:"assignee"`
	Task     string `json:"task"`
}

// SummaryResponse represents the API response for a meeting summary
type SummaryResponse struct {
	ID               uuid.UUID       `json:"id"`
	MeetingID        uuid.UUID       `json:"meeting_id"`
	TranscriptID     uuid.UUID       `json:"transcript_id"`
	Text             string          `json:"text"`
	KeyPoints        []string        `json:"key_points"`
	Assignments      []AssignmentDTO `json:"assignments"`
	Method           string          `json:"method"`
	ProcessingTimeMs int             `json:"processing_time_ms,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// UtteranceDTO is a single speaker turn of a transcript
type UtteranceDTO struct {
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// TranscriptResponse represents the API response for a transcript
type TranscriptResponse struct {
	ID              uuid.UUID      `json:"id"`
	MeetingID       uuid.UUID      `json:"meeting_id"`
	Text            string         `json:"text"`
	Language        string         `json:"language,omitempty"`
	ConfidenceScore float64        `json:"confidence_score,omitempty"`
	HasSpeakers     bool           `json:"has_speakers"`
	SpeakerCount    int            `json:"speaker_count,omitempty"`
	Utterances      []UtteranceDTO `json:"utterances,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// ActionItemResponse represents an extracted action item
type ActionItemResponse struct {
	ID            uuid.UUID  `json:"id"`
	MeetingID     uuid.UUID  `json:"meeting_id"`
	Text          string     `json:"text"`
	Assignee      string     `json:"assignee"`
	AssigneeEmail string     `json:"assignee_email"`
	Category      string     `json:"category"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	Completed     bool       `json:"completed"`
	Confidence    float64    `json:"confidence"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	JiraIssueKey  *string    `json:"jira_issue_key,omitempty"`
	JiraIssueURL  *string    `json:"jira_issue_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// UpdateActionItemStatusRequest updates the workflow status of an item
type UpdateActionItemStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}
