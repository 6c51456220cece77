package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItemPriority constants
const (
	ActionItemPriorityLow    = "low"
	ActionItemPriorityMedium = "medium"
	ActionItemPriorityHigh   = "high"
)

// ActionItemStatus constants
const (
	ActionItemStatusPending    = "pending"
	ActionItemStatusInProgress = "in_progress"
	ActionItemStatusCompleted  = "completed"
)

// ActionItem is the persisted form of an extracted task assignment.
type ActionItem struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID     uuid.UUID  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	SummaryID     *uuid.UUID `json:"summary_id,omitempty" gorm:"type:uuid;index"`
	Text          string     `json:"text" gorm:"type:text;not null"`
	Assignee      string     `json:"assignee" gorm:"type:varchar(255);not null;index"`
	AssigneeEmail string     `json:"assignee_email" gorm:"type:varchar(255);index"`
	Category      string     `json:"category" gorm:"type:varchar(50);default:'General'"`
	Priority      string     `json:"priority" gorm:"type:varchar(20);default:'medium'"`
	Status        string     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Completed     bool       `json:"completed" gorm:"default:false"`
	Confidence    float64    `json:"confidence" gorm:"default:0.0"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`

	// Issue tracker sync
	JiraIssueKey *string    `json:"jira_issue_key,omitempty" gorm:"type:varchar(50)"`
	JiraIssueURL *string    `json:"jira_issue_url,omitempty" gorm:"type:text"`
	JiraSyncedAt *time.Time `json:"jira_synced_at,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for ActionItem
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates a pending action item.
func NewActionItem(meetingID uuid.UUID, text, assignee, assigneeEmail string) *ActionItem {
	return &ActionItem{
		ID:            uuid.New(),
		MeetingID:     meetingID,
		Text:          text,
		Assignee:      assignee,
		AssigneeEmail: assigneeEmail,
		Category:      "General",
		Priority:      ActionItemPriorityMedium,
		Status:        ActionItemStatusPending,
	}
}

// MarkInProgress moves the item to in_progress
func (a *ActionItem) MarkInProgress() {
	a.Status = ActionItemStatusInProgress
	a.Completed = false
	a.CompletedAt = nil
}

// Complete marks the item as done
func (a *ActionItem) Complete() {
	now := time.Now()
	a.Status = ActionItemStatusCompleted
	a.Completed = true
	a.CompletedAt = &now
}

// MarkJiraSynced records the created issue
func (a *ActionItem) MarkJiraSynced(issueKey, issueURL string) {
	now := time.Now()
	a.JiraIssueKey = &issueKey
	a.JiraIssueURL = &issueURL
	a.JiraSyncedAt = &now
}
