package extraction

// Participant is a roster entry supplied by the caller. Matching identity is
// the lowercased name; Email may be empty for guests added by name only.
type Participant struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Candidate is an unvalidated (assignee mention, task) pair produced by a
// strategy. It is consumed by resolution and normalization and never persisted.
type Candidate struct {
	Assignee   string
	Task       string
	Confidence float64
	Pattern    string
}

// Priority levels for action items
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Status values for action items
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ActionItem is the pipeline output. Assignee always names a participant from
// the supplied roster, with the roster's casing preserved.
type ActionItem struct {
	Text          string  `json:"text"`
	Assignee      string  `json:"assignee"`
	AssigneeEmail string  `json:"assignee_email,omitempty"`
	Priority      string  `json:"priority"`
	Category      string  `json:"category"`
	Status        string  `json:"status"`
	Completed     bool    `json:"completed"`
	Confidence    float64 `json:"confidence"`
}
