package meeting

import (
	"time"

	"github.com/google/uuid"
)

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID                  uuid.UUID  `json:"id"`
	Title               string     `json:"title"`
	Description         *string    `json:"description,omitempty"`
	HostID              uuid.UUID  `json:"host_id"`
	Type                string     `json:"type"`
	Status              string     `json:"status"`
	RoomName            string     `json:"room_name"`
	MaxParticipants     int        `json:"max_participants"`
	CurrentParticipants int        `json:"current_participants"`
	ScheduledStartTime  *time.Time `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime    *time.Time `json:"scheduled_end_time,omitempty"`
	StartedAt           *time.Time `json:"started_at,omitempty"`
	EndedAt             *time.Time `json:"ended_at,omitempty"`
	Duration            *int       `json:"duration,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ParticipantResponse represents a roster entry in API responses
type ParticipantResponse struct {
	ID       uuid.UUID  `json:"id"`
	UserID   *uuid.UUID `json:"user_id,omitempty"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	Status   string     `json:"status"`
	JoinedAt *time.Time `json:"joined_at,omitempty"`
	LeftAt   *time.Time `json:"left_at,omitempty"`
	Duration *int       `json:"duration,omitempty"`
}

// JoinMeetingResponse carries everything a client needs to enter the room
type JoinMeetingResponse struct {
	Meeting     *MeetingResponse     `json:"meeting"`
	Participant *ParticipantResponse `json:"participant"`
	Token       string               `json:"token"`
	LivekitURL  string               `json:"livekit_url"`
}

// TokenResponse represents a room access token response
type TokenResponse struct {
	Token      string `json:"token"`
	RoomName   string `json:"room_name"`
	LivekitURL string `json:"livekit_url"`
}

// JobResponse represents an enqueued processing job
type JobResponse struct {
	ID        uuid.UUID `json:"id"`
	MeetingID uuid.UUID `json:"meeting_id"`
	JobType   string    `json:"job_type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadResponse represents the result of an audio upload
type UploadResponse struct {
	ObjectKey string       `json:"object_key"`
	AudioURL  string       `json:"audio_url"`
	Job       *JobResponse `json:"job"`
}

// ListMeetingsResponse represents a paginated list of meetings
type ListMeetingsResponse struct {
	Meetings   []*MeetingResponse `json:"meetings"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalItems int64              `json:"total_items"`
	TotalPages int                `json:"total_pages"`
}
