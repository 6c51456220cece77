package meeting

import "time"

// RosterEntryRequest is one participant to register on a meeting
type RosterEntryRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" validate:"required,email"`
}

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	Title              string               `json:"title" validate:"required,min=1,max=255"`
	Description        *string              `json:"description,omitempty" validate:"omitempty,max=2000"`
	Type               string               `json:"type" validate:"required,oneof=instant scheduled upload"`
	MaxParticipants    int                  `json:"max_participants,omitempty" validate:"omitempty,min=2,max=100"`
	ScheduledStartTime *time.Time           `json:"scheduled_start_time,omitempty"`
	ScheduledEndTime   *time.Time           `json:"scheduled_end_time,omitempty"`
	Participants       []RosterEntryRequest `json:"participants,omitempty" validate:"omitempty,dive"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Type      *string `query:"type" validate:"omitempty,oneof=instant scheduled upload"`
	Status    *string `query:"status" validate:"omitempty,oneof=scheduled live processing completed failed"`
	Mine      bool    `query:"mine"`
	Search    string  `query:"search" validate:"omitempty,max=255"`
	Page      int     `query:"page" validate:"omitempty,min=1"`
	PageSize  int     `query:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string  `query:"sort_by" validate:"omitempty,oneof=created_at scheduled_start_time title"`
	SortOrder string  `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// AddParticipantsRequest represents the request to add roster entries
type AddParticipantsRequest struct {
	Participants []RosterEntryRequest `json:"participants" validate:"required,min=1,dive"`
}
