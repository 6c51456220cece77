package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ParticipantRole represents the role of a participant in a meeting
type ParticipantRole string

const (
	ParticipantRoleHost        ParticipantRole = "host"
	ParticipantRoleParticipant ParticipantRole = "participant"
)

// ParticipantStatus represents the status of a participant
type ParticipantStatus string

const (
	ParticipantStatusInvited ParticipantStatus = "invited"
	ParticipantStatusJoined  ParticipantStatus = "joined"
	ParticipantStatusLeft    ParticipantStatus = "left"
)

// MeetingParticipant is a roster row. Name and Email are stored directly so
// uploaded-audio meetings can carry a roster without user accounts; the
// extraction pipeline resolves spoken mentions against these names.
type MeetingParticipant struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MeetingID uuid.UUID         `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Meeting   *Meeting          `gorm:"foreignKey:MeetingID" json:"meeting,omitempty"`
	UserID    *uuid.UUID        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User      *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Name      string            `gorm:"type:varchar(255);not null" json:"name"`
	Email     string            `gorm:"type:varchar(255);not null;index" json:"email"`
	Role      ParticipantRole   `gorm:"type:varchar(20);default:'participant'" json:"role"`
	Status    ParticipantStatus `gorm:"type:varchar(20);default:'invited';index" json:"status"`

	InvitedBy      *uuid.UUID     `gorm:"type:uuid;index" json:"invited_by,omitempty"`
	InvitedAt      *time.Time     `json:"invited_at,omitempty"`
	JoinedAt       *time.Time     `gorm:"index" json:"joined_at,omitempty"`
	LeftAt         *time.Time     `json:"left_at,omitempty"`
	Duration       *int           `json:"duration,omitempty"` // seconds in meeting
	CanShareScreen bool           `gorm:"default:true" json:"can_share_screen"`
	CanRecord      bool           `gorm:"default:false" json:"can_record"`
	CanMuteOthers  bool           `gorm:"default:false" json:"can_mute_others"`
	IsMuted        bool           `gorm:"default:false" json:"is_muted"`
	Metadata       datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`
	CreatedAt      time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for MeetingParticipant
func (MeetingParticipant) TableName() string {
	return "meeting_participants"
}

// NewMeetingParticipant creates an invited roster entry.
func NewMeetingParticipant(meetingID uuid.UUID, name, email string) *MeetingParticipant {
	now := time.Now()
	return &MeetingParticipant{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Name:      name,
		Email:     email,
		Role:      ParticipantRoleParticipant,
		Status:    ParticipantStatusInvited,
		InvitedAt: &now,
	}
}

// IsHost checks if the participant is a host
func (p *MeetingParticipant) IsHost() bool {
	return p.Role == ParticipantRoleHost
}

// IsActive checks if the participant is currently in the meeting
func (p *MeetingParticipant) IsActive() bool {
	return p.Status == ParticipantStatusJoined && p.LeftAt == nil
}

// Join marks the participant as joined
func (p *MeetingParticipant) Join() {
	now := time.Now()
	p.Status = ParticipantStatusJoined
	p.JoinedAt = &now
	p.LeftAt = nil
}

// Leave marks the participant as left and calculates duration
func (p *MeetingParticipant) Leave() {
	now := time.Now()
	p.Status = ParticipantStatusLeft
	p.LeftAt = &now

	if p.JoinedAt != nil {
		duration := int(now.Sub(*p.JoinedAt).Seconds())
		p.Duration = &duration
	}
}

// PromoteToHost promotes the participant to host role
func (p *MeetingParticipant) PromoteToHost() {
	p.Role = ParticipantRoleHost
	p.CanRecord = true
	p.CanMuteOthers = true
}
