package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserRole defines user roles
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleHost        UserRole = "host"
	RoleParticipant UserRole = "participant"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHost, RoleParticipant:
		return true
	}
	return false
}

// User is an account. Accounts only exist through OAuth sign-in; there is
// no password path.
type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email    string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name     string    `json:"name" gorm:"type:varchar(255);not null"`
	Role     UserRole  `json:"role" gorm:"type:varchar(50);default:'participant';not null"`
	IsActive bool      `json:"is_active" gorm:"default:true;not null"`

	OAuthProvider     *string `json:"oauth_provider,omitempty" gorm:"column:oauth_provider;type:varchar(50);index:idx_oauth"`
	OAuthID           *string `json:"oauth_id,omitempty" gorm:"column:oauth_id;type:varchar(255);index:idx_oauth"`
	OAuthRefreshToken *string `json:"-" gorm:"column:oauth_refresh_token;type:text"`

	AvatarURL *string `json:"avatar_url,omitempty" gorm:"type:varchar(500)"`
	Timezone  string  `json:"timezone" gorm:"type:varchar(50);default:'UTC';not null"`
	Language  string  `json:"language" gorm:"type:varchar(10);default:'en';not null"`

	IsEmailVerified bool       `json:"is_email_verified" gorm:"default:false;not null"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty" gorm:"type:timestamp"`
	LastActiveAt    *time.Time `json:"last_active_at,omitempty" gorm:"type:timestamp"`

	// JSONB preference blobs, shaped by defaultNotificationPrefs /
	// defaultMeetingPrefs
	NotificationPreferences datatypes.JSON `json:"notification_preferences" gorm:"type:jsonb;default:'{}'"`
	MeetingPreferences      datatypes.JSON `json:"meeting_preferences" gorm:"type:jsonb;default:'{}'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

func defaultNotificationPrefs() datatypes.JSON {
	prefs, _ := json.Marshal(map[string]interface{}{
		"action_item_digest": true,
		"summary_ready":      true,
	})
	return prefs
}

func defaultMeetingPrefs() datatypes.JSON {
	prefs, _ := json.Marshal(map[string]interface{}{
		"auto_record": true,
		"auto_invite": false,
	})
	return prefs
}

// NewOAuthUser creates a user from an OAuth provider profile. Provider
// emails count as verified.
func NewOAuthUser(email, name, provider, oauthID string) *User {
	now := time.Now()
	return &User{
		ID:                      uuid.New(),
		Email:                   email,
		Name:                    name,
		Role:                    RoleParticipant,
		IsActive:                true,
		IsEmailVerified:         true,
		OAuthProvider:           &provider,
		OAuthID:                 &oauthID,
		Timezone:                "UTC",
		Language:                "en",
		NotificationPreferences: defaultNotificationPrefs(),
		MeetingPreferences:      defaultMeetingPrefs(),
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

// UpdateLastLogin updates the last login timestamp
func (u *User) UpdateLastLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.LastActiveAt = &now
	u.UpdatedAt = now
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.Name == "" {
		return ErrInvalidName
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	return nil
}
