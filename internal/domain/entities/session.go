package entities

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login session. Clients hold the session id;
// only the SHA-256 digest of the refresh token is stored.
type Session struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	RefreshTokenHash string     `json:"-" gorm:"column:refresh_token_hash;type:text;uniqueIndex;not null"`
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	ExpiresAt        time.Time  `json:"expires_at" gorm:"type:timestamp;not null;index"`
	RevokedAt        *time.Time `json:"revoked_at,omitempty" gorm:"type:timestamp"`
	LastUsedAt       *time.Time `json:"last_used_at,omitempty" gorm:"type:timestamp"`
}

// TableName specifies the table name for Session
func (Session) TableName() string {
	return "sessions"
}

// NewSession creates a session around a hashed refresh token
func NewSession(userID uuid.UUID, refreshTokenHash string, expiresAt time.Time) *Session {
	return &Session{
		ID:               uuid.New(),
		UserID:           userID,
		RefreshTokenHash: refreshTokenHash,
		ExpiresAt:        expiresAt,
		CreatedAt:        time.Now(),
	}
}

// IsExpired checks if session is expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsValid checks if session is valid (not expired and not revoked)
func (s *Session) IsValid() bool {
	if s == nil {
		return false
	}
	return !s.IsExpired() && s.RevokedAt == nil
}

// Revoke revokes the session
func (s *Session) Revoke() {
	now := time.Now()
	s.RevokedAt = &now
}
