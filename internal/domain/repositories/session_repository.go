package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/meetwise/meetwise/internal/domain/entities"
)

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	Create(ctx context.Context, session *entities.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Session, error)
	UpdateLastUsed(ctx context.Context, sessionID uuid.UUID) error
	Revoke(ctx context.Context, sessionID uuid.UUID) error

	// DeleteExpired removes sessions that expired or were revoked before
	// the given cutoff
	DeleteExpired(ctx context.Context, before time.Time) error
}
