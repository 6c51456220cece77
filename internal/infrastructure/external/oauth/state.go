package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/meetwise/meetwise/internal/infrastructure/cache"
)

// StateManager manages OAuth state tokens for CSRF protection
type StateManager struct {
	store      cache.Store
	expiration time.Duration
}

// NewStateManager creates a state manager backed by the given cache store
func NewStateManager(store cache.Store) *StateManager {
	return &StateManager{
		store:      store,
		expiration: 15 * time.Minute, // State expires in 15 minutes
	}
}

// GenerateState generates a random state token and stores it
func (sm *StateManager) GenerateState(ctx context.Context) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	state := base64.URLEncoding.EncodeToString(b)

	key := fmt.Sprintf("oauth:state:%s", state)
	if err := sm.store.Set(ctx, key, "valid", sm.expiration); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	return state, nil
}

// ValidateState validates a state token (one-time use)
func (sm *StateManager) ValidateState(ctx context.Context, state string) bool {
	key := fmt.Sprintf("oauth:state:%s", state)

	value, exists, err := sm.store.Get(ctx, key)
	if err != nil || !exists || value != "valid" {
		return false
	}

	// Delete the state immediately so it cannot be replayed
	_ = sm.store.Delete(ctx, key)

	return true
}
