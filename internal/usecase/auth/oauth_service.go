package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/domain/repositories"
	"github.com/meetwise/meetwise/internal/infrastructure/external/oauth"
	"github.com/meetwise/meetwise/pkg/jwt"
)

// OAuthService handles OAuth authentication and session management
type OAuthService struct {
	userRepo     repositories.UserRepository
	sessionRepo  repositories.SessionRepository
	google       *oauth.GoogleProvider
	stateManager *oauth.StateManager
	jwtManager   *jwt.Manager
	logger       *zap.Logger
}

// NewOAuthService creates a new OAuth service
func NewOAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	google *oauth.GoogleProvider,
	stateManager *oauth.StateManager,
	jwtManager *jwt.Manager,
	logger *zap.Logger,
) *OAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OAuthService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		google:       google,
		stateManager: stateManager,
		jwtManager:   jwtManager,
		logger:       logger,
	}
}

// GoogleAuthURLResponse represents the response for auth URL request
type GoogleAuthURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// GetGoogleAuthURL generates Google OAuth URL
func (s *OAuthService) GetGoogleAuthURL(ctx context.Context) (*GoogleAuthURLResponse, error) {
	state, err := s.stateManager.GenerateState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	return &GoogleAuthURLResponse{
		URL:   s.google.GetAuthURL(state),
		State: state,
	}, nil
}

// ValidateState validates OAuth state (one-time use)
func (s *OAuthService) ValidateState(ctx context.Context, state string) bool {
	return s.stateManager.ValidateState(ctx, state)
}

// GoogleCallbackRequest represents the callback request
type GoogleCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	User        *entities.User `json:"user"`
	AccessToken string         `json:"access_token"`
	ExpiresIn   int64          `json:"expires_in"`
	SessionID   string         `json:"session_id,omitempty"`
}

// HandleGoogleCallback handles the OAuth callback from Google
func (s *OAuthService) HandleGoogleCallback(ctx context.Context, req *GoogleCallbackRequest) (*AuthResponse, error) {
	if !s.stateManager.ValidateState(ctx, req.State) {
		return nil, entities.ErrOAuthStateMismatch
	}

	token, err := s.google.ExchangeCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	googleUser, err := s.google.GetUserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	user, err := s.userRepo.FindByOAuth(ctx, "google", googleUser.ID)
	switch {
	case err == entities.ErrUserNotFound:
		user, err = s.linkOrCreateUser(ctx, googleUser, token.RefreshToken)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to find user: %w", err)
	default:
		user.UpdateLastLogin()
		user.AvatarURL = &googleUser.Picture
		if token.RefreshToken != "" {
			user.OAuthRefreshToken = &token.RefreshToken
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Only the digest is persisted; the session id is the refresh handle
	tokenHash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	session := entities.NewSession(user.ID, tokenHash, time.Now().Add(s.jwtManager.GetRefreshExpiry()))
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("🔐 User signed in",
		zap.String("user_id", user.ID.String()),
		zap.String("session_id", session.ID.String()))

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtManager.GetAccessExpiry().Seconds()),
		SessionID:   session.ID.String(),
	}, nil
}

// linkOrCreateUser links the Google identity onto an existing email account
// or creates a fresh user.
func (s *OAuthService) linkOrCreateUser(ctx context.Context, googleUser *oauth.GoogleUserInfo, refreshToken string) (*entities.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, googleUser.Email)
	if err == nil {
		provider := "google"
		existing.OAuthProvider = &provider
		existing.OAuthID = &googleUser.ID
		existing.AvatarURL = &googleUser.Picture
		if refreshToken != "" {
			existing.OAuthRefreshToken = &refreshToken
		}
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to link accounts: %w", err)
		}
		return existing, nil
	}

	user := entities.NewOAuthUser(googleUser.Email, googleUser.Name, "google", googleUser.ID)
	user.AvatarURL = &googleUser.Picture
	if refreshToken != "" {
		user.OAuthRefreshToken = &refreshToken
	}
	if googleUser.Locale != "" {
		user.Language = googleUser.Locale
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// RefreshAccessTokenBySessionID refreshes the access token using a session ID
// stored server-side
func (s *OAuthService) RefreshAccessTokenBySessionID(ctx context.Context, sessionID uuid.UUID) (*AuthResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, entities.ErrSessionNotFound
	}

	if session.IsExpired() {
		return nil, entities.ErrSessionExpired
	}
	if session.RevokedAt != nil {
		return nil, entities.ErrInvalidToken
	}

	// Non-fatal bookkeeping
	_ = s.sessionRepo.UpdateLastUsed(ctx, session.ID)

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}

// ValidateSession validates a JWT access token and returns the user
func (s *OAuthService) ValidateSession(ctx context.Context, token string) (*entities.User, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, entities.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, entities.ErrUnauthorized
	}
	return user, nil
}

// RevokeSessionByID revokes a session by its UUID
func (s *OAuthService) RevokeSessionByID(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessionRepo.Revoke(ctx, sessionID)
}
