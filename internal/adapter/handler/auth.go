package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise/errors"
	authDTO "github.com/meetwise/meetwise/internal/adapter/dto/auth"
	"github.com/meetwise/meetwise/internal/adapter/presenter"
	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/usecase/auth"
)

// Auth handles authentication HTTP requests
type Auth struct {
	oauthService *auth.OAuthService
	logger       *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(oauthService *auth.OAuthService, logger *zap.Logger) *Auth {
	return &Auth{
		oauthService: oauthService,
		logger:       logger,
	}
}

// GoogleLogin handles the initial Google OAuth login request
// @Summary      Google OAuth login
// @Description  Redirects to Google's consent screen with a one-time CSRF state
// @Tags         Auth
// @Success      307
// @Router       /auth/google/login [get]
func (h *Auth) GoogleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	authURL, err := h.oauthService.GetGoogleAuthURL(ctx)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrOAuthFailed("google", err))
	}

	return c.Redirect(http.StatusTemporaryRedirect, authURL.URL)
}

// GoogleCallback handles the OAuth callback from Google
// @Summary      Google OAuth callback
// @Description  Exchanges the authorization code, links or creates the user and opens a session
// @Tags         Auth
// @Produce      json
// @Param        code   query  string  true  "Authorization code"
// @Param        state  query  string  true  "CSRF state"
// @Success      200  {object}  auth.AuthResponse
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/google/callback [get]
func (h *Auth) GoogleCallback(c echo.Context) error {
	ctx := c.Request().Context()

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("missing code or state parameter"))
	}

	response, err := h.oauthService.HandleGoogleCallback(ctx, &auth.GoogleCallbackRequest{
		Code:  code,
		State: state,
	})
	if err != nil {
		return HandleError(h.logger, c, errors.ErrOAuthFailed("google", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToAuthResponse(response))
}

// RefreshToken issues a fresh access token for a live session
// @Summary      Refresh access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  auth.RefreshTokenRequest  true  "Session id"
// @Success      200  {object}  auth.RefreshTokenResponse
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/refresh [post]
func (h *Auth) RefreshToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req authDTO.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("session_id must be a valid UUID"))
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("session_id must be a valid UUID"))
	}

	response, err := h.oauthService.RefreshAccessTokenBySessionID(ctx, sessionID)
	if err != nil {
		switch err {
		case entities.ErrSessionNotFound, entities.ErrSessionExpired, entities.ErrInvalidToken:
			return HandleError(h.logger, c, errors.ErrInvalidRefreshToken())
		default:
			return HandleError(h.logger, c, errors.ErrInternal(err))
		}
	}

	return HandleSuccess(h.logger, c, presenter.ToRefreshTokenResponse(response))
}

// Logout revokes the current session
// @Summary      Logout
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  auth.LogoutRequest  true  "Session id"
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (h *Auth) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	var req authDTO.LogoutRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("session_id must be a valid UUID"))
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("session_id must be a valid UUID"))
	}

	if err := h.oauthService.RevokeSessionByID(ctx, sessionID); err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"message": "Logged out successfully",
	})
}

// Me returns the authenticated user
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  auth.UserResponse
// @Failure      401  {object}  map[string]interface{}
// @Router       /auth/me [get]
func (h *Auth) Me(c echo.Context) error {
	user, ok := c.Get("user").(*entities.User)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	return HandleSuccess(h.logger, c, presenter.ToUserResponse(user))
}
