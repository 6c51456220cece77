package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/usecase/auth"
)

// EchoAuth authenticates requests with the access token from the
// Authorization header or the access_token cookie. On success the user
// entity and its id are stored in the echo context under "user" and
// "user_id".
func EchoAuth(oauthService *auth.OAuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			user, err := oauthService.ValidateSession(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set("user", user)
			c.Set("user_id", user.ID)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}

// GetUserFromContext returns the authenticated user set by EchoAuth
func GetUserFromContext(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get("user").(*entities.User)
	return user, ok && user != nil
}

// GetUserIDFromContext returns the authenticated user id set by EchoAuth
func GetUserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	return userID, ok
}
