package presenter

import (
	"encoding/json"

	authDTO "github.com/meetwise/meetwise/internal/adapter/dto/auth"
	"github.com/meetwise/meetwise/internal/domain/entities"
	"github.com/meetwise/meetwise/internal/usecase/auth"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *authDTO.UserResponse {
	if u == nil {
		return nil
	}

	var notificationPrefs, meetingPrefs map[string]interface{}
	if u.NotificationPreferences != nil {
		json.Unmarshal(u.NotificationPreferences, &notificationPrefs)
	}
	if u.MeetingPreferences != nil {
		json.Unmarshal(u.MeetingPreferences, &meetingPrefs)
	}

	response := &authDTO.UserResponse{
		ID:                      u.ID.String(),
		Email:                   u.Email,
		Name:                    u.Name,
		EmailVerified:           u.IsEmailVerified,
		NotificationPreferences: notificationPrefs,
		MeetingPreferences:      meetingPrefs,
		LastLoginAt:             u.LastLoginAt,
		CreatedAt:               u.CreatedAt,
		UpdatedAt:               u.UpdatedAt,
	}

	if u.AvatarURL != nil {
		response.AvatarURL = *u.AvatarURL
	}
	if u.OAuthProvider != nil {
		response.OAuthProvider = *u.OAuthProvider
	}

	return response
}

// ToAuthResponse converts usecase AuthResponse to DTO AuthResponse
func ToAuthResponse(usecaseResp *auth.AuthResponse) *authDTO.AuthResponse {
	if usecaseResp == nil {
		return nil
	}

	return &authDTO.AuthResponse{
		AccessToken: usecaseResp.AccessToken,
		ExpiresIn:   int(usecaseResp.ExpiresIn),
		TokenType:   "Bearer",
		SessionID:   usecaseResp.SessionID,
		User:        ToUserResponse(usecaseResp.User),
	}
}

// ToRefreshTokenResponse converts usecase AuthResponse to DTO
// RefreshTokenResponse for the refresh endpoint
func ToRefreshTokenResponse(usecaseResp *auth.AuthResponse) *authDTO.RefreshTokenResponse {
	if usecaseResp == nil {
		return nil
	}
	return &authDTO.RefreshTokenResponse{
		AccessToken: usecaseResp.AccessToken,
		ExpiresIn:   int(usecaseResp.ExpiresIn),
		TokenType:   "Bearer",
	}
}
