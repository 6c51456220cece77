package entities

import "errors"

// Domain errors shared across entities
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidRole  = errors.New("invalid role")

	// OAuth errors
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidToken    = errors.New("invalid token")

	ErrUnauthorized = errors.New("unauthorized")
)
