package dto

import (
	"time"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
)

// LoginRequest represents the data needed for password sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleCodeExchangeRequest represents the request to exchange a Google OAuth code.
type GoogleCodeExchangeRequest struct {
	Code string `json:"code" binding:"required"`
}

// LoginResponse represents the response for a successful sign-in.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Email     string    `json:"email"`
}

// SessionEvent is pushed to session observers.
type SessionEvent struct {
	Authenticated bool       `json:"authenticated"`
	Email         string     `json:"email,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// ToLoginResponse converts a domain.Session to LoginResponse DTO
func ToLoginResponse(s *domain.Session) LoginResponse {
	return LoginResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, Email: s.Email}
}

// ToSessionEvent converts a session state; nil means signed out.
func ToSessionEvent(s *domain.Session) SessionEvent {
	if s == nil {
		return SessionEvent{}
	}
	expiresAt := s.ExpiresAt
	return SessionEvent{Authenticated: true, Email: s.Email, ExpiresAt: &expiresAt}
}
