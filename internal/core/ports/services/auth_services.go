package services

import (
	"context"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// IdentitySvcFacade signs employees in and out and tracks their sessions.
type IdentitySvcFacade interface {
	// SignIn exchanges a credential for a session. Every failure is reported as
	// apperrors.ErrInvalidCredentials.
	SignIn(ctx context.Context, cred domain.Credential) (*domain.Session, error)

	// SignOut revokes the session and notifies its observers.
	SignOut(ctx context.Context, session *domain.Session) error

	// ValidateSession parses a session token and checks it has not been revoked.
	ValidateSession(ctx context.Context, token string) (*domain.Session, error)

	// ObserveSession pushes the current session state immediately, then nil once
	// the session is signed out or expires. The channel closes when ctx is done.
	ObserveSession(ctx context.Context, token string) <-chan *domain.Session
}

// PasswordAuthenticator verifies email and password against an identity provider.
type PasswordAuthenticator interface {
	AuthenticatePassword(ctx context.Context, email, password string) (*domain.Identity, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
