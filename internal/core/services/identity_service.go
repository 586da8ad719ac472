package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	portsrepo "github.com/SscSPs/kontrollavgift/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"github.com/SscSPs/kontrollavgift/internal/platform/metrics"
	"github.com/SscSPs/kontrollavgift/internal/utils"
)

// defaultRecheckInterval is how often an observed session is checked against
// the revocation store, which catches sign-outs made on other instances.
const defaultRecheckInterval = 30 * time.Second

// SessionConfig configures how session tokens are signed.
type SessionConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

type identityService struct {
	BaseService
	session     SessionConfig
	users       portsrepo.UserReader
	revocations portsrepo.SessionRevocationRepository
	passwords   portssvc.PasswordAuthenticator
	google      portssvc.GoogleOAuthHandlerSvcFacade
	hub         *sessionHub
	metrics     *metrics.Metrics
	now         func() time.Time
	recheck     time.Duration
}

// IdentityServiceOption is a functional option for configuring the identity service
type IdentityServiceOption func(*identityService)

// WithGoogleSignIn enables the Google authorization code credential.
func WithGoogleSignIn(google portssvc.GoogleOAuthHandlerSvcFacade) IdentityServiceOption {
	return func(s *identityService) {
		s.google = google
	}
}

// WithIdentityMetrics records sign-in outcomes.
func WithIdentityMetrics(m *metrics.Metrics) IdentityServiceOption {
	return func(s *identityService) {
		s.metrics = m
	}
}

// WithIdentityClock replaces time.Now.
func WithIdentityClock(now func() time.Time) IdentityServiceOption {
	return func(s *identityService) {
		s.now = now
	}
}

// WithSessionRecheckInterval sets how often observers poll the revocation store.
func WithSessionRecheckInterval(d time.Duration) IdentityServiceOption {
	return func(s *identityService) {
		if d > 0 {
			s.recheck = d
		}
	}
}

// NewIdentityService creates the identity collaborator.
func NewIdentityService(session SessionConfig, users portsrepo.UserReader, revocations portsrepo.SessionRevocationRepository, passwords portssvc.PasswordAuthenticator, options ...IdentityServiceOption) portssvc.IdentitySvcFacade {
	s := &identityService{
		session:     session,
		users:       users,
		revocations: revocations,
		passwords:   passwords,
		hub:         newSessionHub(),
		now:         time.Now,
		recheck:     defaultRecheckInterval,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.IdentitySvcFacade = (*identityService)(nil)

func (s *identityService) SignIn(ctx context.Context, cred domain.Credential) (*domain.Session, error) {
	method, identity, err := s.resolve(ctx, cred)
	if err != nil {
		s.metrics.IncSignIn(method, false)
		s.LogWarn(ctx, "Sign-in failed", slog.String("method", method), slog.String("error", err.Error()))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, claims, err := utils.GenerateSessionToken(identity.UserID, identity.Email, s.session.Secret, s.session.Expiry, s.session.Issuer, s.now())
	if err != nil {
		s.metrics.IncSignIn(method, false)
		s.LogError(ctx, err, "Failed to sign session token", slog.String("user_id", identity.UserID))
		return nil, apperrors.ErrInvalidCredentials
	}

	s.metrics.IncSignIn(method, true)
	s.LogInfo(ctx, "Signed in", slog.String("method", method), slog.String("user_id", identity.UserID))
	return sessionFromClaims(token, claims), nil
}

// resolve turns a credential into an identity. Any error means the sign-in fails.
func (s *identityService) resolve(ctx context.Context, cred domain.Credential) (string, *domain.Identity, error) {
	switch c := cred.(type) {
	case domain.PasswordCredential:
		email := strings.TrimSpace(c.Email)
		if email == "" || c.Password == "" {
			return "password", nil, errors.New("email and password are required")
		}
		identity, err := s.passwords.AuthenticatePassword(ctx, email, c.Password)
		return "password", identity, err

	case domain.GoogleCodeCredential:
		identity, err := s.resolveGoogle(ctx, c.Code)
		return "google", identity, err
	}
	return "unknown", nil, fmt.Errorf("unsupported credential %T", cred)
}

func (s *identityService) resolveGoogle(ctx context.Context, code string) (*domain.Identity, error) {
	if s.google == nil {
		return nil, errors.New("google sign-in is not configured")
	}
	token, err := s.google.ExchangeCodeForToken(ctx, code)
	if err != nil {
		return nil, err
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("id_token missing from google token response")
	}
	payload, err := s.google.ValidateGoogleIDToken(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}
	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return nil, errors.New("google account has no verified email")
	}
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("google account %s is not a registered employee: %w", email, err)
	}
	return &domain.Identity{UserID: user.UserID, Email: user.Email}, nil
}

func (s *identityService) SignOut(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return nil
	}
	if err := s.revocations.RevokeSession(ctx, session.TokenID, session.ExpiresAt); err != nil {
		s.LogError(ctx, err, "Failed to revoke session", slog.String("user_id", session.UserID))
		return fmt.Errorf("failed to sign out: %w", err)
	}
	s.hub.signOut(session.TokenID)
	s.LogInfo(ctx, "Signed out", slog.String("user_id", session.UserID))
	return nil
}

// ValidateSession fails closed: a revocation store error rejects the token.
func (s *identityService) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := utils.ParseSessionToken(token, s.session.Secret, s.session.Issuer)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revocations.IsSessionRevoked(ctx, claims.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check session revocation")
		return nil, fmt.Errorf("revocation check failed: %w", apperrors.ErrUnauthorized)
	}
	if revoked {
		return nil, fmt.Errorf("session signed out: %w", apperrors.ErrUnauthorized)
	}
	return sessionFromClaims(token, claims), nil
}

func (s *identityService) ObserveSession(ctx context.Context, token string) <-chan *domain.Session {
	out := make(chan *domain.Session, 1)

	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		out <- nil
		close(out)
		return out
	}
	out <- session

	signedOut, stop := s.hub.subscribe(session.TokenID)
	go func() {
		defer close(out)
		defer stop()

		expiry := time.NewTimer(session.ExpiresAt.Sub(s.now()))
		defer expiry.Stop()
		ticker := time.NewTicker(s.recheck)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-signedOut:
			case <-expiry.C:
			case <-ticker.C:
				revoked, err := s.revocations.IsSessionRevoked(ctx, session.TokenID)
				if err != nil || !revoked {
					continue
				}
			}
			select {
			case out <- nil:
			case <-ctx.Done():
			}
			return
		}
	}()
	return out
}

func sessionFromClaims(token string, claims *utils.SessionClaims) *domain.Session {
	session := &domain.Session{
		Token:   token,
		TokenID: claims.ID,
		UserID:  claims.Subject,
		Email:   claims.Email,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session
}
