// Package identity contains PasswordAuthenticator implementations backed by
// external identity providers.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// FirebasePasswordAuthenticator verifies email and password against a Firebase
// project through the Identity Toolkit API.
type FirebasePasswordAuthenticator struct {
	relyingParty *identitytoolkit.RelyingpartyService
	projectID    string
}

// NewFirebasePasswordAuthenticator creates the authenticator. Extra client
// options (endpoint, HTTP client) are mainly for tests.
func NewFirebasePasswordAuthenticator(ctx context.Context, apiKey, projectID string, opts ...option.ClientOption) (*FirebasePasswordAuthenticator, error) {
	if apiKey == "" {
		return nil, errors.New("firebase api key is required")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit client: %w", err)
	}
	return &FirebasePasswordAuthenticator{relyingParty: svc.Relyingparty, projectID: projectID}, nil
}

var _ portssvc.PasswordAuthenticator = (*FirebasePasswordAuthenticator)(nil)

func (a *FirebasePasswordAuthenticator) AuthenticatePassword(ctx context.Context, email, password string) (*domain.Identity, error) {
	resp, err := a.relyingParty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
			// EMAIL_NOT_FOUND, INVALID_PASSWORD, USER_DISABLED and friends
			return nil, fmt.Errorf("firebase rejected sign-in (%s): %w", apiErr.Message, apperrors.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("firebase sign-in failed: %w", err)
	}
	if resp.LocalId == "" {
		return nil, fmt.Errorf("firebase returned no account id: %w", apperrors.ErrInvalidCredentials)
	}
	return &domain.Identity{UserID: resp.LocalId, Email: resp.Email}, nil
}
