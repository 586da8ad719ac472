package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	portsrepo "github.com/SscSPs/kontrollavgift/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/kontrollavgift/internal/core/ports/services"
	"github.com/SscSPs/kontrollavgift/internal/utils"
)

// localPasswordAuthenticator checks passwords against the bcrypt hashes in the users table.
type localPasswordAuthenticator struct {
	users portsrepo.UserReader
}

// NewLocalPasswordAuthenticator creates a PasswordAuthenticator backed by the user store.
func NewLocalPasswordAuthenticator(users portsrepo.UserReader) portssvc.PasswordAuthenticator {
	return &localPasswordAuthenticator{users: users}
}

func (a *localPasswordAuthenticator) AuthenticatePassword(ctx context.Context, email, password string) (*domain.Identity, error) {
	user, err := a.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			utils.BurnPasswordCheck(password)
			return nil, fmt.Errorf("unknown email: %w", apperrors.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("password mismatch: %w", apperrors.ErrInvalidCredentials)
	}
	return &domain.Identity{UserID: user.UserID, Email: user.Email}, nil
}
