package services

import (
	"context"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	"github.com/SscSPs/kontrollavgift/internal/dto"
)

// UserReaderSvc defines read operations for employees.
type UserReaderSvc interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for employees.
type UserWriterSvc interface {
	// CreateUser provisions a new employee with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
