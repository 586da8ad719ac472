package dto

import (
	"github.com/SscSPs/kontrollavgift/internal/core/domain"
)

// CreateUserRequest provisions an employee.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse is the public view of an employee.
type UserResponse struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID: user.UserID,
		Email:  user.Email,
		Name:   user.Name,
	}
}
