package domain

// User is an employee allowed to issue kontrollavgifter.
type User struct {
	UserID       string `json:"userID"` // Primary Key (e.g., UUID)
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
