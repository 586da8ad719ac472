package domain

import "time"

// Session is an authenticated employee session backed by a signed token.
type Session struct {
	Token     string    `json:"token"`
	TokenID   string    `json:"-"` // jti, used for revocation
	UserID    string    `json:"userID"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Credential is anything an identity provider can exchange for a Session.
type Credential interface {
	credential()
}

// PasswordCredential signs in with email and password.
type PasswordCredential struct {
	Email    string
	Password string
}

// GoogleCodeCredential signs in with a Google OAuth authorization code.
type GoogleCodeCredential struct {
	Code string
}

func (PasswordCredential) credential()   {}
func (GoogleCodeCredential) credential() {}

// Identity is who a credential resolved to, before a session is issued.
type Identity struct {
	UserID string
	Email  string
}
