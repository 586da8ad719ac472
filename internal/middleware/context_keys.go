package middleware

import (
	"context"

	"github.com/SscSPs/kontrollavgift/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const (
	userIDKey  = contextKey("userID")
	sessionKey = contextKey("session")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
			return userID, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetSessionFromContext retrieves the validated session set by AuthMiddleware.
func GetSessionFromContext(c *gin.Context) (*domain.Session, bool) {
	val, exists := c.Get(string(sessionKey))
	if !exists {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok && session != nil
}

func withSession(c *gin.Context, session *domain.Session) {
	c.Set(string(userIDKey), session.UserID)
	c.Set(string(sessionKey), session)
	ctx := context.WithValue(c.Request.Context(), userIDKey, session.UserID)
	c.Request = c.Request.WithContext(ctx)
}
