package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/kontrollavgift/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestAuthenticator(t *testing.T, handler http.HandlerFunc) *FirebasePasswordAuthenticator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewFirebasePasswordAuthenticator(context.Background(), "api-key", "demo-project",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return a
}

func TestFirebasePasswordAuthenticator_Success(t *testing.T) {
	a := newTestAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "verifyPassword")
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "anna@example.com", body["email"])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"identitytoolkit#VerifyPasswordResponse","localId":"fb-1","email":"anna@example.com","registered":true}`))
	})

	identity, err := a.AuthenticatePassword(context.Background(), "anna@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fb-1", identity.UserID)
	assert.Equal(t, "anna@example.com", identity.Email)
}

func TestFirebasePasswordAuthenticator_Rejected(t *testing.T) {
	a := newTestAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_PASSWORD"}}`))
	})

	_, err := a.AuthenticatePassword(context.Background(), "anna@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestNewFirebasePasswordAuthenticator_RequiresKey(t *testing.T) {
	_, err := NewFirebasePasswordAuthenticator(context.Background(), "", "demo")
	assert.Error(t, err)
}
