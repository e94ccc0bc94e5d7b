package auth

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/database"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAuth(t *testing.T) *Auth {
	t.Helper()
	db, err := database.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, testSecret)
}

func TestLogin(t *testing.T) {
	a := newTestAuth(t)
	require.NoError(t, a.CreateUser("alice", "correct horse", false))

	sessionID, token, session, err := a.Login("alice", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", session.Username)
	assert.False(t, session.IsStaff)

	live, ok := a.ValidateSession(sessionID)
	require.True(t, ok)
	assert.Equal(t, "alice", live.Username)
}

func TestLoginBadCredentials(t *testing.T) {
	a := newTestAuth(t)
	require.NoError(t, a.CreateUser("alice", "correct horse", false))

	_, _, _, err := a.Login("alice", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))

	_, _, _, err = a.Login("nobody", "correct horse")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestLogoutEndsSession(t *testing.T) {
	a := newTestAuth(t)
	require.NoError(t, a.CreateUser("alice", "correct horse", false))
	sessionID, _, _, err := a.Login("alice", "correct horse")
	require.NoError(t, err)

	a.Logout(sessionID)
	_, ok := a.ValidateSession(sessionID)
	assert.False(t, ok)
}

func TestImpersonateRequiresStaff(t *testing.T) {
	a := newTestAuth(t)
	require.NoError(t, a.CreateUser("alice", "correct horse", false))
	require.NoError(t, a.CreateUser("root", "hunter2hunter2", true))

	aliceSession, _, _, err := a.Login("alice", "correct horse")
	require.NoError(t, err)
	_, err = a.Impersonate(aliceSession)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))

	rootSession, _, _, err := a.Login("root", "hunter2hunter2")
	require.NoError(t, err)
	session, err := a.Impersonate(rootSession)
	require.NoError(t, err)
	assert.True(t, session.Impersonated)

	_, err = a.Impersonate("no-such-session")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestTokenRoundTrip(t *testing.T) {
	a := newTestAuth(t)
	require.NoError(t, a.CreateUser("root", "hunter2hunter2", true))
	_, token, _, err := a.Login("root", "hunter2hunter2")
	require.NoError(t, err)

	session, ok := a.ValidateToken(token)
	require.True(t, ok)
	assert.Equal(t, "root", session.Username)
	assert.True(t, session.IsStaff)

	// A token signed with a different secret is rejected.
	other := New(nil, "ffffffffffffffffffffffffffffffff")
	_, ok = other.ValidateToken(token)
	assert.False(t, ok)

	_, ok = a.ValidateToken("not-a-token")
	assert.False(t, ok)
}

func TestRequireAuthMiddleware(t *testing.T) {
	a := newTestAuth(t)
	require.NoError(t, a.CreateUser("root", "hunter2hunter2", true))
	sessionID, token, _, err := a.Login("root", "hunter2hunter2")
	require.NoError(t, err)

	var seen http.Header
	handler := a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("no credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/auth/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("session cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "root", seen.Get("X-Username"))
		assert.Empty(t, seen.Get("X-Impersonated"))
	})

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("impersonated session stamps header", func(t *testing.T) {
		_, err := a.Impersonate(sessionID)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})
		// A spoofed header from the client must not survive.
		req.Header.Set("X-Username", "mallory")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "root", seen.Get("X-Username"))
		assert.True(t, Impersonated(&http.Request{Header: seen}))
	})
}
