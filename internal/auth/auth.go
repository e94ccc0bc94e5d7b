// Package auth provides session and token authentication for the console,
// including staff impersonation. Impersonated sessions unlock catalog
// options that are hidden from regular users.
package auth

import (
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/database"
)

// Session is one authenticated console session.
type Session struct {
	UserID       int
	Username     string
	IsStaff      bool
	Impersonated bool
	ExpiresAt    time.Time
}

// Auth manages users, sessions, and API tokens.
type Auth struct {
	db        *database.DB
	jwtSecret []byte

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates an Auth over the user table in db. jwtSecret signs API
// tokens.
func New(db *database.DB, jwtSecret string) *Auth {
	return &Auth{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		sessions:  make(map[string]*Session),
	}
}

const sessionTTL = 24 * time.Hour

func (a *Auth) generateSessionID() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return base64.URLEncoding.EncodeToString(bytes)
}

// CreateUser inserts a user with a bcrypt password hash.
func (a *Auth) CreateUser(username, password string, isStaff bool) error {
	if username == "" || password == "" {
		return errors.ValidationError("username and password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.InternalError("failed to hash password", err)
	}
	_, err = a.db.Exec(
		`INSERT INTO users (username, password_hash, is_staff) VALUES (?, ?, ?)`,
		username, string(hash), isStaff,
	)
	if err != nil {
		return errors.InternalError("failed to create user", err)
	}
	return nil
}

// Login validates credentials and opens a session. The returned token is
// a signed JWT usable as a bearer token; the session id goes in a cookie.
func (a *Auth) Login(username, password string) (string, string, *Session, error) {
	var userID int
	var hash string
	var isStaff bool
	err := a.db.QueryRow(
		`SELECT id, password_hash, is_staff FROM users WHERE username = ?`, username,
	).Scan(&userID, &hash, &isStaff)
	if err == sql.ErrNoRows {
		return "", "", nil, errors.ValidationError("invalid username or password")
	}
	if err != nil {
		return "", "", nil, errors.InternalError("failed to look up user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", "", nil, errors.ValidationError("invalid username or password")
	}

	session := &Session{
		UserID:    userID,
		Username:  username,
		IsStaff:   isStaff,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	sessionID := a.generateSessionID()

	a.mu.Lock()
	a.sessions[sessionID] = session
	a.mu.Unlock()

	token, err := a.issueToken(session)
	if err != nil {
		return "", "", nil, err
	}
	return sessionID, token, session, nil
}

// Logout closes a session.
func (a *Auth) Logout(sessionID string) {
	a.mu.Lock()
	delete(a.sessions, sessionID)
	a.mu.Unlock()
}

// Impersonate marks a staff session as impersonated. Non-staff sessions
// cannot impersonate.
func (a *Auth) Impersonate(sessionID string) (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	session, exists := a.sessions[sessionID]
	if !exists || time.Now().After(session.ExpiresAt) {
		return nil, errors.NotFoundError("session")
	}
	if !session.IsStaff {
		return nil, errors.ValidationError("only staff sessions can impersonate")
	}
	session.Impersonated = true
	return session, nil
}

// ValidateSession looks up a live session by id, dropping it when expired.
func (a *Auth) ValidateSession(sessionID string) (*Session, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	session, exists := a.sessions[sessionID]
	if !exists {
		return nil, false
	}
	if time.Now().After(session.ExpiresAt) {
		delete(a.sessions, sessionID)
		return nil, false
	}
	return session, true
}

// tokenClaims are the JWT claims carried by API tokens.
type tokenClaims struct {
	Username     string `json:"username"`
	IsStaff      bool   `json:"is_staff"`
	Impersonated bool   `json:"impersonated"`
	jwt.RegisteredClaims
}

func (a *Auth) issueToken(session *Session) (string, error) {
	claims := tokenClaims{
		Username:     session.Username,
		IsStaff:      session.IsStaff,
		Impersonated: session.Impersonated,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", session.UserID),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", errors.InternalError("failed to sign token", err)
	}
	return signed, nil
}

// ValidateToken parses a bearer token into a session view.
func (a *Auth) ValidateToken(tokenString string) (*Session, bool) {
	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	var userID int
	fmt.Sscanf(claims.Subject, "%d", &userID)
	return &Session{
		UserID:       userID,
		Username:     claims.Username,
		IsStaff:      claims.IsStaff,
		Impersonated: claims.Impersonated,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, true
}

// CleanupExpiredSessions drops expired sessions.
func (a *Auth) CleanupExpiredSessions() {
	now := time.Now()
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, session := range a.sessions {
		if now.After(session.ExpiresAt) {
			delete(a.sessions, id)
		}
	}
}
