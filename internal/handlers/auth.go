package handlers

import (
	"encoding/json"
	"net/http"

	"pipeline-console/internal/auth"
	"pipeline-console/internal/common/errors"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Username     string `json:"username"`
	IsStaff      bool   `json:"is_staff"`
	Impersonated bool   `json:"impersonated"`
	Token        string `json:"token,omitempty"`
}

// HandleLogin authenticates a user and opens a session.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Credentials"
// @Success 200 {object} sessionResponse "Session and API token"
// @Failure 400 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.ValidationError("invalid request body"))
		return
	}

	sessionID, token, session, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, sessionResponse{
		Username: session.Username,
		IsStaff:  session.IsStaff,
		Token:    token,
	})
}

// HandleLogout closes the current session.
// @Summary Log out
// @Tags auth
// @Success 204 "Logged out"
// @Router /auth/logout [post]
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session"); err == nil {
		h.auth.Logout(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: "session", Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetCurrentUser returns the authenticated session.
// @Summary Current session
// @Tags auth
// @Produce json
// @Security SessionAuth
// @Success 200 {object} sessionResponse
// @Router /auth/me [get]
func (h *Handlers) HandleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionResponse{
		Username:     r.Header.Get("X-Username"),
		Impersonated: auth.Impersonated(r),
	})
}

// HandleImpersonate marks the current staff session as impersonated,
// unlocking staff-gated catalog options.
// @Summary Impersonate
// @Tags auth
// @Produce json
// @Security SessionAuth
// @Success 200 {object} sessionResponse
// @Failure 400 {object} map[string]string "Not a staff session"
// @Router /auth/impersonate [post]
func (h *Handlers) HandleImpersonate(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session")
	if err != nil {
		writeError(w, errors.NotFoundError("session"))
		return
	}
	session, err := h.auth.Impersonate(cookie.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Username:     session.Username,
		IsStaff:      session.IsStaff,
		Impersonated: session.Impersonated,
	})
}
