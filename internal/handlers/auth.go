package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"sheetpress/internal/auth"
	"sheetpress/internal/middleware"
)

// Auth groups the authentication endpoints.
type Auth struct {
	manager *auth.Manager
}

// NewAuth creates a new Auth handler group.
func NewAuth(manager *auth.Manager) *Auth {
	return &Auth{manager: manager}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and, on success, attaches the session cookie
// and returns the session identity. The token is also usable as a bearer
// header by non-cookie clients.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	sess, err := a.manager.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Error("authentication failed against backing store", "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to sign in.")
		return
	}
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	token, err := a.manager.Issue(sess)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Unable to sign in.")
		return
	}

	a.manager.AttachCookie(w, token)
	respondJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"admin":         sess,
		"token":         token,
	})
}

// Session reports the current authentication state.
func (a *Auth) Session(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondJSON(w, http.StatusUnauthorized, map[string]any{"authenticated": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"admin":         sess,
	})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; full revocation is done by deactivating the admin account.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.manager.ClearCookie(w)
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
