// Package auth implements session authentication for admin accounts.
// Credentials are checked against spreadsheet-stored bcrypt hashes; on
// success a signed, time-limited token is issued. Tokens are stateless,
// so verification re-resolves the admin from the live sheet on every
// request, so deactivating an account revokes its outstanding tokens
// without waiting for expiry.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sheetpress/internal/models"
	"sheetpress/internal/store"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "admin_session"

	// TokenLifetime bounds how long an issued session stays valid.
	TokenLifetime = 8 * time.Hour
)

// Session is the minimal authenticated identity carried by a token.
// It never includes the password hash.
type Session struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// claims is the JWT payload for a session token.
type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Manager verifies credentials and issues/validates session tokens.
type Manager struct {
	admins        *store.AdminStore
	secret        []byte
	secureCookies bool
}

// NewManager creates a Manager signing tokens with the given secret.
// secureCookies marks session cookies HTTPS-only (disable in development).
func NewManager(admins *store.AdminStore, secret string, secureCookies bool) *Manager {
	return &Manager{
		admins:        admins,
		secret:        []byte(secret),
		secureCookies: secureCookies,
	}
}

// Authenticate checks an email/password pair against the admin table.
// Unknown emails, deactivated accounts, and wrong passwords all return
// (nil, nil); callers cannot distinguish which check failed. On success
// the admin's lastLoginAt is written through and the session returned.
func (m *Manager) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	admin, err := m.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.Active {
		return nil, nil
	}
	if !m.admins.CheckPassword(admin, password) {
		return nil, nil
	}

	if err := m.admins.RecordLogin(ctx, admin); err != nil {
		return nil, err
	}

	return &Session{ID: admin.ID, Email: admin.Email, Role: admin.Role}, nil
}

// Issue signs a token embedding the session identity with issue and
// expiry timestamps.
func (m *Manager) Issue(s *Session) (string, error) {
	now := time.Now()
	c := claims{
		Email: s.Email,
		Role:  string(s.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify checks the token's signature and expiry, then re-resolves the
// admin from the live table. Returns (nil, nil) for any invalid, expired,
// or revoked token; an error only when the backing store itself fails.
func (m *Manager) Verify(ctx context.Context, token string) (*Session, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, nil
	}

	admin, err := m.admins.FindByID(ctx, c.Subject)
	if err != nil {
		return nil, err
	}
	if admin == nil || !admin.Active {
		return nil, nil
	}

	return &Session{ID: admin.ID, Email: admin.Email, Role: admin.Role}, nil
}

// TokenFromRequest extracts the session token from the cookie, falling
// back to a Bearer authorization header for non-cookie clients. Returns
// an empty string when neither is present.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// AttachCookie sets the session cookie on the response.
func (m *Manager) AttachCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TokenLifetime.Seconds()),
	})
}

// ClearCookie expires the session cookie immediately.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
