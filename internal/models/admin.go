package models

// Role represents an admin account's permission level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// AdminUser represents an admin account backed by one spreadsheet row.
// Accounts are deactivated via the Active flag rather than deleted, which
// preserves the LastLoginAt audit trail.
type AdminUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize the hash
	Role         Role   `json:"role"`
	Active       bool   `json:"active"`
	LastLoginAt  string `json:"lastLoginAt,omitempty"`

	// RowIndex is the 1-indexed position of the backing row; zero means
	// the account has not been written yet.
	RowIndex int `json:"-"`
}

// IsAdmin returns true if the account has the admin role.
func (u *AdminUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
