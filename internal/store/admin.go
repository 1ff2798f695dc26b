package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sheetpress/internal/models"
	"sheetpress/internal/sheets"
)

// AdminStore handles all admin-account operations against the admins tab.
// Accounts are soft-revoked via the active flag, never hard-deleted, so
// the last-login audit trail survives deactivation.
type AdminStore struct {
	client sheets.Client
	tab    string
}

// NewAdminStore creates an AdminStore reading and writing the given tab.
func NewAdminStore(client sheets.Client, tab string) *AdminStore {
	return &AdminStore{client: client, tab: tab}
}

func (s *AdminStore) scan(ctx context.Context) ([]models.AdminUser, error) {
	rng := sheets.DataRange(s.tab, len(adminColumns), sheets.DataStartRow, 0)
	rows, err := s.client.Read(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("scan admins: %w", err)
	}

	admins := make([]models.AdminUser, 0, len(rows))
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		admins = append(admins, decodeAdmin(row, sheets.DataStartRow+i))
	}
	return admins, nil
}

// List returns every admin account in row order.
func (s *AdminStore) List(ctx context.Context) ([]models.AdminUser, error) {
	return s.scan(ctx)
}

// FindByEmail returns the admin with the given email, compared
// case-insensitively. Returns nil if not found.
func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	admins, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	for i := range admins {
		if strings.EqualFold(admins[i].Email, strings.TrimSpace(email)) {
			return &admins[i], nil
		}
	}
	return nil, nil
}

// FindByID returns the admin with the given id. Returns nil if not found.
func (s *AdminStore) FindByID(ctx context.Context, id string) (*models.AdminUser, error) {
	admins, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}
	for i := range admins {
		if admins[i].ID == id {
			return &admins[i], nil
		}
	}
	return nil, nil
}

// Create appends a new active admin with a bcrypt-hashed password.
func (s *AdminStore) Create(ctx context.Context, email, password string, role models.Role) (*models.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if role == "" {
		role = models.RoleAdmin
	}

	admin := models.AdminUser{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}

	assigned, err := s.client.Append(ctx, sheets.AppendRange(s.tab), encodeAdmin(&admin))
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	admin.RowIndex = assigned
	return &admin, nil
}

// Save writes the full row back. A record with an assigned row address is
// rewritten in place; one without is appended and picks up its address
// from the append result.
func (s *AdminStore) Save(ctx context.Context, admin *models.AdminUser) error {
	if admin.RowIndex >= sheets.DataStartRow {
		rng := sheets.RowRange(s.tab, len(adminColumns), admin.RowIndex)
		if err := s.client.Update(ctx, rng, encodeAdmin(admin)); err != nil {
			return fmt.Errorf("save admin %s: %w", admin.ID, err)
		}
		return nil
	}

	assigned, err := s.client.Append(ctx, sheets.AppendRange(s.tab), encodeAdmin(admin))
	if err != nil {
		return fmt.Errorf("save admin %s: %w", admin.ID, err)
	}
	admin.RowIndex = assigned
	return nil
}

// RecordLogin stamps lastLoginAt with the current time and writes the row
// through to the sheet.
func (s *AdminStore) RecordLogin(ctx context.Context, admin *models.AdminUser) error {
	admin.LastLoginAt = nowISO()
	return s.Save(ctx, admin)
}

// SetActive flips the soft-revocation flag on the admin with the given id
// and reports whether the account existed. Outstanding session tokens for
// a deactivated admin fail verification on their next use.
func (s *AdminStore) SetActive(ctx context.Context, id string, active bool) (bool, error) {
	admin, err := s.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if admin == nil {
		return false, nil
	}

	admin.Active = active
	if err := s.Save(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *AdminStore) CheckPassword(admin *models.AdminUser, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil
}
