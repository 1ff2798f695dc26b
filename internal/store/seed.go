package store

import (
	"context"
	"fmt"
	"log/slog"

	"sheetpress/internal/models"
)

// SeedAdmin creates an initial admin account when the admins tab has no
// active account, so a fresh spreadsheet can be bootstrapped without
// hand-crafting a bcrypt hash. No-op when any active admin exists or the
// seed credentials are unset.
func SeedAdmin(ctx context.Context, admins *AdminStore, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := admins.List(ctx)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	for _, admin := range existing {
		if admin.Active {
			return nil
		}
	}

	admin, err := admins.Create(ctx, email, password, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	slog.Info("seeded initial admin account", "email", admin.Email, "row", admin.RowIndex)
	return nil
}
