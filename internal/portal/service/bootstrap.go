package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/store"
	"github.com/placementpro/placementd/pkg/cryptox"
	"github.com/placementpro/placementd/pkg/idx"
	"github.com/placementpro/placementd/pkg/slogx"
)

// BootstrapService seeds the first Admin account from configuration. Admin
// is not a self-signup role, so without this there is no way to approve the
// first company.
type BootstrapService struct {
	Store store.Store
}

// SeedAdmin is idempotent: it does nothing when an Admin already exists or
// when no credentials are configured.
func (s *BootstrapService) SeedAdmin(ctx context.Context, email, password string) error {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		l.Debug("admin seeding skipped, no credentials configured")
		return nil
	}

	exists, err := s.Store.Users().AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := domain.User{
		ID:           idx.New().String(),
		FirstName:    "Admin",
		Email:        email,
		PasswordHash: hash,
		Avatar:       domain.DefaultAvatarURL("Admin", ""),
		Role:         domain.RoleAdmin,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, admin); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// The configured email belongs to an existing non-admin
			// account. Leave it alone rather than escalate it.
			l.Warn("admin seeding skipped, email already registered", slog.String("email", email))
			return nil
		}
		return err
	}

	l.Info("admin account seeded", slog.String("user_id", admin.ID))
	return nil
}
