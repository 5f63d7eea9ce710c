package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/store/memstore"
)

func TestSeedAdminIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := memstore.New()
	svc := &BootstrapService{Store: st}

	require.NoError(t, svc.SeedAdmin(ctx, "admin@example.com", "root-password"))

	admin, err := st.Users().GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, admin.Role)
	require.True(t, admin.Verified)

	// Running again changes nothing.
	require.NoError(t, svc.SeedAdmin(ctx, "admin@example.com", "different-password"))

	again, err := st.Users().GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.Equal(t, admin.ID, again.ID)
	require.Equal(t, admin.PasswordHash, again.PasswordHash)
}

func TestSeedAdminSkippedWithoutConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := memstore.New()
	svc := &BootstrapService{Store: st}

	require.NoError(t, svc.SeedAdmin(ctx, "", ""))

	exists, err := st.Users().AdminExists(ctx)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestSeedAdminDoesNotEscalateExistingAccount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := memstore.New()

	auth, _ := newTestAuth(t)
	auth.Store = st
	register(t, auth, "taken@example.com", "pw-strong", "Student")

	svc := &BootstrapService{Store: st}
	require.NoError(t, svc.SeedAdmin(ctx, "taken@example.com", "root-password"))

	u, err := st.Users().GetUserByEmail(ctx, "taken@example.com")
	require.NoError(t, err)
	require.Equal(t, domain.RoleStudent, u.Role)
}
