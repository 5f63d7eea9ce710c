package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/store/memstore"
	"github.com/placementpro/placementd/pkg/tokenx"
)

func newTestAuth(t *testing.T) (*AuthService, *memstore.Store) {
	t.Helper()

	codec, err := tokenx.New(tokenx.Config{
		AccessSecret:  []byte("test-access-secret-test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret-test-refresh-secret"),
		Issuer:        "placementd-test",
	})
	require.NoError(t, err)

	st := memstore.New()
	return &AuthService{Store: st, Codec: codec}, st
}

func register(t *testing.T, svc *AuthService, email, password, role string) domain.PublicUser {
	t.Helper()

	u, err := svc.Register(context.Background(), RegisterParams{
		FirstName: "Jordan",
		LastName:  "Lee",
		Email:     email,
		Password:  password,
		Role:      role,
	})
	require.NoError(t, err)
	return u
}

func TestRegisterDefaultsAndValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuth(t)
	ctx := context.Background()

	u := register(t, svc, "Student@Example.com", "hunter22", "")
	require.Equal(t, domain.RoleStudent, u.Role)
	require.Equal(t, "student@example.com", u.Email)
	require.NotEmpty(t, u.Avatar)

	// Admin is not a self-signup role.
	_, err := svc.Register(ctx, RegisterParams{
		FirstName: "Eve", Email: "eve@example.com", Password: "pw", Role: "Admin",
	})
	require.ErrorIs(t, err, ErrValidation)

	// Duplicate email, regardless of case.
	_, err = svc.Register(ctx, RegisterParams{
		FirstName: "Dup", Email: "STUDENT@example.com", Password: "pw",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginVerifiesCredentials(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuth(t)
	ctx := context.Background()
	register(t, svc, "casey@example.com", "correct-horse", "Company")

	_, _, err := svc.Login(ctx, "casey@example.com", "wrong-horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// An absent account is not a credential failure.
	_, _, err = svc.Login(ctx, "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrNotFound)

	user, pair, err := svc.Login(ctx, "casey@example.com", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// The access token carries the subject and role for the authz gate.
	claims, err := svc.Codec.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, "Company", claims.Role)
}

func TestSecondLoginSupersedesFirstSession(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuth(t)
	ctx := context.Background()
	register(t, svc, "two@example.com", "pw-strong", "")

	_, first, err := svc.Login(ctx, "two@example.com", "pw-strong")
	require.NoError(t, err)
	_, second, err := svc.Login(ctx, "two@example.com", "pw-strong")
	require.NoError(t, err)

	// The first session's refresh token is dead even though it has not
	// expired: only the stored token refreshes.
	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)

	// The stale replay does not knock out the live session.
	_, err = svc.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRotationAndReuseDetection(t *testing.T) {
	t.Parallel()

	svc, st := newTestAuth(t)
	ctx := context.Background()
	u := register(t, svc, "rotate@example.com", "pw-strong", "")

	_, pair, err := svc.Login(ctx, "rotate@example.com", "pw-strong")
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// Replaying the superseded token is reuse: the caller sees the
	// generic invalid-token error.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrTokenReuse)
	require.ErrorIs(t, err, ErrInvalidToken)

	// The live session is untouched by the replay: the rotated token is
	// still the stored one and still rotates.
	stored, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RefreshToken)
	require.Equal(t, rotated.RefreshToken, *stored.RefreshToken)

	_, err = svc.Refresh(ctx, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRefreshRejectsForgedAndForeignTokens(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuth(t)
	ctx := context.Background()
	register(t, svc, "forge@example.com", "pw-strong", "")

	_, pair, err := svc.Login(ctx, "forge@example.com", "pw-strong")
	require.NoError(t, err)

	// An access token is signed with the other secret and never refreshes.
	_, err = svc.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Refresh(ctx, "not-even-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshForDeletedAccount(t *testing.T) {
	t.Parallel()

	// A token signed for a subject with no user record behind it.
	codec, err := tokenx.New(tokenx.Config{
		AccessSecret:  []byte("test-access-secret-test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret-test-refresh-secret"),
		Issuer:        "placementd-test",
	})
	require.NoError(t, err)

	svc := &AuthService{Store: memstore.New(), Codec: codec}
	orphan, err := codec.IssueRefreshToken("01GONE00000000000000000000")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), orphan)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestConcurrentRefreshSingleWinner(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuth(t)
	ctx := context.Background()
	register(t, svc, "race@example.com", "pw-strong", "")

	_, pair, err := svc.Login(ctx, "race@example.com", "pw-strong")
	require.NoError(t, err)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := range racers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Refresh(ctx, pair.RefreshToken)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrInvalidToken)
		}
	}
	// The first store mutation can only be a successful swap, so exactly
	// one racer wins no matter the interleaving.
	require.Equal(t, 1, wins)
}

func TestLogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	svc, st := newTestAuth(t)
	ctx := context.Background()
	u := register(t, svc, "out@example.com", "pw-strong", "")

	_, pair, err := svc.Login(ctx, "out@example.com", "pw-strong")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, u.ID))

	stored, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, stored.RefreshToken)

	// Again, and for an account that does not exist: still fine.
	require.NoError(t, svc.Logout(ctx, u.ID))
	require.NoError(t, svc.Logout(ctx, "01GONE00000000000000000000"))

	// The session is gone even though the client kept its refresh token.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	svc, st := newTestAuth(t)
	ctx := context.Background()
	u := register(t, svc, "pw@example.com", "old-password", "")

	before, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)

	// Wrong current password leaves the digest untouched.
	err = svc.ChangePassword(ctx, u.ID, "not-the-old-one", "new-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	after, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, before.PasswordHash, after.PasswordHash)

	// Correct current password swaps it; old stops working, new works.
	require.NoError(t, svc.ChangePassword(ctx, u.ID, "old-password", "new-password"))

	_, _, err = svc.Login(ctx, "pw@example.com", "old-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "pw@example.com", "new-password")
	require.NoError(t, err)
}

func TestChangePasswordKeepsSessionAlive(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuth(t)
	ctx := context.Background()
	u := register(t, svc, "keep@example.com", "old-password", "")

	_, pair, err := svc.Login(ctx, "keep@example.com", "old-password")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "old-password", "new-password"))

	// The refresh token issued before the change still rotates.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
}
