package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/store"
)

func seedUser(t *testing.T, s *Store, id, email string) {
	t.Helper()
	err := s.Users().CreateUser(context.Background(), domain.User{
		ID:        id,
		FirstName: "Test",
		Email:     email,
		Role:      domain.RoleStudent,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestUsersEmailLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := New()
	seedUser(t, s, "u1", "casey@example.com")

	u, err := s.Users().GetUserByEmail(context.Background(), "Casey@Example.COM")
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
}

func TestUsersDuplicateEmailRejected(t *testing.T) {
	t.Parallel()

	s := New()
	seedUser(t, s, "u1", "dup@example.com")

	err := s.Users().CreateUser(context.Background(), domain.User{ID: "u2", Email: "dup@example.com"})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestReplaceRefreshTokenCompareAndSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New()
	seedUser(t, s, "u1", "rot@example.com")

	require.NoError(t, s.Users().SetRefreshToken(ctx, "u1", "tok-a"))

	// Matching presented value swaps.
	require.NoError(t, s.Users().ReplaceRefreshToken(ctx, "u1", "tok-a", "tok-b"))

	u, err := s.Users().GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, u.RefreshToken)
	require.Equal(t, "tok-b", *u.RefreshToken)

	// Replaying the superseded value fails and leaves the stored token alone.
	err = s.Users().ReplaceRefreshToken(ctx, "u1", "tok-a", "tok-c")
	require.ErrorIs(t, err, store.ErrNotFound)

	u, err = s.Users().GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "tok-b", *u.RefreshToken)
}

func TestReplaceRefreshTokenConcurrentSingleWinner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New()
	seedUser(t, s, "u1", "race@example.com")
	require.NoError(t, s.Users().SetRefreshToken(ctx, "u1", "tok-a"))

	const racers = 16
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := range racers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Users().ReplaceRefreshToken(ctx, "u1", "tok-a", "tok-next")
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, store.ErrNotFound)
		}
	}
	require.Equal(t, 1, wins)
}

func TestClearRefreshTokenIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New()
	seedUser(t, s, "u1", "clear@example.com")
	require.NoError(t, s.Users().SetRefreshToken(ctx, "u1", "tok-a"))

	require.NoError(t, s.Users().ClearRefreshToken(ctx, "u1"))
	require.NoError(t, s.Users().ClearRefreshToken(ctx, "u1"))

	u, err := s.Users().GetUserByID(ctx, "u1")
	require.NoError(t, err)
	require.Nil(t, u.RefreshToken)
}

func TestCompaniesOnePerOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New()

	require.NoError(t, s.Companies().CreateCompany(ctx, domain.Company{
		ID: "c1", OwnerID: "u1", Name: "Acme", Status: domain.CompanyPending,
	}))
	err := s.Companies().CreateCompany(ctx, domain.Company{
		ID: "c2", OwnerID: "u1", Name: "Acme Again", Status: domain.CompanyPending,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.Companies().GetCompanyByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "c1", got.ID)
}

func TestJobsListNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := New()

	for _, id := range []string{"01A", "01C", "01B"} {
		require.NoError(t, s.Jobs().CreateJob(ctx, domain.Job{ID: id, CompanyID: "c1", Title: "t"}))
	}

	jobs, err := s.Jobs().ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	require.Equal(t, "01C", jobs[0].ID)
	require.Equal(t, "01B", jobs[1].ID)
	require.Equal(t, "01A", jobs[2].ID)
}
