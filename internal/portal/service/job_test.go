package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/store/memstore"
)

func newJobFixture(t *testing.T) (*JobService, *CompanyService, *memstore.Store) {
	t.Helper()

	st := memstore.New()
	return &JobService{Store: st}, &CompanyService{Store: st}, st
}

func approvedCompany(t *testing.T, companies *CompanyService, st *memstore.Store, ownerID, name string) domain.Company {
	t.Helper()

	ctx := context.Background()
	c, err := companies.CreateProfile(ctx, ownerID, CompanyParams{Name: name})
	require.NoError(t, err)

	c, err = companies.SetStatus(ctx, c.ID, "Approved")
	require.NoError(t, err)
	return c
}

func TestCreateJobRequiresApprovedCompany(t *testing.T) {
	t.Parallel()

	jobs, companies, _ := newJobFixture(t)
	ctx := context.Background()

	// No profile at all.
	_, err := jobs.Create(ctx, "owner-1", JobParams{Title: "Backend Engineer"})
	require.ErrorIs(t, err, ErrCompanyNotApproved)

	// Pending profile.
	_, err = companies.CreateProfile(ctx, "owner-1", CompanyParams{Name: "Acme"})
	require.NoError(t, err)
	_, err = jobs.Create(ctx, "owner-1", JobParams{Title: "Backend Engineer"})
	require.ErrorIs(t, err, ErrCompanyNotApproved)

	// Approved profile.
	c, err := companies.GetByOwner(ctx, "owner-1")
	require.NoError(t, err)
	_, err = companies.SetStatus(ctx, c.ID, "Approved")
	require.NoError(t, err)

	job, err := jobs.Create(ctx, "owner-1", JobParams{Title: "Backend Engineer"})
	require.NoError(t, err)
	require.Equal(t, c.ID, job.CompanyID)
	require.Equal(t, "owner-1", job.PostedBy)
}

func TestJobValidation(t *testing.T) {
	t.Parallel()

	jobs, companies, st := newJobFixture(t)
	ctx := context.Background()
	approvedCompany(t, companies, st, "owner-1", "Acme")

	_, err := jobs.Create(ctx, "owner-1", JobParams{Title: "   "})
	require.ErrorIs(t, err, ErrValidation)

	_, err = jobs.Create(ctx, "owner-1", JobParams{Title: "Dev", SalaryMin: 90000, SalaryMax: 50000})
	require.ErrorIs(t, err, ErrValidation)
}

func TestJobUpdateAuthorization(t *testing.T) {
	t.Parallel()

	jobs, companies, st := newJobFixture(t)
	ctx := context.Background()
	approvedCompany(t, companies, st, "owner-1", "Acme")
	approvedCompany(t, companies, st, "owner-2", "Globex")

	job, err := jobs.Create(ctx, "owner-1", JobParams{Title: "Backend Engineer"})
	require.NoError(t, err)

	// A different company's owner cannot touch it.
	_, err = jobs.Update(ctx, "owner-2", domain.RoleCompany, job.ID, JobParams{Title: "Hijacked"})
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, jobs.Delete(ctx, "owner-2", domain.RoleCompany, job.ID), ErrForbidden)

	// The owner can.
	updated, err := jobs.Update(ctx, "owner-1", domain.RoleCompany, job.ID, JobParams{Title: "Senior Backend Engineer"})
	require.NoError(t, err)
	require.Equal(t, "Senior Backend Engineer", updated.Title)

	// So can an Admin, regardless of ownership.
	require.NoError(t, jobs.Delete(ctx, "admin-1", domain.RoleAdmin, job.ID))

	_, err = jobs.GetByID(ctx, job.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCompanyProfileLifecycle(t *testing.T) {
	t.Parallel()

	_, companies, _ := newJobFixture(t)
	ctx := context.Background()

	c, err := companies.CreateProfile(ctx, "owner-1", CompanyParams{Name: "Acme", Industry: "Robotics"})
	require.NoError(t, err)
	require.Equal(t, domain.CompanyPending, c.Status)

	// One profile per owner.
	_, err = companies.CreateProfile(ctx, "owner-1", CompanyParams{Name: "Acme Again"})
	require.ErrorIs(t, err, ErrCompanyExists)

	// Owner edits details but cannot reach status through profile updates.
	updated, err := companies.UpdateProfile(ctx, "owner-1", CompanyParams{Name: "Acme Corp", Industry: "Robotics"})
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", updated.Name)
	require.Equal(t, domain.CompanyPending, updated.Status)

	// Unknown status values are rejected.
	_, err = companies.SetStatus(ctx, c.ID, "Golden")
	require.ErrorIs(t, err, ErrValidation)

	approved, err := companies.SetStatus(ctx, c.ID, "Approved")
	require.NoError(t, err)
	require.Equal(t, domain.CompanyApproved, approved.Status)
}
