// Package memstore is an in-memory store.Store used by tests. All operations
// are guarded by a single mutex, so the compare-and-set semantics of
// ReplaceRefreshToken hold under concurrent use exactly as they do in the
// mongo driver.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/store"
)

type Store struct {
	mu        sync.Mutex
	users     map[string]domain.User
	companies map[string]domain.Company
	jobs      map[string]domain.Job
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:     make(map[string]domain.User),
		companies: make(map[string]domain.Company),
		jobs:      make(map[string]domain.Job),
	}
}

func (s *Store) Users() store.Users         { return &usersRepo{s: s} }
func (s *Store) Companies() store.Companies { return &companiesRepo{s: s} }
func (s *Store) Jobs() store.Jobs           { return &jobsRepo{s: s} }

func (s *Store) Ping(context.Context) error  { return nil }
func (s *Store) Close(context.Context) error { return nil }

// cloneUser detaches the refresh token pointer so callers cannot mutate
// stored state through the returned copy.
func cloneUser(u domain.User) domain.User {
	if u.RefreshToken != nil {
		tok := *u.RefreshToken
		u.RefreshToken = &tok
	}
	return u
}

type usersRepo struct {
	s *Store
}

func (r *usersRepo) GetUserByID(_ context.Context, id string) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return domain.User{}, store.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *usersRepo) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email = strings.ToLower(email)
	for _, u := range r.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return domain.User{}, store.ErrNotFound
}

func (r *usersRepo) CreateUser(_ context.Context, u domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return store.ErrAlreadyExists
		}
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *usersRepo) SetRefreshToken(_ context.Context, userID, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.RefreshToken = &token
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func (r *usersRepo) ReplaceRefreshToken(_ context.Context, userID, presented, next string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	if u.RefreshToken == nil || *u.RefreshToken != presented {
		return store.ErrNotFound
	}
	u.RefreshToken = &next
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func (r *usersRepo) ClearRefreshToken(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.RefreshToken = nil
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func (r *usersRepo) UpdatePasswordHash(_ context.Context, userID, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func (r *usersRepo) UpdateName(_ context.Context, userID, firstName, lastName string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func (r *usersRepo) UpdateAvatar(_ context.Context, userID, avatarURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	u.Avatar = avatarURL
	u.UpdatedAt = time.Now().UTC()
	r.s.users[userID] = u
	return nil
}

func (r *usersRepo) AdminExists(_ context.Context) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Role == domain.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

type companiesRepo struct {
	s *Store
}

func (r *companiesRepo) CreateCompany(_ context.Context, c domain.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.companies {
		if existing.OwnerID == c.OwnerID {
			return store.ErrAlreadyExists
		}
	}
	r.s.companies[c.ID] = c
	return nil
}

func (r *companiesRepo) GetCompanyByID(_ context.Context, id string) (domain.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.companies[id]
	if !ok {
		return domain.Company{}, store.ErrNotFound
	}
	return c, nil
}

func (r *companiesRepo) GetCompanyByOwner(_ context.Context, ownerID string) (domain.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.companies {
		if c.OwnerID == ownerID {
			return c, nil
		}
	}
	return domain.Company{}, store.ErrNotFound
}

func (r *companiesRepo) UpdateCompanyDetails(_ context.Context, c domain.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.companies[c.ID]
	if !ok {
		return store.ErrNotFound
	}
	existing.Name = c.Name
	existing.Description = c.Description
	existing.Website = c.Website
	existing.Location = c.Location
	existing.Industry = c.Industry
	existing.FoundedYear = c.FoundedYear
	existing.UpdatedAt = time.Now().UTC()
	r.s.companies[c.ID] = existing
	return nil
}

func (r *companiesRepo) UpdateCompanyStatus(_ context.Context, id string, status domain.CompanyStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.companies[id]
	if !ok {
		return store.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now().UTC()
	r.s.companies[id] = c
	return nil
}

func (r *companiesRepo) UpdateCompanyLogo(_ context.Context, id, logoURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.companies[id]
	if !ok {
		return store.ErrNotFound
	}
	c.Logo = logoURL
	c.UpdatedAt = time.Now().UTC()
	r.s.companies[id] = c
	return nil
}

type jobsRepo struct {
	s *Store
}

func (r *jobsRepo) CreateJob(_ context.Context, j domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.jobs[j.ID] = j
	return nil
}

func (r *jobsRepo) GetJobByID(_ context.Context, id string) (domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	j, ok := r.s.jobs[id]
	if !ok {
		return domain.Job{}, store.ErrNotFound
	}
	return j, nil
}

func (r *jobsRepo) ListJobs(_ context.Context) ([]domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]domain.Job, 0, len(r.s.jobs))
	for _, j := range r.s.jobs {
		out = append(out, j)
	}
	// Newest first. ULIDs sort lexicographically by time, so the id is a
	// stable ordering key.
	sort.Slice(out, func(i, k int) bool { return out[i].ID > out[k].ID })
	return out, nil
}

func (r *jobsRepo) UpdateJob(_ context.Context, j domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.jobs[j.ID]
	if !ok {
		return store.ErrNotFound
	}
	existing.Title = j.Title
	existing.Description = j.Description
	existing.Location = j.Location
	existing.SalaryMin = j.SalaryMin
	existing.SalaryMax = j.SalaryMax
	existing.Deadline = j.Deadline
	existing.UpdatedAt = time.Now().UTC()
	r.s.jobs[j.ID] = existing
	return nil
}

func (r *jobsRepo) DeleteJob(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.jobs, id)
	return nil
}
