// Package store defines the data access contract for the portal. Concrete
// drivers (mongo for production, memstore for tests) implement Store. The
// interface stays narrow: callers get exactly the operations the services
// need and nothing resembling a generic query builder.
package store

import (
	"context"
	"errors"

	"github.com/placementpro/placementd/internal/portal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface, exposing one repository per
// collection.
type Store interface {
	Users() Users
	Companies() Companies
	Jobs() Jobs

	// Ping verifies the backing store is reachable (readiness checks).
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close(ctx context.Context) error
}

type Users interface {
	// GetUserByID returns a user by id, including credential fields.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively (emails are stored
	// lowercased; the driver lowercases the argument too).
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// SetRefreshToken unconditionally overwrites the persisted refresh
	// token (login path: last writer wins, prior session implicitly
	// revoked). Only the one field is written, so no document-wide
	// re-validation happens on session churn.
	SetRefreshToken(ctx context.Context, userID, token string) error

	// ReplaceRefreshToken swaps the refresh token only if the persisted
	// value still equals presented (rotation path). Returns ErrNotFound
	// when the condition no longer holds, which turns the loser of a
	// concurrent double-rotation into a failure instead of a silent
	// second overwrite.
	ReplaceRefreshToken(ctx context.Context, userID, presented, next string) error

	// ClearRefreshToken nulls the field. Idempotent: clearing an already
	// clear token is not an error.
	ClearRefreshToken(ctx context.Context, userID string) error

	// UpdatePasswordHash stores a new password digest and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, hash string) error

	// UpdateName mutates the profile name fields.
	UpdateName(ctx context.Context, userID, firstName, lastName string) error

	// UpdateAvatar sets the avatar URL (empty string clears it back to a
	// generated placeholder chosen by the caller).
	UpdateAvatar(ctx context.Context, userID, avatarURL string) error

	// AdminExists reports whether any Admin-role account exists (used by
	// the idempotent bootstrap seeding).
	AdminExists(ctx context.Context) (bool, error)
}

type Companies interface {
	// CreateCompany inserts a profile; ErrAlreadyExists when the owner
	// already has one.
	CreateCompany(ctx context.Context, c domain.Company) error

	GetCompanyByID(ctx context.Context, id string) (domain.Company, error)
	GetCompanyByOwner(ctx context.Context, ownerID string) (domain.Company, error)

	// UpdateCompanyDetails rewrites the editable profile fields.
	UpdateCompanyDetails(ctx context.Context, c domain.Company) error

	// UpdateCompanyStatus flips the moderation state (Admin operation).
	UpdateCompanyStatus(ctx context.Context, id string, status domain.CompanyStatus) error

	// UpdateCompanyLogo sets the logo URL.
	UpdateCompanyLogo(ctx context.Context, id, logoURL string) error
}

type Jobs interface {
	CreateJob(ctx context.Context, j domain.Job) error
	GetJobByID(ctx context.Context, id string) (domain.Job, error)

	// ListJobs returns postings newest first.
	ListJobs(ctx context.Context) ([]domain.Job, error)

	// UpdateJob rewrites the editable posting fields.
	UpdateJob(ctx context.Context, j domain.Job) error

	DeleteJob(ctx context.Context, id string) error
}
