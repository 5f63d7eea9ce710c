package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/store"
	"github.com/placementpro/placementd/pkg/idx"
	"github.com/placementpro/placementd/pkg/slogx"
)

// JobService manages postings. Creating requires an Approved company
// profile; editing and deleting require owning the posting's company or
// being an Admin.
type JobService struct {
	Store store.Store
}

type JobParams struct {
	Title       string
	Description string
	Location    string
	SalaryMin   int
	SalaryMax   int
	Deadline    time.Time
}

func (p JobParams) validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrValidation
	}
	if p.SalaryMin < 0 || p.SalaryMax < 0 || (p.SalaryMax > 0 && p.SalaryMin > p.SalaryMax) {
		return ErrValidation
	}
	return nil
}

// Create posts a job on behalf of posterID's company.
func (s *JobService) Create(ctx context.Context, posterID string, p JobParams) (domain.Job, error) {
	if err := p.validate(); err != nil {
		return domain.Job{}, err
	}

	company, err := s.Store.Companies().GetCompanyByOwner(ctx, posterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Job{}, ErrCompanyNotApproved
		}
		return domain.Job{}, err
	}
	if company.Status != domain.CompanyApproved {
		return domain.Job{}, ErrCompanyNotApproved
	}

	now := time.Now().UTC()
	job := domain.Job{
		ID:          idx.New().String(),
		CompanyID:   company.ID,
		PostedBy:    posterID,
		Title:       strings.TrimSpace(p.Title),
		Description: p.Description,
		Location:    p.Location,
		SalaryMin:   p.SalaryMin,
		SalaryMax:   p.SalaryMax,
		Deadline:    p.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Jobs().CreateJob(ctx, job); err != nil {
		return domain.Job{}, err
	}

	slogx.FromContext(ctx).Info("job posted",
		slog.String("job_id", job.ID),
		slog.String("company_id", company.ID),
	)
	return job, nil
}

func (s *JobService) GetByID(ctx context.Context, id string) (domain.Job, error) {
	j, err := s.Store.Jobs().GetJobByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Job{}, ErrNotFound
	}
	return j, err
}

func (s *JobService) List(ctx context.Context) ([]domain.Job, error) {
	return s.Store.Jobs().ListJobs(ctx)
}

// Update edits a posting. actorID must own the posting's company unless
// actorRole is Admin.
func (s *JobService) Update(ctx context.Context, actorID string, actorRole domain.Role, jobID string, p JobParams) (domain.Job, error) {
	if err := p.validate(); err != nil {
		return domain.Job{}, err
	}

	job, err := s.GetByID(ctx, jobID)
	if err != nil {
		return domain.Job{}, err
	}

	if err := s.authorize(ctx, actorID, actorRole, job); err != nil {
		return domain.Job{}, err
	}

	job.Title = strings.TrimSpace(p.Title)
	job.Description = p.Description
	job.Location = p.Location
	job.SalaryMin = p.SalaryMin
	job.SalaryMax = p.SalaryMax
	job.Deadline = p.Deadline

	if err := s.Store.Jobs().UpdateJob(ctx, job); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Job{}, ErrNotFound
		}
		return domain.Job{}, err
	}
	return s.Store.Jobs().GetJobByID(ctx, jobID)
}

func (s *JobService) Delete(ctx context.Context, actorID string, actorRole domain.Role, jobID string) error {
	job, err := s.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, actorID, actorRole, job); err != nil {
		return err
	}

	if err := s.Store.Jobs().DeleteJob(ctx, jobID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("job deleted",
		slog.String("job_id", jobID),
		slog.String("actor_id", actorID),
	)
	return nil
}

func (s *JobService) authorize(ctx context.Context, actorID string, actorRole domain.Role, job domain.Job) error {
	if actorRole == domain.RoleAdmin {
		return nil
	}

	company, err := s.Store.Companies().GetCompanyByID(ctx, job.CompanyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if company.OwnerID != actorID {
		return ErrForbidden
	}
	return nil
}
