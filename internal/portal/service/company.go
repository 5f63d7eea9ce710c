package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/placementpro/placementd/internal/portal/domain"
	"github.com/placementpro/placementd/internal/portal/media"
	"github.com/placementpro/placementd/internal/portal/store"
	"github.com/placementpro/placementd/pkg/idx"
	"github.com/placementpro/placementd/pkg/slogx"
)

// CompanyService manages company profiles. Each Company-role account owns
// at most one profile; new profiles start Pending and only an Admin moves
// them out of it.
type CompanyService struct {
	Store store.Store
	Media media.Storage
}

type CompanyParams struct {
	Name        string
	Description string
	Website     string
	Location    string
	Industry    string
	FoundedYear int
}

func (s *CompanyService) CreateProfile(ctx context.Context, ownerID string, p CompanyParams) (domain.Company, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Company{}, ErrValidation
	}

	now := time.Now().UTC()
	company := domain.Company{
		ID:          idx.New().String(),
		OwnerID:     ownerID,
		Name:        p.Name,
		Description: p.Description,
		Website:     p.Website,
		Location:    p.Location,
		Industry:    p.Industry,
		FoundedYear: p.FoundedYear,
		Status:      domain.CompanyPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Companies().CreateCompany(ctx, company); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Company{}, ErrCompanyExists
		}
		return domain.Company{}, err
	}

	slogx.FromContext(ctx).Info("company profile created",
		slog.String("company_id", company.ID),
		slog.String("owner_id", ownerID),
	)
	return company, nil
}

func (s *CompanyService) GetByID(ctx context.Context, id string) (domain.Company, error) {
	c, err := s.Store.Companies().GetCompanyByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Company{}, ErrNotFound
	}
	return c, err
}

func (s *CompanyService) GetByOwner(ctx context.Context, ownerID string) (domain.Company, error) {
	c, err := s.Store.Companies().GetCompanyByOwner(ctx, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Company{}, ErrNotFound
	}
	return c, err
}

// UpdateProfile rewrites the owner's profile details. Moderation status is
// not reachable through this path.
func (s *CompanyService) UpdateProfile(ctx context.Context, ownerID string, p CompanyParams) (domain.Company, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Company{}, ErrValidation
	}

	company, err := s.GetByOwner(ctx, ownerID)
	if err != nil {
		return domain.Company{}, err
	}

	company.Name = p.Name
	company.Description = p.Description
	company.Website = p.Website
	company.Location = p.Location
	company.Industry = p.Industry
	company.FoundedYear = p.FoundedYear

	if err := s.Store.Companies().UpdateCompanyDetails(ctx, company); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Company{}, ErrNotFound
		}
		return domain.Company{}, err
	}
	return s.Store.Companies().GetCompanyByID(ctx, company.ID)
}

// SetStatus is the Admin moderation switch.
func (s *CompanyService) SetStatus(ctx context.Context, companyID, status string) (domain.Company, error) {
	if !domain.ValidCompanyStatus(status) {
		return domain.Company{}, ErrValidation
	}

	err := s.Store.Companies().UpdateCompanyStatus(ctx, companyID, domain.CompanyStatus(status))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Company{}, ErrNotFound
		}
		return domain.Company{}, err
	}

	slogx.FromContext(ctx).Info("company status changed",
		slog.String("company_id", companyID),
		slog.String("status", status),
	)
	return s.Store.Companies().GetCompanyByID(ctx, companyID)
}

// UploadLogo stores the image against the owner's profile.
func (s *CompanyService) UploadLogo(ctx context.Context, ownerID string, r io.Reader, size int64, contentType string) (string, error) {
	if s.Media == nil {
		return "", ErrMediaUnavailable
	}

	ext, err := media.ImageExt(contentType)
	if err != nil {
		return "", ErrValidation
	}

	company, err := s.GetByOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}

	key := "logos/" + company.ID + ext
	url, err := s.Media.Upload(ctx, key, r, size, contentType)
	if err != nil {
		return "", err
	}

	if err := s.Store.Companies().UpdateCompanyLogo(ctx, company.ID, url); err != nil {
		return "", err
	}
	return url, nil
}
