package mongo

import (
	"time"

	"github.com/placementpro/placementd/internal/portal/domain"
)

const (
	usersCollection     = "users"
	companiesCollection = "companies"
	jobsCollection      = "jobs"
)

// Field names are camelCase to match the portal's historical collection
// shape, so this driver can point at an existing database unchanged.
type userDoc struct {
	ID           string    `bson:"_id"`
	FirstName    string    `bson:"firstName"`
	LastName     string    `bson:"lastName,omitempty"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	Avatar       string    `bson:"avatar,omitempty"`
	Role         string    `bson:"role"`
	Verified     bool      `bson:"isVerified"`
	RefreshToken *string   `bson:"refreshToken,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func toUserDoc(u domain.User) userDoc {
	return userDoc{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
		Role:         string(u.Role),
		Verified:     u.Verified,
		RefreshToken: u.RefreshToken,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Avatar:       d.Avatar,
		Role:         domain.Role(d.Role),
		Verified:     d.Verified,
		RefreshToken: d.RefreshToken,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type companyDoc struct {
	ID          string    `bson:"_id"`
	OwnerID     string    `bson:"ownerId"`
	Name        string    `bson:"name"`
	Description string    `bson:"description,omitempty"`
	Website     string    `bson:"website,omitempty"`
	Location    string    `bson:"location,omitempty"`
	Industry    string    `bson:"industry,omitempty"`
	FoundedYear int       `bson:"foundedYear,omitempty"`
	Logo        string    `bson:"logo,omitempty"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func toCompanyDoc(c domain.Company) companyDoc {
	return companyDoc{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		Website:     c.Website,
		Location:    c.Location,
		Industry:    c.Industry,
		FoundedYear: c.FoundedYear,
		Logo:        c.Logo,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (d companyDoc) toDomain() domain.Company {
	return domain.Company{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Description: d.Description,
		Website:     d.Website,
		Location:    d.Location,
		Industry:    d.Industry,
		FoundedYear: d.FoundedYear,
		Logo:        d.Logo,
		Status:      domain.CompanyStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type jobDoc struct {
	ID          string    `bson:"_id"`
	CompanyID   string    `bson:"companyId"`
	PostedBy    string    `bson:"postedBy"`
	Title       string    `bson:"title"`
	Description string    `bson:"description,omitempty"`
	Location    string    `bson:"location,omitempty"`
	SalaryMin   int       `bson:"salaryMin,omitempty"`
	SalaryMax   int       `bson:"salaryMax,omitempty"`
	Deadline    time.Time `bson:"deadline,omitempty"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func toJobDoc(j domain.Job) jobDoc {
	return jobDoc{
		ID:          j.ID,
		CompanyID:   j.CompanyID,
		PostedBy:    j.PostedBy,
		Title:       j.Title,
		Description: j.Description,
		Location:    j.Location,
		SalaryMin:   j.SalaryMin,
		SalaryMax:   j.SalaryMax,
		Deadline:    j.Deadline,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func (d jobDoc) toDomain() domain.Job {
	return domain.Job{
		ID:          d.ID,
		CompanyID:   d.CompanyID,
		PostedBy:    d.PostedBy,
		Title:       d.Title,
		Description: d.Description,
		Location:    d.Location,
		SalaryMin:   d.SalaryMin,
		SalaryMax:   d.SalaryMax,
		Deadline:    d.Deadline,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
