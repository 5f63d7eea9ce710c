package domain

import "time"

// CompanyStatus is the moderation state of a company profile. Only
// Approved companies may post jobs.
type CompanyStatus string

const (
	CompanyPending   CompanyStatus = "Pending"
	CompanyApproved  CompanyStatus = "Approved"
	CompanyRejected  CompanyStatus = "Rejected"
	CompanySuspended CompanyStatus = "Suspended"
)

// ValidCompanyStatus reports whether s is a known moderation state.
func ValidCompanyStatus(s string) bool {
	switch CompanyStatus(s) {
	case CompanyPending, CompanyApproved, CompanyRejected, CompanySuspended:
		return true
	}
	return false
}

// Company is the profile a Company-role account manages. One profile per
// account.
type Company struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"ownerId"` // user id of the Company account
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Website     string        `json:"website"`
	Location    string        `json:"location"`
	Industry    string        `json:"industry"`
	FoundedYear int           `json:"foundedYear,omitempty"`
	Logo        string        `json:"logo,omitempty"`
	Status      CompanyStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
