package domain

import "time"

// Job is a posting created by an Approved company.
type Job struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	PostedBy    string    `json:"postedBy"` // user id of the posting account
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	SalaryMin   int       `json:"salaryMin,omitempty"`
	SalaryMax   int       `json:"salaryMax,omitempty"`
	Deadline    time.Time `json:"deadline,omitzero"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
