package dto

import (
	"github.com/cuongbtq/tunel-admin/internal/api/domain"
	"github.com/cuongbtq/tunel-admin/internal/api/query"
)

// CreateJobRequest is the body of POST /api/jobs. Field order drives the
// order of missingFields in a validation error.
type CreateJobRequest struct {
	Title        string   `json:"title" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	Country      string   `json:"country" validate:"required"`
	Type         string   `json:"type" validate:"required"`
	SalaryMin    int      `json:"salaryMin" validate:"required"`
	SalaryMax    int      `json:"salaryMax" validate:"required"`
	CompanyID    string   `json:"companyId"`
	Currency     string   `json:"currency"`
	Status       string   `json:"status"`
	Technologies []string `json:"technologies"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
}

// ToDomain converts the request into a job ready for the store
func (r CreateJobRequest) ToDomain() domain.Job {
	return domain.Job{
		Title:        r.Title,
		Company:      r.Company,
		CompanyID:    r.CompanyID,
		Location:     r.Location,
		Country:      r.Country,
		Type:         r.Type,
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
		Currency:     r.Currency,
		Status:       r.Status,
		Technologies: r.Technologies,
		Description:  r.Description,
		Requirements: r.Requirements,
		Benefits:     r.Benefits,
	}
}

// UpdateJobRequest is the body of PUT /api/jobs/:id. Only the fields listed
// here can be changed; id, counters and timestamps are never taken from input.
type UpdateJobRequest struct {
	Title        *string   `json:"title"`
	Company      *string   `json:"company"`
	CompanyID    *string   `json:"companyId"`
	Location     *string   `json:"location"`
	Country      *string   `json:"country"`
	Type         *string   `json:"type"`
	SalaryMin    *int      `json:"salaryMin"`
	SalaryMax    *int      `json:"salaryMax"`
	Currency     *string   `json:"currency"`
	Status       *string   `json:"status"`
	Technologies *[]string `json:"technologies"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	Benefits     *[]string `json:"benefits"`
}

// Apply merges the provided fields over job
func (r UpdateJobRequest) Apply(job *domain.Job) {
	set(&job.Title, r.Title)
	set(&job.Company, r.Company)
	set(&job.CompanyID, r.CompanyID)
	set(&job.Location, r.Location)
	set(&job.Country, r.Country)
	set(&job.Type, r.Type)
	set(&job.SalaryMin, r.SalaryMin)
	set(&job.SalaryMax, r.SalaryMax)
	set(&job.Currency, r.Currency)
	set(&job.Status, r.Status)
	setList(&job.Technologies, r.Technologies)
	set(&job.Description, r.Description)
	setList(&job.Requirements, r.Requirements)
	setList(&job.Benefits, r.Benefits)
}

// UpdateJobStatusRequest is the body of PATCH /api/jobs/:id/status
type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}

// ListJobsQuery holds the raw list parameters. page and limit stay strings so
// unparsable values fall back to defaults instead of failing the request.
type ListJobsQuery struct {
	Page    string `form:"page"`
	Limit   string `form:"limit"`
	Search  string `form:"search"`
	Status  string `form:"status"`
	Country string `form:"country"`
	Company string `form:"company"`
}

// JobFilters echoes the filters applied to a list request, null when unset
type JobFilters struct {
	Search  *string `json:"search"`
	Status  *string `json:"status"`
	Country *string `json:"country"`
	Company *string `json:"company"`
}

// NewJobFilters builds the filter echo from a list query
func NewJobFilters(q ListJobsQuery) JobFilters {
	return JobFilters{
		Search:  nullable(q.Search),
		Status:  nullable(q.Status),
		Country: nullable(q.Country),
		Company: nullable(q.Company),
	}
}

type ListJobsResponse struct {
	Success    bool             `json:"success"`
	Jobs       []domain.Job     `json:"jobs"`
	Pagination query.Pagination `json:"pagination"`
	Filters    JobFilters       `json:"filters"`
}

type JobResponse struct {
	Success bool       `json:"success"`
	Job     domain.Job `json:"job"`
	Message string     `json:"message,omitempty"`
}

type DeletedJob struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type DeleteJobResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	DeletedJob DeletedJob `json:"deletedJob"`
}
