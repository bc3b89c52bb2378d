package domain

import (
	"slices"
	"time"
)

// Job status constants
const (
	JobStatusActive = "active"
	JobStatusPaused = "paused"
	JobStatusClosed = "closed"
)

// Employment type constants
const (
	JobTypeFullTime  = "full-time"
	JobTypeContract  = "contract"
	JobTypeFreelance = "freelance"
)

var (
	jobStatuses = []string{JobStatusActive, JobStatusPaused, JobStatusClosed}
	jobTypes    = []string{JobTypeFullTime, JobTypeContract, JobTypeFreelance}
)

// Job is a job posting shown on the board
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	CompanyID    string    `json:"companyId"`
	Location     string    `json:"location"`
	Country      string    `json:"country"`
	Type         string    `json:"type"`
	SalaryMin    int       `json:"salaryMin"`
	SalaryMax    int       `json:"salaryMax"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	Applications int       `json:"applications"`
	Views        int       `json:"views"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Technologies []string  `json:"technologies"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Benefits     []string  `json:"benefits"`
}

// Clone returns a deep copy so callers never share slices with the store
func (j Job) Clone() Job {
	j.Technologies = slices.Clone(j.Technologies)
	j.Requirements = slices.Clone(j.Requirements)
	j.Benefits = slices.Clone(j.Benefits)
	return j
}

// JobStatuses returns the legal job status values
func JobStatuses() []string {
	return slices.Clone(jobStatuses)
}

// IsValidJobStatus reports whether status is one of active, paused, closed
func IsValidJobStatus(status string) bool {
	return slices.Contains(jobStatuses, status)
}

// IsValidJobType reports whether t is a known employment type
func IsValidJobType(t string) bool {
	return slices.Contains(jobTypes, t)
}

// Validate checks the enumerated fields. An empty status is accepted and
// defaulted by the store on create.
func (j Job) Validate() error {
	if !IsValidJobType(j.Type) {
		return NewValidationError("Invalid type. Must be: full-time, contract, or freelance")
	}
	if j.Status != "" && !IsValidJobStatus(j.Status) {
		return NewValidationError("Invalid status. Must be: active, paused, or closed")
	}
	return nil
}
