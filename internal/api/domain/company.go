package domain

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

// Company status constants
const (
	CompanyStatusActive   = "active"
	CompanyStatusInactive = "inactive"
)

var (
	companyStatuses = []string{CompanyStatusActive, CompanyStatusInactive}
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// Company is an employer profile
type Company struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Logo              string    `json:"logo"`
	Website           string    `json:"website"`
	Country           string    `json:"country"`
	City              string    `json:"city"`
	Employees         string    `json:"employees"`
	FoundedYear       int       `json:"foundedYear"`
	Industry          string    `json:"industry"`
	Description       string    `json:"description"`
	Culture           string    `json:"culture"`
	Benefits          []string  `json:"benefits"`
	TechStack         []string  `json:"techStack"`
	ActiveJobs        int       `json:"activeJobs"`
	TotalApplications int       `json:"totalApplications"`
	Status            string    `json:"status"`
	Featured          bool      `json:"featured"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Clone returns a deep copy so callers never share slices with the store
func (c Company) Clone() Company {
	c.Benefits = slices.Clone(c.Benefits)
	c.TechStack = slices.Clone(c.TechStack)
	return c
}

// CompanyStats summarizes the whole company collection
type CompanyStats struct {
	TotalCompanies    int `json:"totalCompanies"`
	FeaturedCompanies int `json:"featuredCompanies"`
	ActiveCompanies   int `json:"activeCompanies"`
}

// IsValidCompanyStatus reports whether status is active or inactive
func IsValidCompanyStatus(status string) bool {
	return slices.Contains(companyStatuses, status)
}

// Slugify lowercases name and replaces every whitespace run with a hyphen
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
}

// Validate checks the enumerated fields. An empty status is accepted and
// defaulted by the store on create.
func (c Company) Validate() error {
	if c.Status != "" && !IsValidCompanyStatus(c.Status) {
		return NewValidationError("Invalid status. Must be: active or inactive")
	}
	return nil
}
