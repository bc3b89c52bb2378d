package dto

import (
	"github.com/cuongbtq/tunel-admin/internal/api/domain"
	"github.com/cuongbtq/tunel-admin/internal/api/query"
)

// CreateCompanyRequest is the body of POST /api/companies
type CreateCompanyRequest struct {
	Name        string   `json:"name" validate:"required"`
	Country     string   `json:"country" validate:"required"`
	City        string   `json:"city" validate:"required"`
	Industry    string   `json:"industry" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Logo        string   `json:"logo"`
	Website     string   `json:"website"`
	Employees   string   `json:"employees"`
	FoundedYear int      `json:"foundedYear"`
	Culture     string   `json:"culture"`
	Benefits    []string `json:"benefits"`
	TechStack   []string `json:"techStack"`
	Status      string   `json:"status"`
	Featured    bool     `json:"featured"`
}

// ToDomain converts the request into a company ready for the store
func (r CreateCompanyRequest) ToDomain() domain.Company {
	return domain.Company{
		Name:        r.Name,
		Country:     r.Country,
		City:        r.City,
		Industry:    r.Industry,
		Description: r.Description,
		Logo:        r.Logo,
		Website:     r.Website,
		Employees:   r.Employees,
		FoundedYear: r.FoundedYear,
		Culture:     r.Culture,
		Benefits:    r.Benefits,
		TechStack:   r.TechStack,
		Status:      r.Status,
		Featured:    r.Featured,
	}
}

// UpdateCompanyRequest is the body of PUT /api/companies/:id. The slug is
// derived from name and cannot be set directly.
type UpdateCompanyRequest struct {
	Name        *string   `json:"name"`
	Logo        *string   `json:"logo"`
	Website     *string   `json:"website"`
	Country     *string   `json:"country"`
	City        *string   `json:"city"`
	Employees   *string   `json:"employees"`
	FoundedYear *int      `json:"foundedYear"`
	Industry    *string   `json:"industry"`
	Description *string   `json:"description"`
	Culture     *string   `json:"culture"`
	Benefits    *[]string `json:"benefits"`
	TechStack   *[]string `json:"techStack"`
	Status      *string   `json:"status"`
	Featured    *bool     `json:"featured"`
}

// Apply merges the provided fields over company
func (r UpdateCompanyRequest) Apply(company *domain.Company) {
	set(&company.Name, r.Name)
	set(&company.Logo, r.Logo)
	set(&company.Website, r.Website)
	set(&company.Country, r.Country)
	set(&company.City, r.City)
	set(&company.Employees, r.Employees)
	set(&company.FoundedYear, r.FoundedYear)
	set(&company.Industry, r.Industry)
	set(&company.Description, r.Description)
	set(&company.Culture, r.Culture)
	setList(&company.Benefits, r.Benefits)
	setList(&company.TechStack, r.TechStack)
	set(&company.Status, r.Status)
	set(&company.Featured, r.Featured)
}

// UpdateFeaturedRequest is the body of PATCH /api/companies/:id/featured
type UpdateFeaturedRequest struct {
	Featured *bool `json:"featured" validate:"required"`
}

type ListCompaniesQuery struct {
	Page     string `form:"page"`
	Limit    string `form:"limit"`
	Search   string `form:"search"`
	Country  string `form:"country"`
	Industry string `form:"industry"`
	Status   string `form:"status"`
}

type CompanyFilters struct {
	Search   *string `json:"search"`
	Country  *string `json:"country"`
	Industry *string `json:"industry"`
	Status   *string `json:"status"`
	Featured *bool   `json:"featured"`
}

// NewCompanyFilters builds the filter echo from a list query
func NewCompanyFilters(q ListCompaniesQuery, featured *bool) CompanyFilters {
	return CompanyFilters{
		Search:   nullable(q.Search),
		Country:  nullable(q.Country),
		Industry: nullable(q.Industry),
		Status:   nullable(q.Status),
		Featured: featured,
	}
}

type ListCompaniesResponse struct {
	Success    bool                `json:"success"`
	Companies  []domain.Company    `json:"companies"`
	Pagination query.Pagination    `json:"pagination"`
	Filters    CompanyFilters      `json:"filters"`
	Stats      domain.CompanyStats `json:"stats"`
}

type CompanyResponse struct {
	Success bool           `json:"success"`
	Company domain.Company `json:"company"`
	Message string         `json:"message,omitempty"`
}

type DeletedCompany struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DeleteCompanyResponse struct {
	Success        bool           `json:"success"`
	Message        string         `json:"message"`
	DeletedCompany DeletedCompany `json:"deletedCompany"`
}
