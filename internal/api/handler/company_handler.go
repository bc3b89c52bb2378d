package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cuongbtq/tunel-admin/internal/api/domain"
	"github.com/cuongbtq/tunel-admin/internal/api/dto"
	"github.com/cuongbtq/tunel-admin/internal/api/query"
	"github.com/cuongbtq/tunel-admin/internal/api/storage"
	"github.com/cuongbtq/tunel-admin/internal/audit"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company-related HTTP requests
type CompanyHandler struct {
	base
	companies *storage.CompanyStore
}

func NewCompanyHandler(deps *Dependencies) *CompanyHandler {
	return &CompanyHandler{
		base:      newBase(deps, resourceNames{singular: "Company", kind: "company"}),
		companies: deps.Companies,
	}
}

// ListCompanies handles GET /api/companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	h.listCompanies(c, false)
}

func (h *CompanyHandler) listCompanies(c *gin.Context, activeOnly bool) {
	var q dto.ListCompaniesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondError(c, errInvalidBody, "Failed to fetch companies")
		return
	}
	if activeOnly {
		q.Status = domain.CompanyStatusActive
	}

	// Any featured value other than "true" selects non-featured companies
	var featured *bool
	if raw, ok := c.GetQuery("featured"); ok {
		v := raw == strconv.FormatBool(true)
		featured = &v
	}

	res := h.companies.List(storage.CompanyFilter{
		Search:   q.Search,
		Country:  q.Country,
		Industry: q.Industry,
		Status:   q.Status,
		Featured: featured,
		Page:     query.ParsePage(q.Page, q.Limit),
	})

	c.JSON(http.StatusOK, dto.ListCompaniesResponse{
		Success:    true,
		Companies:  res.Items,
		Pagination: res.Pagination,
		Filters:    dto.NewCompanyFilters(q, featured),
		Stats:      h.companies.Stats(),
	})
}

// GetCompany handles GET /api/companies/:id
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companies.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch company")
		return
	}
	c.JSON(http.StatusOK, dto.CompanyResponse{Success: true, Company: company})
}

// CreateCompany handles POST /api/companies
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err, "Failed to create company")
		return
	}

	company := req.ToDomain()
	if err := company.Validate(); err != nil {
		h.respondError(c, err, "Failed to create company")
		return
	}

	company, err := h.companies.Create(company)
	if err != nil {
		h.respondError(c, err, "Failed to create company")
		return
	}

	h.logger.Info("Company created",
		slog.String("company_id", company.ID),
		slog.String("name", company.Name),
		slog.String("admin_email", adminEmail(c)),
	)
	h.recordEntity(c, audit.ActionCompanyCreated, company.ID, "name", company.Name)

	c.JSON(http.StatusCreated, dto.CompanyResponse{
		Success: true,
		Company: company,
		Message: "Company created successfully",
	})
}

// UpdateCompany handles PUT /api/companies/:id
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err, "Failed to update company")
		return
	}

	company, err := h.companies.Update(c.Param("id"), func(co *domain.Company) error {
		req.Apply(co)
		return co.Validate()
	})
	if err != nil {
		h.respondError(c, err, "Failed to update company")
		return
	}

	h.logger.Info("Company updated",
		slog.String("company_id", company.ID),
		slog.String("admin_email", adminEmail(c)),
	)
	h.recordEntity(c, audit.ActionCompanyUpdated, company.ID, "name", company.Name)

	c.JSON(http.StatusOK, dto.CompanyResponse{
		Success: true,
		Company: company,
		Message: "Company updated successfully",
	})
}

// DeleteCompany handles DELETE /api/companies/:id
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	company, err := h.companies.Delete(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to delete company")
		return
	}

	h.logger.Info("Company deleted",
		slog.String("company_id", company.ID),
		slog.String("admin_email", adminEmail(c)),
	)
	h.recordEntity(c, audit.ActionCompanyDeleted, company.ID, "name", company.Name)

	c.JSON(http.StatusOK, dto.DeleteCompanyResponse{
		Success:        true,
		Message:        "Company deleted successfully",
		DeletedCompany: dto.DeletedCompany{ID: company.ID, Name: company.Name},
	})
}

// UpdateFeatured handles PATCH /api/companies/:id/featured
func (h *CompanyHandler) UpdateFeatured(c *gin.Context) {
	var req dto.UpdateFeaturedRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err, "Failed to update company featured status")
		return
	}

	company, err := h.companies.SetFeatured(c.Param("id"), *req.Featured)
	if err != nil {
		h.respondError(c, err, "Failed to update company featured status")
		return
	}

	state := "unfeatured"
	if company.Featured {
		state = "featured"
	}

	h.logger.Info("Company featured status changed",
		slog.String("company_id", company.ID),
		slog.Bool("featured", company.Featured),
		slog.String("admin_email", adminEmail(c)),
	)
	h.recordEntity(c, audit.ActionCompanyFeaturedChanged, company.ID, "featured", strconv.FormatBool(company.Featured))

	c.JSON(http.StatusOK, dto.CompanyResponse{
		Success: true,
		Company: company,
		Message: "Company " + state + " successfully",
	})
}
