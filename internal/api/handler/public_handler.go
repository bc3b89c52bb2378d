package handler

import "github.com/gin-gonic/gin"

// PublicHandler serves the read-only lists used by the public site.
// Anonymous callers only see active records.
type PublicHandler struct {
	jobs      *JobHandler
	companies *CompanyHandler
}

func NewPublicHandler(jobs *JobHandler, companies *CompanyHandler) *PublicHandler {
	return &PublicHandler{jobs: jobs, companies: companies}
}

// ListJobs handles GET /api/public/jobs
func (h *PublicHandler) ListJobs(c *gin.Context) {
	_, isAdmin := CurrentAdmin(c)
	h.jobs.listJobs(c, !isAdmin)
}

// ListCompanies handles GET /api/public/companies
func (h *PublicHandler) ListCompanies(c *gin.Context) {
	_, isAdmin := CurrentAdmin(c)
	h.companies.listCompanies(c, !isAdmin)
}
