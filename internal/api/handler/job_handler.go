package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/tunel-admin/internal/api/domain"
	"github.com/cuongbtq/tunel-admin/internal/api/dto"
	"github.com/cuongbtq/tunel-admin/internal/api/query"
	"github.com/cuongbtq/tunel-admin/internal/api/storage"
	"github.com/cuongbtq/tunel-admin/internal/audit"
	"github.com/gin-gonic/gin"
)

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	base
	jobs *storage.JobStore
}

func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		base: newBase(deps, resourceNames{singular: "Job", kind: "job"}),
		jobs: deps.Jobs,
	}
}

// ListJobs handles GET /api/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	h.listJobs(c, false)
}

// listJobs serves the admin and public lists. activeOnly pins the status
// filter to active whatever the caller asked for.
func (h *JobHandler) listJobs(c *gin.Context, activeOnly bool) {
	var q dto.ListJobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.respondError(c, errInvalidBody, "Failed to fetch jobs")
		return
	}
	if activeOnly {
		q.Status = domain.JobStatusActive
	}

	res := h.jobs.List(storage.JobFilter{
		Search:  q.Search,
		Status:  q.Status,
		Country: q.Country,
		Company: q.Company,
		Page:    query.ParsePage(q.Page, q.Limit),
	})

	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Success:    true,
		Jobs:       res.Items,
		Pagination: res.Pagination,
		Filters:    dto.NewJobFilters(q),
	})
}

// GetJob handles GET /api/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobs.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to fetch job")
		return
	}
	c.JSON(http.StatusOK, dto.JobResponse{Success: true, Job: job})
}

// CreateJob handles POST /api/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err, "Failed to create job")
		return
	}

	job := req.ToDomain()
	if err := job.Validate(); err != nil {
		h.respondError(c, err, "Failed to create job")
		return
	}

	job = h.jobs.Create(job)

	h.logger.Info("Job created",
		slog.String("job_id", job.ID),
		slog.String("title", job.Title),
		slog.String("admin_email", adminEmail(c)),
	)
	h.recordEntity(c, audit.ActionJobCreated, job.ID, "title", job.Title)

	c.JSON(http.StatusCreated, dto.JobResponse{
		Success: true,
		Job:     job,
		Message: "Job created successfully",
	})
}

// UpdateJob handles PUT /api/jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dto.UpdateJobRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err, "Failed to update job")
		return
	}

	job, err := h.jobs.Update(c.Param("id"), func(j *domain.Job) error {
		req.Apply(j)
		return j.Validate()
	})
	if err != nil {
		h.respondError(c, err, "Failed to update job")
		return
	}

	h.logger.Info("Job updated",
		slog.String("job_id", job.ID),
		slog.String("admin_email", adminEmail(c)),
	)
	h.recordEntity(c, audit.ActionJobUpdated, job.ID, "title", job.Title)

	c.JSON(http.StatusOK, dto.JobResponse{
		Success: true,
		Job:     job,
		Message: "Job updated successfully",
	})
}

// DeleteJob handles DELETE /api/jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	job, err := h.jobs.Delete(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to delete job")
		return
	}

	h.logger.Info("Job deleted",
		slog.String("job_id", job.ID),
		slog.String("admin_email", adminEmail(c)),
	)
	h.recordEntity(c, audit.ActionJobDeleted, job.ID, "title", job.Title)

	c.JSON(http.StatusOK, dto.DeleteJobResponse{
		Success:    true,
		Message:    "Job deleted successfully",
		DeletedJob: dto.DeletedJob{ID: job.ID, Title: job.Title},
	})
}

// UpdateJobStatus handles PATCH /api/jobs/:id/status
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	var req dto.UpdateJobStatusRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondError(c, err, "Failed to update job status")
		return
	}

	job, err := h.jobs.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err, "Failed to update job status")
		return
	}

	h.logger.Info("Job status changed",
		slog.String("job_id", job.ID),
		slog.String("status", job.Status),
		slog.String("admin_email", adminEmail(c)),
	)
	h.recordEntity(c, audit.ActionJobStatusChanged, job.ID, "status", job.Status)

	c.JSON(http.StatusOK, dto.JobResponse{
		Success: true,
		Job:     job,
		Message: fmt.Sprintf("Job status updated to %s", job.Status),
	})
}
