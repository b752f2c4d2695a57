package v1

import (
	"net/http"
	"strconv"
	"time"

	"alumni-portal-backend/internal/delivery/http/middleware"
	"alumni-portal-backend/internal/delivery/http/response"
	"alumni-portal-backend/internal/domain"
	"alumni-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetDetails)
		jobs.POST("", handler.Create)
		jobs.PATCH("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
	}
}

type CreateJobRequest struct {
	Title       string    `json:"job_title" binding:"required"`
	Description string    `json:"job_description" binding:"required"`
	Designation string    `json:"designation" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	Mode        string    `json:"mode" binding:"required"`
	Experience  string    `json:"experience" binding:"required"`
	Salary      string    `json:"salary" binding:"required"`
	Vacancy     int       `json:"vacancy" binding:"required,gt=0"`
	JoiningDate time.Time `json:"joining_date" binding:"required"`
	OpenTill    time.Time `json:"open_till" binding:"required"`
	Status      string    `json:"status" binding:"required"`
}

type UpdateJobRequest struct {
	Title       *string    `json:"job_title"`
	Description *string    `json:"job_description"`
	Designation *string    `json:"designation"`
	Location    *string    `json:"location"`
	Mode        *string    `json:"mode"`
	Experience  *string    `json:"experience"`
	Salary      *string    `json:"salary"`
	Vacancy     *int       `json:"vacancy"`
	JoiningDate *time.Time `json:"joining_date"`
	OpenTill    *time.Time `json:"open_till"`
	Status      *string    `json:"status"`
}

// Query parameter names forwarded to the filter builder.
var jobFilterKeys = []string{
	"title", "description", "designation", "location", "mode", "experience",
	"salary", "vacancy", "joining_date", "open_till", "status", "owner_id",
	"page", "limit", "sort_by", "sort_order",
}

func (h *JobHandler) Create(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	job := &domain.Job{
		Title:       req.Title,
		Description: req.Description,
		Designation: req.Designation,
		Location:    req.Location,
		Mode:        req.Mode,
		Experience:  req.Experience,
		Salary:      req.Salary,
		Vacancy:     req.Vacancy,
		JoiningDate: req.JoiningDate,
		OpenTill:    req.OpenTill,
		Status:      req.Status,
	}

	created, err := h.jobUC.CreateJob(c.Request.Context(), ident, job)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", created)
}

func (h *JobHandler) List(c *gin.Context) {
	rawFilters := map[string]string{}
	for _, key := range jobFilterKeys {
		if v := c.Query(key); v != "" {
			rawFilters[key] = v
		}
	}

	list, err := h.jobUC.ListJobs(c.Request.Context(), rawFilters)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", list)
}

func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid job id"))
		return
	}

	job, err := h.jobUC.GetJobByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

func (h *JobHandler) Update(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid job id"))
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation(err.Error()))
		return
	}

	patch := &domain.JobPatch{
		Title:       req.Title,
		Description: req.Description,
		Designation: req.Designation,
		Location:    req.Location,
		Mode:        req.Mode,
		Experience:  req.Experience,
		Salary:      req.Salary,
		Vacancy:     req.Vacancy,
		JoiningDate: req.JoiningDate,
		OpenTill:    req.OpenTill,
		Status:      req.Status,
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), ident, id, patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid job id"))
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), ident, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}
