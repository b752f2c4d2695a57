package v1

import (
	"net/http"
	"strconv"

	"alumni-portal-backend/internal/delivery/http/middleware"
	"alumni-portal-backend/internal/delivery/http/response"
	"alumni-portal-backend/internal/domain"
	"alumni-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase, applyLimiter gin.HandlerFunc) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	jobs := protected.Group("/jobs")
	{
		jobs.POST("/:id/apply", applyLimiter, handler.Apply)
		jobs.DELETE("/:id/apply", handler.Withdraw)
		jobs.GET("/:id/applications", handler.ListByJob)
	}

	protected.GET("/applications/me", handler.ListMine)
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid job id"))
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), ident, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", gin.H{"application": app})
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid job id"))
		return
	}

	if err := h.applicationUC.Withdraw(c.Request.Context(), ident, jobID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}

func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.Validation("Invalid job id"))
		return
	}

	apps, err := h.applicationUC.ListApplicationsForJob(c.Request.Context(), ident, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications for job", gin.H{"applications": apps})
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	apps, err := h.applicationUC.ListMyApplications(c.Request.Context(), ident)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "My applications", gin.H{"applications": apps})
}
