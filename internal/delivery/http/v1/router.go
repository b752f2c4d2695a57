package v1

import (
	"net/http"

	"alumni-portal-backend/config"
	"alumni-portal-backend/internal/delivery/http/middleware"
	"alumni-portal-backend/internal/delivery/http/response"
	"alumni-portal-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		deps.Config.RateLimitWindow,
	)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// All job and application routes require a verified identity from the gateway.
	protected := v1.Group("")
	protected.Use(middleware.IdentityMiddleware())
	{
		applyLimiter := middleware.RateLimitMiddleware(middleware.ApplyRateLimitConfig(
			deps.Config.RateLimitApplyThreshold,
			deps.Config.RateLimitWindow,
		))

		NewJobHandler(protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC, applyLimiter)
	}

	return r
}
