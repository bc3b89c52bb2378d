package router

import (
	"log/slog"

	"github.com/cuongbtq/tunel-admin/internal/api/handler"
	"github.com/cuongbtq/tunel-admin/internal/config"
	"github.com/gin-gonic/gin"
)

// Options controls the parts of the engine that come from configuration
type Options struct {
	CORS config.CORSConfig

	// StaticDir is served at /uploads when set. Only the local upload
	// driver has one.
	StaticDir string

	// MaxMultipartMemory is how much of a multipart body is held in memory
	// before spilling to temporary files
	MaxMultipartMemory int64
}

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, opts Options) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	if opts.MaxMultipartMemory > 0 {
		r.MaxMultipartMemory = opts.MaxMultipartMemory
	}

	// Middleware
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(logger))
	r.Use(LoggerMiddleware(logger))
	r.Use(CORSMiddleware(opts.CORS))

	systemHandler := handler.NewSystemHandler(deps)
	authHandler := handler.NewAuthHandler(deps)
	jobHandler := handler.NewJobHandler(deps)
	companyHandler := handler.NewCompanyHandler(deps)
	contentHandler := handler.NewContentHandler(deps)
	analyticsHandler := handler.NewAnalyticsHandler(deps)
	publicHandler := handler.NewPublicHandler(jobHandler, companyHandler)

	r.GET("/", systemHandler.Root)
	r.GET("/health", systemHandler.Health)
	r.NoRoute(systemHandler.NoRoute)

	if opts.StaticDir != "" {
		r.Static("/uploads", opts.StaticDir)
	}

	requireAdmin := RequireAdmin(deps.Auth)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/verify", requireAdmin, authHandler.Verify)
			authGroup.POST("/logout", requireAdmin, authHandler.Logout)
			authGroup.GET("/profile", requireAdmin, authHandler.Profile)
		}

		jobs := api.Group("/jobs", requireAdmin)
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.GET("/:id", jobHandler.GetJob)
			jobs.POST("", jobHandler.CreateJob)
			jobs.PUT("/:id", jobHandler.UpdateJob)
			jobs.DELETE("/:id", jobHandler.DeleteJob)
			jobs.PATCH("/:id/status", jobHandler.UpdateJobStatus)
		}

		companies := api.Group("/companies", requireAdmin)
		{
			companies.GET("", companyHandler.ListCompanies)
			companies.GET("/:id", companyHandler.GetCompany)
			companies.POST("", companyHandler.CreateCompany)
			companies.PUT("/:id", companyHandler.UpdateCompany)
			companies.DELETE("/:id", companyHandler.DeleteCompany)
			companies.PATCH("/:id/featured", companyHandler.UpdateFeatured)
		}

		content := api.Group("/content", requireAdmin)
		{
			content.GET("/homepage", contentHandler.GetHomepage)
			content.PUT("/homepage", contentHandler.UpdateHomepage)
			content.POST("/upload", contentHandler.UploadImage)
			content.POST("/upload/multiple", contentHandler.UploadImages)
			content.GET("/images", contentHandler.ListImages)
			content.DELETE("/images/:filename", contentHandler.DeleteImage)
		}

		analyticsGroup := api.Group("/analytics", requireAdmin)
		{
			analyticsGroup.GET("", analyticsHandler.Overview)
			analyticsGroup.GET("/dashboard", analyticsHandler.Dashboard)
			analyticsGroup.GET("/metrics/:metric", analyticsHandler.Metric)
		}

		public := api.Group("/public", OptionalAdmin(deps.Auth, logger))
		{
			public.GET("/jobs", publicHandler.ListJobs)
			public.GET("/companies", publicHandler.ListCompanies)
		}
	}

	return r
}
