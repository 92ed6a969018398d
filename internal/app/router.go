package app

import (
	"careerpath_backend/docs"
	"careerpath_backend/internal/config"
	"careerpath_backend/internal/middleware"
	"careerpath_backend/internal/model"
	"careerpath_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/me", c.auth.Me)

		student := authGroup.Group("/student")
		{
			student.POST("/profile", c.student.SaveProfile)
			student.GET("/institutions", c.student.ListInstitutions)
			student.POST("/select-institution", c.student.SelectInstitution)
			student.GET("/batches", c.student.AvailableBatches)
			student.POST("/join-batch", c.student.JoinBatch)
			student.GET("/batch-status", c.student.BatchStatus)
			student.GET("/assessment", c.student.Assessment)
			student.GET("/session", c.session.GetState)
			student.PUT("/session", c.session.SaveState)
			student.DELETE("/session", c.session.ClearState)
		}

		results := authGroup.Group("/results")
		{
			results.POST("/submit", c.result.Submit)
			results.GET("/my", c.result.MyResult)
		}

		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.POST("/institutions", c.assessment.CreateInstitution)
			admin.POST("/batches", c.assessment.CreateBatch)
			admin.POST("/assessments", c.assessment.Create)
			admin.DELETE("/assessments/:id", c.assessment.Rollback)
			admin.GET("/batches/:batchId/analytics", c.result.BatchAnalytics)
		}
	}
}
