package app

import (
	"toeic_prep_backend/docs"
	"toeic_prep_backend/internal/config"
	"toeic_prep_backend/internal/middleware"
	"toeic_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		attempts := authGroup.Group("/attempts")
		{
			attempts.POST("", c.attempt.Submit)
			attempts.GET("/latest/:userId", middleware.SelfOrStaff("userId"), c.attempt.GetLatest)
			attempts.GET("/history/:userId", middleware.SelfOrStaff("userId"), c.attempt.GetHistory)
			attempts.GET("/:id", c.attempt.GetAttempt)
		}

		drafts := authGroup.Group("/drafts")
		{
			drafts.POST("", c.draft.Save)
			drafts.GET("/:testType/:testKey", c.draft.Get)
			drafts.DELETE("/:testType/:testKey", c.draft.Delete)
		}

		levels := authGroup.Group("/levels")
		{
			levels.GET("/:userId", middleware.SelfOrStaff("userId"), c.level.GetLevels)
			levels.PUT("", c.level.ApplyLevel)
		}

		authGroup.GET("/tests/:testId/questions", c.question.ListTestQuestions)
		authGroup.GET("/tags", c.skillTag.ListTags)
	}
}
