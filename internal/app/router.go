package app

import (
	"school_records_backend/docs"
	"school_records_backend/internal/middleware"
	"school_records_backend/internal/model"
	"school_records_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api")
	api.POST("/register", c.auth.Register)
	api.POST("/login", c.auth.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(a.Settings), middleware.ActivityMiddleware(repos.user))
	{
		authed.GET("/me", c.auth.Me)

		// Learner catalog: published/approved content only, with answer
		// keys stripped. Instructors can browse it too.
		learner := authed.Group("/learner")
		learner.Use(middleware.RoleMiddleware(model.Learner, model.Instructor))
		{
			learner.GET("/assessments", c.catalog.ListAssessments)
			learner.GET("/assessments/:id", c.catalog.GetAssessment)
			learner.GET("/examinations", c.catalog.ListExaminations)
			learner.GET("/examinations/:id", c.catalog.GetExamination)
		}

		// Authoring: the one-shot wizard submission plus the generation
		// helpers that feed it.
		instructor := authed.Group("/instructor")
		instructor.Use(middleware.RoleMiddleware(model.Instructor))
		{
			instructor.POST("/assessments", c.authoring.CreateAssessment)
			instructor.POST("/examinations", c.authoring.CreateExamination)
			instructor.POST("/generation/questions", c.authoring.GenerateQuestions)
			instructor.POST("/generation/material", c.authoring.UploadMaterial)
		}

		// Administration: review queue and account provisioning.
		admin := authed.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/examinations", c.review.ListExaminations)
			admin.GET("/examinations/:id", c.review.GetExamination)
			admin.POST("/examinations/:id/approve", c.review.Approve)
			admin.POST("/examinations/:id/reject", c.review.Reject)

			admin.GET("/users", c.user.ListUsers)
			admin.POST("/users/instructors", c.user.ProvisionInstructor)
			admin.POST("/users/learners", c.user.ProvisionLearner)
		}
	}
}
