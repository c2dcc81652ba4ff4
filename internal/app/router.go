package app

import (
	"smartdalim_backend/docs"
	"smartdalim_backend/internal/config"
	"smartdalim_backend/internal/middleware"
	"smartdalim_backend/internal/model"
	"smartdalim_backend/pkg/monitoring"

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
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/subjects", c.catalog.ListSubjects)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerTeacherRoutes(authGroup, c)
		a.registerParentRoutes(authGroup, c)
		a.registerParticipantRoutes(authGroup, c)
	}
}

func (a *App) registerTeacherRoutes(group *gin.RouterGroup, c *controllers) {
	teacher := group.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/assessments", c.assessment.Create)
		teacher.GET("/assessments", c.assessment.List)
		teacher.GET("/assessments/:id", c.assessment.Get)
		teacher.PUT("/assessments/:id", c.assessment.Update)
		teacher.DELETE("/assessments/:id", c.assessment.Delete)

		teacher.POST("/assessments/:id/publish", c.assessment.Publish)
		teacher.POST("/assessments/:id/unpublish", c.assessment.Unpublish)
		teacher.POST("/assessments/:id/archive", c.assessment.Archive)
		teacher.POST("/assessments/:id/schedule", c.assessment.Schedule)
		teacher.POST("/assessments/:id/duplicate", c.assessment.Duplicate)
		teacher.POST("/assessments/:id/materials/:materialId", c.assessment.AttachMaterial)

		teacher.POST("/assessments/:id/questions", c.assessment.AddQuestion)
		teacher.PUT("/assessments/:id/questions/reorder", c.assessment.ReorderQuestions)
		teacher.PUT("/questions/:questionId", c.assessment.UpdateQuestion)
		teacher.DELETE("/questions/:questionId", c.assessment.DeleteQuestion)

		teacher.POST("/assessments/:id/assign", c.submission.Assign)
		teacher.GET("/assessments/:id/submissions", c.submission.ReviewList)
		teacher.POST("/submissions/:id/grade", c.submission.Grade)
		teacher.GET("/assessments/:id/analytics", c.analytics.AssessmentAnalytics)

		teacher.POST("/courses", c.catalog.CreateCourse)
		teacher.GET("/courses", c.catalog.ListCourses)
		teacher.PUT("/courses/:id", c.catalog.UpdateCourse)
		teacher.DELETE("/courses/:id", c.catalog.DeleteCourse)

		teacher.POST("/materials", c.catalog.RegisterMaterial)
		teacher.GET("/materials", c.catalog.ListMaterials)

		teacher.POST("/sessions", c.session.Book)
		teacher.GET("/sessions", c.session.TeacherSchedule)
		teacher.POST("/sessions/:id/complete", c.session.Complete)
		teacher.POST("/sessions/:id/cancel", c.session.Cancel)
	}
}

func (a *App) registerParentRoutes(group *gin.RouterGroup, c *controllers) {
	parent := group.Group("/parent")
	parent.Use(middleware.RoleMiddleware(model.Parent))
	{
		parent.POST("/children", c.auth.AddChild)
		parent.GET("/sessions", c.session.ChildSchedule)
	}
}

// Participant routes serve both parents (acting for a child) and clients.
func (a *App) registerParticipantRoutes(group *gin.RouterGroup, c *controllers) {
	participant := group.Group("/participant")
	participant.Use(middleware.RoleMiddleware(model.Parent, model.ClientUser))
	{
		participant.GET("/assessments", c.submission.AssignedList)
		participant.PUT("/submissions/:id/answers", c.submission.RecordAnswer)
		participant.POST("/submissions/:id/submit", c.submission.Submit)
		participant.GET("/submissions/:id/result", c.submission.Result)
	}
}
