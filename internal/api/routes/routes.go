package routes

import (
	"staffdesk/internal/api/handlers"
	"staffdesk/internal/api/middleware"
	"staffdesk/internal/config"
	"staffdesk/internal/models"
	"staffdesk/internal/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(cfg)
	resetService := services.NewPasswordResetService(cfg, authService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, resetService, cfg)
	employeeHandler := handlers.NewEmployeeHandler(cfg)
	projectHandler := handlers.NewProjectHandler()
	taskHandler := handlers.NewTaskHandler()
	referenceHandler := handlers.NewReferenceHandler()
	logsHandler := handlers.NewLogsHandler()

	// Middleware
	r.Use(middleware.CORSMiddleware(cfg))

	admin := middleware.RequirePermission(models.PermissionAdmin)
	adminOrHead := middleware.RequirePermission(models.PermissionAdmin, models.PermissionDepartmentHead)

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "staffdesk API is running",
			})
		})

		// Auth routes; verify and logout read the Authorization header
		// themselves so that a bad scheme is rejected before any session
		// lookup.
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/verify", authHandler.Verify)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/password-reset/request", authHandler.ResetRequest)
			auth.POST("/password-reset/confirm", authHandler.ResetConfirm)
		}
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		// Admin utility for provisioning accounts out of band
		protected.POST("/auth/hash-password", admin, authHandler.HashPassword)

		// Employee management
		employees := protected.Group("/employees")
		{
			employees.GET("", employeeHandler.GetEmployees)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.POST("", admin, employeeHandler.CreateEmployee)
			employees.PUT("/:id", admin, employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", admin, employeeHandler.DeleteEmployee)
			employees.POST("/:id/password", employeeHandler.UpdatePassword)
		}

		// Projects
		projects := protected.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("", adminOrHead, projectHandler.CreateProject)
			projects.PUT("/:id", adminOrHead, projectHandler.UpdateProject)
			projects.DELETE("/:id", adminOrHead, projectHandler.DeleteProject)
		}

		// Tasks; status transitions are additionally gated on the assigned
		// executor inside the service.
		tasks := protected.Group("/tasks")
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("", adminOrHead, taskHandler.CreateTask)
			tasks.PUT("/:id", adminOrHead, taskHandler.UpdateTask)
			tasks.PUT("/:id/status", taskHandler.UpdateStatus)
			tasks.DELETE("/:id", adminOrHead, taskHandler.DeleteTask)
		}

		// Reference data
		protected.GET("/departments", referenceHandler.GetDepartments)
		protected.GET("/posts", referenceHandler.GetPosts)
		protected.GET("/statuses", referenceHandler.GetStatuses)
		protected.GET("/genders", referenceHandler.GetGenders)

		// Audit trail
		protected.GET("/logs", admin, logsHandler.GetAccessLogs)
	}
}
