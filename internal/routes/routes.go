package routes

import (
	"clinic-booking-server/internal/config"
	"clinic-booking-server/internal/handlers"
	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	adminHandler := handlers.NewAdminHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Doctor directory - accessible by all authenticated users
		private.GET("/doctors", userHandler.GetDoctors)
		private.GET("/doctors/:id", userHandler.GetDoctorByID)

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleUser, models.RoleAdmin), appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser) // Logic inside handler differentiates by role
			appointmentRoutes.GET("/dashboard", middleware.RoleAuthMiddleware(models.RoleUser), appointmentHandler.GetDashboard)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID) // Authorization inside handler
			appointmentRoutes.PATCH("/:id/cancel", middleware.RoleAuthMiddleware(models.RoleUser), appointmentHandler.CancelAppointment)
			appointmentRoutes.PATCH("/:id/reschedule", middleware.RoleAuthMiddleware(models.RoleUser), appointmentHandler.RescheduleAppointment)
		}

		// Doctor routes (doctor-only)
		doctorRoutes := private.Group("/doctor")
		doctorRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			doctorRoutes.GET("/dashboard", doctorHandler.GetDashboard)
			doctorRoutes.GET("/patients", doctorHandler.GetPatients)
			doctorRoutes.PUT("/availability", doctorHandler.UpdateAvailability)
			doctorRoutes.PUT("/profile", doctorHandler.UpdateProfile)
			doctorRoutes.PATCH("/appointments/:id", doctorHandler.UpdateAppointment)
		}

		// Admin routes (admin-only)
		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("/doctors", userHandler.CreateDoctor)
			adminRoutes.PATCH("/doctors/:id/status", userHandler.UpdateDoctorStatus)
			adminRoutes.DELETE("/doctors/:id", userHandler.DeleteDoctor)
			adminRoutes.GET("/patients", userHandler.GetPatients)

			adminRoutes.GET("/appointments", adminHandler.GetAppointments)
			adminRoutes.PATCH("/appointments/:id/assign", adminHandler.AssignDoctor)
			adminRoutes.PATCH("/appointments/:id/status", adminHandler.UpdateAppointmentStatus)
		}

		// Notification routes
		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.GET("", notificationHandler.GetNotifications)
			notificationRoutes.PATCH("/:id/read", notificationHandler.MarkNotificationRead)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
