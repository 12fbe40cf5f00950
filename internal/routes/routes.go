package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/config"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/handlers"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/middleware"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/repository"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/service"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	clock := service.SystemClock()

	// Stores
	appointmentRepo := repository.NewAppointmentRepository(db)
	reportRepo := repository.NewReportRepository(db)
	warningRepo := repository.NewWarningRepository(db)
	penaltyRepo := repository.NewPenaltyRepository(db)

	// Core services
	statusPolicy := service.NewAccountStatusPolicy(warningRepo, penaltyRepo)
	availability := service.NewSlotAvailability(appointmentRepo, cfg.Policy)
	feeCalculator := service.NewFeeCalculator(penaltyRepo)
	appointmentService := service.NewAppointmentService(appointmentRepo, cfg.Policy)
	bookingService := service.NewBookingService(statusPolicy, availability, feeCalculator, appointmentService)
	moderationService := service.NewModerationService(reportRepo, cfg.Policy)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, bookingService, appointmentService, clock)
	slotHandler := handlers.NewSlotHandler(db, availability, clock)
	reportHandler := handlers.NewReportHandler(db, moderationService, clock)
	moderationHandler := handlers.NewModerationHandler(db, statusPolicy, warningRepo, penaltyRepo, clock)

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

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Doctor listing is accessible by all authenticated users
			userRoutes.GET("/doctors", userHandler.GetDoctors)
			userRoutes.GET("/doctor-patients", userHandler.GetDoctorPatients)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin)) // Only Admins
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
				adminRoutes.GET("/:id/standing", moderationHandler.GetUserStanding)
			}
		}

		// Doctor slot availability
		private.GET("/doctors/:id/slots", slotHandler.GetDoctorSlots)

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Booking goes through the orchestrator; throttled per IP
			appointmentRoutes.POST("",
				middleware.RateLimitMiddleware(cfg.RateLimit.BookingPerMinute, time.Minute),
				middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmin),
				appointmentHandler.CreateAppointment)

			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser) // Logic inside handler differentiates by role
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID) // Authorization inside handler

			// Lifecycle transitions (authorization inside handlers)
			appointmentRoutes.PATCH("/:id/confirm", appointmentHandler.ConfirmAppointment)
			appointmentRoutes.PATCH("/:id/cancel", appointmentHandler.CancelAppointment)
			appointmentRoutes.PATCH("/:id/complete", appointmentHandler.CompleteAppointment)
		}

		// Report routes
		reportRoutes := private.Group("/reports")
		{
			reportRoutes.POST("",
				middleware.RateLimitMiddleware(cfg.RateLimit.ReportPerMinute, time.Minute),
				reportHandler.SubmitReport)
			reportRoutes.GET("/mine", reportHandler.GetMyReports)

			adminReportRoutes := reportRoutes.Group("")
			adminReportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminReportRoutes.GET("", reportHandler.GetReports)
				adminReportRoutes.PATCH("/:id/review", reportHandler.BeginReview)
				adminReportRoutes.PATCH("/:id/resolve", reportHandler.ResolveReport)
			}
		}

		// Moderation routes
		warningRoutes := private.Group("/warnings")
		{
			warningRoutes.GET("/mine", moderationHandler.GetMyWarnings)
			warningRoutes.PATCH("/:id/read", moderationHandler.MarkWarningAsRead)

			adminWarningRoutes := warningRoutes.Group("")
			adminWarningRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminWarningRoutes.POST("", moderationHandler.IssueWarning)
				adminWarningRoutes.DELETE("/:id", moderationHandler.RevokeWarning)
			}
		}

		penaltyRoutes := private.Group("/penalties")
		penaltyRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			penaltyRoutes.POST("", moderationHandler.IssuePenalty)
			penaltyRoutes.DELETE("/:id", moderationHandler.RevokePenalty)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
