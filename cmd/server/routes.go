package main

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgerline/firmdesk/backend/internal/config"
	"github.com/ledgerline/firmdesk/backend/internal/handlers"
	"github.com/ledgerline/firmdesk/backend/internal/middleware"
	"github.com/ledgerline/firmdesk/backend/internal/models"
	"github.com/ledgerline/firmdesk/backend/internal/services"
	"github.com/ledgerline/firmdesk/backend/pkg/logger"
)

// staffRoles covers every firm-side role; clients are excluded.
func staffRoles() []string {
	roles := []string{
		models.RoleAdmin,
		models.RoleManager,
		models.RoleEmployee,
		models.RoleOperator,
		models.RoleHelper,
	}
	return append(roles, models.MasterRoles...)
}

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiters for credential and payment endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)
	paymentLimiter := middleware.NewRateLimiter(2, 5)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	db := models.GetDB()

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/refresh", svc.authHandler.Refresh)
			auth.GET("/config", svc.authHandler.GetAuthConfig)
		}

		// SSE Events (public route with internal token validation)
		sseHandler := handlers.NewSSEHandler(services.GetEventHub())
		api.GET("/events/audit", sseHandler.StreamAuditEvents)

		// Protected routes (any authenticated user)
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.Audit())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)
			protected.POST("/auth/password", svc.authHandler.ChangePassword)

			// Dashboard (read only; mutations live on the admin routes)
			dashboardHandler := handlers.NewDashboardHandler(db)
			protected.GET("/dashboard/catalog", dashboardHandler.GetCatalog)
			protected.GET("/dashboard/config", dashboardHandler.GetConfig)

			// Forms (read)
			formHandler := handlers.NewFormHandler(db)
			protected.GET("/forms", formHandler.List)
			protected.GET("/forms/:id", formHandler.GetByID)

			// Categories (read)
			categoryHandler := handlers.NewCategoryHandler(db)
			protected.GET("/categories", categoryHandler.List)

			// Submissions (own)
			submissionHandler := handlers.NewSubmissionHandler(db)
			protected.POST("/submissions", submissionHandler.Submit)
			protected.GET("/submissions/mine", submissionHandler.ListMine)

			// Payments (own)
			paymentHandler := handlers.NewPaymentHandler(db)
			protected.GET("/payments/mine", paymentHandler.ListMine)

			// Assistant
			assistantHandler := handlers.NewAssistantHandler(cfg)
			protected.GET("/assistant/config", assistantHandler.GetConfig)
			protected.POST("/assistant/chat", assistantHandler.Chat)
		}

		// Staff routes (any firm-side role)
		staff := api.Group("")
		staff.Use(middleware.AuthRequired(), middleware.RequireRoles(staffRoles()...), middleware.Audit())
		{
			submissionHandler := handlers.NewSubmissionHandler(db)
			staff.GET("/forms/:id/submissions", submissionHandler.ListByForm)
			staff.GET("/submissions/:id/rendered", submissionHandler.Render)
			staff.PUT("/submissions/:id/review", submissionHandler.MarkReviewed)
		}

		// Builder routes (admin and manager)
		builder := api.Group("")
		builder.Use(middleware.AuthRequired(), middleware.BuilderRequired(), middleware.Audit())
		{
			formHandler := handlers.NewFormHandler(db)
			builder.POST("/forms", formHandler.Create)
			builder.PUT("/forms/:id", formHandler.Update)
			builder.DELETE("/forms/:id", formHandler.Delete)

			categoryHandler := handlers.NewCategoryHandler(db)
			builder.POST("/categories", categoryHandler.Create)
			builder.DELETE("/categories/:id", categoryHandler.Delete)

			paymentHandler := handlers.NewPaymentHandler(db)
			builder.GET("/payments", paymentHandler.List)
			builder.POST("/users/:id/payments", paymentLimiter.Middleware(), paymentHandler.CreateForUser)
			builder.PUT("/payments/:id/paid", paymentHandler.MarkPaid)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.Audit())
		{
			// Users
			userHandler := handlers.NewUserHandler(db)
			admin.GET("/users", userHandler.List)
			admin.GET("/users/:id", userHandler.GetByID)
			admin.POST("/users", userHandler.Create)
			admin.PUT("/users/:id", userHandler.Update)
			admin.DELETE("/users/:id", userHandler.Delete)

			// Per-user dashboard configuration
			dashboardHandler := handlers.NewDashboardHandler(db)
			admin.GET("/users/:id/dashboard", dashboardHandler.GetUserConfig)
			admin.PUT("/users/:id/dashboard/components", dashboardHandler.SetUserComponent)
			admin.PUT("/users/:id/dashboard/tabs", dashboardHandler.ReorderUserTabs)

			// Audit log
			auditHandler := handlers.NewAuditHandler(db)
			admin.GET("/audit", auditHandler.List)
			admin.GET("/audit/actions", auditHandler.GetActions)
			admin.DELETE("/audit", auditHandler.ClearAll)
		}
	}
}
