// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budgetwise/statistics/internal/integration/entrypoint/controller"
	"github.com/budgetwise/statistics/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	statisticsController *controller.StatisticsController
	dashboardController  *controller.DashboardController
	reportController     *controller.ReportController
	rateLimiter          *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
// A nil rateLimiter disables rate limiting.
func NewRouter(
	healthController *controller.HealthController,
	statisticsController *controller.StatisticsController,
	dashboardController *controller.DashboardController,
	reportController *controller.ReportController,
	rateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		statisticsController: statisticsController,
		dashboardController:  dashboardController,
		reportController:     reportController,
		rateLimiter:          rateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.Use(middleware.RequestID())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	if r.rateLimiter != nil {
		v1.Use(r.rateLimiter.Middleware())
	}

	stats := v1.Group("/statistics")
	{
		stats.GET("", r.statisticsController.GetStatistics)
		stats.GET("/summary", r.statisticsController.GetSummary)
		stats.GET("/categories", r.statisticsController.GetCategories)
		stats.GET("/monthly", r.statisticsController.GetMonthly)
		stats.GET("/types", r.statisticsController.GetTypes)
		stats.GET("/comparison", r.statisticsController.GetComparison)
		stats.GET("/export", r.reportController.Export)
		stats.POST("/report", r.reportController.SendReport)
	}

	v1.GET("/dashboard", r.dashboardController.GetDashboard)
	v1.GET("/budget/progress", r.dashboardController.GetBudgetProgress)
}
