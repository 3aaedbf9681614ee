// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budget-tracker/insights/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/insights/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	sessionController    *controller.SessionController
	dashboardController  *controller.DashboardController
	preferenceController *controller.PreferenceController
	guestRateLimiter     *middleware.RateLimiter
	sessionMiddleware    *middleware.SessionMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	sessionController *controller.SessionController,
	dashboardController *controller.DashboardController,
	preferenceController *controller.PreferenceController,
	guestRateLimiter *middleware.RateLimiter,
	sessionMiddleware *middleware.SessionMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		sessionController:    sessionController,
		dashboardController:  dashboardController,
		preferenceController: preferenceController,
		guestRateLimiter:     guestRateLimiter,
		sessionMiddleware:    sessionMiddleware,
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

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.sessionController != nil {
			sessions := v1.Group("/sessions")
			if r.guestRateLimiter != nil {
				sessions.POST("/guest", r.guestRateLimiter.Middleware(), r.sessionController.CreateGuest)
			} else {
				sessions.POST("/guest", r.sessionController.CreateGuest)
			}
		}

		// Dashboard routes (require a guest or user session)
		if r.dashboardController != nil && r.sessionMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.sessionMiddleware.RequireSession())
			{
				dashboard.GET("/monthly-breakdown", r.dashboardController.GetMonthlyBreakdown)
				dashboard.GET("/budget-comparison", r.dashboardController.GetBudgetComparison)
				dashboard.GET("/top-recurring", r.dashboardController.GetTopRecurring)
				dashboard.GET("/goals", r.dashboardController.GetGoals)
				dashboard.GET("/overview", r.dashboardController.GetOverview)
				dashboard.GET("/time-series", r.dashboardController.GetTimeSeries)
			}
		}

		if r.preferenceController != nil && r.sessionMiddleware != nil {
			preferences := v1.Group("/preferences")
			preferences.Use(r.sessionMiddleware.RequireSession())
			{
				preferences.GET("/:key", r.preferenceController.Get)
				preferences.PUT("/:key", r.preferenceController.Set)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
