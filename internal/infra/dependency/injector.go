// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"

	"github.com/budget-tracker/insights/config"
	"github.com/budget-tracker/insights/internal/application/adapter"
	"github.com/budget-tracker/insights/internal/application/usecase/dashboard"
	"github.com/budget-tracker/insights/internal/application/usecase/preference"
	"github.com/budget-tracker/insights/internal/application/usecase/session"
	"github.com/budget-tracker/insights/internal/infra/db"
	"github.com/budget-tracker/insights/internal/infra/server/router"
	"github.com/budget-tracker/insights/internal/integration/adapters"
	"github.com/budget-tracker/insights/internal/integration/cache"
	"github.com/budget-tracker/insights/internal/integration/entrypoint/controller"
	"github.com/budget-tracker/insights/internal/integration/entrypoint/dto"
	"github.com/budget-tracker/insights/internal/integration/entrypoint/middleware"
	"github.com/budget-tracker/insights/internal/integration/persistence"
	"github.com/budget-tracker/insights/internal/integration/upstream"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	Database     *db.Database
	Redis        *db.Redis
	TokenService *adapters.TokenService
	RateLimiter  *middleware.RateLimiter
	Router       *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// database and kv may be nil: without Redis results are cached in process and guest
// preferences share the database; without a database the preference routes are disabled.
func NewInjector(cfg *config.Config, database *db.Database, kv *db.Redis) *Injector {
	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	source := upstream.NewClient(cfg.Upstream.BaseURL, upstream.NewHTTPClient(cfg.Upstream.Timeout))

	var resultCache adapter.ResultCache
	if kv != nil {
		resultCache = cache.NewRedisResultCache(kv.Client(), cfg.Cache.Prefix, cfg.Cache.TTL)
	} else {
		resultCache = cache.NewMemoryResultCache(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	// Create dashboard use cases
	loader := dashboard.NewSnapshotLoader(source)
	memo := dashboard.NewMemoizer(resultCache)

	dashboardController := controller.NewDashboardController(
		dashboard.NewGetMonthlyBreakdownUseCase(loader, memo),
		dashboard.NewGetBudgetComparisonUseCase(loader, memo),
		dashboard.NewGetTopRecurringUseCase(loader, memo, cfg.Aggregation.TopNDefault),
		dashboard.NewGetGoalProgressUseCase(loader, memo),
		dashboard.NewGetOverviewUseCase(loader, memo),
		dashboard.NewGetTimeSeriesUseCase(loader, memo),
		dto.NewMoneyFormatter(cfg.Aggregation.Currency),
	)

	// Create session use cases
	sessionController := controller.NewSessionController(
		session.NewIssueGuestSessionUseCase(tokenService, cfg.JWT.GuestSessionTTL),
	)

	// Create preference use cases (only if database is available)
	var preferenceController *controller.PreferenceController
	if database != nil {
		userStore := persistence.NewPreferenceRepository(database.DB())
		guestStore := userStore
		if kv != nil {
			guestStore = persistence.NewGuestPreferenceStore(kv.Client(), cfg.Cache.PreferenceTTL)
		}
		store := persistence.NewSessionPreferenceStore(guestStore, userStore)

		preferenceController = controller.NewPreferenceController(
			preference.NewGetPreferenceUseCase(store),
			preference.NewSetPreferenceUseCase(store),
		)
	} else {
		slog.Warn("Preference routes not initialized due to missing database connection")
	}

	// Create controllers
	var dbHealthChecker, cacheHealthChecker func() bool
	if database != nil {
		dbHealthChecker = database.HealthCheck
	}
	if kv != nil {
		cacheHealthChecker = kv.HealthCheck
	}
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	maxAttempts := cfg.RateLimit.MaxAttempts
	if cfg.IsTestEnvironment() {
		maxAttempts = 1000
	}
	rateLimiter := middleware.NewRateLimiter(maxAttempts, cfg.RateLimit.Window, cfg.RateLimit.Enabled)
	sessionMiddleware := middleware.NewSessionMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		sessionController,
		dashboardController,
		preferenceController,
		rateLimiter,
		sessionMiddleware,
	)

	return &Injector{
		Config:       cfg,
		Database:     database,
		Redis:        kv,
		TokenService: tokenService,
		RateLimiter:  rateLimiter,
		Router:       r,
	}
}
