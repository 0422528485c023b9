// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/budgetwise/statistics/config"
	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/application/usecase/dashboard"
	"github.com/budgetwise/statistics/internal/application/usecase/report"
	"github.com/budgetwise/statistics/internal/application/usecase/statistics"
	"github.com/budgetwise/statistics/internal/infra/server/router"
	"github.com/budgetwise/statistics/internal/integration/adapters"
	"github.com/budgetwise/statistics/internal/integration/budgetwise"
	"github.com/budgetwise/statistics/internal/integration/email"
	"github.com/budgetwise/statistics/internal/integration/email/templates"
	"github.com/budgetwise/statistics/internal/integration/entrypoint/controller"
	"github.com/budgetwise/statistics/internal/integration/entrypoint/middleware"
	"github.com/budgetwise/statistics/internal/integration/export"
	"github.com/budgetwise/statistics/internal/integration/persistence"
)

// rateLimitKeyPrefix namespaces the rate limit counters in Redis.
const rateLimitKeyPrefix = "statistics:ratelimit:"

// recordSource is what the use cases need from a record source.
type recordSource interface {
	adapter.TransactionSource
	adapter.BudgetSource
	adapter.HealthChecker
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// db is required when cfg selects the database source; redisClient may be nil.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Records read from the database are scoped by the token subject alone, so
	// the signature has to be checked here.
	if cfg.UsesDatabase() && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("DATA_SOURCE=%s requires JWT_SECRET", config.DataSourceDatabase)
	}

	source, err := newRecordSource(cfg, db)
	if err != nil {
		return nil, err
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	if !tokenService.Verifies() {
		slog.Warn("JWT_SECRET is not set, token signatures are left to the backend")
	}

	money, err := templates.NewMoneyFormatter(cfg.Report.Locale, cfg.Report.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid report formatting: %w", err)
	}
	renderer, err := templates.NewRenderer(cfg.Report.AppName, money)
	if err != nil {
		return nil, fmt.Errorf("failed to load report templates: %w", err)
	}

	var sender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("RESEND_API_KEY is not set, emailed reports are disabled")
	}

	exporters := []adapter.Exporter{export.NewCSVExporter(), export.NewXLSXExporter()}
	var attachment adapter.Exporter
	for _, exporter := range exporters {
		if exporter.Format() == cfg.Report.AttachmentFormat {
			attachment = exporter
		}
	}

	// Create use cases
	getStatisticsUseCase := statistics.NewGetStatisticsUseCase(source)
	getDashboardUseCase := dashboard.NewGetDashboardUseCase(source, source)
	getBudgetProgressUseCase := dashboard.NewGetBudgetProgressUseCase(source, source)
	exportRecordsUseCase := report.NewExportRecordsUseCase(source, exporters...)
	sendReportUseCase := report.NewSendReportUseCase(getStatisticsUseCase, renderer, sender, attachment)

	// Create controllers
	healthController := controller.NewHealthController(source)
	statisticsController := controller.NewStatisticsController(getStatisticsUseCase)
	dashboardController := controller.NewDashboardController(getDashboardUseCase, getBudgetProgressUseCase)
	reportController := controller.NewReportController(exportRecordsUseCase, sendReportUseCase)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	rateLimiter := newRateLimiter(cfg, redisClient)

	r := router.NewRouter(
		healthController,
		statisticsController,
		dashboardController,
		reportController,
		rateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: r,
	}, nil
}

func newRecordSource(cfg *config.Config, db *gorm.DB) (recordSource, error) {
	switch cfg.DataSource {
	case config.DataSourceDatabase:
		if db == nil {
			return nil, fmt.Errorf("DATA_SOURCE=%s requires a database connection", config.DataSourceDatabase)
		}
		slog.Info("Reading records from the database")
		return persistence.NewRecordRepository(db), nil
	case config.DataSourceAPI, "":
		client, err := budgetwise.NewClient(budgetwise.Config{
			BaseURL:  cfg.Backend.BaseURL,
			Timeout:  cfg.Backend.Timeout,
			PageSize: cfg.Backend.PageSize,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("Reading records from the backend API", "base_url", cfg.Backend.BaseURL)
		return client, nil
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", cfg.DataSource)
	}
}

func newRateLimiter(cfg *config.Config, redisClient *redis.Client) *middleware.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	var store middleware.RateLimitStore = middleware.NewMemoryStore()
	if redisClient != nil {
		store = middleware.NewRedisStore(redisClient, rateLimitKeyPrefix)
	}
	return middleware.NewRateLimiterWithConfig(store, cfg.RateLimit.Requests, cfg.RateLimit.Window)
}
