package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/budgetloop/currency_service/internal/adapters/cache/redisstore"
	"github.com/budgetloop/currency_service/internal/adapters/database/pgsql"
	"github.com/budgetloop/currency_service/internal/adapters/rates"
	portsrepo "github.com/budgetloop/currency_service/internal/core/ports/repositories"
	"github.com/budgetloop/currency_service/internal/core/services"
	"github.com/budgetloop/currency_service/internal/handlers"
	"github.com/budgetloop/currency_service/internal/middleware"
	"github.com/budgetloop/currency_service/internal/platform/config"
	"github.com/budgetloop/currency_service/internal/utils/currencyfmt"
	"github.com/budgetloop/currency_service/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Pick the rate cache backend.
	var rateCache portsrepo.RateCacheRepository
	switch cfg.RateCacheBackend {
	case "redis":
		redisClient, err := database.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		rateCache = redisstore.NewRedisRateCacheRepository(redisClient)
	default:
		rateCache = pgsql.NewPgxRateCacheRepository(dbPool)
	}

	provider := rates.NewHTTPRateProvider(cfg.RateProviderURL, cfg.RateProviderTimeout, logger)
	manager := services.NewExchangeRateManager(rateCache, provider, cfg.RateCacheTTL, logger)
	formatter := currencyfmt.New(logger)
	prefRepo := pgsql.NewPgxPreferenceRepository(dbPool)

	facade := services.NewCurrencyFacade(prefRepo, manager, formatter, logger)
	// Explicit initialization: load the persisted currency and warm its
	// rate before the facade is exposed.
	facade.Init(ctx)
	logger.Info("Currency facade initialized",
		slog.String("currency_code", facade.ActiveCurrency().Code),
		slog.Bool("degraded", facade.Degraded()))

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if rate, err := limiter.NewRateFromFormatted(cfg.RateLimit); err == nil {
		r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))
	} else {
		logger.Warn("Invalid RATE_LIMIT, rate limiting disabled", slog.String("error", err.Error()))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, facade)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies pending database migrations using a temporary
// database/sql connection compatible with the main pgx pool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
