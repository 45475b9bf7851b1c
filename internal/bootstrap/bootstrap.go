package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/attendance/internal/app/controllers"
	appMigrations "github.com/yigit/attendance/internal/app/migrations"
	appRepos "github.com/yigit/attendance/internal/app/repositories"
	appRoutes "github.com/yigit/attendance/internal/app/routes"
	appServices "github.com/yigit/attendance/internal/app/services"
	"github.com/yigit/attendance/internal/config"
	"github.com/yigit/attendance/internal/db"
	appMiddleware "github.com/yigit/attendance/internal/middleware"
	"github.com/yigit/attendance/internal/pkg/cache"
	"github.com/yigit/attendance/internal/pkg/helpers"
	"github.com/yigit/attendance/internal/pkg/holidays"
	"github.com/yigit/attendance/internal/pkg/logger"
	"github.com/yigit/attendance/internal/pkg/validation"
	"github.com/yigit/attendance/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	Cache       cache.Cache
	Clock       *helpers.Clock
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// SetupCache connects to Redis when enabled and falls back to a no-op cache
// when it is disabled or unreachable.
func SetupCache(cfg *config.Config, lgr zerolog.Logger) cache.Cache {
	if !cfg.Redis.Enabled {
		lgr.Info().Msg("Redis disabled, dashboard caching is off")
		return cache.Noop{}
	}

	c, err := cache.NewRedisCache(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		lgr.Warn().Err(err).Msg("Redis unavailable, continuing without dashboard cache")
		return cache.Noop{}
	}
	lgr.Info().Str("host", cfg.Redis.Host).Int("port", cfg.Redis.Port).Msg("Redis cache connected")
	return c
}

// RegisterValidators adds the custom binding tags to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return validation.Register(v)
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, c cache.Cache, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: lgr,
		Cache:  c,
		Clock:  helpers.NewClock(cfg.Location()),
	}
	deps.Repos = appRepos.NewRepositories(dbPool)

	var source appServices.HolidaySource
	provider, err := holidays.NewProvider(cfg.Calendar.HolidayRegion)
	if err != nil {
		lgr.Warn().Err(err).Msg("Public holiday import disabled")
	} else {
		source = provider
	}

	deps.Services = appServices.NewServices(appServices.Deps{
		Stores:       appServices.NewStores(deps.Repos),
		Clock:        deps.Clock,
		Cache:        c,
		DashboardTTL: helpers.ParseDuration(cfg.Redis.DashboardTTL, 10*time.Minute),
		Holidays:     source,
	})

	deps.Controllers = NewControllers(deps.Services)

	if cfg.Seed.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seed.CreateDemoData(ctx, deps.Services, deps.Clock.Today(), lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return deps, nil
}

// NewControllers builds every controller from the services
func NewControllers(svc *appServices.Services) appRoutes.Controllers {
	return appRoutes.Controllers{
		Student:     appControllers.NewStudentController(svc.StudentService),
		Subject:     appControllers.NewSubjectController(svc.SubjectService),
		Attendance:  appControllers.NewAttendanceController(svc.AttendanceService),
		Holiday:     appControllers.NewHolidayController(svc.HolidayService),
		Eligibility: appControllers.NewEligibilityController(svc.EligibilityService, svc.InsightsService),
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router, deps.Controllers)
	return router
}
