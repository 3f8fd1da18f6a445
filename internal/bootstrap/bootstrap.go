package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/coursecatalog/internal/app/controllers"
	appMigrations "github.com/yigit/coursecatalog/internal/app/migrations"
	appRepos "github.com/yigit/coursecatalog/internal/app/repositories"
	appRoutes "github.com/yigit/coursecatalog/internal/app/routes"
	appServices "github.com/yigit/coursecatalog/internal/app/services"
	"github.com/yigit/coursecatalog/internal/config"
	"github.com/yigit/coursecatalog/internal/db"
	appMiddleware "github.com/yigit/coursecatalog/internal/middleware"
	"github.com/yigit/coursecatalog/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store            *db.Store
	Repos            *appRepos.Repositories
	CourseService    appServices.CourseService
	CourseController *appControllers.CourseController
	HealthController *appControllers.HealthController
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// A missing .env file is normal outside local development
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("No .env file found, using environment and config file")
	}

	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the store and creates the schema.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Store, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	store, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(store, lgr).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		store.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return store, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(store *db.Store, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(store)
	deps.CourseService = appServices.NewCourseService(store, deps.Repos.CourseRepository, lgr)

	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.HealthController = appControllers.NewHealthController(store)

	return deps
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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.CORS(cfg.CORS.AllowedOrigins))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.CourseController, deps.HealthController)

	return router
}
