package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/TrashMob-eco/adopt-engine/internal/app/controllers"
	appMigrations "github.com/TrashMob-eco/adopt-engine/internal/app/migrations"
	"github.com/TrashMob-eco/adopt-engine/internal/app/notifications"
	appRepos "github.com/TrashMob-eco/adopt-engine/internal/app/repositories"
	appRoutes "github.com/TrashMob-eco/adopt-engine/internal/app/routes"
	appServices "github.com/TrashMob-eco/adopt-engine/internal/app/services"
	"github.com/TrashMob-eco/adopt-engine/internal/config"
	"github.com/TrashMob-eco/adopt-engine/internal/db"
	appMiddleware "github.com/TrashMob-eco/adopt-engine/internal/middleware"
	pkgAuth "github.com/TrashMob-eco/adopt-engine/internal/pkg/auth"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/clock"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/email"
	"github.com/TrashMob-eco/adopt-engine/internal/pkg/logger"
	"github.com/TrashMob-eco/adopt-engine/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AreaService        *appServices.AreaService
	AdoptionService    *appServices.AdoptionService
	LedgerService      *appServices.LedgerService
	AreaController     *appControllers.AreaController
	AdoptionController *appControllers.AdoptionController
	LedgerController   *appControllers.LedgerController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	Dispatcher         *notifications.Dispatcher
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
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

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if strings.ToLower(cfg.Server.Mode) != "production" {
		if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})

	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	notifier := notifications.NewNotifier(
		deps.Repos.TeamRepository,
		deps.Repos.CommunityRepository,
		sender,
		lgr,
	)
	deps.Dispatcher = notifications.NewDispatcher(notifier, lgr)

	systemClock := clock.SystemClock{}

	deps.AreaService = appServices.NewAreaService(
		deps.Repos.AreaRepository,
		deps.Repos.CommunityRepository,
	)
	deps.AdoptionService = appServices.NewAdoptionService(
		deps.Repos.AdoptionRepository,
		deps.Repos.AreaRepository,
		deps.Repos.TeamRepository,
		deps.Repos.CommunityRepository,
		deps.Dispatcher,
		systemClock,
		lgr,
	)
	deps.LedgerService = appServices.NewLedgerService(
		deps.Repos.AdoptionEventLinkRepository,
		deps.Repos.AdoptionRepository,
		deps.Repos.EventRepository,
		deps.Dispatcher,
		systemClock,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AreaController = appControllers.NewAreaController(deps.AreaService)
	deps.AdoptionController = appControllers.NewAdoptionController(deps.AdoptionService)
	deps.LedgerController = appControllers.NewLedgerController(deps.LedgerService)

	return deps, nil
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

	router := gin.Default()
	router.Use(appMiddleware.RequestID())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AreaController,
		deps.AdoptionController,
		deps.LedgerController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success", "time": time.Now().UTC()})
	})

	return router
}
