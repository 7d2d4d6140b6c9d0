package bootstrap

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/darulhuda/ppdb-portal/internal/app/controllers"
	appRepos "github.com/darulhuda/ppdb-portal/internal/app/repositories"
	appRoutes "github.com/darulhuda/ppdb-portal/internal/app/routes"
	appServices "github.com/darulhuda/ppdb-portal/internal/app/services"
	"github.com/darulhuda/ppdb-portal/internal/config"
	appMiddleware "github.com/darulhuda/ppdb-portal/internal/middleware"
	"github.com/darulhuda/ppdb-portal/internal/pkg/advisor"
	pkgAuth "github.com/darulhuda/ppdb-portal/internal/pkg/auth"
	"github.com/darulhuda/ppdb-portal/internal/pkg/helpers"
	"github.com/darulhuda/ppdb-portal/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos               *appRepos.Repositories
	SessionService      *appServices.SessionService
	RegistrationService *appServices.RegistrationService
	SettingsService     *appServices.SettingsService
	AuthService         *appServices.AuthService
	ComposerService     *appServices.ComposerService
	ExportService       *appServices.ExportService
	AdvisorService      advisor.AdvisorService
	JWTService          *pkgAuth.JWTService
	AuthController      *appControllers.AuthController
	SessionController   *appControllers.SessionController
	DocumentController  *appControllers.DocumentController
	SettingsController  *appControllers.SettingsController
	AdvisorController   *appControllers.AdvisorController
	AdminController     *appControllers.AdminController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Logger              zerolog.Logger
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

// SetupRedis establishes the key-value store connection
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) (*redis.Client, error) {
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Connecting to Redis...")

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  helpers.ParseDuration(cfg.Redis.DialTimeout, 5*time.Second),
		ReadTimeout:  helpers.ParseDuration(cfg.Redis.ReadTimeout, 3*time.Second),
		WriteTimeout: helpers.ParseDuration(cfg.Redis.WriteTimeout, 3*time.Second),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping Redis")
		_ = client.Close()
		return nil, err
	}

	lgr.Info().Msg("Redis connection successfully established.")
	return client, nil
}

// BuildDependencies initializes repositories, services, and controllers,
// loads persisted state, and wires the settings listeners.
func BuildDependencies(cfg *config.Config, client *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(appRepos.NewRedisKV(client))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := deps.Repos.Registrations.Load(ctx); err != nil {
		// Corrupt state starts an empty collection rather than blocking startup.
		lgr.Error().Err(err).Msg("Applicant collection unavailable, starting fresh")
	}
	if err := deps.Repos.Settings.Load(ctx); err != nil {
		lgr.Error().Err(err).Msg("Settings unavailable, using defaults")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:     cfg.JWT.Secret,
		AdminTokenExp: helpers.ParseDuration(cfg.JWT.AdminTokenExpiration, 12*time.Hour),
		TokenIssuer:   cfg.JWT.Issuer,
	})

	deps.AdvisorService = advisor.NewAdvisorService(advisor.Config{
		Endpoint: cfg.Advisor.Endpoint,
		APIKey:   cfg.Advisor.APIKey,
		Timeout:  helpers.ParseDuration(cfg.Advisor.Timeout, 10*time.Second),
	}, lgr)

	deps.RegistrationService = appServices.NewRegistrationService(deps.Repos.Registrations, lgr)
	deps.SettingsService = appServices.NewSettingsService(deps.Repos.Settings, cfg.Intake.MaxUploadSize, lgr)
	deps.SessionService = appServices.NewSessionService(
		deps.RegistrationService,
		deps.Repos.Settings.Get().IntakeStatus,
		cfg.Intake.MaxUploadSize,
		helpers.ParseDuration(cfg.Intake.SubmitDelay, 1200*time.Millisecond),
		lgr,
	)
	deps.SettingsService.Subscribe(deps.SessionService.OnSettingsChanged)

	deps.ComposerService = appServices.NewComposerService()
	deps.ExportService = appServices.NewExportService(deps.ComposerService, lgr)

	authService, err := appServices.NewAuthService(
		cfg.Admin.Username,
		cfg.Admin.Password,
		helpers.ParseDuration(cfg.Admin.LoginDelay, time.Second),
		deps.JWTService,
		lgr,
	)
	if err != nil {
		return nil, err
	}
	deps.AuthService = authService

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.SessionController = appControllers.NewSessionController(deps.SessionService, lgr)
	deps.DocumentController = appControllers.NewDocumentController(
		deps.RegistrationService, deps.SettingsService, deps.ComposerService, deps.ExportService, lgr)
	deps.SettingsController = appControllers.NewSettingsController(deps.SettingsService)
	deps.AdvisorController = appControllers.NewAdvisorController(deps.AdvisorService, deps.SessionService, lgr)
	deps.AdminController = appControllers.NewAdminController(
		deps.RegistrationService, deps.SettingsService, deps.ExportService, lgr)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	return deps, nil
}

// SetupRouter builds the gin engine and mounts every route
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.MaxMultipartMemory = cfg.Intake.MaxUploadSize

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.SessionController,
		deps.DocumentController,
		deps.SettingsController,
		deps.AdvisorController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
