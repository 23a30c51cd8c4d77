package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/blogsphere/blogsphere/docs" // Import generated swagger docs
	appControllers "github.com/blogsphere/blogsphere/internal/app/controllers"
	appMigrations "github.com/blogsphere/blogsphere/internal/app/migrations"
	appRepos "github.com/blogsphere/blogsphere/internal/app/repositories"
	appRoutes "github.com/blogsphere/blogsphere/internal/app/routes"
	appServices "github.com/blogsphere/blogsphere/internal/app/services"
	"github.com/blogsphere/blogsphere/internal/config"
	"github.com/blogsphere/blogsphere/internal/db"
	appMiddleware "github.com/blogsphere/blogsphere/internal/middleware"
	pkgAuth "github.com/blogsphere/blogsphere/internal/pkg/auth"
	"github.com/blogsphere/blogsphere/internal/pkg/helpers"
	"github.com/blogsphere/blogsphere/internal/pkg/logger"
	"github.com/blogsphere/blogsphere/internal/pkg/webpush"
	"github.com/blogsphere/blogsphere/internal/pkg/websocket"
	"github.com/blogsphere/blogsphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services               *appServices.Services
	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	PostController         *appControllers.PostController
	NotificationController *appControllers.NotificationController
	TribeController        *appControllers.TribeController
	AnalyticsController    *appControllers.AnalyticsController
	AdminController        *appControllers.AdminController
	RSSController          *appControllers.RSSController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Hub                    *websocket.Hub
	WSHandler              *websocket.Handler
	PushSender             *webpush.Sender
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)

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

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.PushSender = webpush.NewSender(cfg, deps.Repos.PushSubscription, lgr)

	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()

	notificationService := appServices.NewNotificationService(
		deps.Repos.Notification,
		deps.Repos.PushSubscription,
		deps.Repos.User,
		deps.PushSender,
		lgr,
	)

	chatService := appServices.NewChatService(
		deps.Repos.Message,
		deps.Repos.TribeMember,
		deps.Hub,
		lgr,
	)

	deps.Services = &appServices.Services{
		Auth: appServices.NewAuthService(
			deps.Repos.User,
			deps.Repos.Token,
			deps.JWTService,
			lgr,
		),
		User: appServices.NewUserService(
			deps.Repos.User,
			deps.Repos.Post,
			deps.Repos.Follow,
			notificationService,
			lgr,
		),
		Post: appServices.NewPostService(
			deps.Repos.Post,
			deps.Repos.Reaction,
			deps.Repos.Comment,
			deps.Repos.User,
			notificationService,
			lgr,
		),
		Notification: notificationService,
		Tribe: appServices.NewTribeService(
			deps.Repos.Tribe,
			deps.Repos.TribeMember,
			lgr,
		),
		Chat: chatService,
		Analytics: appServices.NewAnalyticsService(
			deps.Repos.Post,
			deps.Repos.Reaction,
			deps.Repos.Comment,
			deps.Repos.Follow,
			deps.Repos.User,
			lgr,
		),
		Admin: appServices.NewAdminService(
			deps.Repos.User,
			deps.Repos.Post,
			deps.Repos.Tribe,
			lgr,
		),
	}

	deps.WSHandler = websocket.NewHandler(
		deps.Hub,
		deps.Repos.TribeMember,
		chatService.PersistMessage,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	siteURL := config.GetEnv("SITE_URL", "http://localhost:"+cfg.Server.Port)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth, lgr)
	deps.UserController = appControllers.NewUserController(deps.Services.User, lgr)
	deps.PostController = appControllers.NewPostController(deps.Services.Post, lgr)
	deps.NotificationController = appControllers.NewNotificationController(deps.Services.Notification, lgr)
	deps.TribeController = appControllers.NewTribeController(deps.Services.Tribe, deps.Services.Chat, lgr)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.Services.Analytics, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.Services.Admin, lgr)
	deps.RSSController = appControllers.NewRSSController(deps.Services.Post, siteURL, lgr)

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

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.PostController,
		deps.NotificationController,
		deps.TribeController,
		deps.AnalyticsController,
		deps.AdminController,
		deps.RSSController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	return router
}
