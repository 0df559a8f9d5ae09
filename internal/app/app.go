package app

import (
	"fmt"

	"hanabi_backend/internal/config"
	"hanabi_backend/internal/handlers"
	"hanabi_backend/internal/logger"
	"hanabi_backend/internal/middleware"
	"hanabi_backend/internal/models"
	"hanabi_backend/internal/queue"
	"hanabi_backend/internal/repositories"
	"hanabi_backend/internal/routes"
	"hanabi_backend/internal/services"
	"hanabi_backend/internal/storage"
	"hanabi_backend/internal/validator"
	"hanabi_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := autoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	router, producer := SetupRouter(cfg, gormDB)
	defer producer.Close()

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full application graph and returns the router
// plus the event producer so the caller controls its lifetime.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, queue.Producer) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var producer queue.Producer = queue.NoopProducer{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer = queue.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info("Kafka producer initialized", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	} else {
		logger.Warn("Kafka brokers not configured, decision events disabled")
	}

	wsManager := ws.NewManager()
	go wsManager.Run()

	userRepo := repositories.NewUserRepository(gormDB)
	serviceContainer := services.NewServiceContainer(services.ContainerDeps{
		UserRepo:         userRepo,
		ProfileRepo:      repositories.NewProfileRepository(gormDB),
		VerificationRepo: repositories.NewVerificationRepository(gormDB),
		NotificationRepo: repositories.NewNotificationRepository(gormDB),
		MatchRepo:        repositories.NewMatchRepository(gormDB),
		ChatRepo:         repositories.NewChatRepository(gormDB),
		FileStorage:      storageInstance,
		Producer:         producer,
		Broadcaster:      wsManager,
		UploadCfg:        cfg.Upload,
	})

	if err := serviceContainer.Auth.EnsureAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Fatal("Failed to seed admin user", "error", err)
	}
	if total, err := userRepo.CountAll(); err == nil {
		logger.Info("user store ready", "users", total)
	}

	appHandlers := initializeHandlers(serviceContainer, storageInstance)
	wsHandler := ws.NewHandler(wsManager)

	router := initializeGinRouter(cfg)
	routes.RegisterRoutes(router, appHandlers, wsHandler)
	return router, producer
}

func initializeHandlers(sc *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(base, sc.Auth, sc.User),
		UserHandler:         handlers.NewUserHandler(base, sc.User),
		OnboardingHandler:   handlers.NewOnboardingHandler(base, sc.Onboarding),
		VerificationHandler: handlers.NewVerificationHandler(base, sc.Verification, sc.Onboarding),
		ReviewHandler:       handlers.NewReviewHandler(base, sc.Review),
		NotificationHandler: handlers.NewNotificationHandler(base, sc.Notification),
		MatchHandler:        handlers.NewMatchHandler(base, sc.Match, sc.Recommendation),
		ChatHandler:         handlers.NewChatHandler(base, sc.Chat),
		FileHandler:         handlers.NewFileHandler(base, storageInstance),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.RequestLoggerMiddleware(),
		middleware.CORSMiddleware(),
	)
	return router
}

func autoMigrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults need the extension in place first.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.ProfilePhoto{},
		&models.Interest{},
		&models.LanguageSkill{},
		&models.IdentityVerification{},
		&models.VerificationRequest{},
		&models.Notification{},
		&models.Like{},
		&models.Match{},
		&models.Message{},
	)
}
