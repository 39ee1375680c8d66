package app

import (
	"context"
	"errors"
	"fmt"

	"blogapp_backend/internal/auth"
	"blogapp_backend/internal/config"
	"blogapp_backend/internal/email"
	"blogapp_backend/internal/handlers"
	"blogapp_backend/internal/logger"
	"blogapp_backend/internal/middleware"
	"blogapp_backend/internal/models"
	"blogapp_backend/internal/repositories"
	"blogapp_backend/internal/routes"
	"blogapp_backend/internal/services"
	"blogapp_backend/internal/storage"
	"blogapp_backend/internal/validator"
	"blogapp_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	worker := workers.NewMaintenanceWorker(gormDB)
	worker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// AutoMigrate приводит схему базы к моделям приложения
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4 в default-значениях первичных ключей
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Picture{},
		&models.Post{},
		&models.MediaFile{},
		&models.Comment{},
		&models.Like{},
		&models.Share{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	userRepo := repositories.NewUserRepository(gormDB)

	serviceContainer := initializeServices(cfg, gormDB, userRepo, storageInstance)
	appHandlers := initializeHandlers(serviceContainer, storageInstance)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, userRepo)

	return ginRouter
}

func initializeServices(
	cfg *config.Config,
	gormDB *gorm.DB,
	userRepo repositories.UserRepository,
	storageInstance storage.Storage,
) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.SMTPHost != "" {
		smtpProvider, err := email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
		emailService = smtpProvider
	} else {
		logger.Warn("SMTP is not configured, outgoing email is disabled")
		emailService = email.NewNoopProvider()
	}

	postRepo := repositories.NewPostRepository(gormDB)
	commentRepo := repositories.NewCommentRepository(gormDB)
	engagementRepo := repositories.NewEngagementRepository(gormDB)

	uploadService := services.NewUploadService(storageInstance, cfg)
	authService := services.NewAuthService(userRepo, emailService, cfg)
	userService := services.NewUserService(userRepo, uploadService)
	postService := services.NewPostService(postRepo, uploadService, cfg.Upload.MaxFiles)
	commentService := services.NewCommentService(commentRepo, postRepo, engagementRepo, cfg)

	return &services.ServiceContainer{
		AuthService:    authService,
		UserService:    userService,
		PostService:    postService,
		CommentService: commentService,
		UploadService:  uploadService,
		EmailService:   emailService,
	}
}

func initializeHandlers(container *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:    handlers.NewUserHandler(baseHandler, container.UserService),
		PostHandler:    handlers.NewPostHandler(baseHandler, container.PostService),
		CommentHandler: handlers.NewCommentHandler(baseHandler, container.CommentService),
		FileHandler:    handlers.NewFileHandler(baseHandler, storageInstance),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin создает первого администратора из конфигурации.
// Без него на свежей базе некому было бы выдавать права через make-admin.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("First admin credentials are not configured. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Username:     "admin",
		Email:        adminEmail,
		PasswordHash: hash,
		IsAdmin:      true,
		IsVerified:   true,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)
	return nil
}
