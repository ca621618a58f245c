package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"portfolio_backend/database"
	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/config"
	"portfolio_backend/internal/email"
	"portfolio_backend/internal/handlers"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/routes"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/storage"
	"portfolio_backend/internal/validator"
	"portfolio_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionPurgeInterval = 30 * time.Minute

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// логгер еще не настроен
		logger.Init(config.EnvDevelopment)
		logger.Fatal("Failed to load config", "error", err)
	}

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Env:          cfg.Server.Env,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected")

	ginRouter, container := SetupRouter(cfg, gormDB)

	bootstrap(gormDB, cfg, container)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	workers.NewSessionWorker(gormDB, container.SessionService, sessionPurgeInterval).Start(workerCtx)

	address := cfg.Addr()
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает хранилище, сервисы, хэндлеры и маршруты
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	switch cfg.Server.Env {
	case config.EnvProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.EnvTest:
		gin.SetMode(gin.TestMode)
	}

	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	blobs := storage.NewBlobStore(storageInstance)
	cookies := cookieConfig(cfg)

	// 1. Сервисы
	serviceContainer := initializeServices(cfg, blobs)

	// 2. Хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer, blobs, cookies)

	// 3. Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Маршруты
	gate := middleware.AdminAuthMiddleware(serviceContainer.SessionService, cookies)
	routes.RegisterRoutes(ginRouter, appHandlers, gate, routes.Options{
		ServeStorage: cfg.Storage.Type == "local",
		Swagger:      !cfg.IsProduction(),
	})

	return ginRouter, serviceContainer
}

func initializeServices(cfg *config.Config, blobs *storage.BlobStore) *services.ServiceContainer {
	emailService := initializeEmail(cfg)

	// --- Репозитории ---
	portfolioRepo := repositories.NewPortfolioRepository()
	adminRepo := repositories.NewAdminRepository()
	sessionRepo := repositories.NewSessionRepository()

	codec, err := auth.NewSessionTokenCodec([]byte(sessionSecret(cfg)))
	if err != nil {
		logger.Fatal("Failed to initialize session codec", "error", err)
	}
	lifetime := time.Duration(cfg.Session.LifetimeMinutes) * time.Minute

	// --- Сервисы ---
	return &services.ServiceContainer{
		CredentialService: services.NewCredentialService(adminRepo, cfg.Admin.Password),
		SessionService:    services.NewSessionService(sessionRepo, codec, lifetime),
		PortfolioService:  services.NewPortfolioService(portfolioRepo, blobs),
		ContactService:    services.NewContactService(emailService, blobs, cfg.Contact.OwnerEmail),
		EmailService:      emailService,
		Blobs:             blobs,
	}
}

// initializeEmail - SMTP, если задан хост, иначе письма только логируются
func initializeEmail(cfg *config.Config) email.Provider {
	templates, err := email.NewDefaultTemplateManager()
	if err != nil {
		logger.Fatal("Failed to load email templates", "error", err)
	}

	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP host is not configured. Emails will be logged, not sent.")
		return NewMockEmailProvider(templates)
	}

	smtpConfig := email.DefaultConfig()
	smtpConfig.Host = cfg.Email.SMTPHost
	smtpConfig.Port = cfg.Email.SMTPPort
	smtpConfig.Username = cfg.Email.SMTPUsername
	smtpConfig.Password = cfg.Email.SMTPPassword
	smtpConfig.FromEmail = cfg.Email.FromEmail
	smtpConfig.FromName = cfg.Email.FromName
	smtpConfig.UseTLS = cfg.Email.UseTLS

	provider := email.NewSMTPProvider(smtpConfig, templates)
	if err := provider.Validate(); err != nil {
		logger.Fatal("Invalid SMTP configuration", "error", err)
	}
	logger.Info("SMTP email provider initialized", "host", smtpConfig.Host, "port", smtpConfig.Port)
	return provider
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer, blobs *storage.BlobStore, cookies auth.CookieConfig) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	portfolioRule := validator.FileRule{MaxSize: cfg.Upload.Portfolio.MaxSize, Extensions: cfg.Upload.Portfolio.Extensions}
	videoRule := validator.FileRule{MaxSize: cfg.Upload.ContactVideo.MaxSize, Extensions: cfg.Upload.ContactVideo.Extensions}

	return &handlers.AppHandlers{
		AdminHandler:     handlers.NewAdminHandler(baseHandler, container.CredentialService, container.SessionService, cookies),
		PortfolioHandler: handlers.NewPortfolioHandler(baseHandler, container.PortfolioService, portfolioRule),
		ContactHandler:   handlers.NewContactHandler(baseHandler, container.ContactService, videoRule),
		FileHandler:      handlers.NewFileHandler(baseHandler, blobs),
		HealthHandler:    handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	origins := cfg.Origins()

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxMultipartMemoryMB << 20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(origins))
	router.Use(middleware.OriginGuard(origins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func cookieConfig(cfg *config.Config) auth.CookieConfig {
	return auth.CookieConfig{
		Name:     cfg.Session.CookieName,
		Domain:   cfg.Session.Domain,
		Secure:   cfg.Session.Secure,
		SameSite: auth.ParseSameSite(cfg.Session.SameSite),
	}
}

// sessionSecret - из конфига; вне production пустой секрет заменяется случайным
// (сессии не переживут перезапуск).
func sessionSecret(cfg *config.Config) string {
	if cfg.Session.Secret != "" {
		return cfg.Session.Secret
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logger.Fatal("Failed to generate session secret", "error", err)
	}
	logger.Warn("SESSION_SECRET is not set. Using a random secret, sessions will not survive a restart.")
	cfg.Session.Secret = hex.EncodeToString(buf)
	return cfg.Session.Secret
}

// bootstrap - чистка просроченных сессий и предупреждения о пароле
func bootstrap(db *gorm.DB, cfg *config.Config, container *services.ServiceContainer) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	purged, err := container.SessionService.PurgeExpired(ctx, db)
	if err != nil {
		logger.Warn("Failed to purge expired sessions", "error", err)
	} else if purged > 0 {
		logger.Info("Expired sessions purged", "count", purged)
	}

	isSet, err := container.CredentialService.IsSet(ctx, db)
	if err != nil {
		logger.Warn("Failed to check admin credential", "error", err)
		return
	}

	switch {
	case !isSet && cfg.Admin.Password != "":
		logger.Info("No admin password stored yet. The configured fallback password is active.")
	case !isSet:
		logger.Warn("No admin password stored and ADMIN_PASSWORD is empty. Admin login is impossible.")
	case cfg.Admin.Password != "":
		logger.Info("Configured fallback admin password remains valid alongside the stored one.")
	}
}
