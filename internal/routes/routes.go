package routes

import (
	"portfolio_backend/internal/handlers"
	"portfolio_backend/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options - что включать помимо API
type Options struct {
	// ServeStorage - отдавать локальные файлы по /storage/*
	ServeStorage bool
	// Swagger - /swagger/*any, вне production
	Swagger bool
}

// RegisterRoutes регистрирует API в корне и под /api: фронтенд обращается по обоим путям.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	gate gin.HandlerFunc,
	opts Options,
) {
	for _, prefix := range []string{"", "/api"} {
		api := ginRouter.Group(prefix)
		{
			appHandlers.PortfolioHandler.RegisterRoutes(api, gate)
			appHandlers.AdminHandler.RegisterRoutes(api, gate)
			appHandlers.ContactHandler.RegisterRoutes(api)
		}
	}

	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	if opts.ServeStorage {
		appHandlers.FileHandler.RegisterRoutes(ginRouter)
		logger.Info("Local storage route /storage/* registered")
	}

	if opts.Swagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("Swagger UI registered", "path", "/swagger/index.html")
	}
}
