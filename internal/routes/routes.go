package routes

import (
	"hanabi_backend/internal/handlers"
	"hanabi_backend/internal/middleware"
	"hanabi_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP API and the realtime feed.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers, wsHandler *ws.Handler) {
	api := router.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.OnboardingHandler.RegisterRoutes(api)
		appHandlers.VerificationHandler.RegisterRoutes(api)
		appHandlers.ReviewHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
		appHandlers.MatchHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
		appHandlers.FileHandler.RegisterRoutes(api)
	}

	wsGroup := router.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
}
