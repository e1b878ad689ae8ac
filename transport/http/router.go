package http

import (
	"github.com/gin-gonic/gin"

	"github.com/moonforge/launchpad/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, coinService *service.CoinService) *gin.Engine {
	router := gin.Default()

	authHandlers := NewAuthHandlers(authService)
	coinHandlers := NewCoinHandlers(coinService)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/challenge", authHandlers.Challenge)
		auth.POST("/verify", authHandlers.Verify)
		auth.GET("/whoami", AuthMiddleware(authService), authHandlers.Whoami)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(AuthMiddleware(authService))
	{
		api.POST("/coins", coinHandlers.Create)
		api.GET("/coins", coinHandlers.List)
		api.GET("/coins/:id", coinHandlers.Get)
	}

	return router
}
