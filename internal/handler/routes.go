package handler

import (
	"gamecatalog/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API under the given group (normally /api/v1).
func (h *Handler) RegisterRoutes(apiV1 *gin.RouterGroup) {
	optionalAuth := auth.OptionalAuthMiddleware(h.tokens)
	requireAuth := auth.AuthMiddleware(h.tokens)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.LoginUser)
	}

	// User routes (protected)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(requireAuth)
	{
		userRoutes.GET("/me", h.GetMe)
	}

	developerRoutes := apiV1.Group("/developers")
	developerRoutes.Use(optionalAuth)
	{
		developerRoutes.GET("", h.GetDevelopers)
		developerRoutes.GET("/:id", h.GetDeveloperByID)
		developerRoutes.GET("/:id/games", h.GetDeveloperGames)
	}

	gameRoutes := apiV1.Group("/games")
	gameRoutes.Use(optionalAuth)
	{
		gameRoutes.GET("", h.GetGames)
		gameRoutes.GET("/stats", h.GetGameStats) // Must be before /:id
		gameRoutes.GET("/:id", h.GetGameByID)
		gameRoutes.GET("/:id/compatibility", h.GetGameCompatibility)
		gameRoutes.GET("/:id/reviews", h.GetGameReviews)
		gameRoutes.POST("/:id/reviews", requireAuth, h.CreateReview)
	}

	consoleRoutes := apiV1.Group("/consoles")
	consoleRoutes.Use(optionalAuth)
	{
		consoleRoutes.GET("", h.GetConsoles)
		consoleRoutes.GET("/:id", h.GetConsoleByID)
		consoleRoutes.GET("/:id/accessories", h.GetConsoleAccessories)
		consoleRoutes.GET("/:id/games", h.GetConsoleGames)
	}

	accessoryRoutes := apiV1.Group("/accessories")
	accessoryRoutes.Use(optionalAuth)
	{
		accessoryRoutes.GET("", h.GetAccessories)
		accessoryRoutes.GET("/:id", h.GetAccessoryByID)
	}

	reviewRoutes := apiV1.Group("/reviews")
	reviewRoutes.Use(requireAuth)
	{
		reviewRoutes.DELETE("/:id", h.DeleteReview)
	}

	apiV1.GET("/events", h.StreamEvents)

	// Admin routes (protected by auth and admin check)
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(requireAuth, auth.AdminMiddleware(h.svc))
	{
		developers := adminRoutes.Group("/developers")
		{
			developers.POST("", h.CreateDeveloper)
			developers.PUT("/:id", h.UpdateDeveloper)
			developers.DELETE("/:id", h.DeleteDeveloper)
		}

		games := adminRoutes.Group("/games")
		{
			games.POST("", h.CreateGame)
			games.PUT("/:id", h.UpdateGame)
			games.DELETE("/:id", h.DeleteGame)
			games.PUT("/:id/image", h.UploadGameImage)
			games.DELETE("/:id/image", h.DeleteGameImage)
		}

		consoles := adminRoutes.Group("/consoles")
		{
			consoles.POST("", h.CreateConsole)
			consoles.PUT("/:id", h.UpdateConsole)
			consoles.DELETE("/:id", h.DeleteConsole)
			consoles.PUT("/:id/image", h.UploadConsoleImage)
			consoles.DELETE("/:id/image", h.DeleteConsoleImage)
		}

		accessories := adminRoutes.Group("/accessories")
		{
			accessories.POST("", h.CreateAccessory)
			accessories.PUT("/:id", h.UpdateAccessory)
			accessories.DELETE("/:id", h.DeleteAccessory)
			accessories.PUT("/:id/image", h.UploadAccessoryImage)
			accessories.DELETE("/:id/image", h.DeleteAccessoryImage)
		}
	}
}
