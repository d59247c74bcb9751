package router

import (
	"ideaboard/internal/handlers"
	"ideaboard/internal/middleware"
	"ideaboard/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires services, handlers, and routes onto the engine.
// Session middleware must already be installed.
func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	// Services
	authService := services.NewAuthService(db)
	ideaService := services.NewIdeaService(db)
	socialService := services.NewSocialService(db)
	listingService := services.NewListingService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	ideaHandler := handlers.NewIdeaHandler(ideaService, listingService)
	socialHandler := handlers.NewSocialHandler(socialService)

	r.Use(middleware.LoadUser(db))

	// Public Routes
	r.POST("/signup", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/ideas", ideaHandler.ListAll)
	r.GET("/ideas/popular", ideaHandler.ListPopular)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/ideas/mine", ideaHandler.ListMine)
		authorized.POST("/ideas", ideaHandler.Create)
		authorized.PUT("/ideas/:id", ideaHandler.Update)
		authorized.DELETE("/ideas/:id", ideaHandler.Delete)

		authorized.POST("/ideas/:id/like", socialHandler.ToggleLike)
		authorized.POST("/ideas/:id/comments", socialHandler.AddComment)
	}
}
