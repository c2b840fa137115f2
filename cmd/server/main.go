package main

import (
	"fmt"
	"log"
	"net/http"

	"mingle/backend/internal/auth"
	"mingle/backend/internal/config"
	"mingle/backend/internal/database"
	"mingle/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "mingle/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Mingle API
// @version         1.0
// @description     This is the API for the Mingle social-networking service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)
	handler.Init(database.DB)

	router := setupRouter()

	addr := ":" + config.AppConfig.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost" + addr + "/swagger/index.html")
	log.Fatal(router.Run(addr))
}

// setupRouter builds the gin engine with all routes and middleware attached.
func setupRouter() *gin.Engine {
	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			// Static routes must be registered before /:id
			userRoutes.GET("", handler.SearchUsers)
			userRoutes.GET("/suggestions", handler.GetSuggestions)
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.GET("/me/friends", handler.GetFriends)
			userRoutes.GET("/me/requests", handler.GetRequests)
			userRoutes.GET("/me/events", handler.StreamEvents)
			userRoutes.GET("/:id", handler.GetUserByID)

			// Friendship routes
			userRoutes.POST("/:id/request", handler.SendRequest)
			userRoutes.POST("/:id/accept", handler.AcceptRequest)
			userRoutes.POST("/:id/decline", handler.DeclineRequest)
			userRoutes.POST("/:id/cancel", handler.CancelRequest)
			userRoutes.POST("/:id/remove", handler.RemoveFriend)
		}

		// Post read routes (public, viewer-aware when a token is sent)
		postReadRoutes := apiV1.Group("/posts")
		postReadRoutes.Use(auth.OptionalAuthMiddleware())
		{
			postReadRoutes.GET("", handler.GetPosts)
			postReadRoutes.GET("/:id", handler.GetPostByID)
			postReadRoutes.GET("/:id/comments", handler.GetComments)
		}

		// Post write routes (protected)
		postRoutes := apiV1.Group("/posts")
		postRoutes.Use(auth.AuthMiddleware())
		{
			postRoutes.POST("", handler.CreatePost)
			postRoutes.PUT("/:id", handler.UpdatePost)
			postRoutes.DELETE("/:id", handler.DeletePost)
			postRoutes.POST("/:id/like", handler.ToggleLikePost)
			postRoutes.POST("/:id/comments", handler.CreateComment)
		}

		// Comment routes (protected)
		commentRoutes := apiV1.Group("/comments")
		commentRoutes.Use(auth.AuthMiddleware())
		{
			commentRoutes.DELETE("/:id", handler.DeleteComment)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminRoutes.GET("/users", handler.AdminListUsers)
			adminRoutes.DELETE("/users/:id", handler.AdminDeleteUser)
			adminRoutes.DELETE("/posts/:id", handler.AdminDeletePost)
			adminRoutes.DELETE("/comments/:id", handler.AdminDeleteComment)
		}
	}

	return router
}
