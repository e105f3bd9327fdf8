package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/auth"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/config"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/database"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/handlers"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/middleware"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/repository"
	"github.com/shaheryarshah/Hackthone-TODO-PII-Back/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	// Bearer tokens
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryMinutes)*time.Minute)

	// Optional AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Services
	authService := services.NewAuthService(userRepo)
	todoService := services.NewTodoService(todoRepo, aiService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, tokens)
	todoHandler := handlers.NewTodoHandler(todoService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Todo API is running",
		})
	})

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/me", requireAuth, authHandler.GetCurrentUser)
			authRoutes.DELETE("/me", requireAuth, authHandler.DeleteCurrentUser)
		}

		// Todo routes (protected)
		todos := api.Group("/todos")
		todos.Use(requireAuth)
		{
			todos.GET("", todoHandler.ListTodos)
			todos.POST("", todoHandler.CreateTodo)
			todos.GET("/due-soon", todoHandler.DueSoon)
			todos.POST("/suggest", todoHandler.SuggestTodos)
			todos.GET("/:id", todoHandler.GetTodo)
			todos.PATCH("/:id", todoHandler.UpdateTodo)
			todos.DELETE("/:id", todoHandler.DeleteTodo)
			todos.PATCH("/:id/complete", todoHandler.CompleteTodo)
		}
	}

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
