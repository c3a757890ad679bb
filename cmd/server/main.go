package main

import (
	"log"

	"github.com/ayatsuji/taskboard/internal/config"
	"github.com/ayatsuji/taskboard/internal/database"
	"github.com/ayatsuji/taskboard/internal/handlers"
	"github.com/ayatsuji/taskboard/internal/identity"
	"github.com/ayatsuji/taskboard/internal/media"
	"github.com/ayatsuji/taskboard/internal/middleware"
	"github.com/ayatsuji/taskboard/internal/repository"
	"github.com/ayatsuji/taskboard/internal/services"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
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

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions("taskboard_session", store))

	// External collaborators
	provider := identity.NewClerkProvider(cfg.ClerkAPIURL, cfg.ClerkSecretKey)
	uploader := media.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset)

	// Repositories and services
	db := database.GetDB()
	taskService := services.NewTaskService(repository.NewTaskRepository(db))
	userService := services.NewUserService(repository.NewUserRepository(db))
	uploadService := services.NewUploadService(uploader, repository.NewImageRepository(db))

	var suggestionService *services.SuggestionService
	if cfg.OpenAIAPIKey != "" {
		suggestionService = services.NewSuggestionService(cfg.OpenAIAPIKey)
	}

	// Handlers
	taskHandler := handlers.NewTaskHandler(taskService, suggestionService)
	userHandler := handlers.NewUserHandler(userService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Taskboard API is running",
		})
	})

	auth := middleware.RequireAuth(provider)

	// Task routes
	tasks := r.Group("/tasks")
	tasks.Use(auth)
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.POST("/generate", taskHandler.SuggestTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PATCH("/:id", taskHandler.PatchTask)
		tasks.PUT("/:id", taskHandler.ReplaceTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	// Profile routes
	users := r.Group("/users")
	users.Use(auth)
	{
		users.GET("/:clerkId", userHandler.GetUser)
		users.POST("/:clerkId", userHandler.CreateUser)
		users.PUT("/:clerkId", userHandler.ReplaceUser)
		users.DELETE("/:clerkId", userHandler.DeleteUser)
	}

	// Image upload
	r.POST("/upload", auth, uploadHandler.UploadImage)
	r.GET("/uploads", auth, uploadHandler.ListUploads)

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
