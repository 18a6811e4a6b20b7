package main

import (
	"log"

	"github.com/avolkova/task-manager-api/internal/config"
	"github.com/avolkova/task-manager-api/internal/database"
	"github.com/avolkova/task-manager-api/internal/handlers"
	"github.com/avolkova/task-manager-api/internal/middleware"
	"github.com/avolkova/task-manager-api/internal/repository"
	"github.com/avolkova/task-manager-api/internal/services"
	"github.com/avolkova/task-manager-api/internal/token"
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

	// Seed default data
	if err := database.Seed(database.GetDB()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Resolve the JWT signing keypair; a malformed configured key is fatal
	keys, err := token.LoadKeys(cfg)
	if err != nil {
		log.Fatalf("Failed to load RSA keys: %v", err)
	}
	tokens := token.NewService(keys, cfg.JWTTTLMillis)

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.GetDB())
	statusRepo := repository.NewTaskStatusRepository(database.GetDB())
	labelRepo := repository.NewLabelRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	statusService := services.NewTaskStatusService(statusRepo)
	labelService := services.NewLabelService(labelRepo)
	taskService := services.NewTaskService(taskRepo, statusRepo, userRepo, labelRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	statusHandler := handlers.NewTaskStatusHandler(statusService)
	labelHandler := handlers.NewLabelHandler(labelService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Manager API is running",
		})
	})

	// API routes; the auth gate runs on every request and never aborts,
	// RequireAuth guards the protected ones
	api := r.Group("/api")
	api.Use(middleware.Authenticate(tokens, userRepo))
	{
		api.POST("/login", authHandler.Login)
		api.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)

		users := api.Group("/users")
		{
			users.GET("", middleware.RequireAuth(), userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", middleware.RequireAuth(), userHandler.GetUser)
			users.PUT("/:id", middleware.RequireAuth(), userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireAuth(), userHandler.DeleteUser)
		}

		statuses := api.Group("/task_statuses")
		statuses.Use(middleware.RequireAuth())
		{
			statuses.GET("", statusHandler.ListTaskStatuses)
			statuses.POST("", statusHandler.CreateTaskStatus)
			statuses.GET("/:id", statusHandler.GetTaskStatus)
			statuses.PUT("/:id", statusHandler.UpdateTaskStatus)
			statuses.DELETE("/:id", statusHandler.DeleteTaskStatus)
		}

		labels := api.Group("/labels")
		labels.Use(middleware.RequireAuth())
		{
			labels.GET("", labelHandler.ListLabels)
			labels.POST("", labelHandler.CreateLabel)
			labels.GET("/:id", labelHandler.GetLabel)
			labels.PUT("/:id", labelHandler.UpdateLabel)
			labels.DELETE("/:id", labelHandler.DeleteLabel)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
