package handlers

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/avolkova/task-manager-api/internal/database"
	"github.com/avolkova/task-manager-api/internal/middleware"
	"github.com/avolkova/task-manager-api/internal/models"
	"github.com/avolkova/task-manager-api/internal/repository"
	"github.com/avolkova/task-manager-api/internal/services"
	"github.com/avolkova/task-manager-api/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db            *gorm.DB
	router        *gin.Engine
	tokens        *token.Service
	authService   *services.AuthService
	userService   *services.UserService
	statusService *services.TaskStatusService
	labelService  *services.LabelService
	taskService   *services.TaskService
}

// setupTestEnv wires the whole HTTP surface against an in-memory
// database, routed exactly like the production server.
func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.TaskStatus{},
		&models.Label{},
		&models.Task{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	private, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := token.NewService(&token.Keys{Private: private, Public: &private.PublicKey}, 86400000)

	userRepo := repository.NewUserRepository(db)
	statusRepo := repository.NewTaskStatusRepository(db)
	labelRepo := repository.NewLabelRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	statusService := services.NewTaskStatusService(statusRepo)
	labelService := services.NewLabelService(labelRepo)
	taskService := services.NewTaskService(taskRepo, statusRepo, userRepo, labelRepo)

	authHandler := NewAuthHandler(authService, userService)
	userHandler := NewUserHandler(userService)
	statusHandler := NewTaskStatusHandler(statusService)
	labelHandler := NewLabelHandler(labelService)
	taskHandler := NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
	r := gin.New()

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

	return testEnv{
		db:            db,
		router:        r,
		tokens:        tokens,
		authService:   authService,
		userService:   userService,
		statusService: statusService,
		labelService:  labelService,
		taskService:   taskService,
	}
}

// seedUser creates a user through the service so the password gets
// hashed, and returns it together with a valid bearer token.
func (env testEnv) seedUser(t *testing.T, email, password string) (*models.User, string) {
	t.Helper()

	user, err := env.userService.Create(services.CreateUserInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  password,
	})
	require.NoError(t, err)

	signed, err := env.tokens.Issue(user.Email)
	require.NoError(t, err)

	return user, signed
}

func (env testEnv) seedStatus(t *testing.T, name, slug string) *models.TaskStatus {
	t.Helper()

	status, err := env.statusService.Create(services.CreateTaskStatusInput{
		Name: name,
		Slug: slug,
	})
	require.NoError(t, err)
	return status
}

func (env testEnv) seedLabel(t *testing.T, name string) *models.Label {
	t.Helper()

	label, err := env.labelService.Create(services.CreateLabelInput{Name: name})
	require.NoError(t, err)
	return label
}

// doRequest performs a JSON request against the test router. A non-empty
// bearerToken is sent as the Authorization header.
func (env testEnv) doRequest(t *testing.T, method, path string, payload any, bearerToken string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
