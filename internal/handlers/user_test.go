package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/avolkova/task-manager-api/internal/dto"
	"github.com/avolkova/task-manager-api/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserHandler_CreateUser(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doRequest(t, http.MethodPost, "/api/users", map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"password":  "qwerty",
	}, "")

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotZero(t, response.ID)
	require.Equal(t, "Ada", response.FirstName)
	require.Equal(t, "ada@example.com", response.Email)

	// The password must be stored hashed, never in the clear.
	stored, err := env.userService.FindByID(response.ID)
	require.NoError(t, err)
	require.NotEqual(t, "qwerty", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("qwerty")))
}

func TestUserHandler_CreateUserValidation(t *testing.T) {
	env := setupTestEnv(t)

	cases := []map[string]string{
		{"firstName": "Ada", "lastName": "Lovelace", "email": "not-an-email", "password": "qwerty"},
		{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "password": "xy"},
		{"lastName": "Lovelace", "email": "ada@example.com", "password": "qwerty"},
	}
	for i, payload := range cases {
		w := env.doRequest(t, http.MethodPost, "/api/users", payload, "")
		require.Equal(t, http.StatusBadRequest, w.Code, "case %d", i)
	}
}

func TestUserHandler_CreateUserDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.seedUser(t, "taken@example.com", "supersecret")

	w := env.doRequest(t, http.MethodPost, "/api/users", map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "taken@example.com",
		"password":  "qwerty",
	}, "")

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_ListUsers(t *testing.T) {
	env := setupTestEnv(t)
	_, bearer := env.seedUser(t, "first@example.com", "supersecret")
	env.seedUser(t, "second@example.com", "supersecret")

	w := env.doRequest(t, http.MethodGet, "/api/users", nil, bearer)

	require.Equal(t, http.StatusOK, w.Code)

	var response []dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	require.Equal(t, "first@example.com", response[0].Email)
	require.Equal(t, "second@example.com", response[1].Email)
}

func TestUserHandler_ListUsersRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.doRequest(t, http.MethodGet, "/api/users", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_GetUser(t *testing.T) {
	env := setupTestEnv(t)
	user, bearer := env.seedUser(t, "lookup@example.com", "supersecret")

	w := env.doRequest(t, http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), nil, bearer)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
}

func TestUserHandler_GetUserNotFound(t *testing.T) {
	env := setupTestEnv(t)
	_, bearer := env.seedUser(t, "lookup@example.com", "supersecret")

	w := env.doRequest(t, http.MethodGet, "/api/users/9999", nil, bearer)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_UpdateUserPartial(t *testing.T) {
	env := setupTestEnv(t)
	user, bearer := env.seedUser(t, "before@example.com", "supersecret")

	w := env.doRequest(t, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]string{
		"firstName": "Renamed",
	}, bearer)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Renamed", response.FirstName)

	// Fields absent from the payload keep their stored values.
	require.Equal(t, "User", response.LastName)
	require.Equal(t, "before@example.com", response.Email)
}

func TestUserHandler_UpdateUserDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.seedUser(t, "taken@example.com", "supersecret")
	user, bearer := env.seedUser(t, "mine@example.com", "supersecret")

	w := env.doRequest(t, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]string{
		"email": "taken@example.com",
	}, bearer)

	require.Equal(t, http.StatusConflict, w.Code)

	stored, err := env.userService.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "mine@example.com", stored.Email)
}

func TestUserHandler_UpdateUserKeepsOwnEmail(t *testing.T) {
	env := setupTestEnv(t)
	user, bearer := env.seedUser(t, "mine@example.com", "supersecret")

	// Re-submitting the current address is not a conflict.
	w := env.doRequest(t, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]string{
		"email": "mine@example.com",
	}, bearer)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_UpdateUserPassword(t *testing.T) {
	env := setupTestEnv(t)
	user, bearer := env.seedUser(t, "rotate@example.com", "oldsecret")

	w := env.doRequest(t, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]string{
		"password": "newsecret",
	}, bearer)

	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.userService.FindByID(user.ID)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newsecret")))
	require.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("oldsecret")))
}

func TestUserHandler_DeleteUser(t *testing.T) {
	env := setupTestEnv(t)
	_, bearer := env.seedUser(t, "keeper@example.com", "supersecret")
	victim, _ := env.seedUser(t, "victim@example.com", "supersecret")

	w := env.doRequest(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", victim.ID), nil, bearer)
	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := env.userService.FindByID(victim.ID)
	require.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUserHandler_DeleteAssignedUserConflicts(t *testing.T) {
	env := setupTestEnv(t)
	_, bearer := env.seedUser(t, "keeper@example.com", "supersecret")
	assignee, _ := env.seedUser(t, "assignee@example.com", "supersecret")
	status := env.seedStatus(t, "Draft", "draft")

	_, err := env.taskService.Create(services.CreateTaskInput{
		Title:      "Assigned work",
		Status:     status.Slug,
		AssigneeID: &assignee.ID,
	})
	require.NoError(t, err)

	w := env.doRequest(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", assignee.ID), nil, bearer)
	require.Equal(t, http.StatusConflict, w.Code)

	// The user survives the failed delete.
	_, err = env.userService.FindByID(assignee.ID)
	require.NoError(t, err)
}
