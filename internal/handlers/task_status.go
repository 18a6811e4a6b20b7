package handlers

import (
	"errors"
	"net/http"

	"github.com/avolkova/task-manager-api/internal/dto"
	apierrors "github.com/avolkova/task-manager-api/internal/errors"
	"github.com/avolkova/task-manager-api/internal/services"
	"github.com/gin-gonic/gin"
)

// TaskStatusHandler coordinates task status CRUD HTTP handlers.
type TaskStatusHandler struct {
	statusService *services.TaskStatusService
}

// NewTaskStatusHandler creates a new TaskStatusHandler.
func NewTaskStatusHandler(statusService *services.TaskStatusService) *TaskStatusHandler {
	return &TaskStatusHandler{
		statusService: statusService,
	}
}

// ListTaskStatuses returns all task statuses.
func (h *TaskStatusHandler) ListTaskStatuses(c *gin.Context) {
	statuses, err := h.statusService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch task statuses")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskStatusDTOs(statuses))
}

// CreateTaskStatus creates a new task status.
func (h *TaskStatusHandler) CreateTaskStatus(c *gin.Context) {
	type CreateTaskStatusRequest struct {
		Name string `json:"name" binding:"required"`
		Slug string `json:"slug" binding:"required"`
	}

	var req CreateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	status, err := h.statusService.Create(services.CreateTaskStatusInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		respondTaskStatusError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskStatusDTO(*status))
}

// GetTaskStatus returns a task status by ID.
func (h *TaskStatusHandler) GetTaskStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	status, err := h.statusService.FindByID(id)
	if err != nil {
		respondTaskStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskStatusDTO(*status))
}

// UpdateTaskStatus applies a partial update to a task status.
func (h *TaskStatusHandler) UpdateTaskStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskStatusRequest struct {
		Name *string `json:"name"`
		Slug *string `json:"slug"`
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	status, err := h.statusService.Update(id, services.UpdateTaskStatusInput{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		respondTaskStatusError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskStatusDTO(*status))
}

// DeleteTaskStatus removes a task status unless tasks still reference it.
func (h *TaskStatusHandler) DeleteTaskStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.statusService.Delete(id); err != nil {
		respondTaskStatusError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTaskStatusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskStatusNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskStatusInUse):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
