package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avolkova/task-manager-api/internal/dto"
	apierrors "github.com/avolkova/task-manager-api/internal/errors"
	"github.com/avolkova/task-manager-api/internal/repository"
	"github.com/avolkova/task-manager-api/internal/services"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task CRUD and filtering HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks matching the optional query filters
// titleCont, assigneeId, status and labelId. Filters combine with AND;
// with no filters every task comes back.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var filter repository.TaskFilter

	if titleCont := c.Query("titleCont"); titleCont != "" {
		filter.TitleCont = &titleCont
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if assigneeIDStr := c.Query("assigneeId"); assigneeIDStr != "" {
		assigneeID, err := strconv.ParseUint(assigneeIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assigneeId")
			return
		}
		filter.AssigneeID = &assigneeID
	}
	if labelIDStr := c.Query("labelId"); labelIDStr != "" {
		labelID, err := strconv.ParseUint(labelIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid labelId")
			return
		}
		filter.LabelID = &labelID
	}

	tasks, err := h.taskService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task. The status is referenced by slug, the
// assignee and labels by id; a missing reference is a 404.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title        string   `json:"title" binding:"required"`
		Index        *int     `json:"index"`
		Content      string   `json:"content"`
		Status       string   `json:"status" binding:"required"`
		AssigneeID   *uint64  `json:"assignee_id"`
		TaskLabelIDs []uint64 `json:"taskLabelIds"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:      req.Title,
		Index:      req.Index,
		Content:    req.Content,
		Status:     req.Status,
		AssigneeID: req.AssigneeID,
		LabelIDs:   req.TaskLabelIDs,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns a task by ID.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.FindByID(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to a task. Omitted fields keep
// their stored values; a present taskLabelIds replaces the label set.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title        *string   `json:"title" binding:"omitempty,min=1"`
		Index        *int      `json:"index"`
		Content      *string   `json:"content"`
		Status       *string   `json:"status"`
		AssigneeID   *uint64   `json:"assignee_id"`
		TaskLabelIDs *[]uint64 `json:"taskLabelIds"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	task, err := h.taskService.Update(id, services.UpdateTaskInput{
		Title:      req.Title,
		Index:      req.Index,
		Content:    req.Content,
		Status:     req.Status,
		AssigneeID: req.AssigneeID,
		LabelIDs:   req.TaskLabelIDs,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrTaskStatusNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrLabelNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
