package handlers

import (
	"errors"
	"net/http"

	"github.com/avolkova/task-manager-api/internal/dto"
	apierrors "github.com/avolkova/task-manager-api/internal/errors"
	"github.com/avolkova/task-manager-api/internal/services"
	"github.com/gin-gonic/gin"
)

// LabelHandler coordinates label CRUD HTTP handlers.
type LabelHandler struct {
	labelService *services.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService *services.LabelService) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// ListLabels returns all labels.
func (h *LabelHandler) ListLabels(c *gin.Context) {
	labels, err := h.labelService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch labels")
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTOs(labels))
}

// CreateLabel creates a new label.
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	type CreateLabelRequest struct {
		Name string `json:"name" binding:"required,min=3,max=1000"`
	}

	var req CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	label, err := h.labelService.Create(services.CreateLabelInput{
		Name: req.Name,
	})
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToLabelDTO(*label))
}

// GetLabel returns a label by ID.
func (h *LabelHandler) GetLabel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	label, err := h.labelService.FindByID(id)
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

// UpdateLabel applies a partial update to a label.
func (h *LabelHandler) UpdateLabel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	type UpdateLabelRequest struct {
		Name *string `json:"name" binding:"omitempty,min=3,max=1000"`
	}

	var req UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationFailed(c, err)
		return
	}

	label, err := h.labelService.Update(id, services.UpdateLabelInput{
		Name: req.Name,
	})
	if err != nil {
		respondLabelError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLabelDTO(*label))
}

// DeleteLabel removes a label unless tasks still carry it.
func (h *LabelHandler) DeleteLabel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.labelService.Delete(id); err != nil {
		respondLabelError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondLabelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrLabelNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrLabelInUse):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
