package handlers

import (
	"strconv"

	apierrors "github.com/avolkova/task-manager-api/internal/errors"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads the :id path parameter. On failure it writes a 400
// response and returns ok=false.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}
