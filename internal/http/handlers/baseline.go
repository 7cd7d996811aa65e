package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodtrace-backend/internal/http/response"
	"github.com/yungbote/moodtrace-backend/internal/services"
)

type BaselineHandler struct {
	baselineService services.BaselineService
}

func NewBaselineHandler(baselineService services.BaselineService) *BaselineHandler {
	return &BaselineHandler{baselineService: baselineService}
}

// GET /api/baseline?window_days=30
func (h *BaselineHandler) Snapshot(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	windowDays := 0
	if raw := c.Query("window_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_request",
				fmt.Errorf("query param window_days must be a positive integer, got %q", raw))
			return
		}
		windowDays = parsed
	}

	snapshot, err := h.baselineService.Snapshot(c.Request.Context(), userID, windowDays)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, snapshot)
}
