package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodtrace-backend/internal/http/response"
	"github.com/yungbote/moodtrace-backend/internal/services"
)

type CalibrationHandler struct {
	trainService services.TrainService
}

func NewCalibrationHandler(trainService services.TrainService) *CalibrationHandler {
	return &CalibrationHandler{trainService: trainService}
}

// POST /api/calibration/train
// body (optional): services.TrainOptions
func (h *CalibrationHandler) Train(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	var opts services.TrainOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
	}

	result, err := h.trainService.Train(c.Request.Context(), userID, opts)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}
