package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodtrace-backend/internal/http/response"
	"github.com/yungbote/moodtrace-backend/internal/services"
)

type PredictionHandler struct {
	predictService services.PredictService
}

func NewPredictionHandler(predictService services.PredictService) *PredictionHandler {
	return &PredictionHandler{predictService: predictService}
}

// POST /api/predict
// body: services.PredictRequest
func (h *PredictionHandler) Predict(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	var req services.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	prediction, err := h.predictService.Predict(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, prediction)
}
