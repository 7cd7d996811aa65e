package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/moodtrace-backend/internal/http/response"
	"github.com/yungbote/moodtrace-backend/internal/platform/ctxutil"
	"github.com/yungbote/moodtrace-backend/internal/services"
)

type EntryHandler struct {
	ingestService services.IngestService
}

func NewEntryHandler(ingestService services.IngestService) *EntryHandler {
	return &EntryHandler{ingestService: ingestService}
}

// POST /api/entries
// body: services.LabeledEntryInput
func (h *EntryHandler) RecordEntry(c *gin.Context) {
	userID, ok := callerUserID(c)
	if !ok {
		return
	}

	var input services.LabeledEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	entry, err := h.ingestService.RecordLabeledEntry(c.Request.Context(), userID, input)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func callerUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusForbidden, "forbidden", fmt.Errorf("no authenticated user"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}
