// internal/handlers/history_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
	"github.com/harentsoaR/mamacare-api/internal/middleware"
)

type WatchRequest struct {
	VideoID string `json:"video_id"`
}

// RecordView moves the posted video to the front of the caller's history.
func (h *Handler) RecordView(c *gin.Context) {
	var req WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, apperror.InvalidArgument("video_id must be a non-empty string"))
		return
	}

	accountID, role := middleware.Caller(c)
	history, err := h.History.RecordView(c.Request.Context(), accountID, role, req.VideoID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Watch history updated",
		"watch_history": history,
	})
}

func (h *Handler) GetWatchHistory(c *gin.Context) {
	accountID, role := middleware.Caller(c)
	history, err := h.History.GetHistory(c.Request.Context(), accountID, role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"watch_history": history})
}
