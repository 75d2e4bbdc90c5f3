// internal/handlers/video_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/mamacare-api/internal/middleware"
	"github.com/harentsoaR/mamacare-api/internal/services"
)

type UploadVideoRequest struct {
	YouTubeURL  string `json:"youtube_url" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,oneof=Postpartum Preconception Pregnancy"`
}

func (h *Handler) UploadVideo(c *gin.Context) {
	var req UploadVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accountID, role := middleware.Caller(c)
	video, err := h.Catalog.Upload(c.Request.Context(), accountID, role, services.UploadInput{
		YouTubeURL:  req.YouTubeURL,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Video uploaded successfully",
		"video":   video,
	})
}

// GetVideos lists a doctor's uploads, or the whole catalog for users with
// watched videos first.
func (h *Handler) GetVideos(c *gin.Context) {
	accountID, role := middleware.Caller(c)
	videos, err := h.Catalog.List(c.Request.Context(), accountID, role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *Handler) DeleteVideo(c *gin.Context) {
	accountID, role := middleware.Caller(c)
	if err := h.Catalog.Delete(c.Request.Context(), accountID, role, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}
