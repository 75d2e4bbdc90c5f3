package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
)

// respondError writes err as {"error": message} with the status of its kind.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := apperror.Status(err)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}
	c.JSON(status, gin.H{"error": apperror.Message(err)})
}

// Home is the unauthenticated welcome endpoint.
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Video Streaming API!"})
}

// HealthCheck reports whether the database answers a ping.
func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.DB.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "Database connection failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
