package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root GET /
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Backend is live. Use /api/apps for products."})
}

// Health GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
