package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	emailConfigured func() bool
}

func NewHealthHandler(emailConfigured func() bool) *HealthHandler {
	return &HealthHandler{
		emailConfigured: emailConfigured,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"emailConfigured": h.emailConfigured(),
	})
}
