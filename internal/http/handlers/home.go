package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Home(c *gin.Context) {
	c.String(http.StatusOK, "AI Multiverse Backend is Running! 🚀")
}
