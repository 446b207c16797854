package handlers

import (
	"errors"
	"net/http"

	"multiverse_backend/internal/logger"
	"multiverse_backend/internal/repository"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "invalid_token", "Invalid Token")
		return
	}

	user, err := h.Accounts.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "user_not_found", "User not found")
			return
		}
		logger.Error("profile lookup failed", "error", err, "user_id", userID)
		fail(c, http.StatusInternalServerError, "internal", "Server Error")
		return
	}

	c.JSON(http.StatusOK, user)
}
