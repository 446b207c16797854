package handlers

import (
	"errors"
	"net/http"

	"multiverse_backend/internal/logger"
	"multiverse_backend/internal/repository"
	"multiverse_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad_request", "Email and password are required")
		return
	}

	_, err := h.Accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		fail(c, http.StatusBadRequest, "duplicate_email", "Email already registered.")
		return
	case errors.Is(err, repository.ErrDuplicateCode):
		fail(c, http.StatusInternalServerError, "duplicate_code", "Referral code collision, please retry")
		return
	case err != nil:
		logger.Error("register failed", "error", err)
		fail(c, http.StatusInternalServerError, "internal", "Server Error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account created successfully!"})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad_request", "Email and password are required")
		return
	}

	token, user, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		fail(c, http.StatusBadRequest, "user_not_found", "User not found")
		return
	case errors.Is(err, service.ErrBanned):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"message":  "Account banned",
			"code":     "account_banned",
			"isBanned": true,
		})
		return
	case errors.Is(err, service.ErrInvalidPassword):
		fail(c, http.StatusBadRequest, "invalid_password", "Invalid password")
		return
	case err != nil:
		logger.Error("login failed", "error", err)
		fail(c, http.StatusInternalServerError, "internal", "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}
