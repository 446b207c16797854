package handlers

import (
	"multiverse_backend/internal/http/middleware"
	"multiverse_backend/internal/referral"
	"multiverse_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Accounts  *service.AccountService
	Referrals *referral.Engine
}

func NewHandler(accounts *service.AccountService, referrals *referral.Engine) *Handler {
	return &Handler{Accounts: accounts, Referrals: referrals}
}

// fail writes the common error body. code is stable for clients to branch on.
func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
		"code":    code,
	})
}

// getUserID extracts the user id set by the JWT middleware
func getUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
