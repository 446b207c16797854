package handlers

import (
	"net/http"

	"multiverse_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RedeemRequest names the redeeming user directly; the endpoint is
// unauthenticated. Empty fields fall through to the engine's not_found and
// invalid_code outcomes.
type RedeemRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

func (h *Handler) RedeemReferral(c *gin.Context) {
	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad_request", "Invalid request body")
		return
	}

	res, err := h.Referrals.Redeem(c.Request.Context(), req.UserID, req.Code)
	if err != nil {
		logger.Error("referral redeem failed", "error", err, "user_id", req.UserID)
		fail(c, http.StatusInternalServerError, "internal", "Referral failed")
		return
	}

	// business rejections are still 200
	c.JSON(http.StatusOK, gin.H{
		"success": res.OK(),
		"message": res.Message,
		"code":    res.Outcome.Code(),
	})
}
