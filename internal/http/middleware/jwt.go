package middleware

import (
	"net/http"
	"strings"

	"multiverse_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key JWT stores the authenticated user id under.
const UserIDKey = "user_id"

// JWT requires "Authorization: Bearer <token>" and stores the token's user id
// in the context.
func JWT(tokens *service.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "No token",
				"code":    "missing_token",
			})
			return
		}

		userID, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid Token",
				"code":    "invalid_token",
			})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
