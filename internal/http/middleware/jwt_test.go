package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"multiverse_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"Bearer":          "",
		"Bearer abc":      "abc",
		"bearer abc":      "abc",
		"  Bearer  abc  ": "abc",
		"Basic abc":       "",
		"abc":             "",
	}
	for header, want := range tests {
		require.Equal(t, want, bearerToken(header), "header %q", header)
	}
}

func TestJWTSetsUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenIssuer("test-secret", time.Hour)

	r := gin.New()
	r.GET("/me", JWT(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})

	token, err := tokens.Generate("user-42")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "user-42", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
