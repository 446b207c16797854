package http

import (
	"net/http"
	"time"

	"multiverse_backend/internal/http/handlers"
	"multiverse_backend/internal/http/middleware"
	"multiverse_backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is everything the router needs; all of it is built once at start-up.
type Deps struct {
	Handler *handlers.Handler
	Health  *handlers.HealthHandler
	Tokens  *service.TokenIssuer
	Limiter *middleware.RateLimiter

	AuthRateLimit  int
	AuthRateWindow time.Duration
	StoreTimeout   time.Duration
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", d.Handler.Home)

	// Health checks and metrics (no rate limiting)
	r.GET("/healthz", d.Health.Liveness)
	r.GET("/readyz", d.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRL := d.Limiter.Limit("auth", d.AuthRateLimit, d.AuthRateWindow)
	referralRL := d.Limiter.Limit("referral", d.AuthRateLimit, d.AuthRateWindow)

	api := r.Group("/api")
	api.Use(middleware.StoreTimeout(d.StoreTimeout))

	api.POST("/register", authRL, d.Handler.Register)
	api.POST("/login", authRL, d.Handler.Login)
	api.GET("/me", middleware.JWT(d.Tokens), d.Handler.Me)
	api.POST("/referral/redeem", referralRL, d.Handler.RedeemReferral)
}

// WithCORS allows any origin with the methods and headers the web client uses.
func WithCORS(h http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})(h)
}
