// Package app wires configuration, store, services and router into one
// http.Handler. Both the listening binary and the hosted entrypoint use it.
package app

import (
	"net/http"

	"multiverse_backend/internal/config"
	"multiverse_backend/internal/db"
	httpServer "multiverse_backend/internal/http"
	"multiverse_backend/internal/http/handlers"
	"multiverse_backend/internal/http/middleware"
	"multiverse_backend/internal/logger"
	"multiverse_backend/internal/referral"
	"multiverse_backend/internal/repository"
	"multiverse_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Version is overridden at build time with -ldflags "-X multiverse_backend/internal/app.Version=..."
var Version = "dev"

type App struct {
	Handler http.Handler
	Store   repository.UserStore

	closers []func()
}

// New acquires the store and Redis connections and builds the router.
func New(cfg *config.Config) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	a := &App{}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	a.Store = store
	a.closers = append(a.closers, closeStore)

	limiter := middleware.NewRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	a.closers = append(a.closers, func() { _ = limiter.Close() })

	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	accounts := service.NewAccountService(store, service.NewBcryptHasher(), tokens)
	engine := referral.NewEngine(store, referral.Policy{
		Bonus:       cfg.ReferralBonus,
		ReferrerCap: cfg.ReferralCap,
	})

	router := httpServer.NewRouter(httpServer.Deps{
		Handler:        handlers.NewHandler(accounts, engine),
		Health:         handlers.NewHealthHandler(store, Version),
		Tokens:         tokens,
		Limiter:        limiter,
		AuthRateLimit:  cfg.AuthRateLimit,
		AuthRateWindow: cfg.AuthRateWindow,
		StoreTimeout:   cfg.StoreTimeout,
	})
	a.Handler = httpServer.WithCORS(router)

	logger.Info("application ready",
		"env", cfg.Env,
		"store", cfg.StoreDriver,
		"referral_bonus", cfg.ReferralBonus,
		"referral_cap", cfg.ReferralCap,
	)
	return a, nil
}

// Close releases connections in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func openStore(cfg *config.Config) (repository.UserStore, func(), error) {
	if cfg.StoreDriver == config.StoreDriverSQLite {
		gdb, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		return repository.NewGormUserRepository(gdb), func() { _ = sqlDB.Close() }, nil
	}

	pool := db.Connect(cfg.DatabaseURL, cfg.StoreTimeout)
	return repository.NewUserRepository(pool), pool.Close, nil
}
