// Package api is the entrypoint for hosts that invoke an http.HandlerFunc
// instead of running the cmd/app process.
package api

import (
	"net/http"
	"sync"

	"multiverse_backend/internal/app"
	"multiverse_backend/internal/config"
	"multiverse_backend/internal/logger"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler builds the application on the first request of a cold start and
// reuses it, store pool included, for the life of the instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		a, err := app.New(config.Load())
		if err != nil {
			logger.Error("failed to build application", "error", err)
			return
		}
		handler = a.Handler
	})
	if handler == nil {
		http.Error(w, `{"success":false,"message":"Server Error","code":"internal"}`, http.StatusInternalServerError)
		return
	}
	handler.ServeHTTP(w, r)
}
