package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/veldt-labs/quartermaster/internal/api/handler"
	"github.com/veldt-labs/quartermaster/internal/api/middleware"
	"github.com/veldt-labs/quartermaster/internal/services/access"
	"github.com/veldt-labs/quartermaster/internal/services/profile"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AccessService  *access.Service
	ProfileService *profile.Service
}

// NewRouter creates a new router with all routes configured. The profile
// endpoints sit at the root with no version prefix; the paths are fixed by
// the game client.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	profileHandler := handler.NewProfileHandler(cfg.ProfileService, cfg.Logger)

	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	clientIPMiddleware := middleware.ClientIP(cfg.AccessService)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Profile routes, gated on the client IP allow-list
	profileRoutes := r.NewRoute().Subrouter()
	profileRoutes.Use(clientIPMiddleware)
	profileRoutes.HandleFunc("/get_profile", profileHandler.GetProfile).Methods(http.MethodGet)
	profileRoutes.HandleFunc("/set_profile", profileHandler.SetProfile).Methods(http.MethodPost)

	// Health check endpoint (no IP gate)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
