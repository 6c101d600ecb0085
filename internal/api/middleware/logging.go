package middleware

import (
	"log/slog"
	"net/http"

	"github.com/veldt-labs/quartermaster/internal/middleware"
)

// Logging creates request logging middleware for the profile endpoints.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
