package middleware

import (
	"log/slog"
	"net/http"

	"github.com/veldt-labs/quartermaster/internal/api/apierr"
	"github.com/veldt-labs/quartermaster/internal/middleware"
)

// Recovery creates panic recovery middleware for the profile endpoints.
// Panics surface to the client as the protocol's error document.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, panicHandler)
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
