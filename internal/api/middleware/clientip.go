package middleware

import (
	"net/http"
	"net/netip"

	"github.com/veldt-labs/quartermaster/internal/api/apierr"
	"github.com/veldt-labs/quartermaster/internal/services/access"
)

// ClientIP creates middleware that rejects requests from addresses outside
// the configured allow-list. The check runs against the connection's remote
// address; forwarding headers are deliberately ignored, game servers talk to
// this service directly.
func ClientIP(accessService *access.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addrPort, err := netip.ParseAddrPort(r.RemoteAddr)
			if err != nil {
				apierr.WriteError(w, apierr.NewInternalError())
				return
			}
			if err := accessService.CheckClientIP(addrPort.Addr()); err != nil {
				apierr.WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
