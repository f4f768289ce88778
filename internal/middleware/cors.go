package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// preflightMaxAge is how long (in seconds) browsers may cache a preflight
// response, saving an OPTIONS round-trip per endpoint.
const preflightMaxAge = 300

// NewCORSHandler returns a middleware that applies CORS headers for the given
// origins. Each entry must be a full origin (scheme + host, no trailing
// slash). The allowed methods and headers cover the full REST surface,
// including the Authorization header every authenticated call carries.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         preflightMaxAge,
	})
	return c.Handler
}
