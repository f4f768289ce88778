package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Javier1520/eld/internal/auth"
)

// RequireAuth returns a middleware that rejects requests lacking a valid
// bearer token and stores the verified principal in the request context.
//
// All failure modes (missing header, malformed token, bad signature,
// expired token) produce the same 401 body, so callers cannot probe which
// check failed.
func RequireAuth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			principalID, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principalID)))
		})
	}
}

// unauthorized writes the uniform 401 response in the API's error envelope.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    "unauthorized",
			"message": "authentication required",
		},
	})
}
