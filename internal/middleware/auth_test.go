package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Javier1520/eld/internal/auth"
	"github.com/Javier1520/eld/internal/middleware"
)

// stubVerifier is a test double for auth.TokenVerifier that accepts exactly
// one token string.
type stubVerifier struct {
	accept    string
	principal string
}

func (v *stubVerifier) Verify(token string) (string, error) {
	if token == v.accept {
		return v.principal, nil
	}
	return "", auth.ErrInvalidToken
}

var _ auth.TokenVerifier = (*stubVerifier)(nil)

// echoPrincipalHandler writes the principal stored in the request context,
// proving the middleware made it available downstream.
var echoPrincipalHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.PrincipalID(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(id))
})

func TestRequireAuth_ValidToken(t *testing.T) {
	h := middleware.RequireAuth(&stubVerifier{accept: "good-token", principal: "driver-1"})(echoPrincipalHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "driver-1", rec.Body.String())
}

// TestRequireAuth_Rejections verifies that every failure mode yields the same
// uniform 401 envelope, so callers cannot probe which check failed.
func TestRequireAuth_Rejections(t *testing.T) {
	h := middleware.RequireAuth(&stubVerifier{accept: "good-token", principal: "driver-1"})(echoPrincipalHandler)

	for name, header := range map[string]string{
		"no header":     "",
		"not bearer":    "Token good-token",
		"empty bearer":  "Bearer ",
		"invalid token": "Bearer bad-token",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)

			var body map[string]map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "unauthorized", body["error"]["code"])
		})
	}
}

// TestRequireAuth_VerifierErrorsAreUniform checks that expired tokens get the
// same response as invalid ones.
func TestRequireAuth_VerifierErrorsAreUniform(t *testing.T) {
	expired := verifierFunc(func(string) (string, error) { return "", auth.ErrExpiredToken })
	h := middleware.RequireAuth(expired)(echoPrincipalHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// verifierFunc adapts a function to auth.TokenVerifier.
type verifierFunc func(token string) (string, error)

func (f verifierFunc) Verify(token string) (string, error) { return f(token) }

func TestRequireAuth_NoPanicOnNilBody(t *testing.T) {
	denyAll := verifierFunc(func(string) (string, error) { return "", errors.New("nope") })
	h := middleware.RequireAuth(denyAll)(echoPrincipalHandler)

	req := httptest.NewRequest(http.MethodDelete, "/api/trips/abc", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
