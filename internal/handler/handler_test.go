package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Javier1520/eld/internal/auth"
	"github.com/Javier1520/eld/internal/handler"
)

// testToken is the one bearer token the stub verifier accepts, and
// testPrincipal the identity it resolves to.
const (
	testToken     = "test-token"
	testPrincipal = "driver-1"
)

// stubVerifier is a test double for auth.TokenVerifier that accepts exactly
// testToken, keeping handler tests independent of real JWT plumbing.
type stubVerifier struct{}

func (stubVerifier) Verify(token string) (string, error) {
	if token == testToken {
		return testPrincipal, nil
	}
	return "", auth.ErrInvalidToken
}

var _ auth.TokenVerifier = stubVerifier{}

// newHTTPHandler wires a Server with the given mocks into the router exactly
// as main.go does in production, minus the cross-cutting middleware.
func newHTTPHandler(trips handler.TripServicer, logs handler.LogServicer) http.Handler {
	return handler.NewRouter(handler.NewServer(trips, logs), stubVerifier{})
}

// authedRequest builds a request carrying the accepted bearer token.
func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+testToken)
	return req
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// errorCode extracts error.code from a response body in the API's envelope.
func errorCode(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp.Error.Code
}
