package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Javier1520/eld/internal/auth"
	"github.com/Javier1520/eld/internal/domain"
)

// principal returns the authenticated owner ID from the request context.
// Routes are mounted behind middleware.RequireAuth, so a missing principal
// means a wiring mistake; respond 401 rather than panic.
func principal(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.PrincipalID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return "", false
	}
	return id, true
}

// pathID parses the {id} URL parameter. IDs are opaque to clients, so a
// syntactically invalid one is reported the same way as an absent record.
func pathID(w http.ResponseWriter, r *http.Request, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondNotFound(w, resource+" not found")
		return uuid.UUID{}, false
	}
	return id, true
}

// decodeBody decodes the JSON request body into v, translating decode
// failures into the API's error responses. Returns false if a response has
// already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
		return false
	}
	respondBadRequest(w, "invalid request body")
	return false
}

// pageParams reads the optional ?page= and ?limit= query parameters.
// Unparseable values fall back to the defaults rather than erroring.
func pageParams(r *http.Request) domain.PaginationParams {
	return domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
}

func queryInt(r *http.Request, key string) *int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// pagination is the envelope metadata returned by list endpoints.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}
