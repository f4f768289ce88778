package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Javier1520/eld/internal/domain"
)

// ErrorResponse is the JSON error envelope every failure path uses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the standard error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondNotFound writes a 404 for a missing resource. The caller supplies
// the message (e.g. "trip not found") because the handler is the layer that
// knows what was being looked up.
func respondNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, "not_found", message)
}

// respondServiceError maps a service-layer error onto the right status code.
// Remark validation failures keep their specific kind as the error code;
// anything that is neither not-found nor a validation error is an
// infrastructure fault and becomes an opaque 500.
func respondServiceError(w http.ResponseWriter, err error, resource string) {
	var remarkErr *domain.RemarkError
	switch {
	case errors.As(err, &remarkErr):
		writeError(w, http.StatusUnprocessableEntity, string(remarkErr.Kind), remarkErr.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		respondNotFound(w, resource+" not found")
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// respondBadRequest writes a 422 for a request rejected before reaching the
// service layer (e.g. missing or malformed body).
func respondBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// validationMessage extracts the human-readable part from a wrapped
// domain.ErrValidation, e.g. "validation error: name is required" → "name is required".
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	return msg
}
