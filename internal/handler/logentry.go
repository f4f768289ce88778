package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Javier1520/eld/internal/domain"
)

// logRequest is the client-settable subset of a log entry. total_hours is
// deliberately absent: the server derives it from remarks, so any value the
// client sends is dropped at decode time. Remarks stays raw JSON here; the
// service runs it through the validator.
type logRequest struct {
	Trip              uuid.UUID          `json:"trip"`
	Date              openapi_types.Date `json:"date"`
	TotalMiles        int                `json:"total_miles"`
	TruckNumber       string             `json:"truck_number"`
	CarrierName       string             `json:"carrier_name"`
	MainOfficeAddress string             `json:"main_office_address"`
	DriverSignature   string             `json:"driver_signature"`
	CoDriverName      *string            `json:"co_driver_name"`
	ShippingDocument  *string            `json:"shipping_document"`
	TimeBase          string             `json:"time_base"`
	Remarks           json.RawMessage    `json:"remarks"`
}

// logResponse is the wire form of a log entry. The date renders as a plain
// calendar date ("2006-01-02"), matching what clients submit.
type logResponse struct {
	ID                uuid.UUID          `json:"id"`
	Trip              uuid.UUID          `json:"trip"`
	Date              openapi_types.Date `json:"date"`
	TotalMiles        int                `json:"total_miles"`
	TruckNumber       string             `json:"truck_number"`
	CarrierName       string             `json:"carrier_name"`
	MainOfficeAddress string             `json:"main_office_address"`
	DriverSignature   string             `json:"driver_signature"`
	CoDriverName      *string            `json:"co_driver_name,omitempty"`
	ShippingDocument  *string            `json:"shipping_document,omitempty"`
	TimeBase          string             `json:"time_base"`
	Remarks           []domain.Remark    `json:"remarks"`
	TotalHours        float64            `json:"total_hours"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// logListResponse is the paginated envelope for GET /api/logs.
type logListResponse struct {
	Data       []logResponse `json:"data"`
	Pagination pagination    `json:"pagination"`
}

// handleCreateLog handles POST /api/logs.
func (s *Server) handleCreateLog(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}

	var req logRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.logs.Create(r.Context(), ownerID, requestToLogEntry(uuid.Nil, req), req.Remarks)
	if err != nil {
		respondServiceError(w, err, "log entry")
		return
	}

	writeJSON(w, http.StatusCreated, logToResponse(created))
}

// handleListLogs handles GET /api/logs.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) handleListLogs(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}

	params := pageParams(r)
	entries, total, err := s.logs.ListPaged(r.Context(), ownerID, params)
	if err != nil {
		respondServiceError(w, err, "log entry")
		return
	}

	data := make([]logResponse, len(entries))
	for i, e := range entries {
		data[i] = logToResponse(e)
	}
	writeJSON(w, http.StatusOK, logListResponse{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// handleGetLog handles GET /api/logs/{id}.
func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "log entry")
	if !ok {
		return
	}

	entry, err := s.logs.GetByID(r.Context(), ownerID, id)
	if err != nil {
		respondServiceError(w, err, "log entry")
		return
	}

	writeJSON(w, http.StatusOK, logToResponse(entry))
}

// handleUpdateLog handles PUT /api/logs/{id}.
// The remark validator re-runs on every update, recomputing total_hours.
func (s *Server) handleUpdateLog(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "log entry")
	if !ok {
		return
	}

	var req logRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.logs.Update(r.Context(), ownerID, requestToLogEntry(id, req), req.Remarks)
	if err != nil {
		respondServiceError(w, err, "log entry")
		return
	}

	writeJSON(w, http.StatusOK, logToResponse(updated))
}

// handleDeleteLog handles DELETE /api/logs/{id}.
func (s *Server) handleDeleteLog(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "log entry")
	if !ok {
		return
	}

	if err := s.logs.Delete(r.Context(), ownerID, id); err != nil {
		respondServiceError(w, err, "log entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToLogEntry converts a request body into a domain.LogEntry, keeping
// the path ID for updates. Remarks and TotalHours are left to the validator.
func requestToLogEntry(id uuid.UUID, req logRequest) domain.LogEntry {
	return domain.LogEntry{
		ID:                id,
		TripID:            req.Trip,
		Date:              req.Date.Time,
		TotalMiles:        req.TotalMiles,
		TruckNumber:       req.TruckNumber,
		CarrierName:       req.CarrierName,
		MainOfficeAddress: req.MainOfficeAddress,
		DriverSignature:   req.DriverSignature,
		CoDriverName:      req.CoDriverName,
		ShippingDocument:  req.ShippingDocument,
		TimeBase:          req.TimeBase,
	}
}

// logToResponse converts a domain.LogEntry into its wire form.
func logToResponse(e domain.LogEntry) logResponse {
	remarks := e.Remarks
	if remarks == nil {
		remarks = []domain.Remark{}
	}
	return logResponse{
		ID:                e.ID,
		Trip:              e.TripID,
		Date:              openapi_types.Date{Time: e.Date},
		TotalMiles:        e.TotalMiles,
		TruckNumber:       e.TruckNumber,
		CarrierName:       e.CarrierName,
		MainOfficeAddress: e.MainOfficeAddress,
		DriverSignature:   e.DriverSignature,
		CoDriverName:      e.CoDriverName,
		ShippingDocument:  e.ShippingDocument,
		TimeBase:          e.TimeBase,
		Remarks:           remarks,
		TotalHours:        e.TotalHours,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
