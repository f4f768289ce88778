package handler

import (
	"net/http"

	"github.com/Javier1520/eld/internal/domain"
)

// tripRequest is the client-settable subset of a trip. The owner comes from
// the authenticated principal, the ID from the path, created_at from the DB.
type tripRequest struct {
	CurrentLocation  string  `json:"current_location"`
	PickupLocation   string  `json:"pickup_location"`
	DropoffLocation  string  `json:"dropoff_location"`
	CurrentCycleUsed float64 `json:"current_cycle_used"`
}

// tripListResponse is the paginated envelope for GET /api/trips.
type tripListResponse struct {
	Data       []domain.Trip `json:"data"`
	Pagination pagination    `json:"pagination"`
}

// handleCreateTrip handles POST /api/trips.
func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}

	var req tripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.trips.Create(r.Context(), domain.Trip{
		OwnerID:          ownerID,
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: req.CurrentCycleUsed,
	})
	if err != nil {
		respondServiceError(w, err, "trip")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleListTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}

	params := pageParams(r)
	trips, total, err := s.trips.ListPaged(r.Context(), ownerID, params)
	if err != nil {
		respondServiceError(w, err, "trip")
		return
	}

	writeJSON(w, http.StatusOK, tripListResponse{
		Data:       trips,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: int(total)},
	})
}

// handleGetTrip handles GET /api/trips/{id}.
func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "trip")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), ownerID, id)
	if err != nil {
		respondServiceError(w, err, "trip")
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// handleUpdateTrip handles PUT /api/trips/{id}.
func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "trip")
	if !ok {
		return
	}

	var req tripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.trips.Update(r.Context(), domain.Trip{
		ID:               id,
		OwnerID:          ownerID,
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: req.CurrentCycleUsed,
	})
	if err != nil {
		respondServiceError(w, err, "trip")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteTrip handles DELETE /api/trips/{id}.
// Deleting a trip cascades to its log entries at the database level.
func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "trip")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), ownerID, id); err != nil {
		respondServiceError(w, err, "trip")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
