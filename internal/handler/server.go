// Package handler implements the HTTP handlers for the ELD logbook API.
// All handlers are methods on Server. Each operation is an explicit handler
// function performing the same sequence: authenticate (middleware) →
// authorize by ownership (repo predicate) → validate for writes → respond.
// Methods are split into resource-specific files (trip.go, logentry.go,
// health.go) but all share the same Server struct.
package handler

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/Javier1520/eld/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// LogServicer defines the business operations the log entry handlers depend on.
type LogServicer interface {
	Create(ctx context.Context, ownerID string, entry domain.LogEntry, rawRemarks json.RawMessage) (domain.LogEntry, error)
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.LogEntry, error)
	ListPaged(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.LogEntry, int64, error)
	Update(ctx context.Context, ownerID string, entry domain.LogEntry, rawRemarks json.RawMessage) (domain.LogEntry, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// Server holds the dependencies shared by every handler method.
type Server struct {
	trips TripServicer
	logs  LogServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, logs LogServicer) *Server {
	return &Server{trips: trips, logs: logs}
}
