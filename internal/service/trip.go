// Package service contains the business logic for the ELD logbook API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Javier1520/eld/internal/domain"
	"github.com/Javier1520/eld/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip. trip.OwnerID must already carry
// the caller's identity; clients never choose the owner.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip visible to the owner.
func (s *TripService) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of the owner's trips plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListPaged(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.repo.ListPaged(ctx, ownerID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Update validates and persists changes to an existing trip.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound when
// the trip is missing or owned by someone else.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip and, via the database cascade, all its log entries.
func (s *TripService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - The three location fields must be non-empty (whitespace-only rejected).
//   - CurrentCycleUsed must be non-negative and fit numeric(5,2).
func validateTrip(trip domain.Trip) error {
	for _, f := range []struct {
		name, value string
	}{
		{"current_location", trip.CurrentLocation},
		{"pickup_location", trip.PickupLocation},
		{"dropoff_location", trip.DropoffLocation},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}
	if trip.CurrentCycleUsed < 0 {
		return fmt.Errorf("%w: current_cycle_used must not be negative", domain.ErrValidation)
	}
	if trip.CurrentCycleUsed >= 1000 {
		return fmt.Errorf("%w: current_cycle_used must be less than 1000", domain.ErrValidation)
	}
	return nil
}
