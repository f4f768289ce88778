package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Javier1520/eld/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// All operations except Create are scoped by ownerID; a trip belonging to a
// different owner behaves exactly like a trip that does not exist.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id and created_at populated). trip.OwnerID must be set.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by primary key, scoped to ownerID.
	// Returns domain.ErrNotFound if no visible trip with that ID exists.
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error)

	// ListPaged returns one page of the owner's trips ordered by created_at
	// descending, plus the owner's total trip count.
	ListPaged(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip and returns
	// the updated record, scoped to trip.OwnerID. Returns domain.ErrNotFound
	// if no visible trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID, scoped to ownerID. Log entries cascade at
	// the database level. Returns domain.ErrNotFound if no visible trip exists.
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (owner_id, current_location, pickup_location, dropoff_location, current_cycle_used)
		VALUES (@owner_id, @current_location, @pickup_location, @dropoff_location, @current_cycle_used)
		RETURNING id, owner_id, current_location, pickup_location, dropoff_location, current_cycle_used, created_at`

	args := pgx.NamedArgs{
		"owner_id":           trip.OwnerID,
		"current_location":   trip.CurrentLocation,
		"pickup_location":    trip.PickupLocation,
		"dropoff_location":   trip.DropoffLocation,
		"current_cycle_used": trip.CurrentCycleUsed,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key, restricted to the owner's rows.
func (r *pgTripRepo) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, owner_id, current_location, pickup_location, dropoff_location, current_cycle_used, created_at
		FROM trips
		WHERE id = @id AND owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of the owner's trips, newest first, plus the total count.
func (r *pgTripRepo) ListPaged(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT id, owner_id, current_location, pickup_location, dropoff_location, current_cycle_used, created_at
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}

	const countQ = `SELECT count(*) FROM trips WHERE owner_id = @owner_id`
	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"owner_id": ownerID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: count: %w", err)
	}

	return trips, total, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
// owner_id and created_at are immutable and never touched.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET current_location   = @current_location,
		    pickup_location    = @pickup_location,
		    dropoff_location   = @dropoff_location,
		    current_cycle_used = @current_cycle_used
		WHERE id = @id AND owner_id = @owner_id
		RETURNING id, owner_id, current_location, pickup_location, dropoff_location, current_cycle_used, created_at`

	args := pgx.NamedArgs{
		"id":                 trip.ID,
		"owner_id":           trip.OwnerID,
		"current_location":   trip.CurrentLocation,
		"pickup_location":    trip.PickupLocation,
		"dropoff_location":   trip.DropoffLocation,
		"current_cycle_used": trip.CurrentCycleUsed,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key, restricted to the owner's rows.
func (r *pgTripRepo) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.OwnerID, &t.CurrentLocation, &t.PickupLocation,
		&t.DropoffLocation, &t.CurrentCycleUsed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
