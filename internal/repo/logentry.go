package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Javier1520/eld/internal/domain"
)

// logColumns is the SELECT/RETURNING column list shared by every LogRepo query.
const logColumns = `id, trip_id, date, total_miles, truck_number, carrier_name,
		main_office_address, driver_signature, co_driver_name, shipping_document,
		time_base, remarks, total_hours, created_at, updated_at`

// LogRepo defines the persistence operations for LogEntries.
//
// A log entry is visible only through a trip owned by the caller, so every
// operation except Create carries the ownership predicate through a join on
// trips. Create trusts the service layer to have resolved the parent trip
// under the caller's ownership first.
type LogRepo interface {
	// Create inserts a new log entry and returns the persisted record.
	Create(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error)

	// GetByID retrieves a single log entry by primary key, scoped to trips
	// owned by ownerID. Returns domain.ErrNotFound if none is visible.
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.LogEntry, error)

	// ListPaged returns one page of the owner's log entries ordered by date
	// descending, plus the owner's total entry count.
	ListPaged(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.LogEntry, int64, error)

	// Update overwrites the mutable fields of an existing log entry, scoped
	// to trips owned by ownerID. Returns domain.ErrNotFound if none is visible.
	Update(ctx context.Context, ownerID string, entry domain.LogEntry) (domain.LogEntry, error)

	// Delete removes a log entry by ID, scoped to trips owned by ownerID.
	// Returns domain.ErrNotFound if none is visible.
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}

// pgLogRepo is the Postgres implementation of LogRepo.
type pgLogRepo struct {
	db db
}

// NewLogRepo constructs a LogRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLogRepo(db db) LogRepo {
	return &pgLogRepo{db: db}
}

func (r *pgLogRepo) Create(ctx context.Context, entry domain.LogEntry) (domain.LogEntry, error) {
	const q = `
		INSERT INTO log_entries (trip_id, date, total_miles, truck_number, carrier_name,
			main_office_address, driver_signature, co_driver_name, shipping_document,
			time_base, remarks, total_hours)
		VALUES (@trip_id, @date, @total_miles, @truck_number, @carrier_name,
			@main_office_address, @driver_signature, @co_driver_name, @shipping_document,
			@time_base, @remarks, @total_hours)
		RETURNING ` + logColumns

	args, err := logArgs(entry)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("repo.LogRepo.Create: %w", err)
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLogEntry(row)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("repo.LogRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgLogRepo) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.LogEntry, error) {
	const q = `
		SELECT l.id, l.trip_id, l.date, l.total_miles, l.truck_number, l.carrier_name,
			l.main_office_address, l.driver_signature, l.co_driver_name, l.shipping_document,
			l.time_base, l.remarks, l.total_hours, l.created_at, l.updated_at
		FROM log_entries l
		JOIN trips t ON t.id = l.trip_id
		WHERE l.id = @id AND t.owner_id = @owner_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	result, err := scanLogEntry(row)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("repo.LogRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgLogRepo) ListPaged(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.LogEntry, int64, error) {
	const q = `
		SELECT l.id, l.trip_id, l.date, l.total_miles, l.truck_number, l.carrier_name,
			l.main_office_address, l.driver_signature, l.co_driver_name, l.shipping_document,
			l.time_base, l.remarks, l.total_hours, l.created_at, l.updated_at
		FROM log_entries l
		JOIN trips t ON t.id = l.trip_id
		WHERE t.owner_id = @owner_id
		ORDER BY l.date DESC, l.id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"owner_id": ownerID,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.LogRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var entries []domain.LogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.LogRepo.ListPaged: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.LogRepo.ListPaged: rows: %w", err)
	}

	const countQ = `
		SELECT count(*)
		FROM log_entries l
		JOIN trips t ON t.id = l.trip_id
		WHERE t.owner_id = @owner_id`
	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"owner_id": ownerID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.LogRepo.ListPaged: count: %w", err)
	}

	return entries, total, nil
}

func (r *pgLogRepo) Update(ctx context.Context, ownerID string, entry domain.LogEntry) (domain.LogEntry, error) {
	const q = `
		UPDATE log_entries
		SET trip_id             = @trip_id,
		    date                = @date,
		    total_miles         = @total_miles,
		    truck_number        = @truck_number,
		    carrier_name        = @carrier_name,
		    main_office_address = @main_office_address,
		    driver_signature    = @driver_signature,
		    co_driver_name      = @co_driver_name,
		    shipping_document   = @shipping_document,
		    time_base           = @time_base,
		    remarks             = @remarks,
		    total_hours         = @total_hours,
		    updated_at          = now()
		WHERE id = @id
		  AND trip_id IN (SELECT id FROM trips WHERE owner_id = @owner_id)
		RETURNING ` + logColumns

	args, err := logArgs(entry)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("repo.LogRepo.Update: %w", err)
	}
	args["id"] = entry.ID
	args["owner_id"] = ownerID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLogEntry(row)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("repo.LogRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgLogRepo) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	const q = `
		DELETE FROM log_entries
		WHERE id = @id
		  AND trip_id IN (SELECT id FROM trips WHERE owner_id = @owner_id)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.LogRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LogRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// logArgs builds the named args shared by Create and Update.
// Remarks marshal to a jsonb array; an empty list stores as [] rather than NULL.
func logArgs(entry domain.LogEntry) (pgx.NamedArgs, error) {
	remarks := entry.Remarks
	if remarks == nil {
		remarks = []domain.Remark{}
	}
	remarksJSON, err := json.Marshal(remarks)
	if err != nil {
		return nil, fmt.Errorf("marshal remarks: %w", err)
	}

	return pgx.NamedArgs{
		"trip_id":             entry.TripID,
		"date":                pgtype.Date{Time: entry.Date, Valid: true},
		"total_miles":         entry.TotalMiles,
		"truck_number":        entry.TruckNumber,
		"carrier_name":        entry.CarrierName,
		"main_office_address": entry.MainOfficeAddress,
		"driver_signature":    entry.DriverSignature,
		"co_driver_name":      entry.CoDriverName, // nil becomes NULL
		"shipping_document":   entry.ShippingDocument,
		"time_base":           entry.TimeBase,
		"remarks":             remarksJSON,
		"total_hours":         entry.TotalHours,
	}, nil
}

// scanLogEntry maps a single database row into a domain.LogEntry.
// It handles the UUID, date, nullable-text, and jsonb conversions.
func scanLogEntry(s scanner) (domain.LogEntry, error) {
	var (
		e       domain.LogEntry
		id      pgtype.UUID
		tripID  pgtype.UUID
		date    pgtype.Date
		remarks []byte
	)

	err := s.Scan(&id, &tripID, &date, &e.TotalMiles, &e.TruckNumber, &e.CarrierName,
		&e.MainOfficeAddress, &e.DriverSignature, &e.CoDriverName, &e.ShippingDocument,
		&e.TimeBase, &remarks, &e.TotalHours, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LogEntry{}, domain.ErrNotFound
		}
		return domain.LogEntry{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.Date = date.Time
	e.Remarks = []domain.Remark{}
	if len(remarks) > 0 {
		if err := json.Unmarshal(remarks, &e.Remarks); err != nil {
			return domain.LogEntry{}, fmt.Errorf("unmarshal remarks: %w", err)
		}
	}

	return e, nil
}
