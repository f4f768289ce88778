package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Javier1520/eld/internal/domain"
	"github.com/Javier1520/eld/internal/repo"
)

// LogService implements business logic for LogEntry operations.
// It holds both repos because every write must first resolve the parent trip
// under the caller's ownership before a log entry may reference it.
type LogService struct {
	trips repo.TripRepo
	logs  repo.LogRepo
}

// NewLogService constructs a LogService backed by the provided repos.
func NewLogService(trips repo.TripRepo, logs repo.LogRepo) *LogService {
	return &LogService{trips: trips, logs: logs}
}

// Create validates and persists a new log entry for one of the owner's trips.
//
// rawRemarks is the remarks field exactly as submitted; it runs through
// domain.ValidateRemarks, which also derives TotalHours. Whatever TotalHours
// the client sent in entry is discarded. A parent trip that is missing or
// owned by someone else surfaces as domain.ErrNotFound.
func (s *LogService) Create(ctx context.Context, ownerID string, entry domain.LogEntry, rawRemarks json.RawMessage) (domain.LogEntry, error) {
	if _, err := s.trips.GetByID(ctx, ownerID, entry.TripID); err != nil {
		return domain.LogEntry{}, fmt.Errorf("service.LogService.Create: %w", err)
	}
	if err := applyRemarks(&entry, rawRemarks); err != nil {
		return domain.LogEntry{}, err
	}
	if err := validateLogEntry(entry); err != nil {
		return domain.LogEntry{}, err
	}
	result, err := s.logs.Create(ctx, entry)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("service.LogService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single log entry visible to the owner.
func (s *LogService) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.LogEntry, error) {
	result, err := s.logs.GetByID(ctx, ownerID, id)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("service.LogService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of the owner's log entries plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LogService) ListPaged(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.LogEntry, int64, error) {
	entries, total, err := s.logs.ListPaged(ctx, ownerID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.LogService.ListPaged: %w", err)
	}
	if entries == nil {
		entries = []domain.LogEntry{}
	}
	return entries, total, nil
}

// Update validates and persists a full replacement of an existing log entry.
// The remark validator re-runs and TotalHours is recomputed on every update,
// so the field stays read-only from the client's perspective.
func (s *LogService) Update(ctx context.Context, ownerID string, entry domain.LogEntry, rawRemarks json.RawMessage) (domain.LogEntry, error) {
	if _, err := s.trips.GetByID(ctx, ownerID, entry.TripID); err != nil {
		return domain.LogEntry{}, fmt.Errorf("service.LogService.Update: %w", err)
	}
	if err := applyRemarks(&entry, rawRemarks); err != nil {
		return domain.LogEntry{}, err
	}
	if err := validateLogEntry(entry); err != nil {
		return domain.LogEntry{}, err
	}
	result, err := s.logs.Update(ctx, ownerID, entry)
	if err != nil {
		return domain.LogEntry{}, fmt.Errorf("service.LogService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a log entry visible to the owner.
func (s *LogService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	if err := s.logs.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.LogService.Delete: %w", err)
	}
	return nil
}

// applyRemarks runs the remark validator and writes its two outputs into the
// entry, overwriting any client-supplied remarks and total hours.
// Validation failure aborts the whole write; nothing reaches the repo.
func applyRemarks(entry *domain.LogEntry, rawRemarks json.RawMessage) error {
	remarks, totalHours, err := domain.ValidateRemarks(rawRemarks)
	if err != nil {
		return err
	}
	entry.Remarks = remarks
	entry.TotalHours = totalHours
	return nil
}

// validateLogEntry enforces business rules common to both Create and Update.
//   - The four signature fields must be non-empty (whitespace-only rejected).
//   - Date must be set; TotalMiles must be non-negative.
func validateLogEntry(entry domain.LogEntry) error {
	for _, f := range []struct {
		name, value string
	}{
		{"truck_number", entry.TruckNumber},
		{"carrier_name", entry.CarrierName},
		{"main_office_address", entry.MainOfficeAddress},
		{"driver_signature", entry.DriverSignature},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrValidation, f.name)
		}
	}
	if entry.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if entry.TotalMiles < 0 {
		return fmt.Errorf("%w: total_miles must not be negative", domain.ErrValidation)
	}
	// A daily log cannot record more than a day; this also keeps the value
	// inside the numeric(4,2) column.
	if entry.TotalHours > 24 {
		return fmt.Errorf("%w: remarks total must not exceed 24 hours", domain.ErrValidation)
	}
	return nil
}
