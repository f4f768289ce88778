package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Javier1520/eld/internal/domain"
	"github.com/Javier1520/eld/internal/handler"
)

// mockLogServicer is a test double for handler.LogServicer.
type mockLogServicer struct {
	create    func(ctx context.Context, ownerID string, entry domain.LogEntry, rawRemarks json.RawMessage) (domain.LogEntry, error)
	getByID   func(ctx context.Context, ownerID string, id uuid.UUID) (domain.LogEntry, error)
	listPaged func(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.LogEntry, int64, error)
	update    func(ctx context.Context, ownerID string, entry domain.LogEntry, rawRemarks json.RawMessage) (domain.LogEntry, error)
	delete    func(ctx context.Context, ownerID string, id uuid.UUID) error
}

func (m *mockLogServicer) Create(ctx context.Context, ownerID string, entry domain.LogEntry, rawRemarks json.RawMessage) (domain.LogEntry, error) {
	return m.create(ctx, ownerID, entry, rawRemarks)
}
func (m *mockLogServicer) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (domain.LogEntry, error) {
	return m.getByID(ctx, ownerID, id)
}
func (m *mockLogServicer) ListPaged(ctx context.Context, ownerID string, p domain.PaginationParams) ([]domain.LogEntry, int64, error) {
	return m.listPaged(ctx, ownerID, p)
}
func (m *mockLogServicer) Update(ctx context.Context, ownerID string, entry domain.LogEntry, rawRemarks json.RawMessage) (domain.LogEntry, error) {
	return m.update(ctx, ownerID, entry, rawRemarks)
}
func (m *mockLogServicer) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	return m.delete(ctx, ownerID, id)
}

// compile-time check: mockLogServicer must satisfy handler.LogServicer.
var _ handler.LogServicer = (*mockLogServicer)(nil)

func logFixture() domain.LogEntry {
	return domain.LogEntry{
		ID:                uuid.New(),
		TripID:            uuid.New(),
		Date:              time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalMiles:        420,
		TruckNumber:       "TRK-042",
		CarrierName:       "Interstate Freight Co",
		MainOfficeAddress: "100 Depot Rd, Richmond, VA",
		DriverSignature:   "J. Doe",
		TimeBase:          "EST",
		Remarks: []domain.Remark{
			{HourStart: "2024-01-01T08:00:00", HourFinish: "2024-01-01T12:30:00"},
		},
		TotalHours: 4.5,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
}

func logBody(t *testing.T, tripID uuid.UUID) map[string]any {
	t.Helper()
	return map[string]any{
		"trip":                tripID.String(),
		"date":                "2024-01-01",
		"total_miles":         420,
		"truck_number":        "TRK-042",
		"carrier_name":        "Interstate Freight Co",
		"main_office_address": "100 Depot Rd, Richmond, VA",
		"driver_signature":    "J. Doe",
		"time_base":           "EST",
		"remarks": []map[string]any{
			{"hour_start": "2024-01-01T08:00:00", "hour_finish": "2024-01-01T12:30:00", "status": "DRIVING"},
		},
	}
}

// ---- POST /api/logs --------------------------------------------------------

func TestCreateLog_201(t *testing.T) {
	fixture := logFixture()
	svc := &mockLogServicer{
		create: func(_ context.Context, ownerID string, entry domain.LogEntry, rawRemarks json.RawMessage) (domain.LogEntry, error) {
			assert.Equal(t, testPrincipal, ownerID)
			assert.Equal(t, fixture.TripID, entry.TripID)
			assert.JSONEq(t,
				`[{"hour_start":"2024-01-01T08:00:00","hour_finish":"2024-01-01T12:30:00","status":"DRIVING"}]`,
				string(rawRemarks), "remarks must reach the service verbatim")
			return fixture, nil
		},
	}

	req := authedRequest(http.MethodPost, "/api/logs", jsonBody(t, logBody(t, fixture.TripID)))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2024-01-01", got["date"], "date must render as a plain calendar date")
	assert.EqualValues(t, 4.5, got["total_hours"])
}

// TestCreateLog_ClientTotalHoursIgnored verifies that a client-supplied
// total_hours never reaches the service: the field is not part of the
// request type, so the entry arrives with the zero value and the validator's
// result is what gets persisted.
func TestCreateLog_ClientTotalHoursIgnored(t *testing.T) {
	fixture := logFixture()
	svc := &mockLogServicer{
		create: func(_ context.Context, _ string, entry domain.LogEntry, _ json.RawMessage) (domain.LogEntry, error) {
			assert.Zero(t, entry.TotalHours, "client total_hours must be dropped at decode time")
			return fixture, nil
		},
	}

	body := logBody(t, fixture.TripID)
	body["total_hours"] = 99.99

	req := authedRequest(http.MethodPost, "/api/logs", jsonBody(t, body))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateLog_422_RemarkError(t *testing.T) {
	svc := &mockLogServicer{
		create: func(_ context.Context, _ string, _ domain.LogEntry, _ json.RawMessage) (domain.LogEntry, error) {
			return domain.LogEntry{}, &domain.RemarkError{Kind: domain.MissingField, Index: 1, Field: "hour_finish"}
		},
	}

	req := authedRequest(http.MethodPost, "/api/logs", jsonBody(t, logBody(t, uuid.New())))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "missing_field", errorCode(t, rec.Body))

	var resp handler.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error.Message, "remarks[1]", "message must name the offending remark's position")
}

func TestCreateLog_404_ForeignTrip(t *testing.T) {
	svc := &mockLogServicer{
		create: func(_ context.Context, _ string, _ domain.LogEntry, _ json.RawMessage) (domain.LogEntry, error) {
			return domain.LogEntry{}, domain.ErrNotFound
		},
	}

	req := authedRequest(http.MethodPost, "/api/logs", jsonBody(t, logBody(t, uuid.New())))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec.Body))
}

func TestCreateLog_401_NoToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/logs", jsonBody(t, logBody(t, uuid.New())))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, &mockLogServicer{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---- GET /api/logs ---------------------------------------------------------

func TestListLogs_200(t *testing.T) {
	fixture := logFixture()
	svc := &mockLogServicer{
		listPaged: func(_ context.Context, ownerID string, _ domain.PaginationParams) ([]domain.LogEntry, int64, error) {
			assert.Equal(t, testPrincipal, ownerID)
			return []domain.LogEntry{fixture}, 1, nil
		},
	}

	req := authedRequest(http.MethodGet, "/api/logs", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)

	remarks, ok := body.Data[0]["remarks"].([]any)
	require.True(t, ok, "remarks must serialize as a list")
	require.Len(t, remarks, 1)
}

// ---- GET /api/logs/{id} ----------------------------------------------------

func TestGetLog_200_PreservesRemarkExtras(t *testing.T) {
	fixture := logFixture()
	fixture.Remarks[0].Extra = map[string]json.RawMessage{
		"status":   json.RawMessage(`"DRIVING"`),
		"location": json.RawMessage(`"Richmond, VA"`),
	}
	svc := &mockLogServicer{
		getByID: func(_ context.Context, _ string, _ uuid.UUID) (domain.LogEntry, error) {
			return fixture, nil
		},
	}

	req := authedRequest(http.MethodGet, "/api/logs/"+fixture.ID.String(), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Remarks []map[string]any `json:"remarks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Remarks, 1)
	assert.Equal(t, "DRIVING", got.Remarks[0]["status"])
	assert.Equal(t, "Richmond, VA", got.Remarks[0]["location"])
}

func TestGetLog_404_NotFound(t *testing.T) {
	svc := &mockLogServicer{
		getByID: func(_ context.Context, _ string, _ uuid.UUID) (domain.LogEntry, error) {
			return domain.LogEntry{}, domain.ErrNotFound
		},
	}

	req := authedRequest(http.MethodGet, "/api/logs/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- PUT /api/logs/{id} ----------------------------------------------------

func TestUpdateLog_200(t *testing.T) {
	fixture := logFixture()
	svc := &mockLogServicer{
		update: func(_ context.Context, ownerID string, entry domain.LogEntry, _ json.RawMessage) (domain.LogEntry, error) {
			assert.Equal(t, testPrincipal, ownerID)
			assert.Equal(t, fixture.ID, entry.ID, "ID must come from the path")
			return fixture, nil
		},
	}

	req := authedRequest(http.MethodPut, "/api/logs/"+fixture.ID.String(), jsonBody(t, logBody(t, fixture.TripID)))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateLog_422_RemarkError(t *testing.T) {
	svc := &mockLogServicer{
		update: func(_ context.Context, _ string, _ domain.LogEntry, _ json.RawMessage) (domain.LogEntry, error) {
			return domain.LogEntry{}, &domain.RemarkError{Kind: domain.InvalidShape, Index: -1}
		},
	}

	req := authedRequest(http.MethodPut, "/api/logs/"+uuid.NewString(), jsonBody(t, logBody(t, uuid.New())))
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_shape", errorCode(t, rec.Body))
}

// ---- DELETE /api/logs/{id} -------------------------------------------------

func TestDeleteLog_204(t *testing.T) {
	svc := &mockLogServicer{
		delete: func(_ context.Context, _ string, _ uuid.UUID) error { return nil },
	}

	req := authedRequest(http.MethodDelete, "/api/logs/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteLog_404_NotFound(t *testing.T) {
	svc := &mockLogServicer{
		delete: func(_ context.Context, _ string, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	req := authedRequest(http.MethodDelete, "/api/logs/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
