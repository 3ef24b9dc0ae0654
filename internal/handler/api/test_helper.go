package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/eventcal/eventcal-go/internal/cache"
	"github.com/eventcal/eventcal-go/internal/recommend"
	"github.com/eventcal/eventcal-go/internal/store"
	"github.com/eventcal/eventcal-go/internal/version"
)

// testDB creates an in-memory SQLite database with the calendar tables
// for testing.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE regions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			code TEXT NOT NULL UNIQUE,
			timezone TEXT NOT NULL DEFAULT 'UTC',
			is_active INTEGER NOT NULL DEFAULT 1
		);

		CREATE TABLE event_types (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT '#2563eb',
			icon TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			region_id INTEGER REFERENCES regions(id),
			event_type_id INTEGER REFERENCES event_types(id),
			is_holiday INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);

		CREATE TABLE holidays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			date TEXT NOT NULL,
			region_id INTEGER REFERENCES regions(id),
			type TEXT NOT NULL DEFAULT 'national',
			is_recurring INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		);

		CREATE TABLE recommendations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			suggested_date TEXT,
			confidence_score REAL NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			region_id INTEGER REFERENCES regions(id),
			event_type_id INTEGER REFERENCES event_types(id),
			reasoning TEXT,
			batch_id TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// testSetup creates a test database and API handler for testing. The
// handler carries a memory cache and no GeoIP database.
func testSetup(t *testing.T) (*sql.DB, *Handler) {
	t.Helper()
	db := testDB(t)
	c := cache.NewMemoryCache(cache.MemoryOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() {
		_ = c.Close()
	})
	return db, NewHandler(db, recommend.New("", "", ""), nil, c, version.Info{Version: "test"})
}

// stubGenerator returns fixed candidates from Generate.
type stubGenerator struct {
	candidates []recommend.Candidate
}

func (s stubGenerator) Generate(_ context.Context, _ recommend.Request) []recommend.Candidate {
	return s.candidates
}

// createTestRegion creates a test region in the database.
func createTestRegion(t *testing.T, db *sql.DB, name, code string) store.Region {
	t.Helper()

	result, err := db.Exec(
		`INSERT INTO regions (name, code, timezone, is_active) VALUES (?, ?, 'UTC', 1)`,
		name, code,
	)
	if err != nil {
		t.Fatalf("failed to create test region: %v", err)
	}

	id, _ := result.LastInsertId()
	return store.Region{ID: id, Name: name, Code: code, Timezone: "UTC", IsActive: true}
}

// createTestEvent creates a test event in the database.
func createTestEvent(t *testing.T, db *sql.DB, title, startDate, endDate string, regionID int64) store.Event {
	t.Helper()
	now := time.Now()

	result, err := db.Exec(
		`INSERT INTO events (title, start_date, end_date, region_id, is_holiday, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		title, startDate, endDate, regionID, now, now,
	)
	if err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}

	id, _ := result.LastInsertId()
	return store.Event{
		ID:        id,
		Title:     title,
		StartDate: startDate,
		EndDate:   endDate,
		RegionID:  sql.NullInt64{Int64: regionID, Valid: true},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// createTestRecommendation creates a pending test recommendation.
func createTestRecommendation(t *testing.T, db *sql.DB, title, suggestedDate string, regionID int64) store.Recommendation {
	t.Helper()
	now := time.Now()

	result, err := db.Exec(
		`INSERT INTO recommendations (title, description, suggested_date, confidence_score, status, region_id, event_type_id, created_at, updated_at)
		 VALUES (?, 'Test description', ?, 0.8, 'pending', ?, 2, ?, ?)`,
		title, suggestedDate, regionID, now, now,
	)
	if err != nil {
		t.Fatalf("failed to create test recommendation: %v", err)
	}

	id, _ := result.LastInsertId()
	return store.Recommendation{
		ID:              id,
		Title:           title,
		Description:     "Test description",
		SuggestedDate:   sql.NullString{String: suggestedDate, Valid: true},
		ConfidenceScore: 0.8,
		Status:          "pending",
		RegionID:        sql.NullInt64{Int64: regionID, Valid: true},
		EventTypeID:     sql.NullInt64{Int64: 2, Valid: true},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newJSONRequest creates an HTTP request with JSON body and optional URL params.
func newJSONRequest(t *testing.T, method, path string, body string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// newGetRequest creates an HTTP GET request with optional URL params.
func newGetRequest(t *testing.T, path string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// newDeleteRequest creates an HTTP DELETE request with optional URL params.
func newDeleteRequest(t *testing.T, path string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// dataResponse is a generic wrapper for API responses with a "data" field.
type dataResponse[T any] struct {
	Data T `json:"data"`
}

// listResponse is a generic wrapper for API list responses with data and meta.
type listResponse[T any] struct {
	Data []T   `json:"data"`
	Meta *Meta `json:"meta"`
}

// unmarshalData unmarshals a JSON response body into the specified type.
func unmarshalData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp dataResponse[T]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp.Data
}

// unmarshalList unmarshals a JSON list response body into the specified type.
func unmarshalList[T any](t *testing.T, w *httptest.ResponseRecorder) ([]T, *Meta) {
	t.Helper()
	var resp listResponse[T]
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp.Data, resp.Meta
}

// mustUnmarshal unmarshals a raw response body, failing the test on error.
func mustUnmarshal(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
}

// itoa formats an ID for request paths and bodies.
func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// executeHandler executes a handler and returns the response recorder.
func executeHandler(t *testing.T, handler func(http.ResponseWriter, *http.Request), req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}
