package api

import (
	"net/http"
	"testing"
	"time"
)

func TestCreateHoliday(t *testing.T) {
	db, h := testSetup(t)
	region := createTestRegion(t, db, "China", "CN")

	body := `{"name":"National Day","date":"2026-10-01","regionId":` + itoa(region.ID) + `,"type":"national","isRecurring":true}`
	req := newJSONRequest(t, http.MethodPost, "/api/holidays", body, nil)
	w := executeHandler(t, h.CreateHoliday, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	holiday := unmarshalData[HolidayAPIResponse](t, w)
	if holiday.Name != "National Day" || holiday.Date != "2026-10-01" {
		t.Errorf("unexpected holiday: %+v", holiday)
	}
	if !holiday.IsRecurring {
		t.Error("expected recurring holiday")
	}
	if holiday.Type != "national" {
		t.Errorf("expected national type, got %q", holiday.Type)
	}
}

func TestCreateHolidayDefaultsType(t *testing.T) {
	_, h := testSetup(t)

	body := `{"name":"Founders Day","date":"2026-05-01"}`
	req := newJSONRequest(t, http.MethodPost, "/api/holidays", body, nil)
	w := executeHandler(t, h.CreateHoliday, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	holiday := unmarshalData[HolidayAPIResponse](t, w)
	if holiday.Type != "national" {
		t.Errorf("expected default national type, got %q", holiday.Type)
	}
}

func TestCreateHolidayValidation(t *testing.T) {
	_, h := testSetup(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"date":"2026-10-01"}`, "name"},
		{"missing date", `{"name":"X"}`, "date"},
		{"bad date", `{"name":"X","date":"October 1st"}`, "date"},
		{"unknown type", `{"name":"X","date":"2026-10-01","type":"bank"}`, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, "/api/holidays", tt.body, nil)
			w := executeHandler(t, h.CreateHoliday, req)

			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected status 422, got %d: %s", w.Code, w.Body.String())
			}
			var resp ErrorResponse
			mustUnmarshal(t, w, &resp)
			if _, ok := resp.Error.Details[tt.field]; !ok {
				t.Errorf("expected field error for %q, got %v", tt.field, resp.Error.Details)
			}
		})
	}
}

func TestListHolidaysFiltersByDateRange(t *testing.T) {
	db, h := testSetup(t)
	region := createTestRegion(t, db, "China", "CN")
	now := time.Now()
	for _, d := range []string{"2026-01-01", "2026-06-15", "2026-12-25"} {
		if _, err := db.Exec(
			`INSERT INTO holidays (name, date, region_id, type, is_recurring, created_at) VALUES (?, ?, ?, 'national', 0, ?)`,
			"Holiday "+d, d, region.ID, now,
		); err != nil {
			t.Fatalf("failed to insert holiday: %v", err)
		}
	}

	req := newGetRequest(t, "/api/holidays?startDate=2026-06-01&endDate=2026-06-30", nil)
	w := executeHandler(t, h.ListHolidays, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	holidays, _ := unmarshalList[HolidayAPIResponse](t, w)
	if len(holidays) != 1 {
		t.Fatalf("expected 1 holiday in range, got %d", len(holidays))
	}
	if holidays[0].Date != "2026-06-15" {
		t.Errorf("expected 2026-06-15, got %s", holidays[0].Date)
	}
}
