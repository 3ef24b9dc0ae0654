package api

import (
	"net/http"
	"testing"

	"github.com/eventcal/eventcal-go/internal/recommend"
)

func TestGenerateRecommendationsPersistsBatch(t *testing.T) {
	db, h := testSetup(t)
	region := createTestRegion(t, db, "China", "CN")
	h.generator = stubGenerator{candidates: []recommend.Candidate{
		{Title: "First", Description: "A", SuggestedDate: "2026-03-10", ConfidenceScore: 0.9, Reasoning: "timing", EventTypeID: 2},
		{Title: "Second", Description: "B", SuggestedDate: "2026-03-20", ConfidenceScore: 0.75, EventTypeID: 2},
	}}

	body := `{"regionId":` + itoa(region.ID) + `,"startDate":"2026-03-01","endDate":"2026-03-31","language":"en"}`
	req := newJSONRequest(t, http.MethodPost, "/api/recommendations/generate", body, nil)
	w := executeHandler(t, h.GenerateRecommendations, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	recs, _ := unmarshalList[RecommendationAPIResponse](t, w)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.Status != "pending" {
			t.Errorf("expected pending status, got %q", rec.Status)
		}
		if rec.BatchID == nil {
			t.Error("expected a batch ID")
		}
		if rec.RegionID == nil || *rec.RegionID != region.ID {
			t.Errorf("expected regionId %d, got %v", region.ID, rec.RegionID)
		}
	}
	if recs[0].BatchID != nil && recs[1].BatchID != nil && *recs[0].BatchID != *recs[1].BatchID {
		t.Error("expected both recommendations to share a batch ID")
	}
}

func TestGenerateRecommendationsFallbackWithoutAPIKey(t *testing.T) {
	db, h := testSetup(t)
	region := createTestRegion(t, db, "Brazil", "BR")

	body := `{"regionId":` + itoa(region.ID) + `,"startDate":"2026-06-01","endDate":"2026-06-30","language":"en"}`
	req := newJSONRequest(t, http.MethodPost, "/api/recommendations/generate", body, nil)
	w := executeHandler(t, h.GenerateRecommendations, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	recs, _ := unmarshalList[RecommendationAPIResponse](t, w)
	if len(recs) != 1 {
		t.Fatalf("expected single fallback recommendation, got %d", len(recs))
	}
	if recs[0].ConfidenceScore != 0.8 {
		t.Errorf("expected fallback confidence 0.8, got %v", recs[0].ConfidenceScore)
	}
	if recs[0].SuggestedDate == nil || *recs[0].SuggestedDate != "2026-06-30" {
		t.Errorf("expected suggested date at window end, got %v", recs[0].SuggestedDate)
	}
}

func TestGenerateRecommendationsValidation(t *testing.T) {
	_, h := testSetup(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing region", `{"startDate":"2026-03-01","endDate":"2026-03-31"}`, "regionId"},
		{"missing start date", `{"regionId":1,"endDate":"2026-03-31"}`, "startDate"},
		{"bad end date", `{"regionId":1,"startDate":"2026-03-01","endDate":"soon"}`, "endDate"},
		{"inverted window", `{"regionId":1,"startDate":"2026-03-31","endDate":"2026-03-01"}`, "endDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newJSONRequest(t, http.MethodPost, "/api/recommendations/generate", tt.body, nil)
			w := executeHandler(t, h.GenerateRecommendations, req)

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

func TestGenerateRecommendationsUnknownRegion(t *testing.T) {
	_, h := testSetup(t)

	body := `{"regionId":42,"startDate":"2026-03-01","endDate":"2026-03-31"}`
	req := newJSONRequest(t, http.MethodPost, "/api/recommendations/generate", body, nil)
	w := executeHandler(t, h.GenerateRecommendations, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestListRecommendationsFiltersByStatus(t *testing.T) {
	db, h := testSetup(t)
	region := createTestRegion(t, db, "China", "CN")
	createTestRecommendation(t, db, "Pending One", "2026-03-10", region.ID)
	rec := createTestRecommendation(t, db, "Resolved", "2026-03-12", region.ID)
	if _, err := db.Exec(`UPDATE recommendations SET status = 'accepted' WHERE id = ?`, rec.ID); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	req := newGetRequest(t, "/api/recommendations?status=pending", nil)
	w := executeHandler(t, h.ListRecommendations, req)

	recs, _ := unmarshalList[RecommendationAPIResponse](t, w)
	if len(recs) != 1 {
		t.Fatalf("expected 1 pending recommendation, got %d", len(recs))
	}
	if recs[0].Title != "Pending One" {
		t.Errorf("expected Pending One, got %q", recs[0].Title)
	}
}

func TestListRecommendationsRejectsUnknownStatus(t *testing.T) {
	_, h := testSetup(t)

	req := newGetRequest(t, "/api/recommendations?status=bogus", nil)
	w := executeHandler(t, h.ListRecommendations, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestAcceptRecommendation(t *testing.T) {
	db, h := testSetup(t)
	region := createTestRegion(t, db, "China", "CN")
	rec := createTestRecommendation(t, db, "Accept Me", "2026-03-10", region.ID)

	req := newJSONRequest(t, http.MethodPut, "/api/recommendations/"+itoa(rec.ID)+"/accept", `{}`, map[string]string{"id": itoa(rec.ID)})
	w := executeHandler(t, h.AcceptRecommendation, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := unmarshalData[RecommendationAPIResponse](t, w)
	if updated.Status != "accepted" {
		t.Errorf("expected accepted status, got %q", updated.Status)
	}
	if updated.Title != "Accept Me" {
		t.Errorf("expected title to be preserved, got %q", updated.Title)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		t.Fatalf("failed to count events: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no event without createEvent flag, got %d", n)
	}
}

func TestAcceptRecommendationCreatesEvent(t *testing.T) {
	db, h := testSetup(t)
	region := createTestRegion(t, db, "China", "CN")
	rec := createTestRecommendation(t, db, "With Event", "2026-03-10", region.ID)

	body := `{"createEvent":true}`
	req := newJSONRequest(t, http.MethodPut, "/api/recommendations/"+itoa(rec.ID)+"/accept", body, map[string]string{"id": itoa(rec.ID)})
	w := executeHandler(t, h.AcceptRecommendation, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var title, start, end string
	var isHoliday bool
	err := db.QueryRow(`SELECT title, start_date, end_date, is_holiday FROM events`).Scan(&title, &start, &end, &isHoliday)
	if err != nil {
		t.Fatalf("expected exactly one event: %v", err)
	}
	if title != "With Event" {
		t.Errorf("expected event title 'With Event', got %q", title)
	}
	if start != "2026-03-10" || end != "2026-03-10" {
		t.Errorf("expected single-day event on suggested date, got %s..%s", start, end)
	}
	if isHoliday {
		t.Error("expected created event not to be a holiday")
	}
}

func TestAcceptRecommendationAlreadyResolved(t *testing.T) {
	db, h := testSetup(t)
	region := createTestRegion(t, db, "China", "CN")
	rec := createTestRecommendation(t, db, "Twice", "2026-03-10", region.ID)
	if _, err := db.Exec(`UPDATE recommendations SET status = 'rejected' WHERE id = ?`, rec.ID); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	req := newJSONRequest(t, http.MethodPut, "/api/recommendations/"+itoa(rec.ID)+"/accept", `{}`, map[string]string{"id": itoa(rec.ID)})
	w := executeHandler(t, h.AcceptRecommendation, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422 for resolved recommendation, got %d", w.Code)
	}
}

func TestRejectRecommendation(t *testing.T) {
	db, h := testSetup(t)
	region := createTestRegion(t, db, "China", "CN")
	rec := createTestRecommendation(t, db, "Reject Me", "2026-03-10", region.ID)

	req := newJSONRequest(t, http.MethodPut, "/api/recommendations/"+itoa(rec.ID)+"/reject", "", map[string]string{"id": itoa(rec.ID)})
	w := executeHandler(t, h.RejectRecommendation, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := unmarshalData[RecommendationAPIResponse](t, w)
	if updated.Status != "rejected" {
		t.Errorf("expected rejected status, got %q", updated.Status)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		t.Fatalf("failed to count events: %v", err)
	}
	if n != 0 {
		t.Errorf("expected reject to create no events, got %d", n)
	}
}

func TestRejectRecommendationAlreadyResolved(t *testing.T) {
	db, h := testSetup(t)
	region := createTestRegion(t, db, "China", "CN")
	rec := createTestRecommendation(t, db, "Once Only", "2026-03-10", region.ID)
	if _, err := db.Exec(`UPDATE recommendations SET status = 'accepted' WHERE id = ?`, rec.ID); err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	req := newJSONRequest(t, http.MethodPut, "/api/recommendations/"+itoa(rec.ID)+"/reject", "", map[string]string{"id": itoa(rec.ID)})
	w := executeHandler(t, h.RejectRecommendation, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422 for resolved recommendation, got %d", w.Code)
	}
}

func TestDeleteRecommendation(t *testing.T) {
	db, h := testSetup(t)
	region := createTestRegion(t, db, "China", "CN")
	rec := createTestRecommendation(t, db, "Doomed", "2026-03-10", region.ID)

	req := newDeleteRequest(t, "/api/recommendations/"+itoa(rec.ID), map[string]string{"id": itoa(rec.ID)})
	w := executeHandler(t, h.DeleteRecommendation, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM recommendations`).Scan(&n); err != nil {
		t.Fatalf("failed to count recommendations: %v", err)
	}
	if n != 0 {
		t.Errorf("expected recommendation to be deleted, %d remain", n)
	}
}
