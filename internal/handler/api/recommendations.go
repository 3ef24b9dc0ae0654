package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/eventcal/eventcal-go/internal/handler"
	"github.com/eventcal/eventcal-go/internal/model"
	"github.com/eventcal/eventcal-go/internal/recommend"
	"github.com/eventcal/eventcal-go/internal/store"
)

// RecommendationAPIResponse represents a recommendation in API responses.
type RecommendationAPIResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	SuggestedDate   *string   `json:"suggestedDate"`
	ConfidenceScore float64   `json:"confidenceScore"`
	Status          string    `json:"status"`
	RegionID        *int64    `json:"regionId"`
	EventTypeID     *int64    `json:"eventTypeId"`
	Reasoning       *string   `json:"reasoning"`
	BatchID         *string   `json:"batchId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// GenerateRecommendationsRequest is the body for POST /api/recommendations/generate.
type GenerateRecommendationsRequest struct {
	RegionID  int64  `json:"regionId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Language  string `json:"language"`
}

// AcceptRecommendationRequest is the body for PUT /api/recommendations/{id}/accept.
type AcceptRecommendationRequest struct {
	CreateEvent bool `json:"createEvent"`
}

func recommendationResponse(rec store.Recommendation) RecommendationAPIResponse {
	resp := RecommendationAPIResponse{
		ID:              rec.ID,
		Title:           rec.Title,
		Description:     rec.Description,
		ConfidenceScore: rec.ConfidenceScore,
		Status:          rec.Status,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
	if rec.SuggestedDate.Valid {
		resp.SuggestedDate = &rec.SuggestedDate.String
	}
	if rec.RegionID.Valid {
		resp.RegionID = &rec.RegionID.Int64
	}
	if rec.EventTypeID.Valid {
		resp.EventTypeID = &rec.EventTypeID.Int64
	}
	if rec.Reasoning.Valid {
		resp.Reasoning = &rec.Reasoning.String
	}
	if rec.BatchID.Valid {
		resp.BatchID = &rec.BatchID.String
	}
	return resp
}

// ListRecommendations handles GET /api/recommendations with optional
// regionId and status filters.
func (h *Handler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidStatus(status) {
		WriteBadRequest(w, "Unknown status filter", nil)
		return
	}

	recs, err := h.queries.ListRecommendations(r.Context(), store.ListRecommendationsParams{
		RegionID: handler.QueryInt64(r, "regionId"),
		Status:   status,
	})
	if err != nil {
		WriteInternalError(w, "Failed to list recommendations")
		return
	}

	responses := make([]RecommendationAPIResponse, 0, len(recs))
	for _, rec := range recs {
		responses = append(responses, recommendationResponse(rec))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// GenerateRecommendations handles POST /api/recommendations/generate.
// It gathers the region's calendar context for the window, asks the
// generator for candidates and persists them as one pending batch.
func (h *Handler) GenerateRecommendations(w http.ResponseWriter, r *http.Request) {
	var req GenerateRecommendationsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := map[string]string{}
	if req.RegionID <= 0 {
		fieldErrors["regionId"] = "Region is required"
	}
	switch {
	case req.StartDate == "":
		fieldErrors["startDate"] = "Start date is required"
	case !handler.ValidDate(req.StartDate):
		fieldErrors["startDate"] = "Start date must be YYYY-MM-DD"
	}
	switch {
	case req.EndDate == "":
		fieldErrors["endDate"] = "End date is required"
	case !handler.ValidDate(req.EndDate):
		fieldErrors["endDate"] = "End date must be YYYY-MM-DD"
	}
	if len(fieldErrors) == 0 && req.EndDate < req.StartDate {
		fieldErrors["endDate"] = "End date must not be before start date"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	if _, err := h.queries.GetRegionByID(r.Context(), req.RegionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Region not found")
			return
		}
		WriteInternalError(w, "Failed to load region")
		return
	}

	events, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{
		RegionID:  req.RegionID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		WriteInternalError(w, "Failed to load events for recommendation window")
		return
	}
	holidays, err := h.queries.ListHolidays(r.Context(), store.ListHolidaysParams{
		RegionID:  req.RegionID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		WriteInternalError(w, "Failed to load holidays for recommendation window")
		return
	}

	candidates := h.generator.Generate(r.Context(), recommend.Request{
		RegionID:  req.RegionID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Language:  req.Language,
		Events:    events,
		Holidays:  holidays,
	})

	batchID := uuid.NewString()
	now := time.Now()
	responses := make([]RecommendationAPIResponse, 0, len(candidates))
	for _, c := range candidates {
		params := store.CreateRecommendationParams{
			Title:           c.Title,
			Description:     c.Description,
			ConfidenceScore: c.ConfidenceScore,
			Status:          model.StatusPending,
			RegionID:        sql.NullInt64{Int64: req.RegionID, Valid: true},
			EventTypeID:     sql.NullInt64{Int64: c.EventTypeID, Valid: true},
			BatchID:         sql.NullString{String: batchID, Valid: true},
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if c.SuggestedDate != "" {
			params.SuggestedDate = sql.NullString{String: c.SuggestedDate, Valid: true}
		}
		if c.Reasoning != "" {
			params.Reasoning = sql.NullString{String: c.Reasoning, Valid: true}
		}

		rec, err := h.queries.CreateRecommendation(r.Context(), params)
		if err != nil {
			WriteInternalError(w, "Failed to store recommendations")
			return
		}
		responses = append(responses, recommendationResponse(rec))
	}
	WriteCreated(w, responses)
}

// AcceptRecommendation handles PUT /api/recommendations/{id}/accept.
// Only pending recommendations can be accepted. With createEvent set,
// an event is created from the recommendation's fields.
func (h *Handler) AcceptRecommendation(w http.ResponseWriter, r *http.Request) {
	rec, ok := requireEntityByID(w, r, "recommendation", func(id int64) (store.Recommendation, error) {
		return h.queries.GetRecommendationByID(r.Context(), id)
	})
	if !ok {
		return
	}

	// The body is optional; an absent body means accept without
	// creating an event.
	var req AcceptRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if err := model.ValidTransition(rec.Status, model.StatusAccepted); err != nil {
		WriteValidationError(w, map[string]string{"status": err.Error()})
		return
	}

	updated, err := h.queries.UpdateRecommendationStatus(r.Context(), store.UpdateRecommendationStatusParams{
		ID:        rec.ID,
		Status:    model.StatusAccepted,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to accept recommendation")
		return
	}

	if req.CreateEvent {
		date := rec.SuggestedDate.String
		if !rec.SuggestedDate.Valid || date == "" {
			date = time.Now().Format("2006-01-02")
		}
		now := time.Now()
		_, err := h.queries.CreateEvent(r.Context(), store.CreateEventParams{
			Title:       rec.Title,
			Description: sql.NullString{String: rec.Description, Valid: rec.Description != ""},
			StartDate:   date,
			EndDate:     date,
			RegionID:    rec.RegionID,
			EventTypeID: rec.EventTypeID,
			IsHoliday:   false,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			WriteInternalError(w, "Recommendation accepted but event creation failed")
			return
		}
	}

	WriteSuccess(w, recommendationResponse(updated), nil)
}

// RejectRecommendation handles PUT /api/recommendations/{id}/reject.
// Only pending recommendations can be rejected.
func (h *Handler) RejectRecommendation(w http.ResponseWriter, r *http.Request) {
	rec, ok := requireEntityByID(w, r, "recommendation", func(id int64) (store.Recommendation, error) {
		return h.queries.GetRecommendationByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := model.ValidTransition(rec.Status, model.StatusRejected); err != nil {
		WriteValidationError(w, map[string]string{"status": err.Error()})
		return
	}

	updated, err := h.queries.UpdateRecommendationStatus(r.Context(), store.UpdateRecommendationStatusParams{
		ID:        rec.ID,
		Status:    model.StatusRejected,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		WriteInternalError(w, "Failed to reject recommendation")
		return
	}
	WriteSuccess(w, recommendationResponse(updated), nil)
}

// DeleteRecommendation handles DELETE /api/recommendations/{id}.
func (h *Handler) DeleteRecommendation(w http.ResponseWriter, r *http.Request) {
	rec, ok := requireEntityByID(w, r, "recommendation", func(id int64) (store.Recommendation, error) {
		return h.queries.GetRecommendationByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteRecommendation(r.Context(), rec.ID); err != nil {
		WriteInternalError(w, "Failed to delete recommendation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
