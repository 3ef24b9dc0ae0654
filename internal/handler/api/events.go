package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/eventcal/eventcal-go/internal/handler"
	"github.com/eventcal/eventcal-go/internal/store"
)

// EventAPIResponse represents an event in API responses.
type EventAPIResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	RegionID    *int64    `json:"regionId"`
	EventTypeID *int64    `json:"eventTypeId"`
	IsHoliday   bool      `json:"isHoliday"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateEventRequest is the body for POST /api/events.
type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	RegionID    *int64  `json:"regionId"`
	EventTypeID *int64  `json:"eventTypeId"`
	IsHoliday   *bool   `json:"isHoliday"`
}

// UpdateEventRequest is the body for PUT /api/events/{id}. Absent
// fields keep their stored values.
type UpdateEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	RegionID    *int64  `json:"regionId,omitempty"`
	EventTypeID *int64  `json:"eventTypeId,omitempty"`
	IsHoliday   *bool   `json:"isHoliday,omitempty"`
}

func eventResponse(e store.Event) EventAPIResponse {
	resp := EventAPIResponse{
		ID:        e.ID,
		Title:     e.Title,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		IsHoliday: e.IsHoliday,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.Description.Valid {
		resp.Description = &e.Description.String
	}
	if e.RegionID.Valid {
		resp.RegionID = &e.RegionID.Int64
	}
	if e.EventTypeID.Valid {
		resp.EventTypeID = &e.EventTypeID.Int64
	}
	return resp
}

// validateEventDates checks date format and ordering, collecting field
// errors.
func validateEventDates(start, end string, fieldErrors map[string]string) {
	switch {
	case start == "":
		fieldErrors["startDate"] = "Start date is required"
	case !handler.ValidDate(start):
		fieldErrors["startDate"] = "Start date must be YYYY-MM-DD"
	}
	switch {
	case end == "":
		fieldErrors["endDate"] = "End date is required"
	case !handler.ValidDate(end):
		fieldErrors["endDate"] = "End date must be YYYY-MM-DD"
	}
	if len(fieldErrors) == 0 && end < start {
		fieldErrors["endDate"] = "End date must not be before start date"
	}
}

// ListEvents handles GET /api/events with optional regionId, startDate
// and endDate filters.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{
		RegionID:  handler.QueryInt64(r, "regionId"),
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	})
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}

	responses := make([]EventAPIResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, eventResponse(e))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// GetEvent handles GET /api/events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := requireEntityByID(w, r, "event", func(id int64) (store.Event, error) {
		return h.queries.GetEventByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, eventResponse(event), nil)
}

// CreateEvent handles POST /api/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// A single-day event may omit its end date.
	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}

	fieldErrors := map[string]string{}
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	validateEventDates(req.StartDate, req.EndDate, fieldErrors)
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	now := time.Now()
	params := store.CreateEventParams{
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil {
		params.Description = sql.NullString{String: *req.Description, Valid: true}
	}
	if req.RegionID != nil {
		params.RegionID = sql.NullInt64{Int64: *req.RegionID, Valid: true}
	}
	if req.EventTypeID != nil {
		params.EventTypeID = sql.NullInt64{Int64: *req.EventTypeID, Valid: true}
	}
	if req.IsHoliday != nil {
		params.IsHoliday = *req.IsHoliday
	}

	event, err := h.queries.CreateEvent(r.Context(), params)
	if err != nil {
		WriteInternalError(w, "Failed to create event")
		return
	}
	WriteCreated(w, eventResponse(event))
}

// UpdateEvent handles PUT /api/events/{id}. The request is merged onto
// the stored row, so omitted fields stay as they were.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "event", func(id int64) (store.Event, error) {
		return h.queries.GetEventByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req UpdateEventRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := store.UpdateEventParams{
		ID:          existing.ID,
		Title:       existing.Title,
		Description: existing.Description,
		StartDate:   existing.StartDate,
		EndDate:     existing.EndDate,
		RegionID:    existing.RegionID,
		EventTypeID: existing.EventTypeID,
		IsHoliday:   existing.IsHoliday,
		UpdatedAt:   time.Now(),
	}
	if req.Title != nil {
		params.Title = *req.Title
	}
	if req.Description != nil {
		params.Description = sql.NullString{String: *req.Description, Valid: true}
	}
	if req.StartDate != nil {
		params.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		params.EndDate = *req.EndDate
	}
	if req.RegionID != nil {
		params.RegionID = sql.NullInt64{Int64: *req.RegionID, Valid: true}
	}
	if req.EventTypeID != nil {
		params.EventTypeID = sql.NullInt64{Int64: *req.EventTypeID, Valid: true}
	}
	if req.IsHoliday != nil {
		params.IsHoliday = *req.IsHoliday
	}

	fieldErrors := map[string]string{}
	if params.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	validateEventDates(params.StartDate, params.EndDate, fieldErrors)
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	event, err := h.queries.UpdateEvent(r.Context(), params)
	if err != nil {
		WriteInternalError(w, "Failed to update event")
		return
	}
	WriteSuccess(w, eventResponse(event), nil)
}

// DeleteEvent handles DELETE /api/events/{id}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := requireEntityByID(w, r, "event", func(id int64) (store.Event, error) {
		return h.queries.GetEventByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteEvent(r.Context(), event.ID); err != nil {
		WriteInternalError(w, "Failed to delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
