package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/eventcal/eventcal-go/internal/handler"
	"github.com/eventcal/eventcal-go/internal/model"
	"github.com/eventcal/eventcal-go/internal/store"
)

// HolidayAPIResponse represents a holiday in API responses.
type HolidayAPIResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Date        string    `json:"date"`
	RegionID    *int64    `json:"regionId"`
	Type        string    `json:"type"`
	IsRecurring bool      `json:"isRecurring"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateHolidayRequest is the body for POST /api/holidays.
type CreateHolidayRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Date        string  `json:"date"`
	RegionID    *int64  `json:"regionId"`
	Type        string  `json:"type"`
	IsRecurring *bool   `json:"isRecurring"`
}

func holidayResponse(h store.Holiday) HolidayAPIResponse {
	resp := HolidayAPIResponse{
		ID:          h.ID,
		Name:        h.Name,
		Date:        h.Date,
		Type:        h.Type,
		IsRecurring: h.IsRecurring,
		CreatedAt:   h.CreatedAt,
	}
	if h.Description.Valid {
		resp.Description = &h.Description.String
	}
	if h.RegionID.Valid {
		resp.RegionID = &h.RegionID.Int64
	}
	return resp
}

// ListHolidays handles GET /api/holidays with optional regionId,
// startDate and endDate filters.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.queries.ListHolidays(r.Context(), store.ListHolidaysParams{
		RegionID:  handler.QueryInt64(r, "regionId"),
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	})
	if err != nil {
		WriteInternalError(w, "Failed to list holidays")
		return
	}

	responses := make([]HolidayAPIResponse, 0, len(holidays))
	for _, hol := range holidays {
		responses = append(responses, holidayResponse(hol))
	}
	WriteSuccess(w, responses, &Meta{Total: int64(len(responses))})
}

// CreateHoliday handles POST /api/holidays.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	fieldErrors := map[string]string{}
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	switch {
	case req.Date == "":
		fieldErrors["date"] = "Date is required"
	case !handler.ValidDate(req.Date):
		fieldErrors["date"] = "Date must be YYYY-MM-DD"
	}
	if req.Type != "" && !model.ValidHolidayType(req.Type) {
		fieldErrors["type"] = "Type must be national, cultural or religious"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	params := store.CreateHolidayParams{
		Name:      req.Name,
		Date:      req.Date,
		Type:      req.Type,
		CreatedAt: time.Now(),
	}
	if params.Type == "" {
		params.Type = model.HolidayNational
	}
	if req.Description != nil {
		params.Description = sql.NullString{String: *req.Description, Valid: true}
	}
	if req.RegionID != nil {
		params.RegionID = sql.NullInt64{Int64: *req.RegionID, Valid: true}
	}
	if req.IsRecurring != nil {
		params.IsRecurring = *req.IsRecurring
	}

	holiday, err := h.queries.CreateHoliday(r.Context(), params)
	if err != nil {
		WriteInternalError(w, "Failed to create holiday")
		return
	}
	WriteCreated(w, holidayResponse(holiday))
}
