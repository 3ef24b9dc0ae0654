package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eventcal/eventcal-go/internal/calendar"
	"github.com/eventcal/eventcal-go/internal/handler"
	"github.com/eventcal/eventcal-go/internal/store"
)

// GetCalendarGrid handles GET /api/calendar/{year}/{month}. Query
// parameters regionId, holidays, marketing and custom scope and filter
// the grid; the category toggles default to on.
func (h *Handler) GetCalendarGrid(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		WriteBadRequest(w, "Invalid year", nil)
		return
	}
	monthNum, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		WriteBadRequest(w, "Month must be between 1 and 12", nil)
		return
	}
	month := time.Month(monthNum)

	// Holidays are single-day, so a window one week beyond the month
	// on each side covers the grid's leading and trailing days. Events
	// can span the window boundary, and the list filter matches only
	// fully contained ranges, so events are loaded unfiltered by date.
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	windowStart := monthStart.AddDate(0, 0, -7).Format("2006-01-02")
	windowEnd := monthStart.AddDate(0, 1, 7).Format("2006-01-02")

	regionID := handler.QueryInt64(r, "regionId")
	events, err := h.queries.ListEvents(r.Context(), store.ListEventsParams{
		RegionID: regionID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to load events")
		return
	}
	holidays, err := h.queries.ListHolidays(r.Context(), store.ListHolidaysParams{
		RegionID:  regionID,
		StartDate: windowStart,
		EndDate:   windowEnd,
	})
	if err != nil {
		WriteInternalError(w, "Failed to load holidays")
		return
	}

	filters := calendar.Filters{
		Holidays:  handler.QueryBool(r, "holidays", true),
		Marketing: handler.QueryBool(r, "marketing", true),
		Custom:    handler.QueryBool(r, "custom", true),
	}

	grid := calendar.Build(year, month, events, holidays, filters, time.Now())
	WriteSuccess(w, grid, nil)
}
