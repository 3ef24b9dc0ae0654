package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eventcal/eventcal-go/internal/lunar"
)

// LunarDateResponse pairs a Gregorian date with its lunar counterpart.
type LunarDateResponse struct {
	Date  string     `json:"date"`
	Lunar lunar.Date `json:"lunar"`
}

// GetLunarDate handles GET /api/lunar/{date}.
func (h *Handler) GetLunarDate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	d, ok := lunar.Parse(raw)
	if !ok {
		WriteBadRequest(w, "Date must be YYYY-MM-DD", nil)
		return
	}
	WriteSuccess(w, LunarDateResponse{Date: raw, Lunar: d}, nil)
}

// ListLunarHolidays handles GET /api/lunar/holidays/{year}.
func (h *Handler) ListLunarHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		WriteBadRequest(w, "Invalid year", nil)
		return
	}
	holidays := lunar.Holidays(year)
	WriteSuccess(w, holidays, &Meta{Total: int64(len(holidays))})
}
