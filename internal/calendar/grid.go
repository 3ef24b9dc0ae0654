// Package calendar builds the month-grid view served to calendar
// clients: whole weeks from the Sunday on or before the first of the
// month through the Saturday on or after the last, each cell carrying
// the events and holidays that fall on it.
package calendar

import (
	"log/slog"
	"time"

	"github.com/eventcal/eventcal-go/internal/lunar"
	"github.com/eventcal/eventcal-go/internal/model"
	"github.com/eventcal/eventcal-go/internal/store"
)

// Filters toggles event categories in the grid. The zero value hides
// everything; DefaultFilters shows all three.
type Filters struct {
	Holidays  bool `json:"holidays"`
	Marketing bool `json:"marketing"`
	Custom    bool `json:"custom"`
}

// DefaultFilters shows every category.
func DefaultFilters() Filters {
	return Filters{Holidays: true, Marketing: true, Custom: true}
}

// Cell is one day of the grid.
type Cell struct {
	Date      string          `json:"date"`
	Day       int             `json:"day"`
	InMonth   bool            `json:"inMonth"`
	IsToday   bool            `json:"isToday"`
	LunarDay  string          `json:"lunarDay"`
	Events    []store.Event   `json:"events"`
	Holidays  []store.Holiday `json:"holidays"`
}

// Grid is a whole-week month view. Cells always holds a multiple of
// seven entries starting on a Sunday.
type Grid struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Cells []Cell `json:"cells"`
}

// Build assembles the grid for a month. Events whose dates cannot be
// parsed are skipped rather than failing the whole view. now anchors
// the IsToday flag so callers and tests control the clock.
func Build(year int, month time.Month, events []store.Event, holidays []store.Holiday, filters Filters, now time.Time) Grid {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))

	today := now.UTC().Truncate(24 * time.Hour)

	// A record with an unreadable date is dropped up front so it never
	// fails assembly of the rest of the grid.
	kept := make([]store.Event, 0, len(events))
	for _, ev := range events {
		if _, ok := parseDate(ev.StartDate); !ok {
			slog.Warn("skipping event with unparseable start date",
				"event_id", ev.ID, "start_date", ev.StartDate)
			continue
		}
		kept = append(kept, ev)
	}
	events = kept

	keptHolidays := make([]store.Holiday, 0, len(holidays))
	for _, h := range holidays {
		if _, ok := parseDate(h.Date); !ok {
			slog.Warn("skipping holiday with unparseable date",
				"holiday_id", h.ID, "date", h.Date)
			continue
		}
		keptHolidays = append(keptHolidays, h)
	}
	holidays = keptHolidays

	var cells []Cell
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		cell := Cell{
			Date:     d.Format("2006-01-02"),
			Day:      d.Day(),
			InMonth:  d.Month() == month && d.Year() == year,
			IsToday:  d.Equal(today),
			LunarDay: lunar.FromTime(d).DayName,
			Events:   []store.Event{},
			Holidays: []store.Holiday{},
		}

		for _, ev := range events {
			if !filters.shows(ev.EventTypeID.Int64, ev.EventTypeID.Valid) {
				continue
			}
			if eventCovers(ev, d) {
				cell.Events = append(cell.Events, ev)
			}
		}

		if filters.Holidays {
			for _, h := range holidays {
				if hd, ok := parseDate(h.Date); ok && hd.Equal(d) {
					cell.Holidays = append(cell.Holidays, h)
				}
			}
		}

		cells = append(cells, cell)
	}

	return Grid{Year: year, Month: int(month), Cells: cells}
}

// shows applies the category toggles. Events without a type count as
// custom; unknown type IDs are always shown.
func (f Filters) shows(typeID int64, valid bool) bool {
	if !valid {
		typeID = model.CategoryCustom
	}
	switch typeID {
	case model.CategoryHoliday:
		return f.Holidays
	case model.CategoryMarketing:
		return f.Marketing
	case model.CategoryCustom:
		return f.Custom
	}
	return true
}

// eventCovers reports whether day falls inside the event's date span.
// A missing end date, or an end equal to the start, covers the start
// day only.
func eventCovers(ev store.Event, day time.Time) bool {
	start, ok := parseDate(ev.StartDate)
	if !ok {
		return false
	}
	if ev.EndDate == "" || ev.EndDate == ev.StartDate {
		return start.Equal(day)
	}
	end, ok := parseDate(ev.EndDate)
	if !ok {
		return start.Equal(day)
	}
	return !day.Before(start) && !day.After(end)
}

// parseDate accepts the canonical YYYY-MM-DD form and falls back to
// RFC 3339 for timestamps stored by older clients.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
