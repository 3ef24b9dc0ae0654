package store

import (
	"context"
	"database/sql"
	"time"
)

const listEvents = `
SELECT id, title, description, start_date, end_date, region_id, event_type_id, is_holiday, created_at, updated_at
FROM events
WHERE (?1 = 0 OR region_id = ?1)
  AND (?2 = '' OR start_date >= ?2)
  AND (?3 = '' OR end_date <= ?3)
ORDER BY start_date
`

// ListEventsParams filters the event listing. A zero RegionID or empty date
// bound disables that filter; bounds are inclusive.
type ListEventsParams struct {
	RegionID  int64
	StartDate string
	EndDate   string
}

// ListEvents returns events matching the filters in ascending start-date order.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, arg.RegionID, arg.StartDate, arg.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
			&e.RegionID, &e.EventTypeID, &e.IsHoliday, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

const getEventByID = `
SELECT id, title, description, start_date, end_date, region_id, event_type_id, is_holiday, created_at, updated_at
FROM events
WHERE id = ?
`

// GetEventByID returns an event by ID; sql.ErrNoRows when absent.
func (q *Queries) GetEventByID(ctx context.Context, id int64) (Event, error) {
	var e Event
	err := q.db.QueryRowContext(ctx, getEventByID, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
		&e.RegionID, &e.EventTypeID, &e.IsHoliday, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

const createEvent = `
INSERT INTO events (title, description, start_date, end_date, region_id, event_type_id, is_holiday, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, description, start_date, end_date, region_id, event_type_id, is_holiday, created_at, updated_at
`

// CreateEventParams holds the fields for CreateEvent.
type CreateEventParams struct {
	Title       string
	Description sql.NullString
	StartDate   string
	EndDate     string
	RegionID    sql.NullInt64
	EventTypeID sql.NullInt64
	IsHoliday   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateEvent inserts an event and returns the stored row.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	var e Event
	err := q.db.QueryRowContext(ctx, createEvent,
		arg.Title, arg.Description, arg.StartDate, arg.EndDate,
		arg.RegionID, arg.EventTypeID, arg.IsHoliday, arg.CreatedAt, arg.UpdatedAt,
	).Scan(
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
		&e.RegionID, &e.EventTypeID, &e.IsHoliday, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

const updateEvent = `
UPDATE events
SET title = ?, description = ?, start_date = ?, end_date = ?, region_id = ?, event_type_id = ?, is_holiday = ?, updated_at = ?
WHERE id = ?
RETURNING id, title, description, start_date, end_date, region_id, event_type_id, is_holiday, created_at, updated_at
`

// UpdateEventParams holds the full set of mutable event fields. Callers merge
// partial updates onto the existing row before calling UpdateEvent.
type UpdateEventParams struct {
	ID          int64
	Title       string
	Description sql.NullString
	StartDate   string
	EndDate     string
	RegionID    sql.NullInt64
	EventTypeID sql.NullInt64
	IsHoliday   bool
	UpdatedAt   time.Time
}

// UpdateEvent updates an event and returns the stored row.
func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (Event, error) {
	var e Event
	err := q.db.QueryRowContext(ctx, updateEvent,
		arg.Title, arg.Description, arg.StartDate, arg.EndDate,
		arg.RegionID, arg.EventTypeID, arg.IsHoliday, arg.UpdatedAt, arg.ID,
	).Scan(
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
		&e.RegionID, &e.EventTypeID, &e.IsHoliday, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

const deleteEvent = `
DELETE FROM events WHERE id = ?
`

// DeleteEvent removes an event by ID.
func (q *Queries) DeleteEvent(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteEvent, id)
	return err
}

const countEvents = `
SELECT COUNT(*) FROM events
`

// CountEvents returns the total number of events.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countEvents).Scan(&n)
	return n, err
}
