package store

import (
	"context"
	"database/sql"
	"time"
)

const listHolidays = `
SELECT id, name, description, date, region_id, type, is_recurring, created_at
FROM holidays
WHERE (?1 = 0 OR region_id = ?1)
  AND (?2 = '' OR date >= ?2)
  AND (?3 = '' OR date <= ?3)
ORDER BY date
`

// ListHolidaysParams filters the holiday listing; zero values disable filters.
type ListHolidaysParams struct {
	RegionID  int64
	StartDate string
	EndDate   string
}

// ListHolidays returns holidays matching the filters in ascending date order.
func (q *Queries) ListHolidays(ctx context.Context, arg ListHolidaysParams) ([]Holiday, error) {
	rows, err := q.db.QueryContext(ctx, listHolidays, arg.RegionID, arg.StartDate, arg.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(
			&h.ID, &h.Name, &h.Description, &h.Date,
			&h.RegionID, &h.Type, &h.IsRecurring, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

const getHolidayByID = `
SELECT id, name, description, date, region_id, type, is_recurring, created_at
FROM holidays
WHERE id = ?
`

// GetHolidayByID returns a holiday by ID; sql.ErrNoRows when absent.
func (q *Queries) GetHolidayByID(ctx context.Context, id int64) (Holiday, error) {
	var h Holiday
	err := q.db.QueryRowContext(ctx, getHolidayByID, id).Scan(
		&h.ID, &h.Name, &h.Description, &h.Date,
		&h.RegionID, &h.Type, &h.IsRecurring, &h.CreatedAt,
	)
	return h, err
}

const createHoliday = `
INSERT INTO holidays (name, description, date, region_id, type, is_recurring, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, name, description, date, region_id, type, is_recurring, created_at
`

// CreateHolidayParams holds the fields for CreateHoliday.
type CreateHolidayParams struct {
	Name        string
	Description sql.NullString
	Date        string
	RegionID    sql.NullInt64
	Type        string
	IsRecurring bool
	CreatedAt   time.Time
}

// CreateHoliday inserts a holiday and returns the stored row.
func (q *Queries) CreateHoliday(ctx context.Context, arg CreateHolidayParams) (Holiday, error) {
	var h Holiday
	err := q.db.QueryRowContext(ctx, createHoliday,
		arg.Name, arg.Description, arg.Date, arg.RegionID, arg.Type, arg.IsRecurring, arg.CreatedAt,
	).Scan(
		&h.ID, &h.Name, &h.Description, &h.Date,
		&h.RegionID, &h.Type, &h.IsRecurring, &h.CreatedAt,
	)
	return h, err
}

const listRecurringHolidays = `
SELECT id, name, description, date, region_id, type, is_recurring, created_at
FROM holidays
WHERE is_recurring = 1
ORDER BY date
`

// ListRecurringHolidays returns all holidays flagged as recurring.
func (q *Queries) ListRecurringHolidays(ctx context.Context) ([]Holiday, error) {
	rows, err := q.db.QueryContext(ctx, listRecurringHolidays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(
			&h.ID, &h.Name, &h.Description, &h.Date,
			&h.RegionID, &h.Type, &h.IsRecurring, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

const countHolidaysByNameAndDate = `
SELECT COUNT(*)
FROM holidays
WHERE name = ?1 AND date = ?2 AND (?3 = 0 OR region_id = ?3)
`

// CountHolidaysByNameAndDateParams identifies a holiday occurrence.
type CountHolidaysByNameAndDateParams struct {
	Name     string
	Date     string
	RegionID int64
}

// CountHolidaysByNameAndDate reports whether a holiday occurrence already exists.
func (q *Queries) CountHolidaysByNameAndDate(ctx context.Context, arg CountHolidaysByNameAndDateParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countHolidaysByNameAndDate, arg.Name, arg.Date, arg.RegionID).Scan(&n)
	return n, err
}
