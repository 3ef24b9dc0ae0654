package store

import (
	"context"
)

const listRegions = `
SELECT id, name, code, timezone, is_active
FROM regions
WHERE is_active = 1
ORDER BY id
`

// ListRegions returns all active regions in ID order.
func (q *Queries) ListRegions(ctx context.Context) ([]Region, error) {
	rows, err := q.db.QueryContext(ctx, listRegions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Region
	for rows.Next() {
		var r Region
		if err := rows.Scan(&r.ID, &r.Name, &r.Code, &r.Timezone, &r.IsActive); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const getRegionByID = `
SELECT id, name, code, timezone, is_active
FROM regions
WHERE id = ?
`

// GetRegionByID returns a region by ID; sql.ErrNoRows when absent.
func (q *Queries) GetRegionByID(ctx context.Context, id int64) (Region, error) {
	var r Region
	err := q.db.QueryRowContext(ctx, getRegionByID, id).
		Scan(&r.ID, &r.Name, &r.Code, &r.Timezone, &r.IsActive)
	return r, err
}

const getRegionByCode = `
SELECT id, name, code, timezone, is_active
FROM regions
WHERE code = ?
`

// GetRegionByCode returns a region by its ISO-ish code.
func (q *Queries) GetRegionByCode(ctx context.Context, code string) (Region, error) {
	var r Region
	err := q.db.QueryRowContext(ctx, getRegionByCode, code).
		Scan(&r.ID, &r.Name, &r.Code, &r.Timezone, &r.IsActive)
	return r, err
}

const createRegion = `
INSERT INTO regions (name, code, timezone, is_active)
VALUES (?, ?, ?, ?)
RETURNING id, name, code, timezone, is_active
`

// CreateRegionParams holds the fields for CreateRegion.
type CreateRegionParams struct {
	Name     string
	Code     string
	Timezone string
	IsActive bool
}

// CreateRegion inserts a region and returns the stored row.
func (q *Queries) CreateRegion(ctx context.Context, arg CreateRegionParams) (Region, error) {
	var r Region
	err := q.db.QueryRowContext(ctx, createRegion, arg.Name, arg.Code, arg.Timezone, arg.IsActive).
		Scan(&r.ID, &r.Name, &r.Code, &r.Timezone, &r.IsActive)
	return r, err
}

const countRegions = `
SELECT COUNT(*) FROM regions
`

// CountRegions returns the number of regions, active or not.
func (q *Queries) CountRegions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countRegions).Scan(&n)
	return n, err
}

const listEventTypes = `
SELECT id, name, color, icon
FROM event_types
ORDER BY id
`

// ListEventTypes returns all event types in ID order.
func (q *Queries) ListEventTypes(ctx context.Context) ([]EventType, error) {
	rows, err := q.db.QueryContext(ctx, listEventTypes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []EventType
	for rows.Next() {
		var t EventType
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Icon); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const createEventType = `
INSERT INTO event_types (name, color, icon)
VALUES (?, ?, ?)
RETURNING id, name, color, icon
`

// CreateEventTypeParams holds the fields for CreateEventType.
type CreateEventTypeParams struct {
	Name  string
	Color string
	Icon  string
}

// CreateEventType inserts an event type and returns the stored row.
func (q *Queries) CreateEventType(ctx context.Context, arg CreateEventTypeParams) (EventType, error) {
	var t EventType
	err := q.db.QueryRowContext(ctx, createEventType, arg.Name, arg.Color, arg.Icon).
		Scan(&t.ID, &t.Name, &t.Color, &t.Icon)
	return t, err
}
