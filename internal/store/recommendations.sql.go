package store

import (
	"context"
	"database/sql"
	"time"
)

const listRecommendations = `
SELECT id, title, description, suggested_date, confidence_score, status, region_id, event_type_id, reasoning, batch_id, created_at, updated_at
FROM recommendations
WHERE (?1 = 0 OR region_id = ?1)
  AND (?2 = '' OR status = ?2)
ORDER BY created_at DESC
`

// ListRecommendationsParams filters the recommendation listing; zero values
// disable filters.
type ListRecommendationsParams struct {
	RegionID int64
	Status   string
}

// ListRecommendations returns recommendations newest-created-first.
func (q *Queries) ListRecommendations(ctx context.Context, arg ListRecommendationsParams) ([]Recommendation, error) {
	rows, err := q.db.QueryContext(ctx, listRecommendations, arg.RegionID, arg.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Recommendation
	for rows.Next() {
		var r Recommendation
		if err := scanRecommendation(rows, &r); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

const getRecommendationByID = `
SELECT id, title, description, suggested_date, confidence_score, status, region_id, event_type_id, reasoning, batch_id, created_at, updated_at
FROM recommendations
WHERE id = ?
`

// GetRecommendationByID returns a recommendation by ID; sql.ErrNoRows when absent.
func (q *Queries) GetRecommendationByID(ctx context.Context, id int64) (Recommendation, error) {
	var r Recommendation
	err := q.db.QueryRowContext(ctx, getRecommendationByID, id).Scan(
		&r.ID, &r.Title, &r.Description, &r.SuggestedDate, &r.ConfidenceScore, &r.Status,
		&r.RegionID, &r.EventTypeID, &r.Reasoning, &r.BatchID, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

const createRecommendation = `
INSERT INTO recommendations (title, description, suggested_date, confidence_score, status, region_id, event_type_id, reasoning, batch_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, description, suggested_date, confidence_score, status, region_id, event_type_id, reasoning, batch_id, created_at, updated_at
`

// CreateRecommendationParams holds the fields for CreateRecommendation.
type CreateRecommendationParams struct {
	Title           string
	Description     string
	SuggestedDate   sql.NullString
	ConfidenceScore float64
	Status          string
	RegionID        sql.NullInt64
	EventTypeID     sql.NullInt64
	Reasoning       sql.NullString
	BatchID         sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateRecommendation inserts a recommendation and returns the stored row.
func (q *Queries) CreateRecommendation(ctx context.Context, arg CreateRecommendationParams) (Recommendation, error) {
	var r Recommendation
	err := q.db.QueryRowContext(ctx, createRecommendation,
		arg.Title, arg.Description, arg.SuggestedDate, arg.ConfidenceScore, arg.Status,
		arg.RegionID, arg.EventTypeID, arg.Reasoning, arg.BatchID, arg.CreatedAt, arg.UpdatedAt,
	).Scan(
		&r.ID, &r.Title, &r.Description, &r.SuggestedDate, &r.ConfidenceScore, &r.Status,
		&r.RegionID, &r.EventTypeID, &r.Reasoning, &r.BatchID, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

const updateRecommendationStatus = `
UPDATE recommendations
SET status = ?, updated_at = ?
WHERE id = ?
RETURNING id, title, description, suggested_date, confidence_score, status, region_id, event_type_id, reasoning, batch_id, created_at, updated_at
`

// UpdateRecommendationStatusParams holds the fields for UpdateRecommendationStatus.
type UpdateRecommendationStatusParams struct {
	ID        int64
	Status    string
	UpdatedAt time.Time
}

// UpdateRecommendationStatus sets only the status column and returns the
// updated row.
func (q *Queries) UpdateRecommendationStatus(ctx context.Context, arg UpdateRecommendationStatusParams) (Recommendation, error) {
	var r Recommendation
	err := q.db.QueryRowContext(ctx, updateRecommendationStatus, arg.Status, arg.UpdatedAt, arg.ID).Scan(
		&r.ID, &r.Title, &r.Description, &r.SuggestedDate, &r.ConfidenceScore, &r.Status,
		&r.RegionID, &r.EventTypeID, &r.Reasoning, &r.BatchID, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

const deleteRecommendation = `
DELETE FROM recommendations WHERE id = ?
`

// DeleteRecommendation removes a recommendation by ID.
func (q *Queries) DeleteRecommendation(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteRecommendation, id)
	return err
}

// scanRecommendation scans a recommendation row from a *sql.Rows cursor.
func scanRecommendation(rows *sql.Rows, r *Recommendation) error {
	return rows.Scan(
		&r.ID, &r.Title, &r.Description, &r.SuggestedDate, &r.ConfidenceScore, &r.Status,
		&r.RegionID, &r.EventTypeID, &r.Reasoning, &r.BatchID, &r.CreatedAt, &r.UpdatedAt,
	)
}
