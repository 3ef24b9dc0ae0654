package store

import (
	"context"
	"time"
)

const createAuditLogEntry = `
INSERT INTO audit_log (level, category, message, metadata, created_at)
VALUES (?, ?, ?, ?, ?)
`

// CreateAuditLogEntryParams holds the fields for CreateAuditLogEntry.
type CreateAuditLogEntryParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateAuditLogEntry appends an audit log record.
func (q *Queries) CreateAuditLogEntry(ctx context.Context, arg CreateAuditLogEntryParams) error {
	_, err := q.db.ExecContext(ctx, createAuditLogEntry,
		arg.Level, arg.Category, arg.Message, arg.Metadata, arg.CreatedAt)
	return err
}

const listRecentAuditLogEntries = `
SELECT id, level, category, message, metadata, created_at
FROM audit_log
ORDER BY created_at DESC
LIMIT ?
`

// ListRecentAuditLogEntries returns the newest audit records up to limit.
func (q *Queries) ListRecentAuditLogEntries(ctx context.Context, limit int64) ([]AuditLogEntry, error) {
	rows, err := q.db.QueryContext(ctx, listRecentAuditLogEntries, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AuditLogEntry
	for rows.Next() {
		var e AuditLogEntry
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
