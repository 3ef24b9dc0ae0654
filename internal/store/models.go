package store

import (
	"database/sql"
	"time"
)

// Region is a geographic market grouping used to scope events, holidays and
// recommendations.
type Region struct {
	ID       int64
	Name     string
	Code     string
	Timezone string
	IsActive bool
}

// EventType is a display category for events (holiday, marketing, custom).
type EventType struct {
	ID    int64
	Name  string
	Color string
	Icon  string
}

// Event is a user-managed calendar entry covering an inclusive date range.
// StartDate and EndDate are calendar dates in YYYY-MM-DD form.
type Event struct {
	ID          int64
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

// Holiday is a single-day observance, distinct from events.
type Holiday struct {
	ID          int64
	Name        string
	Description sql.NullString
	Date        string
	RegionID    sql.NullInt64
	Type        string
	IsRecurring bool
	CreatedAt   time.Time
}

// Recommendation is an AI-suggested marketing event awaiting a human
// accept/reject decision.
type Recommendation struct {
	ID              int64
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

// AuditLogEntry is a persisted WARN+ log record.
type AuditLogEntry struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}
