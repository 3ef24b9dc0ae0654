package logging

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/eventcal/eventcal-go/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		level TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL
	)`); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return db
}

func auditEntries(t *testing.T, db *sql.DB) []store.AuditLogEntry {
	t.Helper()
	entries, err := store.New(db).ListRecentAuditLogEntries(context.Background(), 100)
	if err != nil {
		t.Fatalf("listing audit entries: %v", err)
	}
	return entries
}

func newTestLogger(db *sql.DB) *slog.Logger {
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewAuditHandler(inner, db))
}

func TestAuditHandlerForwardsWarnings(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger(db)

	logger.Warn("cache backend degraded", "backend", "redis")
	logger.Error("migration failed", "version", "3")

	entries := auditEntries(t, db)
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Level != LevelError || entries[0].Message != "migration failed" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Level != LevelWarning {
		t.Errorf("warn entry level = %s", entries[1].Level)
	}
}

func TestAuditHandlerSkipsInfo(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger(db)

	logger.Info("server started", "addr", ":8080")
	logger.Debug("verbose detail")

	if entries := auditEntries(t, db); len(entries) != 0 {
		t.Fatalf("info/debug must not reach the audit log, got %d entries", len(entries))
	}
}

func TestAuditHandlerCategory(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger(db)

	logger.Warn("something odd", "category", "custom-cat")
	logger.Warn("recommendation generation failed, using fallback")
	logger.Warn("redis cache unavailable")
	logger.Warn("unclassifiable message")

	entries := auditEntries(t, db)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	// Newest first, so reverse of the calls above.
	wantCategories := []string{CategorySystem, CategoryCache, CategoryRecommend, "custom-cat"}
	for i, want := range wantCategories {
		if entries[i].Category != want {
			t.Errorf("entry %d category = %s, want %s", i, entries[i].Category, want)
		}
	}
}

func TestAuditHandlerMetadata(t *testing.T) {
	db := newTestDB(t)
	logger := newTestLogger(db)

	logger.Warn("scheduler run skipped", "job", "recurring-holidays", "reason", "db \"locked\"")

	entries := auditEntries(t, db)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	meta := entries[0].Metadata
	if !strings.Contains(meta, `"job":"recurring-holidays"`) {
		t.Errorf("metadata missing job attr: %s", meta)
	}
	if !strings.Contains(meta, `\"locked\"`) {
		t.Errorf("metadata quotes not escaped: %s", meta)
	}
}
