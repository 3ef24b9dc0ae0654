// Package logging provides a slog handler that mirrors WARN and ERROR
// records into the audit_log table for later inspection.
package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/eventcal/eventcal-go/internal/store"
)

// Audit levels stored in audit_log.level.
const (
	LevelWarning = "warning"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Audit categories stored in audit_log.category.
const (
	CategorySystem    = "system"
	CategoryStore     = "store"
	CategoryRecommend = "recommend"
	CategoryScheduler = "scheduler"
	CategoryCache     = "cache"
)

// AuditHandler wraps another slog.Handler and additionally writes
// records at or above its threshold to the audit log.
type AuditHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewAuditHandler forwards WARN and above to the audit log.
func NewAuditHandler(inner slog.Handler, db *sql.DB) *AuditHandler {
	return &AuditHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

func (h *AuditHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *AuditHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeAuditEntry(r)
	}
	return nil
}

func (h *AuditHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AuditHandler{inner: h.inner.WithAttrs(attrs), queries: h.queries, level: h.level}
}

func (h *AuditHandler) WithGroup(name string) slog.Handler {
	return &AuditHandler{inner: h.inner.WithGroup(name), queries: h.queries, level: h.level}
}

// writeAuditEntry persists the record. A background context is used so
// entries survive request cancellation; failures are swallowed because
// logging must never fail the caller.
func (h *AuditHandler) writeAuditEntry(r slog.Record) {
	_ = h.queries.CreateAuditLogEntry(context.Background(), store.CreateAuditLogEntryParams{
		Level:     auditLevel(r.Level),
		Category:  extractCategory(r),
		Message:   r.Message,
		Metadata:  extractMetadata(r),
		CreatedAt: r.Time,
	})
}

func auditLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return LevelError
	case level >= slog.LevelWarn:
		return LevelWarning
	default:
		return LevelInfo
	}
}

// extractCategory prefers an explicit "category" attribute, then infers
// one from the message.
func extractCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "recommendation") || strings.Contains(msg, "generation"):
		return CategoryRecommend
	case strings.Contains(msg, "holiday") || strings.Contains(msg, "scheduler"):
		return CategoryScheduler
	case strings.Contains(msg, "cache") || strings.Contains(msg, "redis"):
		return CategoryCache
	case strings.Contains(msg, "database") || strings.Contains(msg, "migration"):
		return CategoryStore
	default:
		return CategorySystem
	}
}

// extractMetadata flattens the record's attributes into a JSON object.
func extractMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{")
	first := true
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			return true
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(`"`)
		sb.WriteString(escapeJSON(a.Key))
		sb.WriteString(`":"`)
		sb.WriteString(escapeJSON(a.Value.String()))
		sb.WriteString(`"`)
		return true
	})
	sb.WriteString("}")
	return sb.String()
}

func escapeJSON(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
