package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditLog is one row of the ledger's audit trail: which actor performed
// which action ("journal.post", "expense.create", ...) on which record.
type AuditLog struct {
	ActorID  int64
	Action   string
	Entity   string
	EntityID string
	Meta     map[string]any
	At       time.Time
}

// AuditLogger appends audit trail rows. Writes are best-effort from the
// callers' point of view: services record after commit and ignore failures.
type AuditLogger struct {
	pool *pgxpool.Pool
}

func NewAuditLogger(pool *pgxpool.Pool) *AuditLogger {
	return &AuditLogger{pool: pool}
}

// Record appends the entry to audit_logs. A zero At stamps the database
// clock instead of the Go zero time.
func (l *AuditLogger) Record(ctx context.Context, entry AuditLog) error {
	if l == nil || l.pool == nil {
		return fmt.Errorf("shared: audit logger is not configured")
	}
	if entry.Action == "" || entry.Entity == "" || entry.EntityID == "" {
		return fmt.Errorf("shared: audit entry for action %q lacks entity identification", entry.Action)
	}

	meta := []byte("{}")
	if len(entry.Meta) > 0 {
		encoded, err := json.Marshal(entry.Meta)
		if err != nil {
			return fmt.Errorf("shared: encode audit meta: %w", err)
		}
		meta = encoded
	}
	var occurredAt any
	if !entry.At.IsZero() {
		occurredAt = entry.At
	}

	_, err := l.pool.Exec(ctx, `
		INSERT INTO audit_logs (actor_id, action, entity, entity_id, meta, occurred_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))`,
		entry.ActorID, entry.Action, entry.Entity, entry.EntityID, meta, occurredAt)
	if err != nil {
		return fmt.Errorf("shared: record audit entry: %w", err)
	}
	return nil
}
