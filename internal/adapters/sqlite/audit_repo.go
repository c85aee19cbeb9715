package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/marina/internal/ports/secondary"
)

// AuditRepository implements secondary.AuditLog with SQLite.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new SQLite audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append persists one request record.
func (r *AuditRepository) Append(ctx context.Context, record secondary.AuditRecord) error {
	var actorID, rule, operation sql.NullString
	if record.ActorID != "" {
		actorID = sql.NullString{String: record.ActorID, Valid: true}
	}
	if record.Rule != "" {
		rule = sql.NullString{String: record.Rule, Valid: true}
	}
	if record.Operation != "" {
		operation = sql.NullString{String: record.Operation, Valid: true}
	}

	ts := record.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO audit_log (id, timestamp, actor_id, command, rule, operation, denied, actions, error_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		record.ID, ts.UTC(), actorID, record.Command, rule, operation, record.Denied, strings.Join(record.Actions, ","), record.ErrorCount,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]secondary.AuditRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, timestamp, actor_id, command, rule, operation, denied, actions, error_count FROM audit_log ORDER BY timestamp DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer rows.Close()

	var records []secondary.AuditRecord
	for rows.Next() {
		var (
			rec                      secondary.AuditRecord
			actorID, rule, operation sql.NullString
			actions                  sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &actorID, &rec.Command, &rule, &operation, &rec.Denied, &actions, &rec.ErrorCount); err != nil {
			return nil, fmt.Errorf("failed to scan audit record: %w", err)
		}
		rec.ActorID = actorID.String
		rec.Rule = rule.String
		rec.Operation = operation.String
		if actions.String != "" {
			rec.Actions = strings.Split(actions.String, ",")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
