package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Fadil369/Nphies-pro/internal/platform/db"
)

// PGSink appends audit records to the audit_record table for deployments
// that need a queryable trail alongside the log stream.
type PGSink struct {
	pool *pgxpool.Pool
}

func NewPGSink(pool *pgxpool.Pool) *PGSink {
	return &PGSink{pool: pool}
}

func (s *PGSink) Write(ctx context.Context, rec Record) error {
	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("encode audit metadata: %w", err)
	}

	const query = `
		INSERT INTO audit_record (
			action, actor_id, resource_type, resource_id, phi_involved, metadata, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	args := []any{
		rec.Action, rec.ActorID, rec.ResourceType, rec.ResourceID,
		rec.PHIInvolved, meta, rec.RecordedAt,
	}

	if tx := db.TxFromContext(ctx); tx != nil {
		_, err = tx.Exec(ctx, query, args...)
	} else {
		_, err = s.pool.Exec(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}
