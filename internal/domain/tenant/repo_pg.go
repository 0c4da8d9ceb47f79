package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Fadil369/Nphies-pro/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type RepoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) *RepoPG {
	return &RepoPG{pool: pool}
}

func (r *RepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const tenantCols = `id, name, plan, status, claims_processed, last_activity, created_at, updated_at`

func scanTenant(row pgx.Row) (*Tenant, error) {
	var t Tenant
	err := row.Scan(
		&t.ID, &t.Name, &t.Plan, &t.Status, &t.ClaimsProcessed, &t.LastActivity, &t.CreatedAt, &t.UpdatedAt,
	)
	return &t, err
}

func (r *RepoPG) Create(ctx context.Context, t *Tenant) error {
	const q = `
		INSERT INTO tenants (name, plan, status)
		VALUES ($1, $2, $3)
		RETURNING id, claims_processed, created_at, updated_at`
	return r.conn(ctx).QueryRow(ctx, q, t.Name, t.Plan, t.Status).
		Scan(&t.ID, &t.ClaimsProcessed, &t.CreatedAt, &t.UpdatedAt)
}

func (r *RepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	q := fmt.Sprintf("SELECT %s FROM tenants WHERE id = $1", tenantCols)
	t, err := scanTenant(r.conn(ctx).QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *RepoPG) List(ctx context.Context) ([]*Tenant, error) {
	q := fmt.Sprintf("SELECT %s FROM tenants ORDER BY created_at DESC", tenantCols)
	rows, err := r.conn(ctx).Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *RepoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tenants WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *RepoPG) RecordActivity(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE tenants SET last_activity = $2, updated_at = NOW() WHERE id = $1`, id, at)
	return err
}

func (r *RepoPG) IncrementProcessed(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE tenants SET claims_processed = claims_processed + 1, updated_at = NOW() WHERE id = $1`, id)
	return err
}
