package claim

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

// ClaimRepoPG is the PostgreSQL claim repository.
type ClaimRepoPG struct {
	pool *pgxpool.Pool
}

func NewClaimRepoPG(pool *pgxpool.Pool) *ClaimRepoPG {
	return &ClaimRepoPG{pool: pool}
}

func (r *ClaimRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const claimCols = `id, tenant_id, patient_name, patient_id, national_id, amount, diagnosis,
	status, provider_name, policy_number, submitted_at, processed_at, created_at, updated_at`

func scanClaim(row pgx.Row) (*Claim, error) {
	var c Claim
	err := row.Scan(
		&c.ID, &c.TenantID, &c.PatientName, &c.PatientID, &c.NationalID, &c.Amount, &c.Diagnosis,
		&c.Status, &c.ProviderName, &c.PolicyNumber, &c.SubmittedAt, &c.ProcessedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	return &c, err
}

func (r *ClaimRepoPG) Create(ctx context.Context, c *Claim) error {
	const q = `
		INSERT INTO claims (
			tenant_id, patient_name, patient_id, national_id, amount, diagnosis,
			status, provider_name, policy_number, submitted_at, processed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at, updated_at`
	return r.conn(ctx).QueryRow(ctx, q,
		c.TenantID, c.PatientName, c.PatientID, c.NationalID, c.Amount, c.Diagnosis,
		c.Status, c.ProviderName, c.PolicyNumber, c.SubmittedAt, c.ProcessedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClaimRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Claim, error) {
	q := fmt.Sprintf("SELECT %s FROM claims WHERE id = $1", claimCols)
	c, err := scanClaim(r.conn(ctx).QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ClaimRepoPG) List(ctx context.Context, filter ListFilter) ([]*Claim, error) {
	q := fmt.Sprintf("SELECT %s FROM claims", claimCols)
	args := []interface{}{}
	if filter.TenantID != uuid.Nil {
		q += " WHERE tenant_id = $1"
		args = append(args, filter.TenantID)
	}
	q += " ORDER BY submitted_at DESC"

	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *ClaimRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string, processedAt *time.Time) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE claims SET status = $2, processed_at = $3, updated_at = NOW() WHERE id = $1`,
		id, status, processedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ActivityRepoPG is the PostgreSQL timeline repository.
type ActivityRepoPG struct {
	pool *pgxpool.Pool
}

func NewActivityRepoPG(pool *pgxpool.Pool) *ActivityRepoPG {
	return &ActivityRepoPG{pool: pool}
}

func (r *ActivityRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *ActivityRepoPG) Append(ctx context.Context, a *Activity) error {
	const q = `
		INSERT INTO claim_activity (claim_id, tenant_id, type, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.conn(ctx).QueryRow(ctx, q,
		a.ClaimID, a.TenantID, a.Type, a.Message, a.CreatedAt,
	).Scan(&a.ID)
}

func (r *ActivityRepoPG) ListByClaim(ctx context.Context, claimID uuid.UUID, limit, offset int) ([]*Activity, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM claim_activity WHERE claim_id = $1`, claimID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, claim_id, tenant_id, type, message, created_at
		FROM claim_activity
		WHERE claim_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, claimID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.ClaimID, &a.TenantID, &a.Type, &a.Message, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &a)
	}
	return items, total, rows.Err()
}

func (r *ActivityRepoPG) RecentByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]*TenantActivity, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT a.id, a.claim_id, a.tenant_id, a.type, a.message, a.created_at, c.patient_name
		FROM claim_activity a
		JOIN claims c ON c.id = a.claim_id
		WHERE a.tenant_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2`, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*TenantActivity
	for rows.Next() {
		var a TenantActivity
		if err := rows.Scan(&a.ID, &a.ClaimID, &a.TenantID, &a.Type, &a.Message, &a.CreatedAt, &a.PatientName); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}
