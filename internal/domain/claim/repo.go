package claim

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when no claim matches the id.
// Services translate it to the not-found taxonomy; any other repository
// error is a store failure.
var ErrNotFound = errors.New("claim not found")

// ListFilter narrows a claim listing. The zero value lists everything.
type ListFilter struct {
	TenantID uuid.UUID
}

// Transactor runs a write sequence atomically: every statement issued
// through the context handed to fn commits together or not at all.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ClaimRepository interface {
	Create(ctx context.Context, c *Claim) error
	GetByID(ctx context.Context, id uuid.UUID) (*Claim, error)
	// List returns claims ordered by submitted_at descending.
	List(ctx context.Context, filter ListFilter) ([]*Claim, error)
	// UpdateStatus persists a status transition. Last write wins; no
	// optimistic-concurrency token is checked.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, processedAt *time.Time) error
}

type ActivityRepository interface {
	Append(ctx context.Context, a *Activity) error
	// ListByClaim returns timeline entries newest first.
	ListByClaim(ctx context.Context, claimID uuid.UUID, limit, offset int) ([]*Activity, int, error)
	// RecentByTenant returns the most recent entries for a tenant joined
	// with each claim's patient name, newest first.
	RecentByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]*TenantActivity, error)
}

// TenantDirectory is the slice of the tenant store the lifecycle controller
// needs: existence checks and denormalized counter upkeep.
type TenantDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	RecordActivity(ctx context.Context, id uuid.UUID, at time.Time) error
	IncrementProcessed(ctx context.Context, id uuid.UUID) error
}
