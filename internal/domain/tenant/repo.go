package tenant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when no tenant matches the id.
var ErrNotFound = errors.New("tenant not found")

type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	List(ctx context.Context) ([]*Tenant, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// RecordActivity bumps the denormalized last_activity timestamp.
	RecordActivity(ctx context.Context, id uuid.UUID, at time.Time) error
	// IncrementProcessed bumps the denormalized claims_processed counter.
	IncrementProcessed(ctx context.Context, id uuid.UUID) error
}
