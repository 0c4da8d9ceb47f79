package tenant

import (
	"time"

	"github.com/google/uuid"

	"github.com/Fadil369/Nphies-pro/internal/domain/claim"
)

// Subscription plans form a closed set.
const (
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// ValidPlan reports whether p is one of the known plans.
func ValidPlan(p string) bool {
	return p == PlanStarter || p == PlanProfessional || p == PlanEnterprise
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Tenant is an isolated customer organization. Tenants are never hard
// deleted; deactivation flips the status. ClaimsProcessed and LastActivity
// are denormalized caches recomputable from the claim store.
type Tenant struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Plan            string     `db:"plan" json:"plan"`
	Status          string     `db:"status" json:"status"`
	ClaimsProcessed int        `db:"claims_processed" json:"claims_processed"`
	LastActivity    *time.Time `db:"last_activity" json:"last_activity,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Metrics are the per-tenant claim KPIs shown on the tenant detail view.
type Metrics struct {
	TotalClaims          int     `json:"total_claims"`
	Approved             int     `json:"approved"`
	Rejected             int     `json:"rejected"`
	Pending              int     `json:"pending"`
	ApprovalRate         float64 `json:"approval_rate"`
	AvgProcessingSeconds float64 `json:"avg_processing_seconds"`
}

// RecentActivityLimit caps the activity entries returned with a detail view.
const RecentActivityLimit = 20

// Detail is a tenant joined with its full claim set, computed metrics, and
// the most recent timeline entries.
type Detail struct {
	Tenant           *Tenant                 `json:"tenant"`
	Claims           []*claim.Claim          `json:"claims"`
	Metrics          Metrics                 `json:"metrics"`
	RecentActivities []*claim.TenantActivity `json:"recent_activities"`
}
