package claim

import (
	"time"

	"github.com/google/uuid"

	"github.com/Fadil369/Nphies-pro/internal/platform/nphies"
)

// Claim statuses. Terminal statuses are re-enterable: a claim may move back
// to pending or to the other terminal status at any time.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatus reports whether s is one of the three known claim statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Terminal reports whether s is a processed (approved/rejected) status.
func Terminal(s string) bool {
	return s == StatusApproved || s == StatusRejected
}

// Claim is a single insurance claim owned by exactly one tenant.
// Invariant: ProcessedAt is non-nil iff Status is approved or rejected.
type Claim struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	PatientName  string     `db:"patient_name" json:"patient_name"`
	PatientID    string     `db:"patient_id" json:"patient_id"`
	NationalID   string     `db:"national_id" json:"national_id"`
	Amount       float64    `db:"amount" json:"amount"`
	Diagnosis    string     `db:"diagnosis" json:"diagnosis"`
	Status       string     `db:"status" json:"status"`
	ProviderName string     `db:"provider_name" json:"provider_name"`
	PolicyNumber string     `db:"policy_number" json:"policy_number"`
	SubmittedAt  time.Time  `db:"submitted_at" json:"submitted_at"`
	ProcessedAt  *time.Time `db:"processed_at" json:"processed_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// ComplianceFlags evaluates the NPHIES review heuristics for this claim.
func (c *Claim) ComplianceFlags() []string {
	return nphies.ComplianceFlags(nphies.ClaimFacts{
		Amount:      c.Amount,
		NationalID:  c.NationalID,
		SubmittedAt: c.SubmittedAt,
	})
}

// Activity entry types on a claim timeline.
const (
	ActivityCreated    = "created"
	ActivityStatus     = "status"
	ActivityAIDecision = "ai_decision"
	ActivityNote       = "note"
)

// ValidActivityType reports whether t is a known timeline entry type.
func ValidActivityType(t string) bool {
	switch t {
	case ActivityCreated, ActivityStatus, ActivityAIDecision, ActivityNote:
		return true
	}
	return false
}

// Activity is one append-only timeline entry attached to a claim. The tenant
// id is duplicated from the claim for tenant-scoped queries. Entries are
// never mutated or deleted once written.
type Activity struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ClaimID   uuid.UUID `db:"claim_id" json:"claim_id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Type      string    `db:"type" json:"type"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TenantActivity is an activity joined with its claim's patient name, used
// by the tenant detail view.
type TenantActivity struct {
	Activity
	PatientName string `json:"patient_name"`
}
