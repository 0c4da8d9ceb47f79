package claim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Fadil369/Nphies-pro/internal/platform/apperr"
	"github.com/Fadil369/Nphies-pro/internal/platform/audit"
	"github.com/Fadil369/Nphies-pro/internal/platform/auth"
	"github.com/Fadil369/Nphies-pro/internal/platform/nphies"
)

// minNoteLength is the minimum trimmed length for a note message.
const minNoteLength = 3

// Service owns claim creation, reads, and the status lifecycle. It is the
// single place that writes claim audit records and timeline entries.
type Service struct {
	claims     ClaimRepository
	activities ActivityRepository
	tenants    TenantDirectory
	auditor    *audit.Recorder
	tx         Transactor
	now        func() time.Time
}

func NewService(claims ClaimRepository, activities ActivityRepository, tenants TenantDirectory, auditor *audit.Recorder, tx Transactor) *Service {
	return &Service{
		claims:     claims,
		activities: activities,
		tenants:    tenants,
		auditor:    auditor,
		tx:         tx,
		now:        time.Now,
	}
}

// CreateClaimInput carries the fields accepted by CreateClaim.
type CreateClaimInput struct {
	TenantID     uuid.UUID `json:"tenant_id"`
	PatientName  string    `json:"patient_name"`
	PatientID    string    `json:"patient_id"`
	NationalID   string    `json:"national_id"`
	Amount       float64   `json:"amount"`
	Diagnosis    string    `json:"diagnosis"`
	ProviderName string    `json:"provider_name"`
	PolicyNumber string    `json:"policy_number"`
}

func (in *CreateClaimInput) validate() error {
	if in.TenantID == uuid.Nil {
		return apperr.Validation("tenant_id is required")
	}
	if strings.TrimSpace(in.PatientName) == "" {
		return apperr.Validation("patient_name is required")
	}
	if strings.TrimSpace(in.Diagnosis) == "" {
		return apperr.Validation("diagnosis is required")
	}
	if in.Amount < 0 {
		return apperr.Validation("amount must be non-negative, got %v", in.Amount)
	}
	if in.NationalID != "" && !nphies.ValidNationalID(in.NationalID) {
		return apperr.Validation("national_id is not a valid Saudi national id")
	}
	return nil
}

// CreateClaim validates the input, stores the claim in pending status, and
// appends the opening timeline entry.
func (s *Service) CreateClaim(ctx context.Context, in CreateClaimInput) (*Claim, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	exists, err := s.tenants.Exists(ctx, in.TenantID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("check tenant: %w", err))
	}
	if !exists {
		return nil, apperr.NotFound("tenant", in.TenantID.String())
	}

	now := s.now().UTC()
	c := &Claim{
		TenantID:     in.TenantID,
		PatientName:  strings.TrimSpace(in.PatientName),
		PatientID:    strings.TrimSpace(in.PatientID),
		NationalID:   strings.TrimSpace(in.NationalID),
		Amount:       in.Amount,
		Diagnosis:    strings.TrimSpace(in.Diagnosis),
		Status:       StatusPending,
		ProviderName: strings.TrimSpace(in.ProviderName),
		PolicyNumber: strings.TrimSpace(in.PolicyNumber),
		SubmittedAt:  now,
		ProcessedAt:  nil,
	}

	// The claim row, its opening timeline entry, and the tenant bump commit
	// together or not at all. A failed creation must leave no claim behind.
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.claims.Create(ctx, c); err != nil {
			return apperr.Internal(fmt.Errorf("create claim: %w", err))
		}
		if err := s.appendActivity(ctx, c, ActivityCreated,
			fmt.Sprintf("Claim submitted for %s", c.PatientName)); err != nil {
			return err
		}
		if err := s.tenants.RecordActivity(ctx, c.TenantID, now); err != nil {
			return apperr.Internal(fmt.Errorf("record tenant activity: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "claim.create", c.ID, map[string]string{
		"tenant_id": c.TenantID.String(),
		"status":    c.Status,
	})

	return c, nil
}

// GetClaim returns a claim by id.
func (s *Service) GetClaim(ctx context.Context, id uuid.UUID) (*Claim, error) {
	return s.loadClaim(ctx, id)
}

// loadClaim fetches a claim, translating a missing row to the not-found
// taxonomy and anything else to an internal error.
func (s *Service) loadClaim(ctx context.Context, id uuid.UUID) (*Claim, error) {
	c, err := s.claims.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("claim", id.String())
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load claim: %w", err))
	}
	return c, nil
}

// ListClaims returns claims ordered by submission time descending,
// optionally scoped to a tenant.
func (s *Service) ListClaims(ctx context.Context, filter ListFilter) ([]*Claim, error) {
	claims, err := s.claims.List(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list claims: %w", err))
	}
	return claims, nil
}

// UpdateStatus applies a status transition. ProcessedAt is set exactly when
// the new status is terminal and cleared on a move back to pending, keeping
// the processed-at invariant after every transition. Concurrent updates to
// the same claim are last-write-wins.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus string) (*Claim, error) {
	if !ValidStatus(newStatus) {
		return nil, apperr.Validation("unknown status %q", newStatus)
	}

	c, err := s.loadClaim(ctx, id)
	if err != nil {
		return nil, err
	}

	prev := c.Status
	now := s.now().UTC()

	var processedAt *time.Time
	if Terminal(newStatus) {
		processedAt = &now
	}

	// The status write, the timeline entry, and the tenant counters are one
	// atomic unit; a failure rolls the transition back entirely.
	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.claims.UpdateStatus(ctx, id, newStatus, processedAt); err != nil {
			if errors.Is(err, ErrNotFound) {
				return apperr.NotFound("claim", id.String())
			}
			return apperr.Internal(fmt.Errorf("update claim status: %w", err))
		}
		if err := s.appendActivity(ctx, c, ActivityStatus,
			fmt.Sprintf("Status changed from %s to %s", prev, newStatus)); err != nil {
			return err
		}
		if Terminal(newStatus) {
			if err := s.tenants.IncrementProcessed(ctx, c.TenantID); err != nil {
				return apperr.Internal(fmt.Errorf("increment tenant counter: %w", err))
			}
		}
		if err := s.tenants.RecordActivity(ctx, c.TenantID, now); err != nil {
			return apperr.Internal(fmt.Errorf("record tenant activity: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.Status = newStatus
	c.ProcessedAt = processedAt
	c.UpdatedAt = now

	s.audit(ctx, "claim.status_update", c.ID, map[string]string{
		"tenant_id": c.TenantID.String(),
		"from":      prev,
		"to":        newStatus,
	})

	return c, nil
}

// AppendNote attaches a free-text note to the claim timeline. Messages with
// fewer than three trimmed characters are rejected before anything is
// written.
func (s *Service) AppendNote(ctx context.Context, claimID uuid.UUID, message string) (*Activity, error) {
	message = strings.TrimSpace(message)
	if len([]rune(message)) < minNoteLength {
		return nil, apperr.Validation("note message must be at least %d characters", minNoteLength)
	}

	c, err := s.loadClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	a, err := s.newActivity(ctx, c, ActivityNote, message)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "claim.note", c.ID, map[string]string{
		"tenant_id": c.TenantID.String(),
		"preview":   audit.Preview(message),
	})

	return a, nil
}

// RecordDecision appends an ai_decision timeline entry on behalf of the
// external assistant.
func (s *Service) RecordDecision(ctx context.Context, claimID uuid.UUID, message string) (*Activity, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperr.Validation("decision message is required")
	}

	c, err := s.loadClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}

	a, err := s.newActivity(ctx, c, ActivityAIDecision, message)
	if err != nil {
		return nil, err
	}

	s.audit(ctx, "claim.ai_decision", c.ID, map[string]string{
		"tenant_id": c.TenantID.String(),
		"preview":   audit.Preview(message),
	})

	return a, nil
}

// ListActivity returns the claim timeline newest first.
func (s *Service) ListActivity(ctx context.Context, claimID uuid.UUID, limit, offset int) ([]*Activity, int, error) {
	if _, err := s.loadClaim(ctx, claimID); err != nil {
		return nil, 0, err
	}
	items, total, err := s.activities.ListByClaim(ctx, claimID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Internal(fmt.Errorf("list claim activity: %w", err))
	}
	return items, total, nil
}

func (s *Service) appendActivity(ctx context.Context, c *Claim, typ, message string) error {
	_, err := s.newActivity(ctx, c, typ, message)
	return err
}

func (s *Service) newActivity(ctx context.Context, c *Claim, typ, message string) (*Activity, error) {
	a := &Activity{
		ClaimID:   c.ID,
		TenantID:  c.TenantID,
		Type:      typ,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.activities.Append(ctx, a); err != nil {
		return nil, apperr.Internal(fmt.Errorf("append %s activity: %w", typ, err))
	}
	return a, nil
}

func (s *Service) audit(ctx context.Context, action string, claimID uuid.UUID, meta map[string]string) {
	ac := auth.AccessFromContext(ctx)
	s.auditor.Record(ctx, action, ac.ActorID, "claim", claimID.String(), true, meta)
}
