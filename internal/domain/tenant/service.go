package tenant

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/Fadil369/Nphies-pro/internal/domain/claim"
	"github.com/Fadil369/Nphies-pro/internal/platform/apperr"
	"github.com/Fadil369/Nphies-pro/internal/platform/audit"
	"github.com/Fadil369/Nphies-pro/internal/platform/auth"
)

// Service owns tenant administration and the tenant detail view.
type Service struct {
	tenants    Repository
	claims     claim.ClaimRepository
	activities claim.ActivityRepository
	auditor    *audit.Recorder
}

func NewService(tenants Repository, claims claim.ClaimRepository, activities claim.ActivityRepository, auditor *audit.Recorder) *Service {
	return &Service{tenants: tenants, claims: claims, activities: activities, auditor: auditor}
}

// CreateTenant registers a new tenant on one of the known plans.
func (s *Service) CreateTenant(ctx context.Context, name, plan string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if !ValidPlan(plan) {
		return nil, apperr.Validation("unknown plan %q (expected starter, professional, or enterprise)", plan)
	}

	t := &Tenant{Name: name, Plan: plan, Status: StatusActive}
	if err := s.tenants.Create(ctx, t); err != nil {
		return nil, apperr.Internal(fmt.Errorf("create tenant: %w", err))
	}

	ac := auth.AccessFromContext(ctx)
	s.auditor.Record(ctx, "tenant.create", ac.ActorID, "tenant", t.ID.String(), false, map[string]string{
		"plan": plan,
	})

	return t, nil
}

// GetTenant returns a tenant by id.
func (s *Service) GetTenant(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	return s.loadTenant(ctx, id)
}

func (s *Service) loadTenant(ctx context.Context, id uuid.UUID) (*Tenant, error) {
	t, err := s.tenants.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("tenant", id.String())
	}
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load tenant: %w", err))
	}
	return t, nil
}

// ListTenants returns all tenants newest first.
func (s *Service) ListTenants(ctx context.Context) ([]*Tenant, error) {
	items, err := s.tenants.List(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list tenants: %w", err))
	}
	return items, nil
}

// GetTenantDetail returns the tenant with its full claim set, computed
// metrics, and the most recent timeline entries. The computation is a pure
// function of current store contents: calling it twice without intervening
// writes yields identical metrics.
func (s *Service) GetTenantDetail(ctx context.Context, id uuid.UUID) (*Detail, error) {
	t, err := s.loadTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	claims, err := s.claims.List(ctx, claim.ListFilter{TenantID: id})
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list tenant claims: %w", err))
	}

	activities, err := s.activities.RecentByTenant(ctx, id, RecentActivityLimit)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list tenant activity: %w", err))
	}

	if claims == nil {
		claims = []*claim.Claim{}
	}
	if activities == nil {
		activities = []*claim.TenantActivity{}
	}

	return &Detail{
		Tenant:           t,
		Claims:           claims,
		Metrics:          ComputeMetrics(claims),
		RecentActivities: activities,
	}, nil
}

// ComputeMetrics derives the per-tenant KPIs from a claim set. The approval
// rate is approved/total*100 rounded to one decimal, zero for an empty set;
// average processing time considers only processed claims.
func ComputeMetrics(claims []*claim.Claim) Metrics {
	var m Metrics
	var processed int
	var totalSeconds float64

	for _, c := range claims {
		m.TotalClaims++
		switch c.Status {
		case claim.StatusApproved:
			m.Approved++
		case claim.StatusRejected:
			m.Rejected++
		default:
			m.Pending++
		}
		if c.ProcessedAt != nil {
			processed++
			totalSeconds += c.ProcessedAt.Sub(c.SubmittedAt).Seconds()
		}
	}

	if m.TotalClaims > 0 {
		m.ApprovalRate = math.Round(float64(m.Approved)/float64(m.TotalClaims)*1000) / 10
	}
	if processed > 0 {
		m.AvgProcessingSeconds = totalSeconds / float64(processed)
	}
	return m
}
