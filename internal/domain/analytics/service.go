package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Fadil369/Nphies-pro/internal/domain/claim"
	"github.com/Fadil369/Nphies-pro/internal/domain/tenant"
	"github.com/Fadil369/Nphies-pro/internal/platform/apperr"
)

// Service loads the cross-tenant claim set and runs the aggregation.
type Service struct {
	claims  claim.ClaimRepository
	tenants tenant.Repository
}

func NewService(claims claim.ClaimRepository, tenants tenant.Repository) *Service {
	return &Service{claims: claims, tenants: tenants}
}

// Dashboard aggregates the current claim set under the given filter. Reads
// are not transactionally isolated from concurrent writes; a single call sees
// a consistent-enough snapshot for dashboard purposes.
func (s *Service) Dashboard(ctx context.Context, f Filter) (Dashboard, error) {
	claims, err := s.claims.List(ctx, claim.ListFilter{})
	if err != nil {
		return Dashboard{}, apperr.Internal(fmt.Errorf("load claims: %w", err))
	}
	tenants, err := s.tenants.List(ctx)
	if err != nil {
		return Dashboard{}, apperr.Internal(fmt.Errorf("load tenants: %w", err))
	}

	info := make(map[uuid.UUID]TenantInfo, len(tenants))
	for _, t := range tenants {
		info[t.ID] = TenantInfo{Name: t.Name, Plan: t.Plan}
	}

	return Aggregate(claims, info, f), nil
}
