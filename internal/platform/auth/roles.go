package auth

// Permission scopes checked by the request gate.
const (
	ScopeClaimsRead    = "claims.read"
	ScopeClaimsWrite   = "claims.write"
	ScopeAnalyticsRead = "analytics.read"
	ScopeExportsWrite  = "exports.write"
	ScopeAuditRead     = "audit.read"
	ScopeAdminManage   = "admin.manage"
)

// RoleScopeTable maps role names to their permitted scopes. It is built once
// at process start and never mutated afterwards, so lookups need no locking.
type RoleScopeTable struct {
	scopes map[string][]string
}

// NewRoleScopeTable copies the given mapping into an immutable table.
func NewRoleScopeTable(roles map[string][]string) *RoleScopeTable {
	scopes := make(map[string][]string, len(roles))
	for role, set := range roles {
		cp := make([]string, len(set))
		copy(cp, set)
		scopes[role] = cp
	}
	return &RoleScopeTable{scopes: scopes}
}

// DefaultRoleScopeTable returns the platform's fixed healthcare role set.
func DefaultRoleScopeTable() *RoleScopeTable {
	return NewRoleScopeTable(map[string][]string{
		"doctor": {ScopeClaimsRead, ScopeClaimsWrite, ScopeAnalyticsRead},
		"nurse":  {ScopeClaimsRead, ScopeAnalyticsRead},
		"provider_biller": {
			ScopeClaimsRead, ScopeClaimsWrite, ScopeAnalyticsRead, ScopeExportsWrite,
		},
		"insurer_analyst": {ScopeClaimsRead, ScopeAnalyticsRead, ScopeExportsWrite},
		"admin": {
			ScopeClaimsRead, ScopeClaimsWrite, ScopeAnalyticsRead,
			ScopeExportsWrite, ScopeAuditRead, ScopeAdminManage,
		},
		"auditor": {ScopeAuditRead, ScopeAnalyticsRead},
		// self-only filtering enforced downstream
		"patient": {ScopeClaimsRead},
	})
}

// Scopes returns the scope set for role and whether the role is known.
func (t *RoleScopeTable) Scopes(role string) ([]string, bool) {
	set, ok := t.scopes[role]
	return set, ok
}

// Roles returns the number of roles in the table.
func (t *RoleScopeTable) Roles() int {
	return len(t.scopes)
}
