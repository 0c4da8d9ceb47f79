package auth

import (
	"context"

	"github.com/Fadil369/Nphies-pro/internal/platform/apperr"
)

type contextKey string

const accessContextKey contextKey = "access_context"

// AccessContext is the resolved identity attached to every request: who the
// actor is, which role the upstream authentication layer assigned, and the
// scopes that role grants.
type AccessContext struct {
	ActorID string   `json:"actor_id"`
	Role    string   `json:"role"`
	Scopes  []string `json:"scopes"`
}

// HasScope reports whether the context holds the given scope.
func (a AccessContext) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Resolver maps an inbound principal hint to an AccessContext. Resolution is
// a pure function of its inputs; the role table is read-only after init.
type Resolver struct {
	table       *RoleScopeTable
	defaultRole string
	strict      bool
}

// NewResolver builds a resolver over the given table. defaultRole is used
// when the hint names an unknown role; with strict set, unknown roles are
// rejected instead (production fail-closed behavior).
func NewResolver(table *RoleScopeTable, defaultRole string, strict bool) *Resolver {
	return &Resolver{table: table, defaultRole: defaultRole, strict: strict}
}

// Resolve produces the AccessContext for an actor and role hint.
func (r *Resolver) Resolve(actorID, roleHint string) (AccessContext, error) {
	role := roleHint
	scopes, ok := r.table.Scopes(role)
	if !ok {
		if r.strict {
			return AccessContext{}, apperr.Authorization("a recognized role")
		}
		role = r.defaultRole
		scopes, ok = r.table.Scopes(role)
		if !ok {
			return AccessContext{}, apperr.Authorization("a recognized role")
		}
	}
	return AccessContext{ActorID: actorID, Role: role, Scopes: scopes}, nil
}

// ContextWithAccess returns a context carrying the access context.
func ContextWithAccess(ctx context.Context, ac AccessContext) context.Context {
	return context.WithValue(ctx, accessContextKey, ac)
}

// AccessFromContext retrieves the access context; the zero value means the
// request never passed through the auth middleware.
func AccessFromContext(ctx context.Context) AccessContext {
	ac, _ := ctx.Value(accessContextKey).(AccessContext)
	return ac
}
