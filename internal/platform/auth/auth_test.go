package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Fadil369/Nphies-pro/internal/platform/apperr"
)

// ---------- Resolver ----------

func TestResolver_KnownRole(t *testing.T) {
	r := NewResolver(DefaultRoleScopeTable(), "insurer_analyst", false)

	ac, err := r.Resolve("user-1", "doctor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ac.Role != "doctor" || ac.ActorID != "user-1" {
		t.Errorf("unexpected context: %+v", ac)
	}
	if !ac.HasScope(ScopeClaimsWrite) {
		t.Error("doctor must hold claims.write")
	}
	if ac.HasScope(ScopeAdminManage) {
		t.Error("doctor must not hold admin.manage")
	}
}

func TestResolver_UnknownRoleFallsBack(t *testing.T) {
	r := NewResolver(DefaultRoleScopeTable(), "insurer_analyst", false)

	ac, err := r.Resolve("user-2", "intergalactic_overlord")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ac.Role != "insurer_analyst" {
		t.Errorf("expected fallback to default role, got %q", ac.Role)
	}
	if ac.HasScope(ScopeClaimsWrite) {
		t.Error("fallback role must not gain claims.write")
	}
}

func TestResolver_StrictRejectsUnknown(t *testing.T) {
	r := NewResolver(DefaultRoleScopeTable(), "insurer_analyst", true)

	_, err := r.Resolve("user-3", "intergalactic_overlord")
	if !apperr.IsAuthorization(err) {
		t.Errorf("expected authorization error in strict mode, got %v", err)
	}

	// Known roles still resolve.
	if _, err := r.Resolve("user-3", "nurse"); err != nil {
		t.Errorf("unexpected error for known role: %v", err)
	}
}

// ---------- Authorize ----------

func TestAuthorize_ORSemantics(t *testing.T) {
	ac := AccessContext{ActorID: "u", Role: "auditor", Scopes: []string{ScopeAuditRead, ScopeAnalyticsRead}}

	// Holding any one of the required scopes is enough.
	if err := Authorize(ac, ScopeClaimsWrite, ScopeAnalyticsRead); err != nil {
		t.Errorf("expected OR semantics to pass, got %v", err)
	}
	if err := Authorize(ac, ScopeClaimsWrite, ScopeAdminManage); !apperr.IsAuthorization(err) {
		t.Errorf("expected authorization error, got %v", err)
	}
}

// ---------- Middleware ----------

func testRouter(resolver *Resolver, cfg JWTConfig) *echo.Echo {
	e := echo.New()
	e.Use(Middleware(resolver, cfg))
	e.POST("/claims", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, RequireScope(ScopeClaimsWrite))
	e.GET("/analytics", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireScope(ScopeAnalyticsRead))
	return e
}

func TestMiddleware_HeaderPrincipal(t *testing.T) {
	e := testRouter(NewResolver(DefaultRoleScopeTable(), "insurer_analyst", false), JWTConfig{})

	req := httptest.NewRequest(http.MethodPost, "/claims", nil)
	req.Header.Set("X-User-ID", "dr-rania")
	req.Header.Set("X-User-Role", "doctor")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201 for doctor, got %d", rec.Code)
	}
}

func TestMiddleware_AnalystCannotWriteClaims(t *testing.T) {
	e := testRouter(NewResolver(DefaultRoleScopeTable(), "insurer_analyst", false), JWTConfig{})

	// insurer_analyst holds analytics.read but not claims.write.
	req := httptest.NewRequest(http.MethodPost, "/claims", nil)
	req.Header.Set("X-User-ID", "analyst-1")
	req.Header.Set("X-User-Role", "insurer_analyst")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 on POST /claims, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/analytics", nil)
	req.Header.Set("X-User-ID", "analyst-1")
	req.Header.Set("X-User-Role", "insurer_analyst")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 on GET /analytics, got %d", rec.Code)
	}
}

func TestMiddleware_StrictRejectsUnknownRole(t *testing.T) {
	e := testRouter(NewResolver(DefaultRoleScopeTable(), "insurer_analyst", true), JWTConfig{})

	req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
	req.Header.Set("X-User-ID", "ghost")
	req.Header.Set("X-User-Role", "not_a_role")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for unresolved principal, got %d", rec.Code)
	}
}

func TestMiddleware_BearerToken(t *testing.T) {
	key := []byte("test-secret")
	e := testRouter(NewResolver(DefaultRoleScopeTable(), "insurer_analyst", false), JWTConfig{SigningKey: key})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "dr-rania",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "doctor",
	})
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/claims", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201 with valid token, got %d", rec.Code)
	}

	// Header principals are ignored once a signing key is configured.
	req = httptest.NewRequest(http.MethodPost, "/claims", nil)
	req.Header.Set("X-User-ID", "dr-rania")
	req.Header.Set("X-User-Role", "doctor")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without bearer token, got %d", rec.Code)
	}

	// Tokens signed with a different key are rejected.
	badToken := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "mallory"},
		Role:             "admin",
	})
	badSigned, _ := badToken.SignedString([]byte("other-secret"))
	req = httptest.NewRequest(http.MethodPost, "/claims", nil)
	req.Header.Set("Authorization", "Bearer "+badSigned)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for forged token, got %d", rec.Code)
	}
}

func assertFailureEnvelope(t *testing.T, rec *httptest.ResponseRecorder, wantMsg string) {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rec.Body.String())
	}
	if body.Success {
		t.Error("rejection must carry success=false")
	}
	if body.Error != wantMsg {
		t.Errorf("expected error %q, got %q", wantMsg, body.Error)
	}
}

func TestMiddleware_RejectionsUseEnvelope(t *testing.T) {
	// 401 without a bearer token once a signing key is set.
	e := testRouter(NewResolver(DefaultRoleScopeTable(), "insurer_analyst", false), JWTConfig{SigningKey: []byte("test-secret")})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/claims", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	assertFailureEnvelope(t, rec, "missing authorization header")

	// 403 for an unresolved principal in strict mode.
	e = testRouter(NewResolver(DefaultRoleScopeTable(), "insurer_analyst", true), JWTConfig{})
	req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
	req.Header.Set("X-User-ID", "ghost")
	req.Header.Set("X-User-Role", "not_a_role")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	assertFailureEnvelope(t, rec, "unresolved principal")
}

// ---------- RoleScopeTable ----------

func TestRoleScopeTable_CopiesInput(t *testing.T) {
	src := map[string][]string{"tester": {ScopeClaimsRead}}
	table := NewRoleScopeTable(src)

	// Mutating the source after construction must not leak into the table.
	src["tester"][0] = ScopeAdminManage
	scopes, ok := table.Scopes("tester")
	if !ok || scopes[0] != ScopeClaimsRead {
		t.Errorf("table must copy scope slices, got %v", scopes)
	}
}

func TestDefaultRoleScopeTable_Patient(t *testing.T) {
	table := DefaultRoleScopeTable()
	scopes, ok := table.Scopes("patient")
	if !ok {
		t.Fatal("patient role missing")
	}
	if len(scopes) != 1 || scopes[0] != ScopeClaimsRead {
		t.Errorf("patient must hold only claims.read, got %v", scopes)
	}
}
