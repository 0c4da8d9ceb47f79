package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Fadil369/Nphies-pro/internal/domain/claim"
)

// ---------- Helpers ----------

func mkClaim(tenantID uuid.UUID, status, patientID string, submitted time.Time, processing time.Duration) *claim.Claim {
	c := &claim.Claim{
		ID:          uuid.New(),
		TenantID:    tenantID,
		PatientID:   patientID,
		Status:      status,
		SubmittedAt: submitted,
	}
	if claim.Terminal(status) {
		p := submitted.Add(processing)
		c.ProcessedAt = &p
	}
	return c
}

var (
	jan = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	feb = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
)

// ---------- Aggregate ----------

func TestAggregate_Empty(t *testing.T) {
	d := Aggregate(nil, nil, Filter{})

	if d.TotalClaims != 0 || d.AutoApproved != 0 || d.ActivePatients != 0 {
		t.Errorf("unexpected counts: %+v", d)
	}
	if d.AvgProcessingTime != "0s" {
		t.Errorf("expected \"0s\" with no processed claims, got %q", d.AvgProcessingTime)
	}
	if d.ApprovalRate != 0 {
		t.Errorf("expected 0 approval rate for empty set, got %v", d.ApprovalRate)
	}
	if len(d.StatusTrends) != 0 || len(d.TenantLeaderboard) != 0 || len(d.Insights) != 0 {
		t.Errorf("expected empty series, got %+v", d)
	}
}

func TestAggregate_Counts(t *testing.T) {
	tid := uuid.New()
	claims := []*claim.Claim{
		mkClaim(tid, claim.StatusApproved, "p1", jan, time.Hour),
		mkClaim(tid, claim.StatusApproved, "p2", jan, 3*time.Hour),
		mkClaim(tid, claim.StatusRejected, "p1", jan, 2*time.Hour),
		mkClaim(tid, claim.StatusPending, "p3", jan, 0),
	}

	d := Aggregate(claims, nil, Filter{})
	if d.TotalClaims != 4 {
		t.Errorf("expected 4 total, got %d", d.TotalClaims)
	}
	if d.AutoApproved != 2 {
		t.Errorf("expected 2 auto approved, got %d", d.AutoApproved)
	}
	// p1 appears twice; distinct patients are p1, p2, p3.
	if d.ActivePatients != 3 {
		t.Errorf("expected 3 active patients, got %d", d.ActivePatients)
	}
	// (1h + 3h + 2h) / 3 processed claims = 2h.
	if d.AvgProcessingTime != "2h0m0s" {
		t.Errorf("expected 2h0m0s avg processing, got %q", d.AvgProcessingTime)
	}
	// 2/4 = 50.0.
	if d.ApprovalRate != 50.0 {
		t.Errorf("expected 50.0 approval rate, got %v", d.ApprovalRate)
	}
}

func TestAggregate_ApprovalRateRounding(t *testing.T) {
	tid := uuid.New()
	claims := []*claim.Claim{
		mkClaim(tid, claim.StatusApproved, "p1", jan, time.Hour),
		mkClaim(tid, claim.StatusPending, "p2", jan, 0),
		mkClaim(tid, claim.StatusPending, "p3", jan, 0),
	}

	d := Aggregate(claims, nil, Filter{})
	// 1/3 = 33.333... rounds to 33.3.
	if d.ApprovalRate != 33.3 {
		t.Errorf("expected 33.3, got %v", d.ApprovalRate)
	}
}

// ---------- Trends ----------

func TestAggregate_TwoMonthTrend(t *testing.T) {
	tid := uuid.New()
	claims := []*claim.Claim{
		mkClaim(tid, claim.StatusApproved, "p1", jan, time.Hour),
		mkClaim(tid, claim.StatusRejected, "p2", feb, time.Hour),
	}

	d := Aggregate(claims, nil, Filter{})
	if len(d.StatusTrends) != 2 {
		t.Fatalf("expected 2 trend buckets, got %d", len(d.StatusTrends))
	}
	if d.StatusTrends[0].Month != "Jan 2026" || d.StatusTrends[1].Month != "Feb 2026" {
		t.Errorf("buckets out of order: %+v", d.StatusTrends)
	}
	if d.StatusTrends[0].Approved != 1 || d.StatusTrends[0].Rejected != 0 {
		t.Errorf("wrong January counts: %+v", d.StatusTrends[0])
	}
	if d.StatusTrends[1].Rejected != 1 || d.StatusTrends[1].Approved != 0 {
		t.Errorf("wrong February counts: %+v", d.StatusTrends[1])
	}
}

func TestAggregate_TrendsCappedAtSix(t *testing.T) {
	tid := uuid.New()
	var claims []*claim.Claim
	for i := 0; i < 9; i++ {
		claims = append(claims, mkClaim(tid, claim.StatusPending, "p1",
			time.Date(2025, time.Month(1+i), 15, 0, 0, 0, 0, time.UTC), 0))
	}

	d := Aggregate(claims, nil, Filter{})
	if len(d.StatusTrends) != MaxTrendBuckets {
		t.Fatalf("expected %d buckets, got %d", MaxTrendBuckets, len(d.StatusTrends))
	}
	// The oldest months drop off; the series stays ascending.
	if d.StatusTrends[0].Month != "Apr 2025" {
		t.Errorf("expected series to start at Apr 2025, got %q", d.StatusTrends[0].Month)
	}
	for i := 1; i < len(d.StatusTrends); i++ {
		if d.StatusTrends[i].sortKey <= d.StatusTrends[i-1].sortKey {
			t.Error("trend buckets are not chronologically ascending")
		}
	}
}

// ---------- Leaderboard ----------

func TestAggregate_LeaderboardCappedAndSorted(t *testing.T) {
	tenants := make(map[uuid.UUID]TenantInfo)
	var claims []*claim.Claim
	for i := 0; i < 7; i++ {
		tid := uuid.New()
		tenants[tid] = TenantInfo{Name: string(rune('A' + i)), Plan: "starter"}
		// Tenant i gets i+1 claims.
		for j := 0; j <= i; j++ {
			claims = append(claims, mkClaim(tid, claim.StatusPending, "p", jan, 0))
		}
	}

	d := Aggregate(claims, tenants, Filter{})
	if len(d.TenantLeaderboard) != MaxLeaderboardEntries {
		t.Fatalf("expected %d leaderboard entries, got %d", MaxLeaderboardEntries, len(d.TenantLeaderboard))
	}
	if d.TenantLeaderboard[0].Total != 7 {
		t.Errorf("expected busiest tenant first with 7 claims, got %d", d.TenantLeaderboard[0].Total)
	}
	for i := 1; i < len(d.TenantLeaderboard); i++ {
		if d.TenantLeaderboard[i].Total > d.TenantLeaderboard[i-1].Total {
			t.Error("leaderboard is not descending by total")
		}
	}
}

func TestAggregate_LeaderboardRates(t *testing.T) {
	tid := uuid.New()
	tenants := map[uuid.UUID]TenantInfo{tid: {Name: "Acme Clinic", Plan: "professional"}}
	claims := []*claim.Claim{
		mkClaim(tid, claim.StatusApproved, "p1", jan, time.Hour),
		mkClaim(tid, claim.StatusRejected, "p2", jan, time.Hour),
		mkClaim(tid, claim.StatusPending, "p3", jan, 0),
		mkClaim(tid, claim.StatusApproved, "p4", jan, time.Hour),
	}

	d := Aggregate(claims, tenants, Filter{})
	if len(d.TenantLeaderboard) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(d.TenantLeaderboard))
	}
	e := d.TenantLeaderboard[0]
	if e.TenantName != "Acme Clinic" {
		t.Errorf("expected tenant name resolved, got %q", e.TenantName)
	}
	if e.Total != 4 || e.Approved != 2 || e.Rejected != 1 || e.Pending != 1 {
		t.Errorf("unexpected counts: %+v", e)
	}
	if e.ApprovalRate != 50.0 {
		t.Errorf("expected 50.0 rate, got %v", e.ApprovalRate)
	}
}

// ---------- Filters ----------

func TestAggregate_DateFilter(t *testing.T) {
	tid := uuid.New()
	claims := []*claim.Claim{
		mkClaim(tid, claim.StatusApproved, "p1", jan, time.Hour),
		mkClaim(tid, claim.StatusApproved, "p2", feb, time.Hour),
		// No submission timestamp: excluded whenever a date filter applies.
		{ID: uuid.New(), TenantID: tid, Status: claim.StatusPending, PatientID: "p3"},
	}

	d := Aggregate(claims, nil, Filter{
		From: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC),
	})
	if d.TotalClaims != 1 {
		t.Errorf("expected 1 claim within range, got %d", d.TotalClaims)
	}
	if len(d.StatusTrends) != 1 || d.StatusTrends[0].Month != "Feb 2026" {
		t.Errorf("expected only the February bucket, got %+v", d.StatusTrends)
	}

	// Without a date filter the timestamp-less claim counts.
	all := Aggregate(claims, nil, Filter{})
	if all.TotalClaims != 3 {
		t.Errorf("expected 3 claims without filter, got %d", all.TotalClaims)
	}
}

func TestAggregate_PlanFilter(t *testing.T) {
	proTenant := uuid.New()
	starterTenant := uuid.New()
	tenants := map[uuid.UUID]TenantInfo{
		proTenant:     {Name: "Pro", Plan: "professional"},
		starterTenant: {Name: "Starter", Plan: "starter"},
	}
	claims := []*claim.Claim{
		mkClaim(proTenant, claim.StatusApproved, "p1", jan, time.Hour),
		mkClaim(starterTenant, claim.StatusApproved, "p2", jan, time.Hour),
	}

	d := Aggregate(claims, tenants, Filter{Plan: "professional"})
	if d.TotalClaims != 1 {
		t.Errorf("expected 1 professional claim, got %d", d.TotalClaims)
	}
	if len(d.TenantLeaderboard) != 1 || d.TenantLeaderboard[0].TenantName != "Pro" {
		t.Errorf("expected only the professional tenant, got %+v", d.TenantLeaderboard)
	}
}
