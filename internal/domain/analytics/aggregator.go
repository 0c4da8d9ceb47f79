package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Fadil369/Nphies-pro/internal/domain/claim"
)

const (
	// MaxTrendBuckets caps the status trend series at the most recent months.
	MaxTrendBuckets = 6
	// MaxLeaderboardEntries caps the tenant leaderboard.
	MaxLeaderboardEntries = 5
)

// Filter narrows the claim set before any aggregation runs. A zero Filter
// passes everything through.
type Filter struct {
	From time.Time
	To   time.Time
	Plan string
}

// Dashboard is the aggregation result served on the analytics endpoint.
// Unlike the rest of the API it is returned without the response envelope.
type Dashboard struct {
	TotalClaims       int                `json:"totalClaims"`
	AutoApproved      int                `json:"autoApproved"`
	ActivePatients    int                `json:"activePatients"`
	AvgProcessingTime string             `json:"avgProcessingTime"`
	ApprovalRate      float64            `json:"approvalRate"`
	StatusTrends      []TrendBucket      `json:"statusTrends"`
	TenantLeaderboard []LeaderboardEntry `json:"tenantLeaderboard"`
	Insights          []string           `json:"insights"`
}

// TrendBucket holds per-status counts for one calendar month.
type TrendBucket struct {
	Month    string `json:"month"`
	Approved int    `json:"approved"`
	Pending  int    `json:"pending"`
	Rejected int    `json:"rejected"`

	sortKey int
}

// LeaderboardEntry summarizes one tenant's claim volume.
type LeaderboardEntry struct {
	TenantID     uuid.UUID `json:"tenantId"`
	TenantName   string    `json:"tenantName"`
	Total        int       `json:"total"`
	Approved     int       `json:"approved"`
	Rejected     int       `json:"rejected"`
	Pending      int       `json:"pending"`
	ApprovalRate float64   `json:"approvalRate"`
}

// TenantInfo supplies the display attributes the aggregator cannot derive
// from claims alone.
type TenantInfo struct {
	Name string
	Plan string
}

// Aggregate computes the dashboard over the given claims. Filtering happens
// first: the date range applies to submittedAt and the plan filter resolves
// through the tenant info map. The function performs no mutation and is safe
// to call concurrently.
func Aggregate(claims []*claim.Claim, tenants map[uuid.UUID]TenantInfo, f Filter) Dashboard {
	filtered := applyFilter(claims, tenants, f)

	d := Dashboard{
		AvgProcessingTime: "0s",
		StatusTrends:      []TrendBucket{},
		TenantLeaderboard: []LeaderboardEntry{},
		Insights:          []string{},
	}

	patients := make(map[string]struct{})
	byMonth := make(map[int]*TrendBucket)
	byTenant := make(map[uuid.UUID]*LeaderboardEntry)
	var processed int
	var totalProcessing time.Duration

	for _, c := range filtered {
		d.TotalClaims++
		if c.Status == claim.StatusApproved {
			d.AutoApproved++
		}
		if c.PatientID != "" {
			patients[c.PatientID] = struct{}{}
		}
		if c.ProcessedAt != nil {
			processed++
			totalProcessing += c.ProcessedAt.Sub(c.SubmittedAt)
		}

		key := c.SubmittedAt.Year()*12 + int(c.SubmittedAt.Month()) - 1
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &TrendBucket{Month: c.SubmittedAt.Format("Jan 2006"), sortKey: key}
			byMonth[key] = bucket
		}
		entry, ok := byTenant[c.TenantID]
		if !ok {
			entry = &LeaderboardEntry{TenantID: c.TenantID, TenantName: tenants[c.TenantID].Name}
			byTenant[c.TenantID] = entry
		}
		entry.Total++
		switch c.Status {
		case claim.StatusApproved:
			bucket.Approved++
			entry.Approved++
		case claim.StatusRejected:
			bucket.Rejected++
			entry.Rejected++
		default:
			bucket.Pending++
			entry.Pending++
		}
	}

	d.ActivePatients = len(patients)
	if processed > 0 {
		avg := totalProcessing / time.Duration(processed)
		d.AvgProcessingTime = avg.Round(time.Second).String()
	}
	if d.TotalClaims > 0 {
		d.ApprovalRate = roundRate(float64(d.AutoApproved) / float64(d.TotalClaims) * 100)
	}

	d.StatusTrends = sortTrends(byMonth)
	d.TenantLeaderboard = sortLeaderboard(byTenant)
	d.Insights = GenerateInsights(d.TenantLeaderboard, d.StatusTrends)

	return d
}

func applyFilter(claims []*claim.Claim, tenants map[uuid.UUID]TenantInfo, f Filter) []*claim.Claim {
	out := make([]*claim.Claim, 0, len(claims))
	for _, c := range claims {
		if !f.From.IsZero() || !f.To.IsZero() {
			if c.SubmittedAt.IsZero() {
				continue
			}
			if !f.From.IsZero() && c.SubmittedAt.Before(f.From) {
				continue
			}
			if !f.To.IsZero() && c.SubmittedAt.After(f.To) {
				continue
			}
		}
		if f.Plan != "" {
			info, ok := tenants[c.TenantID]
			if !ok || info.Plan != f.Plan {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func sortTrends(byMonth map[int]*TrendBucket) []TrendBucket {
	buckets := make([]TrendBucket, 0, len(byMonth))
	for _, b := range byMonth {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].sortKey < buckets[j].sortKey })
	if len(buckets) > MaxTrendBuckets {
		buckets = buckets[len(buckets)-MaxTrendBuckets:]
	}
	return buckets
}

func sortLeaderboard(byTenant map[uuid.UUID]*LeaderboardEntry) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(byTenant))
	for _, e := range byTenant {
		if e.Total > 0 {
			e.ApprovalRate = roundRate(float64(e.Approved) / float64(e.Total) * 100)
		}
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].TenantName < entries[j].TenantName
	})
	if len(entries) > MaxLeaderboardEntries {
		entries = entries[:MaxLeaderboardEntries]
	}
	return entries
}

func roundRate(v float64) float64 {
	return math.Round(v*10) / 10
}
