package analytics

import "fmt"

const (
	lowApprovalThreshold = 70.0
	lowApprovalMinVolume = 10
	rejectionJumpDelta   = 5
)

// GenerateInsights evaluates a fixed set of heuristics against the computed
// leaderboard and trend series. Each heuristic appends at most one entry and
// the order is stable; the result may be empty.
func GenerateInsights(leaderboard []LeaderboardEntry, trends []TrendBucket) []string {
	insights := []string{}

	if e, ok := lowestApproval(leaderboard); ok && e.ApprovalRate < lowApprovalThreshold {
		insights = append(insights, fmt.Sprintf(
			"%s has a low approval rate of %.1f%% - review claim quality or adjudication criteria",
			e.TenantName, e.ApprovalRate))
	}

	if e, ok := highestPending(leaderboard); ok {
		insights = append(insights, fmt.Sprintf(
			"%s has %d pending claims awaiting review - the largest backlog across tenants",
			e.TenantName, e.Pending))
	}

	if n := len(trends); n >= 2 {
		jump := trends[n-1].Rejected - trends[n-2].Rejected
		if jump > rejectionJumpDelta {
			insights = append(insights, fmt.Sprintf(
				"Rejections rose by %d in %s compared to %s - investigate recent submission quality",
				jump, trends[n-1].Month, trends[n-2].Month))
		}
	}

	return insights
}

func lowestApproval(leaderboard []LeaderboardEntry) (LeaderboardEntry, bool) {
	var best LeaderboardEntry
	found := false
	for _, e := range leaderboard {
		if e.Total < lowApprovalMinVolume {
			continue
		}
		if !found || e.ApprovalRate < best.ApprovalRate {
			best = e
			found = true
		}
	}
	return best, found
}

func highestPending(leaderboard []LeaderboardEntry) (LeaderboardEntry, bool) {
	var best LeaderboardEntry
	found := false
	for _, e := range leaderboard {
		if e.Pending == 0 {
			continue
		}
		if !found || e.Pending > best.Pending {
			best = e
			found = true
		}
	}
	return best, found
}
