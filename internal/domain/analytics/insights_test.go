package analytics

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func entry(name string, total, approved, pending int) LeaderboardEntry {
	e := LeaderboardEntry{TenantID: uuid.New(), TenantName: name, Total: total, Approved: approved, Pending: pending}
	if total > 0 {
		e.ApprovalRate = roundRate(float64(approved) / float64(total) * 100)
	}
	return e
}

func TestInsights_Empty(t *testing.T) {
	got := GenerateInsights(nil, nil)
	if len(got) != 0 {
		t.Errorf("expected no insights, got %v", got)
	}
}

func TestInsights_LowApproval(t *testing.T) {
	leaderboard := []LeaderboardEntry{
		entry("Healthy", 20, 19, 0),
		entry("Struggling", 15, 5, 0),
	}

	got := GenerateInsights(leaderboard, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %v", got)
	}
	if !strings.Contains(got[0], "Struggling") || !strings.Contains(got[0], "33.3") {
		t.Errorf("insight must name the tenant and its rate: %q", got[0])
	}
}

func TestInsights_LowApprovalSkipsSmallVolume(t *testing.T) {
	// Low rate but below the volume threshold: too little signal to warn.
	leaderboard := []LeaderboardEntry{entry("Tiny", 5, 1, 0)}

	got := GenerateInsights(leaderboard, nil)
	if len(got) != 0 {
		t.Errorf("expected no insight for low-volume tenant, got %v", got)
	}
}

func TestInsights_PendingBacklog(t *testing.T) {
	leaderboard := []LeaderboardEntry{
		entry("Quiet", 12, 12, 0),
		entry("Backlogged", 30, 25, 8),
		entry("Mild", 20, 18, 2),
	}

	got := GenerateInsights(leaderboard, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %v", got)
	}
	if !strings.Contains(got[0], "Backlogged") || !strings.Contains(got[0], "8 pending") {
		t.Errorf("insight must name the largest backlog: %q", got[0])
	}
}

func TestInsights_RejectionJump(t *testing.T) {
	trends := []TrendBucket{
		{Month: "Jan 2026", Rejected: 2},
		{Month: "Feb 2026", Rejected: 10},
	}

	got := GenerateInsights(nil, trends)
	if len(got) != 1 {
		t.Fatalf("expected 1 insight, got %v", got)
	}
	if !strings.Contains(got[0], "Feb 2026") {
		t.Errorf("insight must name the recent bucket: %q", got[0])
	}
}

func TestInsights_RejectionJumpThreshold(t *testing.T) {
	// A delta of exactly 5 does not trigger; it must exceed the threshold.
	trends := []TrendBucket{
		{Month: "Jan 2026", Rejected: 2},
		{Month: "Feb 2026", Rejected: 7},
	}
	if got := GenerateInsights(nil, trends); len(got) != 0 {
		t.Errorf("expected no insight at the threshold, got %v", got)
	}

	// A single bucket never triggers.
	if got := GenerateInsights(nil, trends[1:]); len(got) != 0 {
		t.Errorf("expected no insight with one bucket, got %v", got)
	}
}

func TestInsights_Ordering(t *testing.T) {
	leaderboard := []LeaderboardEntry{entry("Struggling", 15, 5, 4)}
	trends := []TrendBucket{
		{Month: "Jan 2026", Rejected: 0},
		{Month: "Feb 2026", Rejected: 9},
	}

	got := GenerateInsights(leaderboard, trends)
	if len(got) != 3 {
		t.Fatalf("expected 3 insights, got %v", got)
	}
	if !strings.Contains(got[0], "approval rate") {
		t.Errorf("first insight must be the low-approval warning: %q", got[0])
	}
	if !strings.Contains(got[1], "pending") {
		t.Errorf("second insight must be the backlog warning: %q", got[1])
	}
	if !strings.Contains(got[2], "Rejections") {
		t.Errorf("third insight must be the rejection jump warning: %q", got[2])
	}
}
