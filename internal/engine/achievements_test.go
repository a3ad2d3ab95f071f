package engine

import (
	"context"
	"testing"

	"github.com/ptomo194059/family-growth/internal/storage"
)

func earnedBadge(svc *Service, childID, id string) bool {
	for _, b := range svc.Badges(childID) {
		if b.ID == id {
			return true
		}
	}
	return false
}

func TestBalanceAchievementStaysEarned(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.AddBalance(ctx, "c1", 100); err != nil {
		t.Fatalf("AddBalance: %v", err)
	}
	if !earnedBadge(svc, "c1", "achv-balance_100") {
		t.Fatalf("balance_100 not unlocked at $100")
	}
	at := svc.Badges("c1")

	// Spending back below the target never takes the badge away.
	if err := svc.SpendCash(ctx, "c1", 100); err != nil {
		t.Fatalf("SpendCash: %v", err)
	}
	if !earnedBadge(svc, "c1", "achv-balance_100") {
		t.Fatalf("badge lost after balance dropped")
	}
	after := svc.Badges("c1")
	if len(after) != len(at) {
		t.Fatalf("badge set changed: %d → %d", len(at), len(after))
	}
}

func TestTotalCompletedAchievement(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := svc.IncWeekly(ctx, "c1", "w1"); err != nil {
			t.Fatalf("inc #%d: %v", i, err)
		}
	}
	if !earnedBadge(svc, "c1", "achv-tc_10") {
		t.Fatalf("tc_10 not unlocked after 10 completions")
	}
	if earnedBadge(svc, "c1", "achv-tc_50") {
		t.Fatalf("tc_50 unlocked early")
	}
}

func TestStreakWalk(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Two starred days behind today, then a live star today: streak 3.
	svc.state.History["c1"] = []storage.DayLog{
		{DateISO: "2025-03-01", Stars: 4}, // gap on the 2nd breaks the older run
		{DateISO: "2025-03-03", Stars: 2},
		{DateISO: "2025-03-04", Stars: 5},
	}
	if got := svc.Streak("c1"); got != 0 {
		t.Fatalf("streak=%d with nothing done today, want 0", got)
	}

	if _, err := svc.ToggleDaily(ctx, "c1", "d1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := svc.Streak("c1"); got != 3 {
		t.Fatalf("streak=%d, want 3", got)
	}
	if !earnedBadge(svc, "c1", "achv-streak_3") {
		t.Fatalf("streak_3 not unlocked at streak 3")
	}
	if earnedBadge(svc, "c1", "achv-streak_7") {
		t.Fatalf("streak_7 unlocked early")
	}
}

func TestStarsMetricCountsHistoryAndToday(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	svc.state.History["c1"] = []storage.DayLog{
		{DateISO: "2025-03-04", Stars: 8},
	}
	// +2 today crosses the 10-star target.
	if _, err := svc.ToggleDaily(ctx, "c1", "d1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	m := svc.MetricsFor("c1")
	if m.Stars != 10 {
		t.Fatalf("stars metric=%d, want 10", m.Stars)
	}
	if !earnedBadge(svc, "c1", "achv-star_10") {
		t.Fatalf("star_10 not unlocked at 10 lifetime stars")
	}
}

func TestBadgesNeverRedated(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.AddBalance(ctx, "c1", 100); err != nil {
		t.Fatalf("AddBalance: %v", err)
	}
	earnedAt := svc.Badges("c1")[0].EarnedAt

	setClock(svc, testBase.AddDate(0, 0, 3))
	if err := svc.AddBalance(ctx, "c1", 100); err != nil {
		t.Fatalf("AddBalance: %v", err)
	}
	if got := svc.Badges("c1")[0].EarnedAt; !got.Equal(earnedAt) {
		t.Fatalf("badge re-dated: %s → %s", earnedAt, got)
	}
}

func TestMetricsValueUnknownReadsZero(t *testing.T) {
	m := Metrics{TotalCompleted: 5, Streak: 2, Stars: 7, Balance: 11}
	if got := m.Value(Metric("bogus")); got != 0 {
		t.Fatalf("unknown metric=%d, want 0", got)
	}
	if got := m.Value(MetricBalance); got != 11 {
		t.Fatalf("balance metric=%d, want 11", got)
	}
}
