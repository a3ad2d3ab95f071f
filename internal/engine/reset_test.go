package engine

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/ptomo194059/family-growth/internal/storage"
)

func TestEnsureResetsIdempotentWithinDay(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.ToggleDaily(ctx, "c1", "d1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	before := svc.Snapshot()

	for i := 0; i < 3; i++ {
		if err := svc.EnsureResets(ctx); err != nil {
			t.Fatalf("EnsureResets #%d: %v", i, err)
		}
	}
	after := svc.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("same-day reset check mutated state")
	}
}

func TestDailyRolloverSnapshotsThenClears(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Earn on Wednesday: one daily done (+2) and one weekly step (+5).
	if _, err := svc.ToggleDaily(ctx, "c1", "d1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.IncWeekly(ctx, "c1", "w1"); err != nil {
		t.Fatalf("inc: %v", err)
	}
	walletBefore := svc.Snapshot().StarWallet["c1"]

	setClock(svc, testBase.AddDate(0, 0, 1)) // Thursday
	if err := svc.EnsureResets(ctx); err != nil {
		t.Fatalf("EnsureResets: %v", err)
	}

	st := svc.Snapshot()
	hist := st.History["c1"]
	if len(hist) != 1 {
		t.Fatalf("history entries=%d, want 1", len(hist))
	}
	got := hist[0]
	if got.DateISO != "2025-03-05" {
		t.Fatalf("snapshot date=%q, want closing day 2025-03-05", got.DateISO)
	}
	if got.Stars != 7 || got.Completed != 1 || got.Total != 2 {
		t.Fatalf("snapshot=%+v, want stars=7 completed=1 total=2", got)
	}

	for _, task := range st.Daily["c1"] {
		if task.Done {
			t.Fatalf("daily %s still done after rollover", task.ID)
		}
	}
	if st.TodayWeeklyStars["c1"] != 0 {
		t.Fatalf("todayWeeklyStars=%d, want 0", st.TodayWeeklyStars["c1"])
	}
	if st.DailyClaimed["c1"] || st.DailyPayout["c1"] != 0 {
		t.Fatalf("daily claim survived rollover")
	}
	// Earned stars are the child's to keep; only the day bookkeeping resets.
	if st.StarWallet["c1"] != walletBefore {
		t.Fatalf("star wallet changed across rollover: %d → %d", walletBefore, st.StarWallet["c1"])
	}
	// Mid-week: weekly counters keep going.
	if st.Weekly["c1"][0].Count != 1 {
		t.Fatalf("weekly count reset mid-week")
	}
	if st.LastDailyReset != "2025-03-06" {
		t.Fatalf("marker=%q, want 2025-03-06", st.LastDailyReset)
	}
}

func TestWeeklyRolloverOnMonday(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.IncWeekly(ctx, "c1", "w1"); err != nil {
		t.Fatalf("inc: %v", err)
	}

	setClock(svc, time.Date(2025, time.March, 10, 0, 1, 0, 0, time.UTC)) // next Monday
	if err := svc.EnsureResets(ctx); err != nil {
		t.Fatalf("EnsureResets: %v", err)
	}

	st := svc.Snapshot()
	for _, task := range st.Weekly["c1"] {
		if task.Count != 0 {
			t.Fatalf("weekly %s count=%d after week rollover", task.ID, task.Count)
		}
	}
	if st.WeeklyClaimed["c1"] || st.WeeklyPayout["c1"] != 0 {
		t.Fatalf("weekly claim survived rollover")
	}
	if st.LastWeeklyReset != "2025-03-10" {
		t.Fatalf("week marker=%q, want 2025-03-10", st.LastWeeklyReset)
	}
	// The skipped days collapse into one daily rollover too.
	if st.LastDailyReset != "2025-03-10" {
		t.Fatalf("day marker=%q, want 2025-03-10", st.LastDailyReset)
	}
}

func TestHistoryBounded(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	logs := make([]storage.DayLog, historyKeep)
	for i := range logs {
		logs[i] = storage.DayLog{DateISO: fmt.Sprintf("2025-01-%02d", i%28+1), Stars: 1}
	}
	svc.state.History["c1"] = logs

	setClock(svc, testBase.AddDate(0, 0, 1))
	if err := svc.EnsureResets(ctx); err != nil {
		t.Fatalf("EnsureResets: %v", err)
	}

	hist := svc.Snapshot().History["c1"]
	if len(hist) != historyKeep {
		t.Fatalf("history=%d entries, want %d", len(hist), historyKeep)
	}
	if hist[len(hist)-1].DateISO != "2025-03-05" {
		t.Fatalf("newest entry=%q, want 2025-03-05", hist[len(hist)-1].DateISO)
	}
	if hist[0] == logs[0] {
		t.Fatalf("oldest entry not evicted")
	}
}

func TestFirstRunWritesNoPhantomSnapshot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	svc.state.LastDailyReset = ""
	svc.state.LastWeeklyReset = ""

	if err := svc.EnsureResets(ctx); err != nil {
		t.Fatalf("EnsureResets: %v", err)
	}
	st := svc.Snapshot()
	if len(st.History["c1"]) != 0 || len(st.History["c2"]) != 0 {
		t.Fatalf("first run wrote a snapshot for a day that never happened")
	}
	if st.LastDailyReset != "2025-03-05" || st.LastWeeklyReset != "2025-03-03" {
		t.Fatalf("markers=%q/%q, want 2025-03-05/2025-03-03", st.LastDailyReset, st.LastWeeklyReset)
	}
}
