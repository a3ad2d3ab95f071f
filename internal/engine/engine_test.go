package engine

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/ptomo194059/family-growth/internal/storage"
)

// Wednesday, mid-week and mid-month, so day/week/month boundaries are all
// a clock bump away.
var testBase = time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	store, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	svc, err := NewService(ctx, store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.now = func() time.Time { return testBase }
	svc.rng = rand.New(rand.NewSource(1))
	// Re-anchor the seeded markers to the fake clock.
	svc.state.LastDailyReset = DateKey(testBase)
	svc.state.LastWeeklyReset = WeekKey(testBase)
	return svc
}

func setClock(svc *Service, at time.Time) {
	svc.now = func() time.Time { return at }
}

func TestDefaultStateSeed(t *testing.T) {
	svc := newTestService(t)

	if svc.ActiveChildID() != "c1" {
		t.Fatalf("active=%q, want c1", svc.ActiveChildID())
	}
	if got := len(svc.Children()); got != 2 {
		t.Fatalf("children=%d, want 2", got)
	}
	st := svc.Snapshot()
	for _, id := range []string{"c1", "c2"} {
		if st.DailyReward[id] != DefaultDailyReward {
			t.Fatalf("dailyReward[%s]=%d, want %d", id, st.DailyReward[id], DefaultDailyReward)
		}
		if len(st.Daily[id]) == 0 || len(st.Weekly[id]) == 0 {
			t.Fatalf("child %s seeded without task lists", id)
		}
	}
	if st.ExchangeRate != DefaultExchangeRate {
		t.Fatalf("exchangeRate=%d, want %d", st.ExchangeRate, DefaultExchangeRate)
	}
	if err := svc.VerifyPIN(DefaultPIN); err != nil {
		t.Fatalf("default PIN rejected: %v", err)
	}
}

func TestServiceReloadsPersistedState(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	svc, err := NewService(ctx, store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if err := svc.AddBalance(ctx, "c1", 42); err != nil {
		t.Fatalf("AddBalance: %v", err)
	}
	_ = store.Close()

	store2, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store2.Close()
	svc2, err := NewService(ctx, store2)
	if err != nil {
		t.Fatalf("reload service: %v", err)
	}
	if got := svc2.Snapshot().Balances["c1"]; got != 42 {
		t.Fatalf("balance after reload=%d, want 42", got)
	}
}
