package engine

import (
	"context"
	"errors"
	"testing"
)

func TestSpendCashGatesAndBooksMonthSpend(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.AddBalance(ctx, "c1", 50); err != nil {
		t.Fatalf("AddBalance: %v", err)
	}
	if got := svc.MonthSpent("c1"); got != 0 {
		t.Fatalf("top-up booked as spend: %d", got)
	}

	if err := svc.SpendCash(ctx, "c1", 30); err != nil {
		t.Fatalf("SpendCash: %v", err)
	}
	st := svc.Snapshot()
	if st.Balances["c1"] != 20 {
		t.Fatalf("balance=%d, want 20", st.Balances["c1"])
	}
	if got := svc.MonthSpent("c1"); got != 30 {
		t.Fatalf("month spend=%d, want 30", got)
	}

	if err := svc.SpendCash(ctx, "c1", 30); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("overspend err=%v, want ErrInsufficientFunds", err)
	}
	st = svc.Snapshot()
	if st.Balances["c1"] != 20 || svc.MonthSpent("c1") != 30 {
		t.Fatalf("failed spend mutated state: balance=%d spend=%d", st.Balances["c1"], svc.MonthSpent("c1"))
	}
}

func TestNegativeAmountsRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.AddBalance(ctx, "c1", -5); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("AddBalance(-5) err=%v, want ErrInvalidAmount", err)
	}
	if err := svc.SpendCash(ctx, "c1", -5); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("SpendCash(-5) err=%v, want ErrInvalidAmount", err)
	}
	if err := svc.SpendStars(ctx, "c1", -5); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("SpendStars(-5) err=%v, want ErrInvalidAmount", err)
	}
}

func TestExchangeStars(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	svc.state.StarWallet["c1"] = 25

	// 20 stars at 10/dollar buys exactly $2.
	if err := svc.ExchangeStars(ctx, "c1", 20); err != nil {
		t.Fatalf("ExchangeStars: %v", err)
	}
	st := svc.Snapshot()
	if st.StarWallet["c1"] != 5 {
		t.Fatalf("stars=%d, want 5", st.StarWallet["c1"])
	}
	if st.Balances["c1"] != 2 {
		t.Fatalf("balance=%d, want 2", st.Balances["c1"])
	}
	if got := svc.MonthSpent("c1"); got != 0 {
		t.Fatalf("exchange booked as spend: %d", got)
	}

	// Not a multiple of the rate.
	if err := svc.ExchangeStars(ctx, "c1", 5); !errors.Is(err, ErrInvalidExchange) {
		t.Fatalf("partial exchange err=%v, want ErrInvalidExchange", err)
	}
	if err := svc.ExchangeStars(ctx, "c1", 0); !errors.Is(err, ErrInvalidExchange) {
		t.Fatalf("zero exchange err=%v, want ErrInvalidExchange", err)
	}
	// More than the wallet holds.
	if err := svc.ExchangeStars(ctx, "c1", 30); !errors.Is(err, ErrInsufficientStars) {
		t.Fatalf("overdrawn exchange err=%v, want ErrInsufficientStars", err)
	}
	st = svc.Snapshot()
	if st.StarWallet["c1"] != 5 || st.Balances["c1"] != 2 {
		t.Fatalf("failed exchange mutated state: stars=%d balance=%d", st.StarWallet["c1"], st.Balances["c1"])
	}
}

func TestShopPurchases(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.AddBalance(ctx, "c1", 100); err != nil {
		t.Fatalf("AddBalance: %v", err)
	}
	svc.state.StarWallet["c1"] = 20

	if err := svc.BuyWithMoney(ctx, "c1", "toy-small", 2); err != nil {
		t.Fatalf("BuyWithMoney: %v", err)
	}
	st := svc.Snapshot()
	if st.Balances["c1"] != 40 {
		t.Fatalf("balance=%d, want 40", st.Balances["c1"])
	}
	if got := svc.MonthSpent("c1"); got != 60 {
		t.Fatalf("month spend=%d, want 60", got)
	}

	if err := svc.BuyWithStars(ctx, "c1", "sticker-pack", 1); err != nil {
		t.Fatalf("BuyWithStars: %v", err)
	}
	st = svc.Snapshot()
	if st.StarWallet["c1"] != 12 {
		t.Fatalf("stars=%d, want 12", st.StarWallet["c1"])
	}
	// Star purchases are not part of the cash budget.
	if got := svc.MonthSpent("c1"); got != 60 {
		t.Fatalf("star purchase changed month spend: %d", got)
	}

	// Unknown items are ignored, not an error.
	if err := svc.BuyWithMoney(ctx, "c1", "no-such-item", 1); err != nil {
		t.Fatalf("unknown item err=%v, want nil", err)
	}
	st = svc.Snapshot()
	if st.Balances["c1"] != 40 || st.StarWallet["c1"] != 12 {
		t.Fatalf("unknown item mutated wallets: balance=%d stars=%d", st.Balances["c1"], st.StarWallet["c1"])
	}
}
