package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	st, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestLoadAbsentState(t *testing.T) {
	store := newTestStore(t)
	st, version, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st != nil || version != 0 {
		t.Fatalf("empty db returned state=%v version=%d", st, version)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := &State{
		ActiveChildID: "c1",
		Children:      []Child{{ID: "c1", Name: "Mei"}},
		ExchangeRate:  10,
	}
	in.EnsureChildMaps("c1")
	in.Balances["c1"] = 33
	in.StarWallet["c1"] = 7

	v, err := store.Save(ctx, in, 0)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if v != 1 {
		t.Fatalf("first save version=%d, want 1", v)
	}

	out, version, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if version != 1 {
		t.Fatalf("version=%d, want 1", version)
	}
	if out.ActiveChildID != "c1" || out.Balances["c1"] != 33 || out.StarWallet["c1"] != 7 {
		t.Fatalf("roundtrip mismatch: %+v", out)
	}

	out.Balances["c1"] = 40
	v2, err := store.Save(ctx, out, version)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if v2 != 2 {
		t.Fatalf("second save version=%d, want 2", v2)
	}
}

func TestSaveDetectsStaleWriter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	st := &State{ActiveChildID: "c1"}
	v, err := store.Save(ctx, st, 0)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Save(ctx, st, v); err != nil {
		t.Fatalf("save v1: %v", err)
	}

	// A writer still holding the original version must be rejected.
	if _, err := store.Save(ctx, st, v); !errors.Is(err, ErrStaleState) {
		t.Fatalf("stale save err=%v, want ErrStaleState", err)
	}
}
