package storage

import (
	"bytes"
	"strings"
	"testing"
)

func sampleState() *State {
	s := &State{
		ActiveChildID: "c1",
		Children:      []Child{{ID: "c1", Name: "Mei"}, {ID: "c2", Name: "Hua"}},
		ExchangeRate:  10,
		PINHash:       "hash",
	}
	s.EnsureChildMaps("c1")
	s.EnsureChildMaps("c2")
	s.Balances["c1"] = 12
	s.StarWallet["c1"] = 3
	return s
}

func TestExportDecodeRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(sampleState(), &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	bf, err := DecodeBackup(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if bf.App != AppName {
		t.Fatalf("app=%q, want %q", bf.App, AppName)
	}

	restored, err := Apply(&State{}, bf, ImportOverwrite)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if restored.Balances["c1"] != 12 || restored.ActiveChildID != "c1" {
		t.Fatalf("restored state mismatch: %+v", restored)
	}
}

func TestApplyMergeSemantics(t *testing.T) {
	current := sampleState()

	source := &State{
		ActiveChildID: "c2",
		Children:      []Child{{ID: "c9", Name: "New Kid"}},
		ExchangeRate:  5,
	}
	source.EnsureChildMaps("c9")
	source.Balances["c9"] = 99

	var buf bytes.Buffer
	if err := Export(source, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	bf, err := DecodeBackup(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	merged, err := Apply(current, bf, ImportMerge)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	// Scalars take the backup's value.
	if merged.ActiveChildID != "c2" || merged.ExchangeRate != 5 {
		t.Fatalf("scalars not overwritten: active=%q rate=%d", merged.ActiveChildID, merged.ExchangeRate)
	}
	// Lists are replaced wholesale, never index-merged.
	if len(merged.Children) != 1 || merged.Children[0].ID != "c9" {
		t.Fatalf("children=%+v, want just c9", merged.Children)
	}
	// Maps merge key by key: both sides' entries survive.
	if merged.Balances["c1"] != 12 {
		t.Fatalf("existing balance lost: %+v", merged.Balances)
	}
	if merged.Balances["c9"] != 99 {
		t.Fatalf("imported balance missing: %+v", merged.Balances)
	}
	// The input state is never touched.
	if current.ActiveChildID != "c1" || len(current.Children) != 2 {
		t.Fatalf("merge mutated the current state")
	}
}

func TestApplyOverwriteDiscardsCurrent(t *testing.T) {
	var buf bytes.Buffer
	source := &State{ActiveChildID: "c9"}
	if err := Export(source, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}
	bf, err := DecodeBackup(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	next, err := Apply(sampleState(), bf, ImportOverwrite)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if next.ActiveChildID != "c9" {
		t.Fatalf("active=%q, want c9", next.ActiveChildID)
	}
	if len(next.Children) != 0 || next.Balances["c1"] != 0 {
		t.Fatalf("overwrite kept current data: %+v", next)
	}
}

func TestDecodeBackupRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"not json":        "{",
		"missing data":    `{"app":"FamGrow","version":"1.2.0"}`,
		"data not object": `{"app":"FamGrow","data":[1,2,3]}`,
	}
	for name, raw := range cases {
		if _, err := DecodeBackup(strings.NewReader(raw)); err == nil {
			t.Fatalf("%s: decode accepted malformed input", name)
		}
	}
}
