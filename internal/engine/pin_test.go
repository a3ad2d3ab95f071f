package engine

import (
	"context"
	"errors"
	"testing"
)

func TestPINVerifyAndChange(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.VerifyPIN("0000"); err != nil {
		t.Fatalf("default PIN rejected: %v", err)
	}
	if err := svc.VerifyPIN("1111"); !errors.Is(err, ErrWrongPIN) {
		t.Fatalf("wrong PIN err=%v, want ErrWrongPIN", err)
	}
	if err := svc.VerifyPIN("12a4"); !errors.Is(err, ErrInvalidPIN) {
		t.Fatalf("malformed PIN err=%v, want ErrInvalidPIN", err)
	}

	if err := svc.SetPIN(ctx, "123"); !errors.Is(err, ErrInvalidPIN) {
		t.Fatalf("short new PIN err=%v, want ErrInvalidPIN", err)
	}
	if err := svc.SetPIN(ctx, "4321"); err != nil {
		t.Fatalf("SetPIN: %v", err)
	}
	if err := svc.VerifyPIN("4321"); err != nil {
		t.Fatalf("new PIN rejected: %v", err)
	}
	if err := svc.VerifyPIN("0000"); !errors.Is(err, ErrWrongPIN) {
		t.Fatalf("old PIN still accepted")
	}
}
