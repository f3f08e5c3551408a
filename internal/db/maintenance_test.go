package db

import (
	"context"
	"errors"
	"testing"
)

func TestMaintain_Sqlite(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		mustCreate(t, a, fields("team", "1", "filler"))
	}
	if _, err := a.Delete(ctx, 3); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Run maintenance; it should complete without error.
	if err := a.Maintain(ctx); err != nil {
		t.Fatalf("Maintain failed: %v", err)
	}
	// Make sure we can still use the DB after maintenance.
	n, err := a.Count(ctx)
	if err != nil {
		t.Fatalf("Count after maintenance failed: %v", err)
	}
	if n != 19 {
		t.Fatalf("Count after maintenance = %d; want 19", n)
	}
}

func TestMaintain_RequiresOpen(t *testing.T) {
	a := NewAdapter(":memory:")
	if err := a.Maintain(context.Background()); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("Maintain on closed adapter = %v; want ErrNotOpen", err)
	}
}
