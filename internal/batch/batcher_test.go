package batch

import (
	"fmt"
	"testing"
)

func TestAdd_SizeTrigger(t *testing.T) {
	b := NewBatcher(3)

	if b.HasPending() {
		t.Error("new batcher should have no pending rows")
	}

	if b.Add(`{"a":1}`) {
		t.Error("Add below threshold should not trigger")
	}
	if b.Add(`{"a":2}`) {
		t.Error("Add below threshold should not trigger")
	}
	if !b.Add(`{"a":3}`) {
		t.Error("Add at threshold should trigger")
	}

	if got := b.Batch().Size(); got != 3 {
		t.Errorf("Size = %d, want 3", got)
	}
}

func TestAdd_PreservesOrder(t *testing.T) {
	b := NewBatcher(10)
	for i := 0; i < 5; i++ {
		b.Add(fmt.Sprintf(`{"n":%d}`, i))
	}

	rows := b.Batch().Rows
	for i, row := range rows {
		want := fmt.Sprintf(`{"n":%d}`, i)
		if row != want {
			t.Errorf("rows[%d] = %s, want %s", i, row, want)
		}
	}
}

func TestReset(t *testing.T) {
	b := NewBatcher(2)
	b.Add(`{"a":1}`)
	b.Add(`{"a":2}`)

	b.Reset()

	if b.HasPending() {
		t.Error("reset batcher should have no pending rows")
	}
	if got := b.Batch().TotalBytes; got != 0 {
		t.Errorf("TotalBytes = %d, want 0", got)
	}

	// A new batch starts clean after reset
	if b.Add(`{"a":3}`) {
		t.Error("first Add after reset should not trigger")
	}
	if got := b.Batch().Size(); got != 1 {
		t.Errorf("Size = %d, want 1", got)
	}
}

func TestAdd_NoThreshold(t *testing.T) {
	b := NewBatcher(0)
	for i := 0; i < 100; i++ {
		if b.Add(`{}`) {
			t.Fatal("batcher without threshold should never trigger")
		}
	}
}
