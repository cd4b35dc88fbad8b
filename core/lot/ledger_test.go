package lot

import (
	"errors"
	"testing"
	"time"

	"github.com/parkwise/parkwise/core/model"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestLedgerOpenClose(t *testing.T) {
	l := NewLedger()
	v := model.Vehicle{Class: model.Motorcycle, Plate: "ABC123"}
	s, err := l.Open(v, "M01", t0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if l.ActiveCount() != 1 || l.Len() != 1 {
		t.Fatalf("counts after open: active=%d len=%d", l.ActiveCount(), l.Len())
	}
	closed, err := l.Close("ABC123", t0.Add(time.Hour))
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed != s {
		t.Fatalf("close must return the identical record")
	}
	if l.ActiveCount() != 0 || l.Len() != 1 {
		t.Fatalf("counts after close: active=%d len=%d", l.ActiveCount(), l.Len())
	}
	if l.History()[0] != s {
		t.Fatalf("history lost the closed record")
	}
}

func TestLedgerDoubleOpen(t *testing.T) {
	l := NewLedger()
	v := model.Vehicle{Class: model.Motorcycle, Plate: "ABC123"}
	if _, err := l.Open(v, "M01", t0); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := l.Open(v, "M02", t0); !errors.Is(err, ErrAlreadyParked) {
		t.Fatalf("expected ErrAlreadyParked, got %v", err)
	}
}

func TestLedgerCloseUnknown(t *testing.T) {
	l := NewLedger()
	if _, err := l.Close("NOPE", t0); !errors.Is(err, ErrNotActive) {
		t.Fatalf("expected ErrNotActive, got %v", err)
	}
}

func TestLedgerReopenCreatesNewRecord(t *testing.T) {
	l := NewLedger()
	v := model.Vehicle{Class: model.FourWheelA, Plate: "XYZ999"}
	first, _ := l.Open(v, "A01", t0)
	if _, err := l.Close(v.Plate, t0.Add(time.Hour)); err != nil {
		t.Fatalf("close: %v", err)
	}
	second, err := l.Open(v, "A01", t0.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if first == second || first.ID == second.ID {
		t.Fatalf("reopen must create a fresh record")
	}
	if !first.ExitTime.Equal(t0.Add(time.Hour)) {
		t.Fatalf("closed record mutated by reopen")
	}
	if l.Len() != 2 {
		t.Fatalf("history len = %d, want 2", l.Len())
	}
}

func TestLedgerActiveOrderAndRecent(t *testing.T) {
	l := NewLedger()
	for i, plate := range []string{"P1", "P2", "P3"} {
		v := model.Vehicle{Class: model.Motorcycle, Plate: plate}
		if _, err := l.Open(v, "M01", t0.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("open %s: %v", plate, err)
		}
	}
	active := l.Active()
	if len(active) != 3 || active[0].Plate != "P1" || active[2].Plate != "P3" {
		t.Fatalf("active order broken: %#v", active)
	}
	if _, err := l.Close("P2", t0.Add(time.Hour)); err != nil {
		t.Fatalf("close: %v", err)
	}
	active = l.Active()
	if len(active) != 2 || active[0].Plate != "P1" || active[1].Plate != "P3" {
		t.Fatalf("active order after close: %#v", active)
	}

	recent := l.Recent(2)
	if len(recent) != 2 || recent[0].Plate != "P2" || recent[1].Plate != "P3" {
		t.Fatalf("recent = %#v", recent)
	}
	if got := l.Recent(10); len(got) != 3 {
		t.Fatalf("recent over-length = %d entries, want 3", len(got))
	}
	if got := l.Recent(0); len(got) != 0 {
		t.Fatalf("recent(0) must be empty")
	}
}
