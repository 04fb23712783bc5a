package alloctracker

import "testing"

func TestRegisterIsIdempotentPerName(t *testing.T) {
	tr := New(4)
	a := tr.Register("pkg.Foo")
	b := tr.Register("pkg.Foo")

	a.Alloc()
	b.Alloc()

	snap := tr.Snapshot()
	if snap["pkg.Foo"].Allocated != 2 {
		t.Fatalf("expected both handles to share one counter, got %+v", snap["pkg.Foo"])
	}
}

func TestAllocAndReclaimCounters(t *testing.T) {
	tr := New(4)
	s := tr.Register("pkg.Bar")

	s.Alloc()
	s.Alloc()
	s.Alloc()
	s.Reclaim()

	got := tr.Snapshot()["pkg.Bar"]
	if got.Allocated != 3 || got.Reclaimed != 1 || got.Live() != 2 {
		t.Fatalf("unexpected counts: %+v", got)
	}
}

func TestDistinctTypeNamesGetDistinctSlots(t *testing.T) {
	tr := New(4)
	tr.Register("pkg.A").Alloc()
	tr.Register("pkg.B").Alloc()
	tr.Register("pkg.B").Alloc()

	snap := tr.Snapshot()
	if snap["pkg.A"].Allocated != 1 {
		t.Fatalf("pkg.A: %+v", snap["pkg.A"])
	}
	if snap["pkg.B"].Allocated != 2 {
		t.Fatalf("pkg.B: %+v", snap["pkg.B"])
	}
}

func TestObserveReclaimRegistersOnFirstUse(t *testing.T) {
	tr := New(4)
	tr.ObserveReclaim("pkg.Lazy")

	got := tr.Snapshot()["pkg.Lazy"]
	if got.Reclaimed != 1 {
		t.Fatalf("expected ObserveReclaim to register and count, got %+v", got)
	}
}

func TestManyRegistrationsGrowBeyondInitialCapacity(t *testing.T) {
	tr := New(2)
	for i := 0; i < 50; i++ {
		name := string(rune('a' + i%26))
		tr.Register(name).Alloc()
	}
	if len(tr.Snapshot()) == 0 {
		t.Fatal("expected registrations to survive growth past initial capacity")
	}
}
