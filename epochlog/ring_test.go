package epochlog

import "testing"

func TestPushPopRoundTrip(t *testing.T) {
	r := New(4)
	rec := Record{Old: 0, New: 1, HandleID: 7, TimestampNanos: 123}

	if !r.Push(rec) {
		t.Fatal("push into empty ring must succeed")
	}
	got, ok := r.Pop()
	if !ok {
		t.Fatal("pop after push must succeed")
	}
	if got != rec {
		t.Fatalf("got %+v, want %+v", got, rec)
	}
}

func TestPopOnEmptyRingFails(t *testing.T) {
	r := New(4)
	if _, ok := r.Pop(); ok {
		t.Fatal("pop on empty ring must fail")
	}
}

func TestPushOnFullRingFails(t *testing.T) {
	r := New(2)
	if !r.Push(Record{New: 1}) {
		t.Fatal("first push must succeed")
	}
	if !r.Push(Record{New: 2}) {
		t.Fatal("second push must succeed")
	}
	if r.Push(Record{New: 3}) {
		t.Fatal("push on full ring must fail")
	}
}

func TestDrainVisitsInFIFOOrder(t *testing.T) {
	r := New(8)
	for i := uint32(0); i < 5; i++ {
		if !r.Push(Record{New: i}) {
			t.Fatalf("push %d failed", i)
		}
	}

	var seen []uint32
	r.Drain(func(rec Record) { seen = append(seen, rec.New) })

	for i, v := range seen {
		if v != uint32(i) {
			t.Fatalf("seen[%d] = %d, want %d", i, v, i)
		}
	}
	if len(seen) != 5 {
		t.Fatalf("drained %d records, want 5", len(seen))
	}
}

func TestSlotIsReusableAfterDrain(t *testing.T) {
	r := New(2)
	r.Push(Record{New: 1})
	r.Push(Record{New: 2})
	r.Drain(func(Record) {})

	if !r.Push(Record{New: 3}) {
		t.Fatal("slots must be reusable once drained")
	}
}
