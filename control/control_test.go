package control

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func resetState() {
	hot = 0
	stop = 0
	lastHot = 0
}

func TestFlagsReferencesGlobals(t *testing.T) {
	resetState()

	stopPtr, hotPtr := Flags()
	if stopPtr != &stop {
		t.Error("stop flag pointer should reference the package's stop variable")
	}
	if hotPtr != &hot {
		t.Error("hot flag pointer should reference the package's hot variable")
	}

	*hotPtr = 1
	if hot != 1 {
		t.Error("writing through the returned pointer should update the global")
	}
}

func TestSignalActivitySetsHot(t *testing.T) {
	resetState()
	SignalActivity()

	if hot != 1 {
		t.Error("SignalActivity should set hot to 1")
	}
	if lastHot == 0 {
		t.Error("SignalActivity should record a non-zero timestamp")
	}
}

func TestPollCooldownLeavesRecentActivityAlone(t *testing.T) {
	resetState()
	SignalActivity()

	PollCooldown()
	if hot != 1 {
		t.Error("PollCooldown should not clear hot immediately after activity")
	}
}

func TestPollCooldownClearsAfterWindow(t *testing.T) {
	resetState()
	hot = 1
	lastHot = time.Now().Add(-2 * time.Duration(cooldownNs)).UnixNano()

	PollCooldown()
	if hot != 0 {
		t.Error("PollCooldown should clear hot once the cooldown window has elapsed")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	resetState()

	Shutdown()
	if stop != 1 {
		t.Error("Shutdown should set stop to 1")
	}
	Shutdown()
	if stop != 1 {
		t.Error("a second Shutdown call should leave stop at 1")
	}
}

func TestConcurrentSignalAndPoll(t *testing.T) {
	resetState()

	var wg sync.WaitGroup
	var signals, polls atomic.Int64

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				SignalActivity()
				signals.Add(1)
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				PollCooldown()
				polls.Add(1)
			}
		}()
	}
	wg.Wait()

	if signals.Load() != 4000 || polls.Load() != 4000 {
		t.Errorf("expected 4000 signals and 4000 polls, got %d and %d", signals.Load(), polls.Load())
	}
}

func TestZeroAllocations(t *testing.T) {
	resetState()

	for _, tc := range []struct {
		name string
		fn   func()
	}{
		{"SignalActivity", SignalActivity},
		{"PollCooldown", PollCooldown},
		{"Shutdown", Shutdown},
		{"Flags", func() { Flags() }},
	} {
		allocs := testing.AllocsPerRun(100, tc.fn)
		if allocs > 0 {
			t.Errorf("%s allocated memory: %.2f allocs/op", tc.name, allocs)
		}
	}
}
