// Package alloctracker implements the optional allocation counter the
// engine's design notes call out as an external collaborator (spec §9,
// glossary: "tracks, per node type, counts of constructions and
// destructions; used only for leak diagnostics, not part of the core
// contract"). It mirrors the original's TRACK_ALLOCATIONS compile-time
// macro as an opt-in runtime component instead: a Domain that is never
// given a Tracker via ebr.WithAllocationTracker pays nothing for this.
package alloctracker

import (
	"sync"

	"ebr/localidx"
)

// Counts reports the live allocation count for one tracked type.
type Counts struct {
	Allocated int64
	Reclaimed int64
}

// Live returns Allocated - Reclaimed.
func (c Counts) Live() int64 { return c.Allocated - c.Reclaimed }

type slot struct {
	name      string
	allocated int64
	reclaimed int64
}

// Tracker sums allocation/reclamation counts across a process's lifetime,
// one slot per registered type name. Each concrete node type gets its own
// counter pair, matching the original's tracked_object<Tracker> mixin:
// construction increments the type's allocated counter, destruction
// increments its reclaimed counter, and Snapshot reads them all.
//
// One mutex guards the whole Tracker, since localidx.Hash itself is
// documented as single-threaded only: Register, Snapshot and every
// Alloc/Reclaim call take it.
type Tracker struct {
	mu    sync.Mutex
	index localidx.Hash
	slots []*slot
}

// New constructs a Tracker with headroom for capacity distinct type
// names before the backing index needs to be rebuilt.
func New(capacity int) *Tracker {
	if capacity < 1 {
		capacity = 1
	}
	return &Tracker{index: localidx.New(capacity)}
}

// mix is a small avalanche mixer used only to turn a type name into the
// uint32 key localidx.Hash wants; collisions are resolved by the slow
// path's linear name scan, so this only needs to be cheap, not perfect.
func mix(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	if h == 0 {
		h = 1 // 0 is localidx.Hash's empty sentinel
	}
	return h
}

// Register returns the counter slot for typeName, creating it on first
// use. Safe for concurrent calls; every call serializes through the
// Tracker's mutex.
func (t *Tracker) Register(typeName string) *Slot {
	key := mix(typeName)

	t.mu.Lock()
	defer t.mu.Unlock()

	if idx, ok := t.index.Get(key); ok && int(idx) < len(t.slots) && t.slots[idx].name == typeName {
		return &Slot{t: t, idx: int(idx)}
	}
	for i, s := range t.slots {
		if s.name == typeName {
			return &Slot{t: t, idx: i}
		}
	}

	if t.index.Cap() == 0 || len(t.slots)+1 > t.index.Cap()*7/10 {
		t.growLocked()
	}

	s := &slot{name: typeName}
	t.slots = append(t.slots, s)
	idx := uint32(len(t.slots) - 1)
	t.index.Put(key, idx)
	return &Slot{t: t, idx: int(idx)}
}

// growLocked rebuilds the index at double its current capacity and
// re-inserts every already-registered name. localidx.Hash is a fixed-
// capacity table by design (documented for single-threaded use, no
// resize); Tracker owns the responsibility of keeping the
// load factor low enough that Put's CAS-free probe loop never spins
// forever.
func (t *Tracker) growLocked() {
	newCap := t.index.Cap() * 2
	if newCap < 4 {
		newCap = 4
	}
	newIndex := localidx.New(newCap)
	for i, s := range t.slots {
		newIndex.Put(mix(s.name), uint32(i))
	}
	t.index = newIndex
}

// Snapshot returns the current counts for every registered type.
func (t *Tracker) Snapshot() map[string]Counts {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]Counts, len(t.slots))
	for _, s := range t.slots {
		out[s.name] = Counts{Allocated: s.allocated, Reclaimed: s.reclaimed}
	}
	return out
}

// ObserveReclaim satisfies ebr.Tracker: it increments the reclaimed
// counter for typeName, registering it first if this is the first time
// the type has been seen (a reclaim can, in principle, be the first
// observation if a caller only ever wires this hook for teardown
// accounting).
func (t *Tracker) ObserveReclaim(typeName string) {
	t.Register(typeName).Reclaim()
}

// Slot is a handle to one type's counter pair.
type Slot struct {
	t   *Tracker
	idx int
}

// Alloc increments the slot's allocated counter. Intended to be called
// from a tracked type's constructor.
func (s *Slot) Alloc() {
	s.t.mu.Lock()
	s.t.slots[s.idx].allocated++
	s.t.mu.Unlock()
}

// Reclaim increments the slot's reclaimed counter. Intended to be called
// from a tracked type's destruction hook.
func (s *Slot) Reclaim() {
	s.t.mu.Lock()
	s.t.slots[s.idx].reclaimed++
	s.t.mu.Unlock()
}
