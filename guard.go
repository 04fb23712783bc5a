package ebr

import (
	"ebr/concurrentptr"
	"ebr/markedptr"
)

// Hook is the narrow inward interface a GuardPtr uses to talk to its
// owning Handle: enter/leave the critical region, retire a node, and read
// the local epoch (spec §4.4/§6's guard hook contract). *Handle implements
// it; the interface exists so GuardPtr depends on a contract, not a
// concrete Handle.
type Hook interface {
	EnterCritical()
	LeaveCritical()
	Retire(node Retirable, deleter func())
	CurrentLocalEpoch() uint32
}

// retirablePtr constrains PV to be a pointer to V that also implements
// Retirable — in practice, a pointer to a type that embeds ebr.Node. This
// is the two-type-parameter pattern a generic pointer-typed container
// needs since Go generics have no "Self" type.
type retirablePtr[V any] interface {
	*V
	Retirable
}

// GuardPtr is a guarded marked pointer, the user-facing handle guarding a
// single dereference of a concurrentptr.Field[V]. While non-nil it owns
// exactly one outstanding critical-region pass on its Hook: it has called
// EnterCritical exactly once and owes exactly one matching LeaveCritical.
// GuardPtr is not safe to share between goroutines.
type GuardPtr[V any, PV retirablePtr[V]] struct {
	hook Hook
	ptr  markedptr.Word[V]
}

// NewGuardPtr constructs a guard bound to hook but holding no pointer.
func NewGuardPtr[V any, PV retirablePtr[V]](hook Hook) *GuardPtr[V, PV] {
	return &GuardPtr[V, PV]{hook: hook}
}

func (g *GuardPtr[V, PV]) owns() bool { return g.ptr.Ptr != nil }

// Ptr returns the guarded pointer, or nil if the guard is empty.
func (g *GuardPtr[V, PV]) Ptr() *V { return g.ptr.Ptr }

// Mark returns the guarded pointer's mark bits.
func (g *GuardPtr[V, PV]) Mark() uintptr { return g.ptr.Mark }

// Acquire takes a snapshot of field and, if it currently points at an
// unreclaimed object, acquires shared ownership of it. Load-validate-load:
// a relaxed snapshot decides whether a critical region needs opening at
// all, then a second load — the one the guard actually keeps — observes
// the value under the field's own ordering.
func (g *GuardPtr[V, PV]) Acquire(field *concurrentptr.Field[V]) {
	snap := field.Load()
	if snap.IsNull() {
		g.Reset()
		return
	}

	if !g.owns() {
		g.hook.EnterCritical()
	}
	g.ptr = field.Load()
	if g.ptr.IsNull() {
		g.hook.LeaveCritical()
	}
}

// AcquireIfEqual behaves like Acquire but aborts early if the initial
// snapshot does not equal expected. Its boolean result is, precisely,
// "does the value this guard now holds equal expected" — on the
// early-abort path that can only be true when the snapshot was itself the
// null marked pointer and expected is also null (Open Question c).
func (g *GuardPtr[V, PV]) AcquireIfEqual(field *concurrentptr.Field[V], expected markedptr.Word[V]) bool {
	actual := field.Load()
	if actual.IsNull() || !actual.Equal(expected) {
		g.Reset()
		return actual.Equal(expected)
	}

	if !g.owns() {
		g.hook.EnterCritical()
	}
	g.ptr = field.Load()
	if g.ptr.IsNull() || !g.ptr.Equal(expected) {
		g.hook.LeaveCritical()
		g.ptr = markedptr.Word[V]{}
	}
	return g.ptr.Equal(expected)
}

// Reset releases ownership. Postcondition: Ptr() == nil.
func (g *GuardPtr[V, PV]) Reset() {
	if g.owns() {
		g.hook.LeaveCritical()
	}
	g.ptr = markedptr.Word[V]{}
}

// Reclaim installs deleter on the guarded node (defaulting to a no-op),
// retires it through the owning Hook at the guard's current local epoch,
// then resets the guard. deleter runs some time after every other owning
// guard has released its ownership.
func (g *GuardPtr[V, PV]) Reclaim(deleter func()) {
	if !g.owns() {
		return
	}
	if deleter == nil {
		deleter = func() {}
	}
	p := PV(g.ptr.Ptr)
	g.hook.Retire(p, deleter)
	g.Reset()
}

// MoveFrom transfers ownership of src's critical-region pass to g without
// any new EnterCritical/LeaveCritical call; src becomes null. Any pass g
// already owned is released first.
func (g *GuardPtr[V, PV]) MoveFrom(src *GuardPtr[V, PV]) {
	g.Reset()
	g.hook = src.hook
	g.ptr = src.ptr
	src.ptr = markedptr.Word[V]{}
}

// CopyFrom makes g an independent owner of the same pointer src holds,
// performing its own EnterCritical if src is non-null — both guards then
// separately owe a LeaveCritical. Any pass g already owned is released
// first.
func (g *GuardPtr[V, PV]) CopyFrom(src *GuardPtr[V, PV]) {
	g.Reset()
	g.hook = src.hook
	if src.owns() {
		g.hook.EnterCritical()
	}
	g.ptr = src.ptr
}
