package ebr

import "errors"

// errUnbalancedLeave is raised by LeaveCritical when called without a
// matching EnterCritical — the Go analogue of the original's assertion.
var errUnbalancedLeave = errors.New("ebr: LeaveCritical called without a matching EnterCritical")

// errReleaseWhileOpen guards against releasing a Handle that still has an
// open critical region; the original only asserts this (debug builds),
// this port makes it an always-on panic for the same reason retire.go's
// double-retire check is always on.
var errReleaseWhileOpen = errors.New("ebr: Release called while a critical region is still open")

// Handle is a goroutine's local view into a Domain: nesting depth, the
// entries-since-update counter, the attached control block, and this
// goroutine's own three retire lists. It is the Go substitute for the
// thread-local state a C++ implementation keeps via TLS.
//
// A Handle must not be shared between goroutines. Call Release exactly
// once when the owning goroutine is finished issuing guards through it —
// the mandatory realization of the detach() escape hatch the algorithm
// anticipates for hosts without guaranteed per-thread destructors.
type Handle struct {
	domain *Domain

	enterCount         uint32
	entriesSinceUpdate uint32
	cb                 *controlBlock
	retireLists        [NumEpochs]Retirable
	released           bool
}

// EnterCritical opens (or extends, if already open) a critical region.
// Reentrant: nested calls beyond the first are free.
func (h *Handle) EnterCritical() {
	h.enterCount++
	if h.enterCount == 1 {
		h.doEnterCritical()
	}
}

// LeaveCritical closes one level of critical region. Panics if called
// without a matching EnterCritical.
func (h *Handle) LeaveCritical() {
	if h.enterCount == 0 {
		panic(errUnbalancedLeave)
	}
	h.enterCount--
	if h.enterCount == 0 {
		h.doLeaveCritical()
	}
}

// postIncrementEquals mirrors the original's `entries_since_update++ ==
// UpdateThreshold`: the comparison reads the pre-increment value, and the
// counter is incremented regardless of the outcome (Open Question a).
func postIncrementEquals(x *uint32, threshold uint32) bool {
	old := *x
	*x++
	return old == threshold
}

func (h *Handle) doEnterCritical() {
	if h.cb == nil {
		h.cb = h.domain.reg.acquireEntry()
	}
	cb := h.cb

	cb.inCriticalRegion.Store(true)
	// (3)/(4) in the original: a seq_cst fence followed by an acquire load
	// of global_epoch, used together to totally order this goroutine's flag
	// publication against every other goroutine's flag/epoch pair. Go's
	// memory model (>=1.19) already gives operations performed through
	// sync/atomic a single global sequentially consistent order, so the
	// Store above followed by the Load below carries that same total-order
	// guarantee without a separate fence call.
	epoch := h.domain.globalEpoch.Load()

	var adopted uint32
	switch {
	case cb.localEpoch.Load() != epoch:
		h.entriesSinceUpdate = 0
		adopted = epoch
	case postIncrementEquals(&h.entriesSinceUpdate, h.domain.updateThreshold):
		h.entriesSinceUpdate = 0
		newEpoch := (epoch + 1) % NumEpochs
		if !h.domain.tryAdvance(h, epoch, newEpoch) {
			return
		}
		adopted = newEpoch
	default:
		return
	}

	// Either we just advanced the global epoch ourselves, or we are
	// catching up to an epoch some other handle already advanced to:
	// either way it is now safe to reclaim the old incarnation of this
	// epoch slot (spec §4.3 step 7, two-advance safety theorem in §4.5).
	cb.localEpoch.Store(adopted)
	h.drainRetireList(adopted)
}

func (h *Handle) doLeaveCritical() {
	// Pairs with the acquire-side scan in Domain.tryAdvance.
	h.cb.inCriticalRegion.Store(false)
}

func (h *Handle) addRetiredNode(n Retirable, epoch uint32) {
	n.ebrHeader().next = h.retireLists[epoch]
	h.retireLists[epoch] = n
}

func (h *Handle) drainRetireList(epoch uint32) {
	n := h.retireLists[epoch]
	h.retireLists[epoch] = nil
	for n != nil {
		next := n.ebrHeader().next
		n.ebrHeader().next = nil
		if h.domain.tracker != nil {
			h.domain.tracker.ObserveReclaim(typeNameOf(n))
		}
		deleteSelf(n)
		n = next
	}
}

// adoptOrphans splices the domain's abandoned orphan chain into this
// handle's own retire lists, each orphan filed at its own target epoch.
func (h *Handle) adoptOrphans() {
	current := h.domain.reg.adoptAbandonedRetiredNodes()
	for current != nil {
		next := current.orphanNext
		current.orphanNext = nil
		h.addRetiredNode(current, current.targetEpoch)
		current = next
	}
}

// Retire installs deleter on node and appends it to this handle's retire
// list at its own current local epoch. By contract Retire is only ever
// called while the handle is inside a critical region (via
// GuardPtr.Reclaim), so cb is non-nil and its local epoch has already
// left the sentinel.
func (h *Handle) Retire(node Retirable, deleter func()) {
	setDeleter(node, deleter)
	h.addRetiredNode(node, h.cb.localEpoch.Load())
}

// CurrentLocalEpoch returns this handle's local epoch, or the sentinel if
// it has never entered a critical region.
func (h *Handle) CurrentLocalEpoch() uint32 {
	if h.cb == nil {
		return sentinelEpoch
	}
	return h.cb.localEpoch.Load()
}

// Release tears down this handle: the mandatory Go realization of the
// algorithm's thread-exit path (spec §4.6). Any nodes still queued on its
// retire lists are wrapped in an orphan and handed to the domain's orphan
// list rather than leaked; the underlying control block is returned to
// the registry for reuse. Release is idempotent.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true

	if h.cb == nil {
		return
	}

	hasRetired := false
	for _, l := range h.retireLists {
		if l != nil {
			hasRetired = true
			break
		}
	}

	if hasRetired {
		global := h.domain.globalEpoch.Load()
		target := (global + NumEpochs - 1) % NumEpochs
		o := newOrphan(target, h.retireLists)
		h.retireLists = [NumEpochs]Retirable{}
		h.domain.reg.abandonRetiredNodes(o)
	}

	if h.cb.inCriticalRegion.Load() {
		panic(errReleaseWhileOpen)
	}
	h.domain.reg.releaseEntry(h.cb)
	h.cb = nil
}
