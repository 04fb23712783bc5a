package ebr

import "sync/atomic"

// registry is the lock-free, append-only list of control blocks belonging
// to a single Domain, plus that Domain's orphan list.
type registry struct {
	head    atomic.Pointer[controlBlock]
	orphans atomic.Pointer[orphan]
}

// acquireEntry scans the registry for an inactive control block and
// reactivates it with a CAS; if none is free, it appends a freshly
// allocated one with a CAS loop on the head. Entries are never removed
// while the Domain lives, only recycled.
func (r *registry) acquireEntry() *controlBlock {
	for cb := r.head.Load(); cb != nil; cb = cb.next {
		if cb.active.CompareAndSwap(false, true) {
			cb.localEpoch.Store(sentinelEpoch)
			cb.inCriticalRegion.Store(false)
			return cb
		}
	}

	cb := &controlBlock{}
	cb.active.Store(true)
	cb.localEpoch.Store(sentinelEpoch)
	for {
		head := r.head.Load()
		cb.next = head
		if r.head.CompareAndSwap(head, cb) {
			return cb
		}
	}
}

// releaseEntry resets cb's flags and marks it inactive so a later
// acquireEntry may reuse it.
func (r *registry) releaseEntry(cb *controlBlock) {
	cb.inCriticalRegion.Store(false)
	cb.localEpoch.Store(sentinelEpoch)
	cb.active.Store(false)
}

// abandonRetiredNodes pushes o onto the orphan list with a CAS loop.
func (r *registry) abandonRetiredNodes(o *orphan) {
	for {
		head := r.orphans.Load()
		o.orphanNext = head
		if r.orphans.CompareAndSwap(head, o) {
			return
		}
	}
}

// adoptAbandonedRetiredNodes atomically detaches and returns the whole
// orphan chain, leaving the registry's orphan list empty.
func (r *registry) adoptAbandonedRetiredNodes() *orphan {
	return r.orphans.Swap(nil)
}
