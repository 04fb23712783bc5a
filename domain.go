package ebr

import "sync/atomic"

// Domain is a single, independent instantiation of the reclamation
// engine. Every Domain owns its own registry, global epoch counter and
// orphan list; two Domains never share state even when constructed with
// the same updateThreshold. This is the struct-value substitute for what
// a C++ caller would get from a distinct template instantiation of
// epoch_based<UpdateThreshold> — Go has no value-generic parameters, so
// the threshold becomes an ordinary constructor argument instead of a
// compile-time one (see Open Question on template-instantiation identity).
type Domain struct {
	updateThreshold uint32
	globalEpoch     atomic.Uint32
	reg             registry
	tracker         Tracker
}

// Tracker receives allocation/reclaim notifications from a Domain opted
// into allocation tracking via WithAllocationTracker. alloctracker.Tracker
// satisfies this interface; it is expressed here as a minimal interface
// rather than a concrete dependency so the core engine does not have to
// import alloctracker's hash-table machinery to offer the hook.
type Tracker interface {
	ObserveReclaim(typeName string)
}

// Option configures a Domain at construction time.
type Option func(*Domain)

// WithAllocationTracker opts a Domain into per-type reclaim counting,
// mirroring the original's TRACK_ALLOCATIONS compile-time macro as a
// runtime constructor option instead: Domains built without it pay
// nothing for the bookkeeping.
func WithAllocationTracker(t Tracker) Option {
	return func(d *Domain) { d.tracker = t }
}

// NewDomain constructs a reclamation engine tuned by updateThreshold: the
// number of critical-region entries a Handle performs, once caught up to
// the current epoch, before it attempts to advance the global epoch.
// UpdateThreshold == 0 means every such entry attempts an advance.
func NewDomain(updateThreshold uint32, opts ...Option) *Domain {
	d := &Domain{updateThreshold: updateThreshold}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Acquire returns a new Handle bound to this Domain. A Handle is the Go
// substitute for the C++ original's thread-local per-thread state:
// callers hold it explicitly — typically one per goroutine — and must
// call Release when done, since Go offers no guaranteed destructor on
// goroutine exit.
func (d *Domain) Acquire() *Handle {
	return &Handle{domain: d}
}

// tryAdvance implements the advancement predicate (spec §4.5): it checks
// whether any active control block is still observed at the epoch
// preceding curr and, if not, attempts to CAS the global epoch from curr
// to next. It returns true whether or not its own CAS won — a lost CAS
// means some other handle's attempt succeeded, which is just as good
// (Open Question b).
func (d *Domain) tryAdvance(h *Handle, curr, next uint32) bool {
	oldEpoch := (curr + NumEpochs - 1) % NumEpochs

	for cb := d.reg.head.Load(); cb != nil; cb = cb.next {
		if cb.inCriticalRegion.Load() && cb.localEpoch.Load() == oldEpoch {
			return false
		}
	}

	if d.globalEpoch.Load() == curr {
		if d.globalEpoch.CompareAndSwap(curr, next) {
			h.adoptOrphans()
		}
	}
	return true
}
