package ebr

import "sync/atomic"

// controlBlock is a per-goroutine slot published into a Domain's registry.
// Once inserted it is never removed: active is flipped to false on
// release so a later Handle can reuse the slot instead of growing the
// registry further. Padded to keep the hot fields (is-in-critical-region,
// local-epoch) off a cache line shared with a neighboring entry's own
// fields when the registry is walked under contention.
type controlBlock struct {
	inCriticalRegion atomic.Bool
	localEpoch       atomic.Uint32
	active           atomic.Bool
	_                [52]byte // pad to a 64-byte cache line
	next             *controlBlock
}
