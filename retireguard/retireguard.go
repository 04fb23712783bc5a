// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: retireguard.go — debug-mode double-retire fingerprint detector
//
// Purpose:
//   - Complements the engine's always-on, per-node double-retire panic
//     (ebr.Retire calling SetDeleter exactly once) with a second, independent
//     check: catching the case where the same (address, generation tag)
//     pair is retired twice. A reused address retired under a different
//     generation tag is not flagged.
//   - Fingerprints (pointer address, generation tag) pairs in a fixed-size
//     ring of recently-seen entries with age-based eviction, exactly the
//     shape of a deduplication cache.
//
// Notes:
//   - Best-effort only: a sufficiently large gap between two retires of the
//     same address evicts the earlier entry and the second retire is no
//     longer flagged. It is a diagnostic aid, not a correctness mechanism.
//
// A Guard is safe for concurrent use by multiple goroutines: Check holds
// g.mu for the whole read-then-conditionally-overwrite sequence.
// ─────────────────────────────────────────────────────────────────────────────

package retireguard

import (
	"sync"
	"unsafe"

	"ebr/utils"

	"golang.org/x/crypto/blake2b"
)

const (
	ringBits = 14 // 16384 slots
	ringSize = 1 << ringBits
	ringMask = ringSize - 1

	// maxAge bounds how many Check calls a fingerprint survives before it
	// is treated as stale rather than a genuine double-retire.
	maxAge = 1 << 20
)

type slot struct {
	addr uintptr
	gen  uint64
	age  uint64
}

// Guard tracks recently retired (address, generation tag) pairs to flag
// likely double-retires that slipped past the engine's own per-node check
// (for example, one logical node whose reclamation runs twice).
type Guard struct {
	mu  sync.Mutex
	buf [ringSize]slot
	now uint64
}

// New constructs an empty Guard.
func New() *Guard { return &Guard{} }

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func fingerprint(addr uintptr, gen uint64) uint64 {
	var buf [16]byte
	putUint64(buf[:8], uint64(addr))
	putUint64(buf[8:], gen)
	sum := blake2b.Sum512(buf[:])
	return utils.Load64(sum[:8])
}

// Check records ptr's retirement under generation gen and reports whether
// this (ptr, gen) pair looks like a double-retire: the same address was
// already recorded under the same generation tag, recently enough to
// still be live in the ring. The same address under a different
// generation tag is not a duplicate.
func (g *Guard) Check(ptr unsafe.Pointer, gen uint64) (duplicate bool) {
	addr := uintptr(ptr)
	h := fingerprint(addr, gen)

	g.mu.Lock()
	defer g.mu.Unlock()

	g.now++
	s := &g.buf[h&ringMask]

	stale := s.age > 0 && g.now > s.age && (g.now-s.age) > maxAge
	sameAddr := s.addr == addr && s.age > 0
	duplicate = sameAddr && s.gen == gen && !stale

	if !duplicate {
		*s = slot{addr: addr, gen: gen, age: g.now}
	}
	return duplicate
}
