package ebr

import (
	"errors"
	"sync/atomic"
)

// errDoubleRetire is raised when a node is handed to a Domain for
// reclamation a second time. The algorithm only asserts this in debug
// builds (spec §7); this port has no separate debug/release split, so the
// check is always on — it is cheap and Go has no way to compile it out
// short of a build tag nobody would ever flip.
var errDoubleRetire = errors.New("ebr: SetDeleter/Retire called twice on the same node")

// Retirable is implemented by any node a Domain can take ownership of for
// deferred destruction. Embed Node in a concrete type to satisfy it —
// ebrHeader is unexported, so only types that embed ebr.Node (and thereby
// inherit the promoted method from this package) can ever implement it.
// This is the idiomatic Go stand-in for the C++ original's
// enable_concurrent_ptr<T> CRTP mixin.
type Retirable interface {
	ebrHeader() *nodeHeader
}

// nodeHeader is the intrusive state every Retirable carries: the next-link
// used only while queued on a retire list, and the deleter captured at
// retire time.
type nodeHeader struct {
	next    Retirable
	deleter func()
	set     atomic.Bool
}

// Node is embedded in user-defined types to make them Retirable. It adds
// no payload of its own.
type Node struct {
	hdr nodeHeader
}

func (n *Node) ebrHeader() *nodeHeader { return &n.hdr }

// setDeleter installs d as r's destruction hook. It may be installed
// exactly once per node; a second call panics.
func setDeleter(r Retirable, d func()) {
	h := r.ebrHeader()
	if !h.set.CompareAndSwap(false, true) {
		panic(errDoubleRetire)
	}
	h.deleter = d
}

// deleteSelf pops r's installed deleter and invokes it. A nil deleter
// (the "default destruction path", spec §3) is simply a no-op: Go has no
// implicit destructor to fall back to.
func deleteSelf(r Retirable) {
	h := r.ebrHeader()
	d := h.deleter
	h.deleter = nil
	if d != nil {
		d()
	}
}
