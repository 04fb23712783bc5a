// churn.go — a minimal Treiber stack built directly against the engine's
// guard API, the same way package stack is, but kept local to ebrbench so
// its Reclaim deleter can close over the popped node's own address. This
// is the one place retireguard.Guard gets exercised end to end: every
// reclaimed node is checked against a (address, generation) fingerprint
// ring, catching any node that somehow gets reclaimed twice.

package main

import (
	"sync/atomic"
	"unsafe"

	"ebr"
	"ebr/concurrentptr"
	"ebr/markedptr"
	"ebr/retireguard"
)

type churnNode struct {
	ebr.Node
	next markedptr.Word[churnNode]
	gen  uint64
}

// churnStack is a disposable workload generator: push allocates a fresh
// node tagged with a monotonic generation number, pop retires the node it
// removes and checks its address/generation pair against guard.
type churnStack struct {
	head       concurrentptr.Field[churnNode]
	genCounter atomic.Uint64
	guard      *retireguard.Guard
	doubleHits atomic.Int64
}

func newChurnStack() *churnStack {
	return &churnStack{guard: retireguard.New()}
}

func (s *churnStack) push(h *ebr.Handle) {
	n := &churnNode{gen: s.genCounter.Add(1)}
	for {
		old := s.head.Load()
		n.next = old
		if s.head.CompareAndSwap(old, markedptr.Of(n, 0)) {
			return
		}
	}
}

// pop removes the top node, if any, and schedules its reclamation. It
// reports whether a node was popped; any double-retire the guard catches
// is recorded in doubleHits, readable once the run has finished draining.
func (s *churnStack) pop(h *ebr.Handle) bool {
	g := ebr.NewGuardPtr[churnNode, *churnNode](h)
	for {
		g.Acquire(&s.head)
		top := g.Ptr()
		if top == nil {
			g.Reset()
			return false
		}
		if s.head.CompareAndSwap(markedptr.Of(top, 0), top.next) {
			addr := unsafe.Pointer(top)
			gen := top.gen
			guard := s.guard
			g.Reclaim(func() {
				if guard.Check(addr, gen) {
					s.doubleHits.Add(1)
				}
			})
			return true
		}
	}
}
