// Package stack implements a lock-free LIFO stack on top of the ebr
// package, the same Treiber push/pop shape every lock-free stack in the
// wild shares, with reclamation handled by GuardPtr/Handle.Retire instead
// of a GC-visible intrusive free list or an arena the caller must close.
package stack

import (
	"ebr"
	"ebr/concurrentptr"
	"ebr/markedptr"
)

type node[V any] struct {
	ebr.Node
	value V
	next  markedptr.Word[node[V]]
}

// Stack is a lock-free LIFO stack of V, safe for any number of concurrent
// pushers and poppers each holding their own *ebr.Handle.
type Stack[V any] struct {
	head concurrentptr.Field[node[V]]
}

// New constructs an empty Stack.
func New[V any]() *Stack[V] {
	return &Stack[V]{}
}

// Push places value on top of the stack.
func (s *Stack[V]) Push(h *ebr.Handle, value V) {
	n := &node[V]{value: value}
	for {
		old := s.head.Load()
		n.next = old
		if s.head.CompareAndSwap(old, markedptr.Of(n, 0)) {
			return
		}
	}
}

// Pop removes and returns the top value, or reports ok=false if the stack
// was empty. The popped node is retired through h, not freed immediately:
// any other guard concurrently reading it via Acquire keeps it alive until
// every such guard has released its critical region.
func (s *Stack[V]) Pop(h *ebr.Handle) (value V, ok bool) {
	guard := ebr.NewGuardPtr[node[V], *node[V]](h)
	for {
		guard.Acquire(&s.head)
		top := guard.Ptr()
		if top == nil {
			guard.Reset()
			return value, false
		}

		if s.head.CompareAndSwap(markedptr.Of(top, 0), top.next) {
			value = top.value
			guard.Reclaim(nil)
			return value, true
		}
	}
}

// Empty reports whether the stack currently holds no elements. The result
// is only a snapshot under concurrent access.
func (s *Stack[V]) Empty(h *ebr.Handle) bool {
	guard := ebr.NewGuardPtr[node[V], *node[V]](h)
	guard.Acquire(&s.head)
	empty := guard.Ptr() == nil
	guard.Reset()
	return empty
}
