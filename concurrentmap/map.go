// Package concurrentmap implements a lock-free, open-addressing-free
// chaining hash map on top of the ebr package. Each bucket is a
// concurrentptr.Field-guarded singly linked list; readers traverse
// without blocking writers, and removed entries are retired rather than
// freed immediately, exactly the contract stack and queue also build on.
//
// The bucket table itself is a fixed array, sized once at construction:
// the caller manages load factor, nothing here grows the table.
package concurrentmap

import (
	"sync/atomic"

	"ebr"
	"ebr/concurrentptr"
	"ebr/markedptr"
	"ebr/utils"
)

type entry[K comparable, V any] struct {
	ebr.Node
	key   K
	value atomic.Pointer[V]
	next  concurrentptr.Field[entry[K, V]]
}

// Map is a fixed-bucket-count lock-free hash map keyed by K.
type Map[K comparable, V any] struct {
	buckets []concurrentptr.Field[entry[K, V]]
	mask    uint64
	hash    func(K) uint64
}

func nextPow2(n int) int {
	s := 1
	for s < n {
		s <<= 1
	}
	return s
}

// New constructs a Map with room for roughly bucketCount keys before
// chains start growing long, hashing keys with hash.
func New[K comparable, V any](bucketCount int, hash func(K) uint64) *Map[K, V] {
	if bucketCount < 1 {
		bucketCount = 1
	}
	n := nextPow2(bucketCount)
	return &Map[K, V]{
		buckets: make([]concurrentptr.Field[entry[K, V]], n),
		mask:    uint64(n - 1),
		hash:    hash,
	}
}

// HashString is the default hasher NewStringMap wires in: an FNV-1a fold
// finished with utils.Mix64's avalanche.
func HashString(s string) uint64 {
	var h uint64 = 1469598103934665603
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return utils.Mix64(h)
}

// NewStringMap is a convenience constructor for string-keyed maps using
// HashString.
func NewStringMap[V any](bucketCount int) *Map[string, V] {
	return New[string, V](bucketCount, HashString)
}

func (m *Map[K, V]) bucket(key K) *concurrentptr.Field[entry[K, V]] {
	return &m.buckets[m.hash(key)&m.mask]
}

// Load returns the value stored for key, if any.
func (m *Map[K, V]) Load(h *ebr.Handle, key K) (value V, ok bool) {
	guard := ebr.NewGuardPtr[entry[K, V], *entry[K, V]](h)
	defer guard.Reset()

	guard.Acquire(m.bucket(key))
	for cur := guard.Ptr(); cur != nil; cur = guard.Ptr() {
		if cur.key == key {
			if p := cur.value.Load(); p != nil {
				return *p, true
			}
			return value, false
		}
		guard.Acquire(&cur.next)
	}
	return value, false
}

// Store sets the value for key, updating an existing entry in place if
// one is present, or prepending a fresh one otherwise.
func (m *Map[K, V]) Store(h *ebr.Handle, key K, value V) {
	b := m.bucket(key)
	guard := ebr.NewGuardPtr[entry[K, V], *entry[K, V]](h)
	defer guard.Reset()

	guard.Acquire(b)
	for cur := guard.Ptr(); cur != nil; cur = guard.Ptr() {
		if cur.key == key {
			v := value
			cur.value.Store(&v)
			return
		}
		guard.Acquire(&cur.next)
	}

	n := &entry[K, V]{key: key}
	v := value
	n.value.Store(&v)
	for {
		head := b.Load()
		n.next.Store(head)
		if b.CompareAndSwap(head, markedptr.Of(n, 0)) {
			return
		}
	}
}

// Delete removes key's entry, if present, retiring it through h. Reports
// whether a matching entry was found.
func (m *Map[K, V]) Delete(h *ebr.Handle, key K) bool {
	b := m.bucket(key)
	guard := ebr.NewGuardPtr[entry[K, V], *entry[K, V]](h)
	defer guard.Reset()

outer:
	for {
		prevField := b
		guard.Acquire(prevField)
		for {
			cur := guard.Ptr()
			if cur == nil {
				return false
			}
			if cur.key == key {
				next := cur.next.Load()
				if prevField.CompareAndSwap(markedptr.Of(cur, 0), next) {
					guard.Reclaim(nil)
					return true
				}
				continue outer
			}
			prevField = &cur.next
			guard.Acquire(prevField)
		}
	}
}
