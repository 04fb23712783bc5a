package concurrentmap

import (
	"sync"
	"testing"

	"ebr"
)

func TestStoreLoadRoundTrip(t *testing.T) {
	d := ebr.NewDomain(4)
	h := d.Acquire()
	defer h.Release()

	m := NewStringMap[int](8)
	m.Store(h, "a", 1)
	m.Store(h, "b", 2)

	if v, ok := m.Load(h, "a"); !ok || v != 1 {
		t.Fatalf("got (%d, %v), want (1, true)", v, ok)
	}
	if v, ok := m.Load(h, "b"); !ok || v != 2 {
		t.Fatalf("got (%d, %v), want (2, true)", v, ok)
	}
	if _, ok := m.Load(h, "missing"); ok {
		t.Fatal("load of absent key must report ok=false")
	}
}

func TestStoreOverwritesExistingKey(t *testing.T) {
	d := ebr.NewDomain(4)
	h := d.Acquire()
	defer h.Release()

	m := NewStringMap[int](8)
	m.Store(h, "a", 1)
	m.Store(h, "a", 2)

	if v, ok := m.Load(h, "a"); !ok || v != 2 {
		t.Fatalf("got (%d, %v), want (2, true)", v, ok)
	}
}

func TestDeleteRemovesEntry(t *testing.T) {
	d := ebr.NewDomain(4)
	h := d.Acquire()
	defer h.Release()

	m := NewStringMap[int](8)
	m.Store(h, "a", 1)

	if !m.Delete(h, "a") {
		t.Fatal("delete of present key must return true")
	}
	if _, ok := m.Load(h, "a"); ok {
		t.Fatal("deleted key must no longer be found")
	}
	if m.Delete(h, "a") {
		t.Fatal("second delete of an already-removed key must return false")
	}
}

func TestCollidingKeysShareABucketWithoutCorruption(t *testing.T) {
	d := ebr.NewDomain(4)
	h := d.Acquire()
	defer h.Release()

	// bucketCount 1 forces every key into the same bucket.
	m := NewStringMap[int](1)
	for i := 0; i < 20; i++ {
		m.Store(h, string(rune('a'+i)), i)
	}
	for i := 0; i < 20; i++ {
		if v, ok := m.Load(h, string(rune('a'+i))); !ok || v != i {
			t.Fatalf("key %c: got (%d, %v), want (%d, true)", 'a'+i, v, ok, i)
		}
	}
}

func TestConcurrentStoreLoadDelete(t *testing.T) {
	d := ebr.NewDomain(4)
	m := NewStringMap[int](64)

	const goroutines = 8
	const perGoroutine = 200

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			h := d.Acquire()
			defer h.Release()
			for i := 0; i < perGoroutine; i++ {
				key := string(rune('A'+g)) + string(rune('a'+i%26))
				m.Store(h, key, i)
				m.Load(h, key)
				if i%7 == 0 {
					m.Delete(h, key)
				}
			}
		}(g)
	}
	wg.Wait()
}
