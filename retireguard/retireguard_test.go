package retireguard

import (
	"testing"
	"unsafe"
)

func TestDistinctAddressesNeverFlagged(t *testing.T) {
	g := New()
	var a, b int
	if g.Check(unsafe.Pointer(&a), 1) {
		t.Fatal("first sighting of a must not be flagged")
	}
	if g.Check(unsafe.Pointer(&b), 1) {
		t.Fatal("first sighting of b must not be flagged")
	}
}

func TestSameAddressSameGenerationIsFlagged(t *testing.T) {
	g := New()
	var a int
	if g.Check(unsafe.Pointer(&a), 7) {
		t.Fatal("first retirement must not be flagged")
	}
	if !g.Check(unsafe.Pointer(&a), 7) {
		t.Fatal("retiring the same address under the same generation must be flagged")
	}
}

func TestSameAddressDifferentGenerationIsNotFlagged(t *testing.T) {
	g := New()
	var a int
	g.Check(unsafe.Pointer(&a), 1)
	if g.Check(unsafe.Pointer(&a), 2) {
		t.Fatal("a reused address retired under a new generation tag is not a double-retire")
	}
}

func TestStaleEntryIsNotFlagged(t *testing.T) {
	g := New()
	var a, filler int
	g.Check(unsafe.Pointer(&a), 1)

	for i := 0; i < maxAge+1; i++ {
		g.Check(unsafe.Pointer(&filler), uint64(i))
	}

	if g.Check(unsafe.Pointer(&a), 1) {
		t.Fatal("an entry older than maxAge should no longer be flagged as a duplicate")
	}
}

func TestFingerprintIsDeterministic(t *testing.T) {
	var a int
	h1 := fingerprint(uintptr(unsafe.Pointer(&a)), 42)
	h2 := fingerprint(uintptr(unsafe.Pointer(&a)), 42)
	if h1 != h2 {
		t.Fatal("fingerprint must be a pure function of its inputs")
	}
}
