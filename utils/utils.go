// Package utils collects the small zero-allocation primitives shared by
// the rest of the module: a byte/string cast, unaligned word loads for
// fingerprinting, and a 64-bit avalanche mixer used wherever a key needs
// turning into a well-distributed bucket index.
package utils

import "unsafe"

///////////////////////////////////////////////////////////////////////////////
// Conversion Utilities — Zero-Alloc Casts
///////////////////////////////////////////////////////////////////////////////

// B2s converts a []byte to a string **without** allocation.
// ⚠️ Caller must ensure the input slice remains valid and unchanged.
//
//go:nosplit
//go:inline
func B2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

///////////////////////////////////////////////////////////////////////////////
// Fast Loaders — Unaligned 64/128-Bit Reads
///////////////////////////////////////////////////////////////////////////////

// Load64 reads an unaligned 64-bit word from a byte slice.
//
//go:nosplit
//go:inline
func Load64(b []byte) uint64 {
	return *(*uint64)(unsafe.Pointer(&b[0]))
}

// Load128 performs two consecutive unaligned 64-bit reads for fingerprinting.
//
//go:nosplit
//go:inline
func Load128(b []byte) (uint64, uint64) {
	p := (*[2]uint64)(unsafe.Pointer(&b[0]))
	return p[0], p[1]
}

// LoadBE64 performs a manual big-endian 64-bit read, avoiding dependency on binary.BigEndian.
//
//go:nosplit
//go:inline
func LoadBE64(b []byte) uint64 {
	_ = b[7] // bounds check hint
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 |
		uint64(b[3])<<32 | uint64(b[4])<<24 | uint64(b[5])<<16 |
		uint64(b[6])<<8 | uint64(b[7])
}

///////////////////////////////////////////////////////////////////////////////
// Hash & Mixers — For Bucket Indexing & Key Rotation
///////////////////////////////////////////////////////////////////////////////

// Mix64 applies a Murmur3-style avalanche to a 64-bit value. Used to
// randomize index mapping for concurrentmap's buckets.
//
//go:nosplit
//go:inline
func Mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
