package utils

import (
	"strings"
	"testing"
	"unsafe"
)

func TestB2s(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"empty slice", []byte{}, ""},
		{"single character", []byte{'a'}, "a"},
		{"ascii string", []byte("hello world"), "hello world"},
		{"utf-8 string", []byte("héllo wørld"), "héllo wørld"},
		{"binary data", []byte{0x00, 0x01, 0x02, 0xFF}, string([]byte{0x00, 0x01, 0x02, 0xFF})},
		{"large string", []byte(strings.Repeat("abcdefghij", 1000)), strings.Repeat("abcdefghij", 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := B2s(tt.input)
			if result != tt.expected {
				t.Errorf("B2s() = %q, expected %q", result, tt.expected)
			}
			if len(tt.input) > 0 {
				inputPtr := unsafe.Pointer(&tt.input[0])
				resultPtr := unsafe.Pointer(unsafe.StringData(result))
				if inputPtr != resultPtr {
					t.Error("B2s() should share underlying data with input slice")
				}
			}
		})
	}
}

func TestB2sZeroAllocation(t *testing.T) {
	input := []byte("test string for allocation testing")
	allocs := testing.AllocsPerRun(1000, func() {
		_ = B2s(input)
	})
	if allocs > 0 {
		t.Errorf("B2s() allocated memory: %f allocs/op", allocs)
	}
}

func TestLoad64(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected uint64
	}{
		{"all zeros", []byte{0, 0, 0, 0, 0, 0, 0, 0}, 0},
		{"all ones", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 0xFFFFFFFFFFFFFFFF},
		{"sequential bytes", []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, 0x0807060504030201},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Load64(tt.input); got != tt.expected {
				t.Errorf("Load64() = 0x%016X, expected 0x%016X", got, tt.expected)
			}
		})
	}
}

func TestLoad128(t *testing.T) {
	input := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10}
	r1, r2 := Load128(input)
	if r1 != 0x0807060504030201 {
		t.Errorf("Load128() first = 0x%016X, expected 0x0807060504030201", r1)
	}
	if r2 != 0x100F0E0D0C0B0A09 {
		t.Errorf("Load128() second = 0x%016X, expected 0x100F0E0D0C0B0A09", r2)
	}
}

func TestLoadBE64(t *testing.T) {
	input := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	if got := LoadBE64(input); got != 0x0102030405060708 {
		t.Errorf("LoadBE64() = 0x%016X, expected 0x0102030405060708", got)
	}
}

func TestMix64Deterministic(t *testing.T) {
	input := uint64(0x123456789abcdef0)
	if Mix64(input) != Mix64(input) {
		t.Error("Mix64() should be deterministic")
	}
}

func TestMix64Distribution(t *testing.T) {
	buckets := make([]int, 256)
	for i := uint64(0); i < 10000; i++ {
		buckets[Mix64(i)&255]++
	}
	expected := 10000 / 256
	tolerance := expected / 2
	for i, count := range buckets {
		if count < expected-tolerance || count > expected+tolerance {
			t.Errorf("bucket %d has %d items, expected ~%d (tolerance %d)", i, count, expected, tolerance)
		}
	}
}

func TestMix64Avalanche(t *testing.T) {
	input1 := uint64(0x123456789abcdef0)
	input2 := input1 ^ 1

	diff := Mix64(input1) ^ Mix64(input2)
	bitCount := 0
	for diff != 0 {
		bitCount++
		diff &= diff - 1
	}
	if bitCount < 20 || bitCount > 44 {
		t.Errorf("poor avalanche: only %d bits changed", bitCount)
	}
}

func TestZeroAllocation(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}

	t.Run("Load64", func(t *testing.T) {
		if allocs := testing.AllocsPerRun(1000, func() { _ = Load64(data) }); allocs > 0 {
			t.Errorf("Load64() allocated memory: %f allocs/op", allocs)
		}
	})
	t.Run("Load128", func(t *testing.T) {
		if allocs := testing.AllocsPerRun(1000, func() { _, _ = Load128(data) }); allocs > 0 {
			t.Errorf("Load128() allocated memory: %f allocs/op", allocs)
		}
	})
	t.Run("LoadBE64", func(t *testing.T) {
		if allocs := testing.AllocsPerRun(1000, func() { _ = LoadBE64(data) }); allocs > 0 {
			t.Errorf("LoadBE64() allocated memory: %f allocs/op", allocs)
		}
	})
	t.Run("Mix64", func(t *testing.T) {
		if allocs := testing.AllocsPerRun(1000, func() { _ = Mix64(0x123456789abcdef0) }); allocs > 0 {
			t.Errorf("Mix64() allocated memory: %f allocs/op", allocs)
		}
	})
}
