//go:build linux

// affinity_linux.go — CPU affinity pinning via sched_setaffinity(2), used
// to pin the calling OS thread to a single core. Routed through
// golang.org/x/sys/unix rather than a raw syscall and a hand-built mask
// table, since ebrbench is a cold-path CLI, not a per-message hot loop.

package main

import "golang.org/x/sys/unix"

func pinCurrentThread(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
