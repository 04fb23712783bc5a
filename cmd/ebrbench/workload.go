// workload.go — the three client-structure workloads ebrbench can drive,
// wrapped behind one interface so main.go can build exactly one shared
// instance of whichever structure was selected and hand every worker
// goroutine a reference to the same instance, instead of giving each
// worker its own private, uncontended copy.

package main

import (
	"fmt"

	"ebr"
	"ebr/concurrentmap"
	"ebr/queue"
	"ebr/stack"
)

// workload performs one unit of work against a shared structure using the
// calling goroutine's own Handle.
type workload interface {
	step(h *ebr.Handle, workerID int, n uint64)
}

func newWorkload(structure Structure) workload {
	switch structure {
	case StructureStack:
		return &stackWorkload{s: stack.New[uint64]()}
	case StructureQueue:
		return &queueWorkload{q: queue.New[uint64]()}
	default:
		return &mapWorkload{m: concurrentmap.NewStringMap[uint64](64)}
	}
}

type stackWorkload struct{ s *stack.Stack[uint64] }

func (w *stackWorkload) step(h *ebr.Handle, _ int, n uint64) {
	w.s.Push(h, n)
	w.s.Pop(h)
}

type queueWorkload struct{ q *queue.Queue[uint64] }

func (w *queueWorkload) step(h *ebr.Handle, _ int, n uint64) {
	w.q.Enqueue(h, n)
	w.q.Dequeue(h)
}

type mapWorkload struct{ m *concurrentmap.Map[string, uint64] }

func (w *mapWorkload) step(h *ebr.Handle, workerID int, n uint64) {
	key := fmt.Sprintf("worker-%d-key-%d", workerID, n%64)
	w.m.Store(h, key, n)
	w.m.Load(h, key)
}
