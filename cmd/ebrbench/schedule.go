// schedule.go — discrete-event sampler for the running benchmark: a
// min-heap of timestamped events drives a simulation clock forward,
// popping every event due at or before "now" and running its callback.
//
// Here the "simulation" is real: events are sample points on the
// benchmark's wall clock, and the deque is the queue of completed samples
// waiting to be attached to the final report, decoupling "when a sample
// was taken" from "when the report drains them".

package main

import (
	"cmp"
	"time"

	"github.com/addrummond/heap"
	"github.com/gammazero/deque"
)

type sampleEvent struct {
	At time.Duration
	Fn func(at time.Duration)
}

func (a *sampleEvent) Cmp(b *sampleEvent) int {
	return cmp.Compare(a.At, b.At)
}

// sampler schedules periodic snapshots of a live tracker for the
// duration of a run and collects them into a deque a caller drains once
// the run finishes.
type sampler struct {
	events heap.Heap[sampleEvent, heap.Min]
	out    deque.Deque[Sample]
}

func newSampler() *sampler {
	return &sampler{}
}

// schedulePeriodic pushes one event every interval from interval up to
// (and including) total, each of which calls snapshot and appends its result
// to the sampler's output deque.
func (s *sampler) schedulePeriodic(total, interval time.Duration, snapshot func(at time.Duration) Sample) {
	for at := interval; at <= total; at += interval {
		at := at
		heap.PushOrderable(&s.events, sampleEvent{
			At: at,
			Fn: func(at time.Duration) {
				s.out.PushBack(snapshot(at))
			},
		})
	}
}

// run advances the sampler's simulated clock, firing every scheduled
// event whose time has passed real elapsed wall-clock time via sleeping
// until each event is due.
func (s *sampler) run(startedAt time.Time) {
	for {
		event, ok := heap.PopOrderable(&s.events)
		if !ok {
			return
		}
		if remaining := event.At - time.Since(startedAt); remaining > 0 {
			time.Sleep(remaining)
		}
		event.Fn(event.At)
	}
}

// drain empties the sampler's completed-sample queue into a slice, in the
// order samples were taken.
func (s *sampler) drain() []Sample {
	out := make([]Sample, 0, s.out.Len())
	for s.out.Len() > 0 {
		out = append(out, s.out.PopFront())
	}
	return out
}
