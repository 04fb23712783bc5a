// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: main.go — ebrbench: reclamation engine benchmark/demo CLI
//
// Purpose:
//   - Drives a Domain under a chosen client workload (stack, queue, or
//     concurrentmap) with a pool of pinned worker goroutines, for the
//     configured duration, then reports throughput and live-node samples.
//   - Exercises retireguard end to end via a dedicated churn workload that
//     runs alongside the chosen client structure.
//
// Phases:
//   Phase 0: flags + config file merge
//   Phase 1: build Domain, Tracker, per-worker epochlog rings, workers
//   Phase 2: steady-state run for the configured duration
//   Phase 3: shutdown, drain samples, report
// ─────────────────────────────────────────────────────────────────────────────

package main

import (
	"os"
	"os/signal"
	"reflect"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"ebr"
	"ebr/alloctracker"
	"ebr/control"
	"ebr/debug"
	"ebr/epochlog"
)

func main() {
	defaults := DefaultConfig()

	var (
		configPath      string
		threshold       = flag.Uint32("threshold", defaults.UpdateThreshold, "epoch update threshold")
		workers         = flag.Int("workers", defaults.Workers, "number of worker goroutines")
		durationSeconds = flag.Int("duration", defaults.DurationSeconds, "run length in seconds")
		structure       = flag.String("structure", string(defaults.Structure), "workload: stack, queue, or map")
		pin             = flag.Bool("pin", defaults.Pin, "pin worker goroutines to CPU cores")
		ringSize        = flag.Int("ring-size", defaults.RingSize, "diagnostic log ring capacity (power of two)")
		retireGuard     = flag.Bool("retire-guard", defaults.RetireGuard, "run the retireguard churn workload alongside the chosen structure")
	)
	flag.StringVar(&configPath, "config", "", "optional JSON-with-comments workload config file")
	flag.Parse()

	// Config file fills in anything a flag did not explicitly set; flags
	// the caller actually passed always win: defaults, then file, then
	// explicit CLI overrides.
	cfg, err := LoadConfigFile(configPath, defaults)
	if err != nil {
		debug.DropError("CONFIG", err)
		os.Exit(1)
	}

	if flag.CommandLine.Changed("threshold") {
		cfg.UpdateThreshold = *threshold
	}
	if flag.CommandLine.Changed("workers") {
		cfg.Workers = *workers
	}
	if flag.CommandLine.Changed("duration") {
		cfg.DurationSeconds = *durationSeconds
	}
	if flag.CommandLine.Changed("structure") {
		cfg.Structure = Structure(*structure)
	}
	if flag.CommandLine.Changed("pin") {
		cfg.Pin = *pin
	}
	if flag.CommandLine.Changed("ring-size") {
		cfg.RingSize = *ringSize
	}
	if flag.CommandLine.Changed("retire-guard") {
		cfg.RetireGuard = *retireGuard
	}

	report := run(cfg)

	encoded, err := report.Encode()
	if err != nil {
		debug.DropError("REPORT", err)
		os.Exit(1)
	}
	os.Stdout.Write(encoded)
	os.Stdout.Write([]byte("\n"))
}

func run(cfg Config) Report {
	tracker := alloctracker.New(8)
	domain := ebr.NewDomain(cfg.UpdateThreshold, ebr.WithAllocationTracker(tracker))

	var totalOps atomic.Int64
	var droppedLog atomic.Int64

	churn := newChurnStack()
	churnSlot := tracker.Register(reflect.TypeOf((*churnNode)(nil)).String())
	wl := newWorkload(cfg.Structure)

	stopSignaled := make(chan struct{})
	go waitForSignal(stopSignaled)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		workerID := i
		diagLog := epochlog.New(cfg.RingSize) // one ring per worker: a Ring takes a single producer
		go func() {
			defer wg.Done()
			runWorker(workerID, cfg, domain, wl, churn, churnSlot, diagLog, &totalOps, &droppedLog)
		}()
	}

	s := newSampler()
	startedAt := time.Now()
	s.schedulePeriodic(cfg.Duration(), cfg.Duration()/10+time.Millisecond, func(at time.Duration) Sample {
		return Sample{AtSeconds: at.Seconds(), LiveNodes: liveNodes(tracker)}
	})

	deadline := time.After(cfg.Duration())
	go s.run(startedAt)

	select {
	case <-deadline:
	case <-stopSignaled:
	}

	control.Shutdown()
	wg.Wait()

	samples := s.drain()
	return newReport(cfg, totalOps.Load(), droppedLog.Load(), churn.doubleHits.Load(), samples)
}

func liveNodes(tracker *alloctracker.Tracker) map[string]int64 {
	out := make(map[string]int64)
	for name, counts := range tracker.Snapshot() {
		out[name] = counts.Live()
	}
	return out
}

func waitForSignal(stopSignaled chan struct{}) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	debug.DropMessage("SIGNAL", "received interrupt, shutting down")
	close(stopSignaled)
}

// runWorker pins itself (if configured), acquires a Handle, then spins
// performing operations against the chosen structure and the retireguard
// churn workload until control.Shutdown has been called.
func runWorker(
	id int,
	cfg Config,
	domain *ebr.Domain,
	wl workload,
	churn *churnStack,
	churnSlot *alloctracker.Slot,
	diagLog *epochlog.Ring,
	totalOps, droppedLog *atomic.Int64,
) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if cfg.Pin {
		if err := pinCurrentThread(id % runtime.NumCPU()); err != nil {
			debug.DropError("PIN", err)
		}
	}

	h := domain.Acquire()
	defer h.Release()

	stopFlag, _ := control.Flags()

	var n uint64
	for atomic.LoadUint32(stopFlag) == 0 {
		n++

		before := h.CurrentLocalEpoch()
		wl.step(h, id, n)

		if cfg.RetireGuard {
			churnSlot.Alloc()
			churn.push(h)
			churn.pop(h)
		}

		if after := h.CurrentLocalEpoch(); before < ebr.NumEpochs && after != before {
			if !diagLog.Push(epochlog.Record{
				Old:            before,
				New:            after,
				HandleID:       uint64(id),
				TimestampNanos: uint64(time.Now().UnixNano()),
			}) {
				droppedLog.Add(1)
			}
		}

		totalOps.Add(1)
		control.SignalActivity()
	}
}
