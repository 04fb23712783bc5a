// control.go — Global control flags and activity management for pinned benchmark workers
// ============================================================================
// WORKER CONTROL ORCHESTRATION
// ============================================================================
//
// Control provides lightweight global signaling for cmd/ebrbench's pinned
// worker goroutines: a hot/idle indicator driven by observed throughput
// and a stop flag for graceful shutdown, both readable without locking.
//
// Architecture overview:
//   • Global hot/stop flags for lock-free inter-goroutine communication
//   • Nanosecond-precision activity tracking with automatic cooldown
//   • Zero-allocation flag access for hot path performance
//   • Graceful shutdown coordination across all pinned workers
//
// Threading model:
//   • A worker calls SignalActivity() after completing a unit of work.
//   • Workers poll Flags() between units to decide whether to keep
//     spinning; PollCooldown() clears the hot flag once cooldownNs has
//     passed without activity.
//   • The orchestrator calls Shutdown() once the configured run duration
//     elapses; workers observe it via Flags() and exit cleanly.

package control

import "time"

// ============================================================================
// GLOBAL STATE MANAGEMENT
// ============================================================================

var (
	// Global coordination flags - accessed by all pinned workers
	hot  uint32 // Activity indicator: 1 = workers actively completing ops, 0 = idle
	stop uint32 // Shutdown signal: 1 = initiate graceful shutdown, 0 = running

	// Activity timing for automatic cooldown management
	lastHot    int64                    // Nanosecond timestamp of last observed activity
	cooldownNs = int64(1 * time.Second) // Cooldown duration: 1 second idle period
)

// ============================================================================
// ACTIVITY SIGNALING
// ============================================================================

// SignalActivity marks the workload as active and records precise timing
// for automatic cooldown management. Called by a worker after completing
// a unit of work.
//
//go:norace
//go:nocheckptr
//go:nosplit
//go:inline
//go:registerparams
func SignalActivity() {
	hot = 1
	lastHot = time.Now().UnixNano()
}

// ============================================================================
// COOLDOWN MANAGEMENT
// ============================================================================

// PollCooldown implements automatic hot-flag clearance based on elapsed
// time since last activity. Intended to run inline inside a worker's spin
// loop to avoid unnecessary CPU spinning during idle periods.
//
//go:norace
//go:nocheckptr
//go:nosplit
//go:inline
//go:registerparams
func PollCooldown() {
	if hot == 1 && time.Now().UnixNano()-lastHot > cooldownNs {
		hot = 0
	}
}

// ============================================================================
// SHUTDOWN
// ============================================================================

// Shutdown requests that every pinned worker terminate.
//
//go:norace
//go:nocheckptr
//go:nosplit
//go:inline
//go:registerparams
func Shutdown() {
	stop = 1
}

// ============================================================================
// FLAG ACCESS
// ============================================================================

// Flags returns direct pointers to the global coordination flags for
// zero-allocation polling from a pinned worker's hot loop.
//
//go:norace
//go:nocheckptr
//go:nosplit
//go:inline
//go:registerparams
func Flags() (stopFlag, hotFlag *uint32) {
	return &stop, &hot
}
