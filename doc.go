// ════════════════════════════════════════════════════════════════════════════════════════════════
// EPOCH-BASED RECLAMATION ENGINE
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Package ebr provides safe memory reclamation for lock-free data structures through
// epoch-based reclamation (EBR). Client code builds concurrent structures out of nodes
// holding concurrent pointer fields (package concurrentptr); the engine defers physical
// destruction of unlinked nodes until no goroutine can still hold a reference to them,
// without paying per-access reference counts.
//
// Core components:
//   - Domain: one independent instantiation of the engine (registry, global epoch, orphan list)
//   - Handle: a goroutine's local view into a Domain — entry counter, retire lists, control block
//   - GuardPtr: the RAII-style handle a caller holds while dereferencing a guarded pointer
//   - Node / Retirable: the mixin and interface a client node type embeds/satisfies
//
// Non-goals: no hazard pointers, no reference counting, no quiescent-state reclamation,
// no wait-freedom, no object relocation, no serialization or persistence.
// ════════════════════════════════════════════════════════════════════════════════════════════════

package ebr
