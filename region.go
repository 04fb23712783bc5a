package ebr

// RegionGuard is a marker, holding only its Hook, that opens a critical region for an
// unspecified set of pointer dereferences performed in its scope, without
// binding to any particular GuardPtr (the original's region_guard,
// xenium's escape hatch for code that wants to make several Acquire calls
// without paying N independent guards' nesting overhead).
//
// Go has no destructors: callers must call Close explicitly, typically
// via defer.
type RegionGuard struct {
	hook Hook
}

// NewRegionGuard opens a critical region on hook.
func NewRegionGuard(hook Hook) *RegionGuard {
	hook.EnterCritical()
	return &RegionGuard{hook: hook}
}

// Close closes the critical region opened by NewRegionGuard. Must be
// called exactly once.
func (g *RegionGuard) Close() {
	g.hook.LeaveCritical()
}
