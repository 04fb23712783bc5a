package ebr

import "reflect"

// typeNameOf returns a stable, human-readable name for a retired node's
// concrete type, used only as the key an optional Tracker buckets reclaim
// counts by (§D.3's per-type tracked-object registration). It has no
// bearing on reclamation correctness.
func typeNameOf(r Retirable) string {
	t := reflect.TypeOf(r)
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
