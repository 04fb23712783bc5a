package ebr

// orphan bundles the retire lists a Handle was still holding when it was
// released. It is itself Retirable: once adopted, it is filed onto the
// adopting Handle's own retire list at targetEpoch, so the ordinary
// draining path destroys it and, transitively (via drain), every node it
// carries — exactly the original's `orphan<Epochs>` used as its own
// deletable_object.
type orphan struct {
	Node

	targetEpoch uint32
	lists       [NumEpochs]Retirable

	// orphanNext links the registry's orphan list. It is distinct from
	// Node's own next link, which is only valid once the orphan itself has
	// been filed onto a retire list.
	orphanNext *orphan
}

func newOrphan(target uint32, lists [NumEpochs]Retirable) *orphan {
	o := &orphan{targetEpoch: target, lists: lists}
	setDeleter(o, o.drainInheritedLists)
	return o
}

// drainInheritedLists is the orphan's own destruction hook.
func (o *orphan) drainInheritedLists() {
	for i := range o.lists {
		n := o.lists[i]
		o.lists[i] = nil
		for n != nil {
			next := n.ebrHeader().next
			n.ebrHeader().next = nil
			deleteSelf(n)
			n = next
		}
	}
}
