package internal

// NewComputedNode creates a lazily-evaluated computed node: WATCHING and
// DIRTY at birth, forcing the first read to compute it. It
// is registered as a child of the currently active owner, if any.
func (r *Runtime) NewComputedNode(compute func() any, equal func(a, b any) bool) Key {
	n := newBareNode(KindComputed, FlagWatching|FlagDirty)
	n.compute = compute
	n.equal = equal
	key := r.nodes.Insert(n)
	r.registerChild(key)
	return key
}

// ReadComputed performs a tracked read: links the computed to the active
// subscriber, ensures the cached value is fresh, and returns it.
func (r *Runtime) ReadComputed(key Key) any {
	r.checkSingleThreaded()
	r.track(key)
	r.update(key)
	return r.node(key).value
}

// ReadComputedUntracked bypasses dependency tracking but still ensures
// freshness.
func (r *Runtime) ReadComputedUntracked(key Key) any {
	r.checkSingleThreaded()
	r.update(key)
	return r.node(key).value
}

// recomputeComputed runs a computed node's recompute procedure: tear
// down its previous run's children/cleanups, re-track a fresh run of its
// compute function — reconciling the dependency list against this run's
// access order via RunTracked's cursor rather than rebuilding it from
// scratch — and propagate onward only if the resulting value actually
// differs.
func (r *Runtime) recomputeComputed(key Key) {
	n := r.node(key)
	prevVersion := n.version

	r.teardownForRerun(key)

	r.runAsOwner(key, func() {
		r.RunTracked(key, func() {
			r.commitComputedValue(n, n.compute())
		})
	})

	n.flags.Clear(FlagDirty | FlagPending)

	if n.version != prevVersion {
		r.propagate(key, true)
	}
}

func (r *Runtime) commitComputedValue(n *Node, newValue any) {
	if n.equal != nil && n.equal(n.value, newValue) {
		return
	}
	n.value = newValue
	n.version++
}
