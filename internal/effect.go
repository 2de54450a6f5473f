package internal

// NewEffectNode creates an effect and runs it immediately, once, inside
// tracking, registering it as a child of the currently
// active owner if any.
func (r *Runtime) NewEffectNode(fn func()) Key {
	n := newBareNode(KindEffect, FlagWatching|FlagDirty)
	n.effectFn = fn
	key := r.nodes.Insert(n)
	r.registerChild(key)
	r.recomputeEffect(key)
	return key
}

// recomputeEffect tears down the previous run's children/cleanups and
// re-tracks a fresh run of the effect function — reconciling the
// dependency list against this run's access order via RunTracked's
// cursor rather than rebuilding it from scratch — applying the
// cleanup-before-rerun rule nested effects require too.
func (r *Runtime) recomputeEffect(key Key) {
	n := r.node(key)

	r.teardownForRerun(key)

	r.runAsOwner(key, func() {
		r.RunTracked(key, func() {
			n.effectFn()
		})
	})

	n.flags.Clear(FlagDirty | FlagPending)
}

// DisposeEffect tears down an effect early, outside the normal owning
// scope's cleanup.
func (r *Runtime) DisposeEffect(key Key) error {
	r.checkSingleThreaded()
	if !r.nodes.Contains(key) {
		return ErrDisposed
	}
	r.disposeNode(key)
	return nil
}
