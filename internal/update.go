package internal

// update ensures key's cached value is fresh: a DIRTY
// node recomputes unconditionally; a PENDING node first verifies its
// WATCHING dependencies (recursively updating any that are themselves
// dirty or pending) and only recomputes if one of them actually changed
// value, otherwise it is downgraded straight to clean; any other node is
// already clean and is returned as-is.
func (r *Runtime) update(key Key) {
	n := r.node(key)

	if n.flags.Has(FlagDirty) {
		r.recompute(key)
		return
	}

	if !n.flags.Has(FlagPending) {
		return
	}

	changed := false
	for cur := n.depsHead; !cur.IsNil(); cur = r.link(cur).nextDep {
		dep := r.link(cur).producer
		depNode := r.node(dep)
		if !depNode.flags.Has(FlagWatching) {
			continue
		}
		if !depNode.flags.Has(FlagDirty) && !depNode.flags.Has(FlagPending) {
			continue
		}

		before := depNode.version
		r.update(dep)
		if depNode.version != before {
			changed = true
		}
	}

	if changed {
		n.flags.Clear(FlagPending)
		n.flags.Set(FlagDirty)
		r.recompute(key)
		return
	}

	n.flags.Clear(FlagPending)
}

// recompute dispatches the actual user-callback invocation by node kind.
// Signals never recompute; scopes run once at construction and never
// again.
func (r *Runtime) recompute(key Key) {
	n := r.node(key)
	switch n.kind {
	case KindComputed:
		r.recomputeComputed(key)
	case KindEffect:
		r.recomputeEffect(key)
	}
}
