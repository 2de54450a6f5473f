package internal

// propagate walks producer's subscriber list after a value-level change
// (direct=true) or a transitive uncertainty push (direct=false).
func (r *Runtime) propagate(producer Key, direct bool) {
	n := r.node(producer)
	for cur := n.subsHead; !cur.IsNil(); {
		l := r.link(cur)
		sub := l.subscriber
		cur = l.nextSub
		r.propagateToNode(sub, direct)
	}
}

// propagateToNode applies one step of the push phase to a single
// subscriber, dispatching on its current flags: a node already DIRTY
// needs nothing more; a PENDING node is upgraded to DIRTY only by a
// direct (certain) push and otherwise left alone — either way, a node
// that already carries DIRTY or PENDING was reached earlier (by another
// incoming edge during this push, or by a previous push whose marks have
// not been pulled yet, e.g. an earlier write in the same batch) and its
// subscribers were already walked then, so there is nothing left to do. Any other node is being
// reached for the first time this push: mark it DIRTY or PENDING and
// either recurse into its own subscribers (if it has any) or enqueue it
// as a leaf effect/scope. A computed with no subscribers of its own
// stays lazy — it is marked dirty/pending but never enqueued, since
// nothing is watching it; it only recomputes when something eventually
// reads it.
func (r *Runtime) propagateToNode(subKey Key, direct bool) {
	n := r.node(subKey)

	switch {
	case n.flags.Has(FlagDirty):
		return

	case n.flags.Has(FlagPending):
		if direct {
			n.flags.Clear(FlagPending)
			n.flags.Set(FlagDirty)
		}
		return

	default:
		if direct {
			n.flags.Set(FlagDirty)
		} else {
			n.flags.Set(FlagPending)
		}

		if !n.subsHead.IsNil() {
			r.propagate(subKey, false)
		} else if n.kind == KindEffect || n.kind == KindScope {
			r.enqueueEffect(subKey)
		}
	}
}

// enqueueEffect appends key to the FIFO effect queue unless it is
// already present.
func (r *Runtime) enqueueEffect(key Key) {
	n := r.node(key)
	if n.flags.Has(FlagQueued) {
		return
	}
	n.flags.Set(FlagQueued)
	r.queue = append(r.queue, key)
}
