package internal

// RunTracked executes fn with key as the active tracking subscriber,
// resetting its dependency cursor to the head first and trimming any
// unvisited tail edges afterwards. Re-entrancy is handled
// by the Go call stack itself: each nested RunTracked call saves and
// restores the previous active subscriber via defer, so an outer
// subscriber's own cursor, stored on its Node, is untouched by whatever
// runs underneath it. If fn panics, the cursor is restored to its
// pre-call value and nothing is trimmed: no edge from before the run is
// dropped, but edges reused, moved or allocated during the partial run
// keep their new positions.
func (r *Runtime) RunTracked(key Key, fn func()) {
	n := r.node(key)

	prevSub := r.activeSub
	prevTracking := r.tracking
	prevCursor := n.cursor

	r.activeSub = key
	r.tracking = true
	n.cursor = n.depsHead

	committed := false
	defer func() {
		r.activeSub = prevSub
		r.tracking = prevTracking
		if !committed {
			n.cursor = prevCursor
		}
	}()

	fn()

	for cur := n.cursor; !cur.IsNil(); {
		next := r.link(cur).nextDep
		r.unlink(cur)
		cur = next
	}
	n.cursor = NoKey
	committed = true
}

// RunUntracked executes fn with tracking disabled: any read inside fn
// bypasses track() entirely and produces no dependency edge.
func (r *Runtime) RunUntracked(fn func()) {
	prev := r.tracking
	r.tracking = false
	defer func() { r.tracking = prev }()
	fn()
}

// track implements the dependency-tracking protocol. The active
// subscriber's dependency list is kept ordered by this run's access
// order via a cursor: reuse the link in place if it already names
// producer, else search forward for an existing edge and splice it into
// the cursor's position, else allocate a fresh edge there. Producer's
// subscriber list is never reordered — only the dependency list's order
// is a tracked invariant. Reading the same producer more than once in a
// single run links it only once: the edges already confirmed this run
// are exactly those before the cursor, so a repeat read that finds
// producer there (the edge right before the cursor is checked first, then
// the rest of that prefix) is a duplicate rather than a new or reordered
// dependency.
func (r *Runtime) track(producer Key) {
	if r.activeSub.IsNil() || !r.tracking {
		return
	}

	sub := r.activeSub
	subNode := r.node(sub)
	cursor := subNode.cursor

	if !cursor.IsNil() && r.link(cursor).producer == producer {
		subNode.cursor = r.link(cursor).nextDep
		return
	}

	if last := anchorBeforeCursor(r, subNode, cursor); !last.IsNil() && r.link(last).producer == producer {
		return
	}

	for cur := subNode.depsHead; !cur.IsNil() && cur != cursor; cur = r.link(cur).nextDep {
		if r.link(cur).producer == producer {
			return
		}
	}

	for cur := cursor; !cur.IsNil(); cur = r.link(cur).nextDep {
		if r.link(cur).producer != producer {
			continue
		}

		r.removeDepLink(cur)
		r.insertDepAfter(sub, anchorBeforeCursor(r, subNode, cursor), cur)
		subNode.cursor = cursor
		return
	}

	linkKey := r.links.Insert(Link{producer: producer, subscriber: sub, prevDep: NoKey, nextDep: NoKey, prevSub: NoKey, nextSub: NoKey})
	r.insertDepAfter(sub, anchorBeforeCursor(r, subNode, cursor), linkKey)
	r.appendSub(producer, linkKey)
	subNode.cursor = cursor
}

// anchorBeforeCursor returns the link key after which a new or moved
// dependency edge should be inserted so that it ends up immediately
// before cursor (or at the tail, if cursor is NoKey).
func anchorBeforeCursor(r *Runtime, subNode *Node, cursor Key) Key {
	if cursor.IsNil() {
		return subNode.depsTail
	}
	return r.link(cursor).prevDep
}
