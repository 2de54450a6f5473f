package internal

// Link is an edge: it belongs simultaneously to producer's subscriber
// list and subscriber's dependency list.
type Link struct {
	producer   Key
	subscriber Key

	prevSub, nextSub Key // position in producer.subscribers
	prevDep, nextDep Key // position in subscriber.dependencies
}

func (r *Runtime) node(k Key) *Node { return r.nodes.MustGet(k) }
func (r *Runtime) link(k Key) *Link { return r.links.MustGet(k) }

// appendSub appends linkKey to producer's subscriber list (tail).
func (r *Runtime) appendSub(producer, linkKey Key) {
	p := r.node(producer)
	l := r.link(linkKey)
	l.prevSub = p.subsTail
	l.nextSub = NoKey
	if p.subsTail.IsNil() {
		p.subsHead = linkKey
	} else {
		r.link(p.subsTail).nextSub = linkKey
	}
	p.subsTail = linkKey
}

// removeSubLink unlinks linkKey from its producer's subscriber list.
func (r *Runtime) removeSubLink(linkKey Key) {
	l := r.link(linkKey)
	p := r.node(l.producer)

	if l.prevSub.IsNil() {
		p.subsHead = l.nextSub
	} else {
		r.link(l.prevSub).nextSub = l.nextSub
	}
	if l.nextSub.IsNil() {
		p.subsTail = l.prevSub
	} else {
		r.link(l.nextSub).prevSub = l.prevSub
	}
	l.prevSub, l.nextSub = NoKey, NoKey
}

// insertDepAfter splices linkKey into subscriber's dependency list
// immediately after afterKey (NoKey meaning "at the head").
func (r *Runtime) insertDepAfter(subscriber, afterKey, linkKey Key) {
	s := r.node(subscriber)
	l := r.link(linkKey)

	if afterKey.IsNil() {
		l.prevDep = NoKey
		l.nextDep = s.depsHead
		if !s.depsHead.IsNil() {
			r.link(s.depsHead).prevDep = linkKey
		}
		s.depsHead = linkKey
		if s.depsTail.IsNil() {
			s.depsTail = linkKey
		}
		return
	}

	after := r.link(afterKey)
	l.prevDep = afterKey
	l.nextDep = after.nextDep
	if after.nextDep.IsNil() {
		s.depsTail = linkKey
	} else {
		r.link(after.nextDep).prevDep = linkKey
	}
	after.nextDep = linkKey
}

// removeDepLink unlinks linkKey from its subscriber's dependency list
// only (the caller is responsible for also calling removeSubLink and/or
// returning the key to the pool).
func (r *Runtime) removeDepLink(linkKey Key) {
	l := r.link(linkKey)
	s := r.node(l.subscriber)

	if l.prevDep.IsNil() {
		s.depsHead = l.nextDep
	} else {
		r.link(l.prevDep).nextDep = l.nextDep
	}
	if l.nextDep.IsNil() {
		s.depsTail = l.prevDep
	} else {
		r.link(l.nextDep).prevDep = l.prevDep
	}
	l.prevDep, l.nextDep = NoKey, NoKey
}

// unlink fully removes linkKey from both lists and returns it to the pool.
func (r *Runtime) unlink(linkKey Key) {
	r.removeSubLink(linkKey)
	r.removeDepLink(linkKey)
	r.links.Remove(linkKey)
}

// clearDeps drops every dependency edge of sub. Used only on permanent
// teardown (disposeNode) — a recompute instead reconciles the existing
// list in place via RunTracked's cursor, so it never needs to clear and
// rebuild from nothing.
func (r *Runtime) clearDeps(sub Key) {
	n := r.node(sub)
	for cur := n.depsHead; !cur.IsNil(); {
		next := r.link(cur).nextDep
		r.removeSubLink(cur)
		r.links.Remove(cur)
		cur = next
	}
	n.depsHead, n.depsTail, n.cursor = NoKey, NoKey, NoKey
}
