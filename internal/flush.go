package internal

// afterWrite runs the post-write hook: flush immediately unless a batch
// is open.
func (r *Runtime) afterWrite() {
	if r.batchDepth == 0 {
		r.flush()
	}
}

// StartBatch, EndBatch and RunBatch implement the batching discipline:
// writes inside a batch still propagate (marking nodes dirty or pending
// and queuing effects) but the effect queue is only drained once the
// outermost batch ends.
func (r *Runtime) StartBatch() {
	r.checkSingleThreaded()
	r.batchDepth++
}

func (r *Runtime) EndBatch() error {
	r.checkSingleThreaded()
	if r.batchDepth == 0 {
		return ErrUnbalancedBatch
	}
	r.batchDepth--
	if r.batchDepth == 0 {
		r.flush()
	}
	return nil
}

// RunBatch wraps fn in a single start/end pair, restoring batch_depth
// even if fn panics.
func (r *Runtime) RunBatch(fn func()) {
	r.StartBatch()
	defer func() { _ = r.EndBatch() }()
	fn()
}

// flush drains the queued-effect FIFO. notifyDepth guards
// reentrancy: a flush triggered by a write from inside a running effect
// returns immediately, since the outermost invocation's loop will simply
// see the newly queued key appended to the tail of the same slice and
// keep draining.
func (r *Runtime) flush() {
	if r.notifyDepth > 0 {
		return
	}
	r.notifyDepth++
	defer func() { r.notifyDepth-- }()

	for len(r.queue) > 0 {
		key := r.queue[0]
		r.queue = r.queue[1:]

		n, ok := r.nodes.Get(key)
		if !ok || !n.flags.Has(FlagQueued) {
			continue // detached before flush reached it
		}

		r.runQueuedNode(key, n)
	}
}

// runQueuedNode invokes update on a single popped queue entry, always
// clearing QUEUED afterward — including when the user callback panics —
// so a later write can re-queue the same node cleanly.
func (r *Runtime) runQueuedNode(key Key, n *Node) {
	defer func() {
		n.flags.Clear(FlagQueued)
		if rec := recover(); rec != nil {
			panic(rec)
		}
	}()

	if n.flags.Has(FlagDirty) || n.flags.Has(FlagPending) {
		r.update(key)
	}
}
