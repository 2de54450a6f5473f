package internal

// NewSignalNode creates a signal node: MUTABLE, no dependants yet,
// current value set to initial. equal may be nil, in which case the
// default applies: values are always treated as different.
func (r *Runtime) NewSignalNode(initial any, equal func(a, b any) bool) Key {
	n := newBareNode(KindSignal, FlagMutable)
	n.value = initial
	n.equal = equal
	return r.nodes.Insert(n)
}

// ReadSignal performs a tracked read: links the signal to the active
// subscriber (if any) and returns the current value.
func (r *Runtime) ReadSignal(key Key) any {
	r.checkSingleThreaded()
	r.track(key)
	return r.node(key).value
}

// ReadSignalUntracked bypasses dependency tracking.
func (r *Runtime) ReadSignalUntracked(key Key) any {
	r.checkSingleThreaded()
	return r.node(key).value
}

// WriteSignal sets a new value, bumping the version and propagating to
// subscribers if the value differs under the signal's equality
// function.
func (r *Runtime) WriteSignal(key Key, v any) {
	r.checkSingleThreaded()

	n := r.node(key)
	if n.equal != nil && n.equal(n.value, v) {
		return
	}

	n.value = v
	n.version++
	r.propagate(key, true)
	r.afterWrite()
}
