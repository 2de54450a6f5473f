package internal

// NewScopeNode runs setupFn with scope capture active — an owner context
// distinct from dependency tracking — registering any
// effects/computeds/scopes created during setupFn as children of the new
// scope, without producing any dependency edges of its own.
func (r *Runtime) NewScopeNode(setupFn func()) Key {
	n := newBareNode(KindScope, FlagWatching|FlagDirty)
	key := r.nodes.Insert(n)
	r.registerChild(key)

	r.runAsOwner(key, setupFn)

	r.node(key).flags.Clear(FlagDirty)
	return key
}

// CleanupScope fires key's cleanups in LIFO order, recursively disposes
// its children, drains its links, and removes it from the arena. Any
// later operation against key fails with ErrDisposed.
func (r *Runtime) CleanupScope(key Key) error {
	r.checkSingleThreaded()
	if !r.nodes.Contains(key) {
		return ErrDisposed
	}
	r.disposeNode(key)
	return nil
}

// OnScopeError registers fn to catch a panic raised during key's own
// setup or during any descendant's run, instead of letting it propagate
// past key.
func (r *Runtime) OnScopeError(key Key, fn func(any)) error {
	r.checkSingleThreaded()
	n, ok := r.nodes.Get(key)
	if !ok {
		return ErrDisposed
	}
	n.catchers = append(n.catchers, fn)
	return nil
}
