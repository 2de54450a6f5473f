package internal

// Context is a value inherited down the owner tree: a descendant owner
// sees whatever an ancestor last Set, or its initial value if none of
// its ancestors ever set it. Keyed by a unique token pointer instead of
// the Context value itself so two contexts with equal initial values
// never collide.
type Context struct {
	token   *struct{}
	initial any
}

// NewContext creates a context with the given initial/default value.
func (r *Runtime) NewContext(initial any) *Context {
	return &Context{token: new(struct{}), initial: initial}
}

// ContextValue walks up the owner tree from the currently active owner,
// returning the nearest ancestor's Set value, or c's initial value if no
// ancestor ever set one.
func (r *Runtime) ContextValue(c *Context) any {
	r.checkSingleThreaded()
	for owner := r.currentOwner; !owner.IsNil(); {
		n, ok := r.nodes.Get(owner)
		if !ok {
			break
		}
		if n.context != nil {
			if v, has := n.context[c.token]; has {
				return v
			}
		}
		owner = n.parent
	}
	return c.initial
}

// ContextSet stores value for c against the currently active owner.
// Outside any owner, Set has nothing to attach to and is a no-op.
func (r *Runtime) ContextSet(c *Context, value any) {
	r.checkSingleThreaded()
	if r.currentOwner.IsNil() {
		return
	}
	n := r.node(r.currentOwner)
	if n.context == nil {
		n.context = make(map[*struct{}]any)
	}
	n.context[c.token] = value
}
