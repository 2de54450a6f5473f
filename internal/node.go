package internal

// NodeFlags is the node state-machine bitset. Bits are orthogonal; a
// node may hold several at once. Hot paths (propagate, update) dispatch
// on these bits rather than on Kind.
type NodeFlags uint8

const (
	FlagNone NodeFlags = 0

	// FlagMutable marks a producer whose value is set externally (a signal).
	FlagMutable NodeFlags = 1 << 0
	// FlagWatching marks a node that subscribes to producers (computed,
	// effect, scope).
	FlagWatching NodeFlags = 1 << 1
	// FlagDirty marks a node with at least one changed dependency; it
	// must recompute on next read.
	FlagDirty NodeFlags = 1 << 2
	// FlagPending marks a node that may be dirty; verify by walking its
	// dependencies before trusting the cached value.
	FlagPending NodeFlags = 1 << 3
	// FlagQueued marks a node present in the pending-effect queue.
	FlagQueued NodeFlags = 1 << 4
)

func (f NodeFlags) Has(flag NodeFlags) bool { return f&flag != 0 }
func (f *NodeFlags) Set(flag NodeFlags)     { *f |= flag }
func (f *NodeFlags) Clear(flag NodeFlags)   { *f &^= flag }

// Kind tags which of the four node variants a Node is. Beyond
// construction and payload dispatch, the hot path consults it in two
// places: propagate enqueues a subscriber-less node only if it is an
// effect or scope, and update picks the recompute routine by kind.
type Kind uint8

const (
	KindSignal Kind = iota
	KindComputed
	KindEffect
	KindScope
)

// Node is a single participant in the dependency graph: a signal,
// computed, effect, or scope. All four variants share one struct — a
// tagged union via Kind plus flag bits, so the hot paths never need a
// type switch.
type Node struct {
	kind  Kind
	flags NodeFlags

	// subscriber list (outgoing edges to consumers) and dependency list
	// (incoming edges from producers), both link-pool keys.
	subsHead, subsTail Key
	depsHead, depsTail Key

	// cursor into depsHead..depsTail used by the tracking protocol
	// during this node's tracked run. NoKey means "at the
	// tail" (every existing dep has been consumed; any allocation or
	// move appends).
	cursor Key

	// --- signal / computed payload ---
	value   any
	version int64
	equal   func(a, b any) bool

	// computed-only: recompute function.
	compute func() any

	// effect-only
	effectFn func()

	// owner-tree bookkeeping (computed, effect, scope — never signal):
	// parent/sibling pointers form the child list disposeChildren walks
	// for bulk teardown, and cleanups/catchers are this node's own.
	parent       Key
	prevSibling  Key
	nextSibling  Key
	childrenHead Key
	cleanups     []func()
	catchers     []func(any)
	context      map[*struct{}]any
}

// newBareNode returns a Node with every Key-typed field initialized to
// NoKey. Go's zero value for Key names slot 0, not "no reference" — every
// Node literal must go through this to avoid accidentally linking to
// whatever happens to occupy slot 0.
func newBareNode(kind Kind, flags NodeFlags) Node {
	return Node{
		kind:  kind,
		flags: flags,

		subsHead: NoKey, subsTail: NoKey,
		depsHead: NoKey, depsTail: NoKey,
		cursor: NoKey,

		parent: NoKey, prevSibling: NoKey, nextSibling: NoKey, childrenHead: NoKey,
	}
}
