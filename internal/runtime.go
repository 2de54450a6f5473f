package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// sessions maps a goroutine id to the Runtime it is currently driving, so
// that each goroutine gets an independent graph without any locking on
// the hot path.
var sessions sync.Map

// GetRuntime returns the Runtime bound to the calling goroutine, creating
// one on first touch.
func GetRuntime() *Runtime {
	gid := goid.Get()
	if r, ok := sessions.Load(gid); ok {
		return r.(*Runtime)
	}
	r := NewRuntime(gid)
	sessions.Store(gid, r)
	return r
}

// Runtime is the per-goroutine mutable graph state: the node arena,
// link pool, active subscriber, batch depth, queued effects, and the
// flush reentrancy guard.
type Runtime struct {
	ownerGID int64

	nodes *Arena[Node]
	links *Arena[Link]

	// tracking protocol state: which node dependency reads link to, and
	// whether tracking is currently suppressed (Untrack).
	activeSub Key
	tracking  bool

	// currentOwner is the innermost effect/computed/scope currently
	// running, used for on_cleanup registration and child attachment.
	// Distinct from activeSub: a scope's setup runs as an owner without
	// ever tracking dependencies.
	currentOwner Key

	batchDepth  int
	queue       []Key // FIFO queued effect/scope keys
	notifyDepth int
}

// NewRuntime constructs an empty Runtime bound to ownerGID.
func NewRuntime(ownerGID int64) *Runtime {
	return &Runtime{
		ownerGID:     ownerGID,
		nodes:        NewArena[Node](),
		links:        NewArena[Link](),
		activeSub:    NoKey,
		tracking:     true,
		currentOwner: NoKey,
	}
}

// checkSingleThreaded panics with a ConcurrencyError if the calling
// goroutine differs from the one that owns this Runtime. Called from the
// methods behind reads, writes, disposal, batching, cleanup/catcher
// registration and context access, so a cross-goroutine touch through a
// handle fails loudly instead of racing silently. The node constructors,
// NewContext and RunUntracked do not call it; the flux package reaches
// them only through GetRuntime on the calling goroutine.
func (r *Runtime) checkSingleThreaded() {
	if gid := goid.Get(); gid != r.ownerGID {
		panic(ConcurrencyError{OwnerGID: r.ownerGID, CallerGID: gid})
	}
}
