// Package flux implements a fine-grained, push-pull reactive signal
// graph: signals and computeds as producers, computeds/effects/scopes as
// consumers, wired through an intrusive dependency graph and updated in
// three phases (propagate, update, flush).
package flux

import "github.com/arbor-rx/flux/internal"

// Sentinel errors surfaced by the public API; see internal/errors.go for
// the conditions that produce them.
var (
	ErrUnbalancedBatch = internal.ErrUnbalancedBatch
	ErrNoActiveOwner   = internal.ErrNoActiveOwner
	ErrDisposed        = internal.ErrDisposed
)

// ConcurrencyError is panicked when a goroutine other than the one that
// created the touched graph accesses it.
type ConcurrencyError = internal.ConcurrencyError

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// Option configures a Signal or Computed at construction time.
type Option[T any] func(*config[T])

type config[T any] struct {
	equal func(a, b T) bool
}

// WithEqual overrides the equality function used to short-circuit
// propagation when a new value compares equal to the cached one. Without
// it, non-comparable element types always propagate on write/recompute —
// values are treated as different by default.
func WithEqual[T any](eq func(a, b T) bool) Option[T] {
	return func(c *config[T]) { c.equal = eq }
}

func buildConfig[T any](opts []Option[T]) config[T] {
	var cfg config[T]
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

func anyEqual[T any](eq func(a, b T) bool) func(a, b any) bool {
	if eq == nil {
		return nil
	}
	return func(a, b any) bool { return eq(as[T](a), as[T](b)) }
}

// Signal is a mutable reactive value: the sole producer that is set
// directly rather than derived.
type Signal[T any] struct {
	key internal.Key
	rt  *internal.Runtime
}

// NewSignal creates a signal with natural (==) equality short-circuiting
// for writes.
func NewSignal[T comparable](initial T, opts ...Option[T]) *Signal[T] {
	cfg := buildConfig(opts)
	if cfg.equal == nil {
		cfg.equal = func(a, b T) bool { return a == b }
	}
	rt := internal.GetRuntime()
	return &Signal[T]{key: rt.NewSignalNode(initial, anyEqual(cfg.equal)), rt: rt}
}

// NewSignalAny creates a signal over a non-comparable element type.
// Without WithEqual, every write is treated as a change.
func NewSignalAny[T any](initial T, opts ...Option[T]) *Signal[T] {
	cfg := buildConfig(opts)
	rt := internal.GetRuntime()
	return &Signal[T]{key: rt.NewSignalNode(initial, anyEqual(cfg.equal)), rt: rt}
}

// Read the current value, tracking the dependency if called within a
// reactive context (a computed or effect's run).
func (s *Signal[T]) Read() T { return as[T](s.rt.ReadSignal(s.key)) }

// Peek reads the current value without tracking a dependency.
func (s *Signal[T]) Peek() T { return as[T](s.rt.ReadSignalUntracked(s.key)) }

// Write a new value, triggering propagation to dependents if it differs
// under the signal's equality function.
func (s *Signal[T]) Write(v T) { s.rt.WriteSignal(s.key, v) }

// Computed is a lazily-evaluated, cached derived value.
type Computed[T any] struct {
	key internal.Key
	rt  *internal.Runtime
}

// NewComputed creates a computed with natural (==) equality
// short-circuiting.
func NewComputed[T comparable](compute func() T, opts ...Option[T]) *Computed[T] {
	cfg := buildConfig(opts)
	if cfg.equal == nil {
		cfg.equal = func(a, b T) bool { return a == b }
	}
	rt := internal.GetRuntime()
	return &Computed[T]{
		key: rt.NewComputedNode(func() any { return compute() }, anyEqual(cfg.equal)),
		rt:  rt,
	}
}

// NewComputedAny creates a computed over a non-comparable result type.
// Without WithEqual, every recompute is treated as a change.
func NewComputedAny[T any](compute func() T, opts ...Option[T]) *Computed[T] {
	cfg := buildConfig(opts)
	rt := internal.GetRuntime()
	return &Computed[T]{
		key: rt.NewComputedNode(func() any { return compute() }, anyEqual(cfg.equal)),
		rt:  rt,
	}
}

// Read the current value, recomputing first if stale, and tracking the
// dependency if called within a reactive context.
func (c *Computed[T]) Read() T { return as[T](c.rt.ReadComputed(c.key)) }

// Peek reads the current value (recomputing if stale) without tracking a
// dependency.
func (c *Computed[T]) Peek() T { return as[T](c.rt.ReadComputedUntracked(c.key)) }

// Effect is a reactive side effect, started immediately and re-run
// whenever any dependency it read during its last run changes.
type Effect struct {
	key internal.Key
	rt  *internal.Runtime
}

// NewEffect creates and immediately runs fn once inside tracking.
func NewEffect(fn func()) *Effect {
	rt := internal.GetRuntime()
	return &Effect{key: rt.NewEffectNode(fn), rt: rt}
}

// Dispose tears the effect down early: its cleanups run, its
// dependencies are dropped, and it will never run again.
func (e *Effect) Dispose() error { return e.rt.DisposeEffect(e.key) }

// Scope is an owner with no value of its own: a grouping node whose
// children (effects, computeds, nested scopes) are torn down together.
type Scope struct {
	key internal.Key
	rt  *internal.Runtime
}

// NewScope runs setupFn with the new scope active as the current owner,
// so that anything created inside setupFn becomes its child.
func NewScope(setupFn func()) *Scope {
	rt := internal.GetRuntime()
	return &Scope{key: rt.NewScopeNode(setupFn), rt: rt}
}

// Cleanup fires every registered on_cleanup callback in LIFO order,
// recursively disposes every child, and disposes the scope itself.
func (s *Scope) Cleanup() error { return s.rt.CleanupScope(s.key) }

// OnError registers a handler that intercepts a panic raised by anything
// running underneath this scope, instead of letting it propagate past
// it.
func (s *Scope) OnError(fn func(any)) error { return s.rt.OnScopeError(s.key, fn) }

// NewBatch defers the effect flush until fn returns, so that multiple
// writes inside it trigger each affected effect at most once.
func NewBatch(fn func()) {
	internal.GetRuntime().RunBatch(fn)
}

// Untrack runs fn without tracking any reactive dependency reads inside
// it, returning fn's result.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().RunUntracked(func() { result = fn() })
	return result
}

// OnCleanup registers fn to run when the innermost active effect,
// computed, or scope is disposed or re-run. Returns an error if called
// outside any of those.
func OnCleanup(fn func()) error {
	return internal.GetRuntime().OnCleanup(fn)
}

// OnError registers fn to catch a panic raised by anything running
// beneath the innermost active owner, instead of letting it propagate
// past it. Equivalent to calling (*Scope).OnError from within its own
// setup function. Returns an error if called outside any owner.
func OnError(fn func(any)) error {
	return internal.GetRuntime().OnError(fn)
}

// Context is a value inherited down the owner tree: a scope, effect, or
// computed sees whatever an ancestor owner last Set, falling back to its
// initial value.
type Context[T any] struct {
	ctx *internal.Context
	rt  *internal.Runtime
}

// NewContext creates a context with the given default value.
func NewContext[T any](initial T) *Context[T] {
	rt := internal.GetRuntime()
	return &Context[T]{ctx: rt.NewContext(initial), rt: rt}
}

// Value retrieves the current value, inherited from the nearest ancestor
// owner that called Set, or the context's initial value.
func (c *Context[T]) Value() T { return as[T](c.rt.ContextValue(c.ctx)) }

// Set a new value for this context against the currently active owner.
func (c *Context[T]) Set(value T) { c.rt.ContextSet(c.ctx, value) }
