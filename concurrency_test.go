package flux

import (
	"sync"
	"testing"

	"github.com/arbor-rx/flux/internal"
	"github.com/stretchr/testify/assert"
)

// flux binds a Runtime to the goroutine that first touches it (one session
// per goroutine, no locking on the hot path). Touching a node created on one
// goroutine from a different goroutine is a programming error, reported as
// internal.ConcurrencyError rather than silently racing.
func TestConcurrency(t *testing.T) {
	t.Run("reading a signal from another goroutine panics", func(t *testing.T) {
		count := NewSignal(0)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Panics(t, func() { count.Read() })
		}()
		wg.Wait()
	})

	t.Run("writing a signal from another goroutine panics", func(t *testing.T) {
		count := NewSignal(0)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Panics(t, func() { count.Write(1) })
		}()
		wg.Wait()
		assert.Equal(t, 0, count.Read())
	})

	t.Run("reading a computed from another goroutine panics", func(t *testing.T) {
		count := NewSignal(0)
		double := NewComputed(func() int { return count.Read() * 2 })

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Panics(t, func() { double.Read() })
		}()
		wg.Wait()
	})

	t.Run("panic reports the owning and calling goroutine ids", func(t *testing.T) {
		count := NewSignal(0)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				rec := recover()
				if err, ok := rec.(internal.ConcurrencyError); ok {
					assert.NotEqual(t, err.OwnerGID, err.CallerGID)
				} else {
					t.Fatalf("expected internal.ConcurrencyError, got %#v", rec)
				}
			}()
			count.Read()
		}()
		wg.Wait()
	})

	t.Run("scope operations from another goroutine panic", func(t *testing.T) {
		scope := NewScope(func() {})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Panics(t, func() { _ = scope.Cleanup() })
		}()
		wg.Wait()
	})

	t.Run("each goroutine gets its own independent runtime", func(t *testing.T) {
		var wg sync.WaitGroup
		results := make([]int, 2)

		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				s := NewSignal(i)
				results[i] = s.Read()
			}(i)
		}
		wg.Wait()

		assert.Equal(t, []int{0, 1}, results)
	})
}
