package flux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs immediately once", func(t *testing.T) {
		runs := 0
		NewEffect(func() { runs++ })
		assert.Equal(t, 1, runs)
	})

	t.Run("reruns when a read signal changes", func(t *testing.T) {
		count := NewSignal(0)
		runs := 0
		NewEffect(func() {
			runs++
			count.Read()
		})
		assert.Equal(t, 1, runs)

		count.Write(1)
		assert.Equal(t, 2, runs)

		count.Write(2)
		assert.Equal(t, 3, runs)
	})

	t.Run("does not rerun on unrelated signal writes", func(t *testing.T) {
		count := NewSignal(0)
		other := NewSignal(0)
		runs := 0
		NewEffect(func() {
			runs++
			count.Read()
		})

		other.Write(1)
		assert.Equal(t, 1, runs)
	})

	t.Run("fires cleanup before rerunning", func(t *testing.T) {
		count := NewSignal(0)
		var log []string
		NewEffect(func() {
			v := count.Read()
			log = append(log, "run")
			OnCleanup(func() { log = append(log, "cleanup") })
			_ = v
		})

		count.Write(1)
		assert.Equal(t, []string{"run", "cleanup", "run"}, log)
	})

	t.Run("writes to another signal", func(t *testing.T) {
		source := NewSignal(1)
		mirror := NewSignal(0)
		NewEffect(func() {
			mirror.Write(source.Read())
		})
		assert.Equal(t, 1, mirror.Read())

		source.Write(5)
		assert.Equal(t, 5, mirror.Read())
	})

	t.Run("nested effects run and are disposed with the parent", func(t *testing.T) {
		count := NewSignal(0)
		innerRuns := 0
		var outer *Effect

		outer = NewEffect(func() {
			count.Read()
			NewEffect(func() { innerRuns++ })
		})
		assert.Equal(t, 1, innerRuns)

		count.Write(1)
		assert.Equal(t, 2, innerRuns)

		_ = outer.Dispose()
		count.Write(2)
		assert.Equal(t, 2, innerRuns)
	})

	t.Run("diamond dependency runs once per change", func(t *testing.T) {
		count := NewSignal(1)
		double := NewComputed(func() int { return count.Read() * 2 })
		quad := NewComputed(func() int { return count.Read() * 4 })

		runs := 0
		NewEffect(func() {
			runs++
			double.Read()
			quad.Read()
		})
		assert.Equal(t, 1, runs)

		count.Write(2)
		assert.Equal(t, 2, runs)
	})

	t.Run("deps can change between runs", func(t *testing.T) {
		useFirst := NewSignal(true)
		first := NewSignal("a")
		second := NewSignal("b")

		runs := 0
		var seen []string
		NewEffect(func() {
			runs++
			if useFirst.Read() {
				seen = append(seen, first.Read())
			} else {
				seen = append(seen, second.Read())
			}
		})
		assert.Equal(t, 1, runs)

		useFirst.Write(false)
		assert.Equal(t, 2, runs)

		// first is no longer a dependency; writing it must not rerun.
		first.Write("z")
		assert.Equal(t, 2, runs)

		second.Write("c")
		assert.Equal(t, 3, runs)
		assert.Equal(t, []string{"a", "b", "c"}, seen)
	})

	t.Run("disposing prevents further reruns", func(t *testing.T) {
		count := NewSignal(0)
		runs := 0
		e := NewEffect(func() {
			runs++
			count.Read()
		})
		assert.Equal(t, 1, runs)

		assert.NoError(t, e.Dispose())
		count.Write(1)
		assert.Equal(t, 1, runs)
	})

	t.Run("disposing a sibling mid-flush skips its queued rerun", func(t *testing.T) {
		count := NewSignal(0)
		var sibling *Effect
		siblingRuns := 0

		NewEffect(func() {
			count.Read()
			if count.Peek() == 1 {
				_ = sibling.Dispose()
			}
		})
		sibling = NewEffect(func() {
			count.Read()
			siblingRuns++
		})
		assert.Equal(t, 1, siblingRuns)

		count.Write(1)
		assert.Equal(t, 1, siblingRuns)
	})
}
