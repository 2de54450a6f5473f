package flux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputed(t *testing.T) {
	t.Run("derives from a signal", func(t *testing.T) {
		count := NewSignal(1)
		double := NewComputed(func() int { return count.Read() * 2 })

		assert.Equal(t, 2, double.Read())

		count.Write(5)
		assert.Equal(t, 10, double.Read())
	})

	t.Run("is lazy: never recomputes without a read", func(t *testing.T) {
		count := NewSignal(1)
		runs := 0
		double := NewComputed(func() int {
			runs++
			return count.Read() * 2
		})

		assert.Equal(t, 0, runs)
		count.Write(2)
		count.Write(3)
		assert.Equal(t, 0, runs)

		double.Read()
		assert.Equal(t, 1, runs)
	})

	t.Run("caches until a dependency changes", func(t *testing.T) {
		count := NewSignal(1)
		runs := 0
		double := NewComputed(func() int {
			runs++
			return count.Read() * 2
		})

		double.Read()
		double.Read()
		double.Read()
		assert.Equal(t, 1, runs)
	})

	t.Run("equality short-circuits downstream propagation", func(t *testing.T) {
		count := NewSignal(0)
		parity := NewComputed(func() int { return count.Read() % 2 })

		effectRuns := 0
		NewEffect(func() {
			effectRuns++
			parity.Read()
		})
		assert.Equal(t, 1, effectRuns)

		count.Write(2) // parity stays 0, no propagation past the computed
		assert.Equal(t, 1, effectRuns)

		count.Write(3) // parity flips to 1
		assert.Equal(t, 2, effectRuns)
	})

	t.Run("diamond dependency recomputes once per change", func(t *testing.T) {
		count := NewSignal(1)
		double := NewComputed(func() int { return count.Read() * 2 })
		quad := NewComputed(func() int { return count.Read() * 4 })

		sumRuns := 0
		sum := NewComputed(func() int {
			sumRuns++
			return double.Read() + quad.Read()
		})

		assert.Equal(t, 6, sum.Read())
		assert.Equal(t, 1, sumRuns)

		count.Write(2)
		assert.Equal(t, 12, sum.Read())
		assert.Equal(t, 2, sumRuns)
	})

	t.Run("fires cleanups on recompute", func(t *testing.T) {
		count := NewSignal(0)
		trigger := NewSignal(0)
		cleanups := 0

		c := NewComputed(func() int {
			trigger.Read()
			OnCleanup(func() { cleanups++ })
			return count.Read()
		})
		c.Read()
		assert.Equal(t, 0, cleanups)

		trigger.Write(1)
		c.Read()
		assert.Equal(t, 1, cleanups)
	})
}
