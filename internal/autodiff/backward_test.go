package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/gradtape/internal/autodiff"
)

// diamond builds z = x + x with x = 2w, so dz/dw = 4.
func diamond(tape *autodiff.Tape) (w, x, z autodiff.Var) {
	w = tape.Var(1.0)
	x = w.MulScalar(2)
	z = x.Add(x)
	return w, x, z
}

func TestBackward_DiamondTopological(t *testing.T) {
	tape := autodiff.NewTape()
	w, x, z := diamond(tape)
	z.Backward()

	assert.Equal(t, 2.0, x.Grad())
	assert.Equal(t, 4.0, w.Grad())
}

// The recursive traversal re-pushes the accumulated gradient of a shared
// interior node on every visit, so w receives 2*1 + 2*2.
func TestBackward_DiamondRecursive(t *testing.T) {
	tape := autodiff.NewTape(autodiff.WithTraversal(autodiff.TraversalRecursive))
	w, x, z := diamond(tape)
	z.Backward()

	assert.Equal(t, 2.0, x.Grad())
	assert.Equal(t, 6.0, w.Grad())
}

func TestBackward_LeafRoot(t *testing.T) {
	forEachTraversal(t, func(t *testing.T, tape *autodiff.Tape) {
		x := tape.Var(5.0)
		x.Backward()
		assert.Equal(t, 1.0, x.Grad())
	})
}

func TestBackward_RootIsReseeded(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Var(2.0)
	y := x.MulScalar(3)

	y.Backward()
	y.Backward()

	assert.Equal(t, 1.0, y.Grad(), "root gradient is set, not accumulated")
	assert.Equal(t, 6.0, x.Grad())
}

func TestBackward_IntermediateGrads(t *testing.T) {
	forEachTraversal(t, func(t *testing.T, tape *autodiff.Tape) {
		x := tape.Var(3.0)
		y := x.Mul(x)       // 9
		z := y.AddScalar(1) // 10
		z.Backward()

		assert.Equal(t, 1.0, y.Grad())
		assert.Equal(t, 6.0, x.Grad())
	})
}

// A chain this deep would be slow to re-traverse if it branched; the
// topological walk is iterative and handles it directly.
func TestBackward_DeepChain(t *testing.T) {
	const depth = 100_000
	tape := autodiff.NewTape(autodiff.WithCapacity(depth + 1))
	x := tape.Var(0.0)
	z := x
	for i := 0; i < depth; i++ {
		z = z.AddScalar(1)
	}
	z.Backward()

	assert.Equal(t, float64(depth), z.Value())
	assert.Equal(t, 1.0, x.Grad())
}

// Repeated reuse of a shared sub-expression: z_{k+1} = z_k + z_k.
// The topological walk stays linear; the result is 2^n.
func TestBackward_RepeatedDoubling(t *testing.T) {
	const n = 40
	tape := autodiff.NewTape()
	x := tape.Var(1.0)
	z := x
	for i := 0; i < n; i++ {
		z = z.Add(z)
	}
	z.Backward()

	assert.Equal(t, float64(uint64(1)<<n), x.Grad())
}
