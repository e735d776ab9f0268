package autodiff_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/autodiff/ops"
)

func TestTape_Clear(t *testing.T) {
	tape := autodiff.NewTape()
	require.Equal(t, 0, tape.Size())

	x := tape.Var(2.0)
	y := tape.Var(3.0)
	z := x.Add(y)
	z.Backward()

	assert.Equal(t, 3, tape.Size())

	tape.Clear()
	assert.Equal(t, 0, tape.Size())
	assert.Empty(t, tape.Nodes())
}

func TestTape_ClearKeepsVarsAndGrads(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Var(2.0)
	y := tape.Var(3.0)
	z := x.Mul(y)
	z.Backward()

	tape.Clear()

	assert.Equal(t, 6.0, z.Value())
	assert.Equal(t, 3.0, x.Grad(), "clear does not reset gradients")
	assert.Equal(t, 2.0, y.Grad())

	// Vars outlive the clear and may keep building.
	w := z.AddScalar(1)
	assert.Equal(t, 7.0, w.Value())
	assert.Equal(t, 1, tape.Size())
}

func TestTape_Nodes(t *testing.T) {
	tape := autodiff.NewTape(autodiff.WithCapacity(4))
	x := tape.Var(2.0)
	y := x.Exp()
	z := y.Log()

	nodes := tape.Nodes()
	require.Len(t, nodes, 3)
	assert.Same(t, x.Node(), nodes[0])
	assert.Same(t, y.Node(), nodes[1])
	assert.Same(t, z.Node(), nodes[2])

	assert.Equal(t, ops.OpLeaf, nodes[0].Op())
	assert.Equal(t, ops.OpExp, nodes[1].Op())
	assert.Equal(t, ops.OpLog, nodes[2].Op())
	assert.Equal(t, 1, nodes[2].NumParents())
	assert.Same(t, nodes[1], nodes[2].Parent(0))

	// The snapshot is independent of later appends.
	_ = tape.Var(1)
	assert.Len(t, nodes, 3)
}

func TestTape_ZeroGrad(t *testing.T) {
	tape := autodiff.NewTape()
	x := tape.Var(2.0)
	y := tape.Var(3.0)
	z := x.Mul(y)

	z.Backward()
	z.Backward()
	assert.Equal(t, 6.0, x.Grad(), "gradients accumulate across passes")

	tape.ZeroGrad()
	assert.Equal(t, 0.0, x.Grad())
	assert.Equal(t, 0.0, z.Grad())

	z.Backward()
	assert.Equal(t, 3.0, x.Grad())
}

func TestTape_ConcurrentBuild(t *testing.T) {
	const workers, perWorker = 8, 100
	tape := autodiff.NewTape()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_ = tape.Var(float64(i)).AddScalar(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker*2, tape.Size())
}

func TestTape_ResultOnReceiverTape(t *testing.T) {
	t1 := autodiff.NewTape()
	t2 := autodiff.NewTape()
	x := t1.Var(1)
	y := t2.Var(2)

	z := x.Add(y)
	assert.Same(t, t1, z.Tape())
	assert.Equal(t, 2, t1.Size())
	assert.Equal(t, 1, t2.Size())
}

func TestParseTraversal(t *testing.T) {
	tests := []struct {
		in   string
		want autodiff.Traversal
	}{
		{"", autodiff.TraversalTopological},
		{"topological", autodiff.TraversalTopological},
		{"recursive", autodiff.TraversalRecursive},
	}
	for _, tt := range tests {
		got, err := autodiff.ParseTraversal(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := autodiff.ParseTraversal("bfs")
	var terr *autodiff.TraversalError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "bfs", terr.Name)
	assert.Equal(t, "unknown", autodiff.Traversal(42).String())
}
