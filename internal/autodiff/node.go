package autodiff

import "github.com/born-ml/gradtape/internal/autodiff/ops"

// Node is a vertex of the computation graph.
//
// A Node stores the value produced by an operation, the gradient accumulated
// by backward passes, and the edges to the Nodes it was computed from. Each
// edge carries the local derivative of this Node's value with respect to that
// parent, so len(parents) == len(derivatives) always holds.
//
// Everything except grad is fixed at construction.
type Node struct {
	op          ops.Op
	value       float64
	grad        float64
	parents     []*Node
	derivatives []float64
}

// newNode builds a Node from a rule result and its operand Nodes.
func newNode(r ops.Result, parents ...*Node) *Node {
	if len(parents) != len(r.Derivatives) {
		panic("autodiff: parent count does not match derivative count")
	}
	return &Node{
		op:          r.Op,
		value:       r.Value,
		parents:     parents,
		derivatives: r.Derivatives,
	}
}

// newLeaf builds a zero-parent Node holding a literal value.
func newLeaf(value float64) *Node {
	return &Node{op: ops.OpLeaf, value: value}
}

// Op returns the operation that produced the Node.
func (n *Node) Op() ops.Op {
	return n.op
}

// Value returns the forward value.
func (n *Node) Value() float64 {
	return n.value
}

// Grad returns the accumulated gradient.
func (n *Node) Grad() float64 {
	return n.grad
}

// NumParents returns the number of incoming edges.
func (n *Node) NumParents() int {
	return len(n.parents)
}

// Parent returns the i-th operand Node.
func (n *Node) Parent(i int) *Node {
	return n.parents[i]
}

// Derivative returns the local derivative with respect to the i-th parent.
func (n *Node) Derivative(i int) float64 {
	return n.derivatives[i]
}

// IsLeaf reports whether the Node has no parents.
func (n *Node) IsLeaf() bool {
	return len(n.parents) == 0
}
