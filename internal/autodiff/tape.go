package autodiff

import "sync"

// Traversal selects the algorithm used by Backward.
type Traversal int

const (
	// TraversalTopological visits every reachable Node exactly once, in
	// reverse topological order. Cost is linear in the size of the graph.
	TraversalTopological Traversal = iota

	// TraversalRecursive pushes gradients depth-first without memoization.
	// A Node reachable through k edges is descended k times, and each descent
	// re-pushes the Node's whole accumulated gradient. Leaf gradients match
	// TraversalTopological; gradients flowing through a shared interior Node
	// are counted once per path. Cost is exponential in diamond-shaped graphs.
	TraversalRecursive
)

// String returns the traversal name used in configuration files.
func (t Traversal) String() string {
	switch t {
	case TraversalTopological:
		return "topological"
	case TraversalRecursive:
		return "recursive"
	default:
		return "unknown"
	}
}

// ParseTraversal converts a configuration name into a Traversal.
// The empty string selects TraversalTopological.
func ParseTraversal(s string) (Traversal, error) {
	switch s {
	case "", "topological":
		return TraversalTopological, nil
	case "recursive":
		return TraversalRecursive, nil
	default:
		return 0, &TraversalError{Name: s}
	}
}

// Tape owns every Node created through it, in creation order.
//
// Usage:
//
//	tape := NewTape()
//	x := tape.Var(2.0)
//	y := tape.Var(3.0)
//	z := x.Mul(y)
//	z.Backward()
//	fmt.Println(x.Grad(), y.Grad()) // 3 2
//	tape.Clear()
//
// Append, Clear, Size, Nodes and ZeroGrad are safe for concurrent use.
// Backward does not lock the Tape: callers must not build on or clear the
// Tape while a backward pass over its Nodes is running.
type Tape struct {
	mu        sync.Mutex
	nodes     []*Node
	traversal Traversal
}

// Option configures a Tape.
type Option func(*Tape)

// WithTraversal sets the algorithm used by Backward on Vars of this Tape.
func WithTraversal(t Traversal) Option {
	return func(tape *Tape) {
		tape.traversal = t
	}
}

// WithCapacity pre-allocates room for n Nodes.
func WithCapacity(n int) Option {
	return func(tape *Tape) {
		if n > 0 {
			tape.nodes = make([]*Node, 0, n)
		}
	}
}

// NewTape creates an empty tape.
func NewTape(opts ...Option) *Tape {
	t := &Tape{
		nodes: make([]*Node, 0, 64), // Pre-allocate for common case
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Var wraps a literal value into a new leaf Node registered on the tape.
func (t *Tape) Var(value float64) Var {
	return Var{node: t.record(newLeaf(value)), tape: t}
}

// record appends n to the tape and returns it.
func (t *Tape) record(n *Node) *Node {
	t.mu.Lock()
	t.nodes = append(t.nodes, n)
	t.mu.Unlock()
	return n
}

// Clear drops the tape's references to all Nodes.
//
// Gradients are left untouched and Vars created before Clear stay valid:
// their Nodes live on for as long as something references them.
func (t *Tape) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	// Nil out the slots so the backing array does not pin released Nodes.
	clear(t.nodes)
	t.nodes = t.nodes[:0]
}

// Size returns the number of Nodes currently registered.
func (t *Tape) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.nodes)
}

// Nodes returns a snapshot of the registered Nodes in creation order.
func (t *Tape) Nodes() []*Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// ZeroGrad resets the gradient of every registered Node to zero.
// Use it before running Backward again on the same graph.
func (t *Tape) ZeroGrad() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, n := range t.nodes {
		n.grad = 0
	}
}

// Traversal returns the backward algorithm configured for this tape.
func (t *Tape) Traversal() Traversal {
	return t.traversal
}
