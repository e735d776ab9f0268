package autodiff

// Backward seeds the gradient of v's Node with 1.0 and propagates it to every
// ancestor using the traversal configured on v's tape.
//
// Gradients accumulate: leaf gradients from an earlier Backward are added to,
// not replaced. Call Tape.ZeroGrad to start over.
func (v Var) Backward() {
	n := v.mustNode()
	traversal := TraversalTopological
	if v.tape != nil {
		traversal = v.tape.traversal
	}
	n.Backward(traversal)
}

// Backward runs a backward pass rooted at n.
func (n *Node) Backward(traversal Traversal) {
	switch traversal {
	case TraversalRecursive:
		n.grad = 1.0
		n.descend()
	default:
		backwardTopological(n)
	}
}

// descend pushes n's current gradient into each parent and recurses.
// Each parent is updated before it is descended into.
func (n *Node) descend() {
	for i, p := range n.parents {
		p.grad += n.derivatives[i] * n.grad
		p.descend()
	}
}

// backwardTopological walks the graph once in reverse topological order.
//
// Algorithm:
//  1. Iterative DFS from root builds a post-order (parents before children)
//  2. Adjoints for this pass live in a slice indexed by post-order position
//  3. Walk the order backwards, pushing each adjoint into the parents
//  4. Add each adjoint to the Node's stored gradient; the root is set to 1
func backwardTopological(root *Node) {
	order, index := topoOrder(root)

	adjoint := make([]float64, len(order))
	adjoint[len(order)-1] = 1.0

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		for j, p := range n.parents {
			adjoint[index[p]] += n.derivatives[j] * adjoint[i]
		}
	}

	for i, n := range order[:len(order)-1] {
		n.grad += adjoint[i]
	}
	root.grad = 1.0
}

// topoOrder returns the Nodes reachable from root in post-order (root last)
// and each Node's position in that order.
func topoOrder(root *Node) ([]*Node, map[*Node]int) {
	type frame struct {
		node *Node
		next int // next parent to visit
	}

	index := make(map[*Node]int)
	order := make([]*Node, 0, 16)
	visiting := map[*Node]bool{root: true}
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.parents) {
			p := top.node.parents[top.next]
			top.next++
			if !visiting[p] {
				visiting[p] = true
				stack = append(stack, frame{node: p})
			}
			continue
		}
		index[top.node] = len(order)
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}

	return order, index
}
