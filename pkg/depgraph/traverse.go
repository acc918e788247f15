package depgraph

// VisitFunc is called once per occurrence during a traversal. path holds
// the ancestors from the root down to and including n; path[len(path)-1]
// is always n itself. The slice is reused between calls, so callers that
// retain it must copy it first.
//
// The return value decides descent: true visits n's dependencies, false
// prunes the subtree rooted at n. Siblings and the rest of the graph are
// unaffected by pruning.
type VisitFunc func(path []*Node, n *Node) bool

// frame is one level of the explicit traversal stack: a node plus a cursor
// into its ordered dependency list.
type frame struct {
	node *Node
	next int
}

// Traverse walks the graph from root in pre-order, depth first, children
// in declaration order. It traverses the tree of occurrences rather than
// unique nodes: a shared dependency is visited once per distinct path,
// each time with its own ancestor path.
//
// The walk uses an explicit stack, so depth is bounded by memory rather
// than the call stack. It does not terminate on cyclic input.
func Traverse(root *Node, visit VisitFunc) {
	if root == nil {
		return
	}

	path := []*Node{root}
	if !visit(path, root) {
		return
	}

	stack := []frame{{node: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.node.Dependencies) {
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
			continue
		}

		child := top.node.Dependencies[top.next]
		top.next++

		path = append(path, child)
		if visit(path, child) {
			stack = append(stack, frame{node: child})
		} else {
			path = path[:len(path)-1]
		}
	}
}

// TraverseRecursive is the recursive equivalent of [Traverse]: for any
// finite acyclic graph and the same visit callback, both produce the same
// (path, node) sequence in the same order.
//
// Recursion depth equals path depth. Prefer [Traverse] when dependency
// chains may be deep enough to overflow the call stack.
func TraverseRecursive(root *Node, visit VisitFunc) {
	if root == nil {
		return
	}
	traverseRecursive(root, visit, nil)
}

func traverseRecursive(n *Node, visit VisitFunc, ancestors []*Node) {
	path := append(ancestors, n)
	if !visit(path, n) {
		return
	}
	for _, dep := range n.Dependencies {
		traverseRecursive(dep, visit, path)
	}
}
