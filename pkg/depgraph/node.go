package depgraph

import "strings"

// Node types as recorded in resolved library records.
const (
	// TypePackage marks a node resolved from a package registry.
	TypePackage = "package"

	// TypeProject marks the synthetic root node representing the project,
	// as well as libraries resolved from project references.
	TypeProject = "project"
)

// Node is a vertex of a built dependency graph: one resolved library, or
// the synthetic project root. Nodes are created by [Build] and immutable
// afterwards; concurrent read access is safe.
type Node struct {
	ID      string // unique within a graph, compared case-insensitively
	Version string
	Type    string // TypePackage or TypeProject

	// IsMetaPackage is true for pure aggregator packages: libraries that
	// carry no compile assemblies, no runtime assemblies, and no runtime
	// targets. Always false for the root.
	IsMetaPackage bool

	// Dependencies holds the node's direct dependencies in declaration
	// order. For the root this is the project's direct dependency group.
	Dependencies []*Node

	// Dependers holds the exact inverse of Dependencies across the graph:
	// every node that lists this node as a dependency. Empty for the root.
	Dependers []*Node
}

// String returns the node's id.
func (n *Node) String() string { return n.ID }

// Find returns the node with the given id reachable from root, matched
// case-insensitively, or nil if no such node exists. Unlike [Traverse] it
// deduplicates by identity, so it terminates even on shared subtrees.
func Find(root *Node, id string) *Node {
	if root == nil {
		return nil
	}
	seen := make(map[*Node]bool)
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		if strings.EqualFold(n.ID, id) {
			return n
		}
		stack = append(stack, n.Dependencies...)
	}
	return nil
}

// Nodes returns every node reachable from root, root first, deduplicated
// by identity. The remaining order follows a pre-order walk with children
// in declaration order.
func Nodes(root *Node) []*Node {
	if root == nil {
		return nil
	}
	var nodes []*Node
	seen := make(map[*Node]bool)
	var walk func(n *Node)
	walk = func(n *Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		nodes = append(nodes, n)
		for _, dep := range n.Dependencies {
			walk(dep)
		}
	}
	walk(root)
	return nodes
}
