package graph

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/depscope/depscope/pkg/depgraph"
)

var (
	// ErrDuplicateNodeID is returned by [Graph.Resolve] when two serialized
	// nodes share an id. Ids are compared case-insensitively.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.Resolve] when an edge's
	// From id has no serialized node.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.Resolve] when an edge's
	// To id has no serialized node.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrMissingRoot is returned by [Graph.Resolve] when the Root id has
	// no serialized node.
	ErrMissingRoot = errors.New("missing root node")
)

// Graph is the canonical serialization format for built dependency graphs.
// Used for API responses, caching, and snapshot storage.
//
// The format is designed for round-trip fidelity: a graph serialized with
// [FromRoot] and rebuilt with [Graph.Resolve] is structurally identical,
// including per-node dependency order.
type Graph struct {
	Root  string `json:"root" bson:"root"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is the serialized form of a graph vertex.
type Node struct {
	ID          string `json:"id" bson:"id"`
	Version     string `json:"version,omitempty" bson:"version,omitempty"`
	Type        string `json:"type,omitempty" bson:"type,omitempty"`
	MetaPackage bool   `json:"meta_package,omitempty" bson:"meta_package,omitempty"`
}

// Edge is a directed dependency: From depends on To.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// FromRoot converts a built dependency graph to its serialization format.
// Nodes are sorted by id for deterministic output; edges keep per-node
// declaration order so [Graph.Resolve] can rebuild ordered dependency lists.
func FromRoot(root *depgraph.Node) Graph {
	reachable := depgraph.Nodes(root)

	nodes := make([]Node, len(reachable))
	byID := make(map[string]*depgraph.Node, len(reachable))
	for i, n := range reachable {
		nodes[i] = Node{
			ID:          n.ID,
			Version:     n.Version,
			Type:        n.Type,
			MetaPackage: n.IsMetaPackage,
		}
		byID[strings.ToLower(n.ID)] = n
	}
	slices.SortFunc(nodes, func(a, b Node) int {
		return strings.Compare(strings.ToLower(a.ID), strings.ToLower(b.ID))
	})

	var edges []Edge
	for _, sn := range nodes {
		n := byID[strings.ToLower(sn.ID)]
		for _, dep := range n.Dependencies {
			edges = append(edges, Edge{From: n.ID, To: dep.ID})
		}
	}

	out := Graph{Nodes: nodes, Edges: edges}
	if root != nil {
		out.Root = root.ID
	}
	return out
}

// Resolve rebuilds a wired dependency graph from its serialized form and
// returns the root node. Edges are applied in order, so dependency lists
// come back in their original declaration order.
func (g Graph) Resolve() (*depgraph.Node, error) {
	nodes := make(map[string]*depgraph.Node, len(g.Nodes))
	for _, sn := range g.Nodes {
		key := strings.ToLower(sn.ID)
		if _, exists := nodes[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNodeID, sn.ID)
		}
		nodes[key] = &depgraph.Node{
			ID:            sn.ID,
			Version:       sn.Version,
			Type:          sn.Type,
			IsMetaPackage: sn.MetaPackage,
		}
	}

	for _, e := range g.Edges {
		from, ok := nodes[strings.ToLower(e.From)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSourceNode, e.From)
		}
		to, ok := nodes[strings.ToLower(e.To)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTargetNode, e.To)
		}
		from.Dependencies = append(from.Dependencies, to)
		to.Dependers = append(to.Dependers, from)
	}

	root, ok := nodes[strings.ToLower(g.Root)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingRoot, g.Root)
	}
	return root, nil
}
