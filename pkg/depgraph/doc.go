// Package depgraph builds an in-memory dependency graph from resolved
// assets-lock data and answers traversal and path queries over it.
//
// # Overview
//
// A lock file already contains the outcome of package resolution: for each
// target framework/runtime pair, the full set of resolved libraries and
// their declared dependencies. This package turns one such section into a
// graph of [Node] values wired in both directions: Dependencies point from
// a consumer to what it needs, Dependers point back from a library to
// everything that declared it. A synthetic root node represents the project
// itself and links to its direct dependencies.
//
// # Basic Usage
//
// Build a graph with [Build], then walk it with [Traverse] or enumerate the
// chains that reach a package with [ReferencePaths]:
//
//	root, err := depgraph.Build(lock, "net6.0", "")
//	if err != nil {
//	    return err
//	}
//	depgraph.Traverse(root, func(path []*depgraph.Node, n *depgraph.Node) bool {
//	    fmt.Printf("%*s%s\n", 2*(len(path)-1), "", n)
//	    return true
//	})
//
// # Shared Dependencies
//
// Two libraries depending on the same package share one Node instance; the
// graph converges on diamonds instead of duplicating subtrees. Traversal,
// however, walks the tree of occurrences: a shared node is visited once per
// distinct path from the root, each time with its own ancestor path. No
// visited set is kept.
//
// # Acyclicity
//
// The graph is expected to be acyclic because the resolver it consumes only
// produces acyclic results. This is trusted, not verified: on cyclic input
// [Traverse], [TraverseRecursive], and [ReferencePaths] do not terminate.
package depgraph
