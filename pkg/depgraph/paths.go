package depgraph

import (
	"iter"
	"strings"
)

// PathSeparator joins the segments of a rendered reference path.
const PathSeparator = " > "

// ReferencePaths enumerates every chain through which the graph reaches n,
// as strings rendered root-first: "myapp > serilog > serilog.sinks.file".
// A node reachable through several consumers yields one path per distinct
// chain.
//
// The walk goes breadth-first upward over Dependers; a path is complete
// when it reaches a node with no dependers. The sequence is lazy: paths
// are produced on demand, and breaking out of the range stops the
// remaining work. On a graph whose depender edges form a cycle the
// enumeration does not terminate.
func ReferencePaths(n *Node) iter.Seq[string] {
	return func(yield func(string) bool) {
		if n == nil {
			return
		}
		// Each queue entry is a partial path stored target-first; the last
		// element is the current frontier toward the root.
		queue := [][]*Node{{n}}
		for len(queue) > 0 {
			partial := queue[0]
			queue = queue[1:]

			tip := partial[len(partial)-1]
			if len(tip.Dependers) == 0 {
				if !yield(renderPath(partial)) {
					return
				}
				continue
			}
			for _, up := range tip.Dependers {
				next := make([]*Node, len(partial)+1)
				copy(next, partial)
				next[len(partial)] = up
				queue = append(queue, next)
			}
		}
	}
}

// renderPath renders a target-first partial path root-first.
func renderPath(partial []*Node) string {
	var b strings.Builder
	for i := len(partial) - 1; i >= 0; i-- {
		b.WriteString(partial[i].ID)
		if i > 0 {
			b.WriteString(PathSeparator)
		}
	}
	return b.String()
}
