// Package pkg provides the core libraries for depscope dependency inspection.
//
// # Overview
//
// Depscope turns a resolved lock file into an in-memory dependency graph and
// offers traversal, explanation, and export over it. The pkg directory is
// organized into three main areas:
//
//  1. [lockfile], [depgraph] - Domain logic (lock parsing, graph construction, traversal)
//  2. [cache], [store], [observability] - Infrastructure (graph caching, snapshot storage, hooks)
//  3. [graph], [render] - Output (serialization, Graphviz export)
//
// # Architecture
//
// The typical data flow through depscope:
//
//	project.assets.json
//	         ↓
//	    [lockfile] package (parse resolved targets and libraries)
//	         ↓
//	    [depgraph] package (wire nodes, traverse, explain references)
//	         ↓
//	    [graph] / [render] packages (JSON snapshots, DOT/SVG output)
//
// # Quick Start
//
//	lock, err := lockfile.ParseFile("project.assets.json")
//	if err != nil {
//	    return err
//	}
//	root, err := depgraph.Build(lock, "net6.0", "")
//	if err != nil {
//	    return err
//	}
//	for path := range depgraph.ReferencePaths(depgraph.Find(root, "serilog")) {
//	    fmt.Println(path)
//	}
package pkg
