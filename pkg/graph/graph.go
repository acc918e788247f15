// Package graph serializes built dependency graphs.
//
// The wired node structure produced by [depgraph.Build] is pointer-based
// and cannot be marshalled directly: shared dependencies and back-edges
// would explode or cycle a naive encoder. This package flattens a graph
// into id-keyed nodes plus an ordered edge list, and rebuilds the wired
// form on demand. The flat form is what crosses process boundaries: cache
// entries, HTTP responses, and snapshot documents.
package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/depscope/depscope/pkg/depgraph"
)

// Marshal converts a built graph to JSON bytes.
// Nodes are sorted by id for deterministic output.
func Marshal(root *depgraph.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(root, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into the serialization format.
// Use [Graph.Resolve] to rebuild the wired graph.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// Write writes a built graph as JSON to an io.Writer.
func Write(root *depgraph.Node, w io.Writer) error {
	return writeTo(root, w)
}

// WriteFile writes a built graph to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(root *depgraph.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(root, f)
}

// Read decodes a JSON graph from an io.Reader and rebuilds the wired form.
func Read(r io.Reader) (*depgraph.Node, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return g.Resolve()
}

// ReadFile reads a JSON graph file and rebuilds the wired form.
func ReadFile(path string) (*depgraph.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func writeTo(root *depgraph.Node, w io.Writer) error {
	out := FromRoot(root)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
