package depgraph

import (
	"slices"
	"testing"
)

func collectPaths(n *Node, limit int) []string {
	var paths []string
	for p := range ReferencePaths(n) {
		paths = append(paths, p)
		if limit > 0 && len(paths) == limit {
			break
		}
	}
	return paths
}

func TestReferencePathsDiamond(t *testing.T) {
	root := mustBuild(t, diamondLock(), "net6.0", "")
	c := Find(root, "C")

	got := collectPaths(c, 0)
	slices.Sort(got)

	want := []string{"P > A > C", "P > B > C"}
	if !slices.Equal(got, want) {
		t.Errorf("ReferencePaths(C) = %v, want %v", got, want)
	}
}

func TestReferencePathsDirectDependency(t *testing.T) {
	root := mustBuild(t, diamondLock(), "net6.0", "")

	got := collectPaths(Find(root, "A"), 0)
	if len(got) != 1 || got[0] != "P > A" {
		t.Errorf("ReferencePaths(A) = %v, want [P > A]", got)
	}
}

func TestReferencePathsRoot(t *testing.T) {
	root := mustBuild(t, diamondLock(), "net6.0", "")

	got := collectPaths(root, 0)
	if len(got) != 1 || got[0] != "P" {
		t.Errorf("ReferencePaths(root) = %v, want [P]", got)
	}
}

func TestReferencePathsEarlyStop(t *testing.T) {
	root := mustBuild(t, diamondLock(), "net6.0", "")
	c := Find(root, "C")

	got := collectPaths(c, 1)
	if len(got) != 1 {
		t.Fatalf("stopped after one path but got %d", len(got))
	}
	if got[0] != "P > A > C" && got[0] != "P > B > C" {
		t.Errorf("first path = %q, want a root-first chain ending in C", got[0])
	}
}

func TestReferencePathsNil(t *testing.T) {
	if got := collectPaths(nil, 0); got != nil {
		t.Errorf("ReferencePaths(nil) yielded %v, want nothing", got)
	}
}
