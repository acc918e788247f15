package depgraph

import (
	"errors"
	"testing"

	"github.com/depscope/depscope/pkg/lockfile"
)

// diamondLock builds the canonical shared-dependency fixture: project P
// depends on A and B, both of which depend on C.
func diamondLock() *lockfile.File {
	return &lockfile.File{
		Version: 3,
		Project: lockfile.Project{Name: "P", Version: "1.0"},
		Targets: []lockfile.Target{{
			Framework: "net6.0",
			Libraries: []lockfile.Library{
				{ID: "A", Version: "1.0.0", Type: "package", HasCompile: true, HasRuntime: true,
					Dependencies: []lockfile.Dependency{{ID: "C", Range: "2.0.0"}}},
				{ID: "B", Version: "1.1.0", Type: "package", HasCompile: true, HasRuntime: true,
					Dependencies: []lockfile.Dependency{{ID: "C", Range: "2.0.0"}}},
				{ID: "C", Version: "2.0.0", Type: "package", HasCompile: true, HasRuntime: true},
			},
		}},
		DependencyGroups: map[string][]string{
			"net6.0": {"A >= 1.0.0", "B >= 1.1.0"},
		},
	}
}

func mustBuild(t *testing.T, lock *lockfile.File, framework, runtime string) *Node {
	t.Helper()
	root, err := Build(lock, framework, runtime)
	if err != nil {
		t.Fatalf("Build(%q, %q) error: %v", framework, runtime, err)
	}
	return root
}

func TestBuildRootIdentity(t *testing.T) {
	root := mustBuild(t, diamondLock(), "net6.0", "")

	if root.ID != "P" || root.Version != "1.0" {
		t.Errorf("root identity = %s/%s, want P/1.0", root.ID, root.Version)
	}
	if root.Type != TypeProject {
		t.Errorf("root type = %q, want %q", root.Type, TypeProject)
	}
	if root.IsMetaPackage {
		t.Error("root must not be a meta-package")
	}
	if len(root.Dependers) != 0 {
		t.Errorf("root has %d dependers, want 0", len(root.Dependers))
	}
	if root.String() != "P" {
		t.Errorf("String() = %q, want %q", root.String(), "P")
	}
}

func TestBuildDiamondConverges(t *testing.T) {
	root := mustBuild(t, diamondLock(), "net6.0", "")

	if got := len(root.Dependencies); got != 2 {
		t.Fatalf("root has %d dependencies, want 2", got)
	}
	a, b := root.Dependencies[0], root.Dependencies[1]
	if a.ID != "A" || b.ID != "B" {
		t.Fatalf("root dependencies = [%s %s], want [A B] in declaration order", a, b)
	}

	if len(a.Dependencies) != 1 || len(b.Dependencies) != 1 {
		t.Fatal("A and B must each depend on exactly one node")
	}
	if a.Dependencies[0] != b.Dependencies[0] {
		t.Error("shared dependency C must be a single node instance")
	}

	c := a.Dependencies[0]
	if len(c.Dependers) != 2 {
		t.Fatalf("C has %d dependers, want 2", len(c.Dependers))
	}
	dependers := map[string]bool{c.Dependers[0].ID: true, c.Dependers[1].ID: true}
	if !dependers["A"] || !dependers["B"] {
		t.Errorf("C.Dependers = %v, want {A, B}", c.Dependers)
	}

	// Bidirectional consistency for every edge reachable from the root.
	for _, n := range Nodes(root) {
		for _, dep := range n.Dependencies {
			found := false
			for _, back := range dep.Dependers {
				if back == n {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s depends on %s but is missing from its dependers", n, dep)
			}
		}
	}
}

func TestBuildCaseInsensitiveIDs(t *testing.T) {
	lock := diamondLock()
	lock.Targets[0].Libraries[0].Dependencies[0].ID = "c" // A declares "c"
	lock.DependencyGroups["net6.0"] = []string{"a >= 1.0.0", "B >= 1.1.0"}

	root := mustBuild(t, lock, "net6.0", "")

	if root.Dependencies[0].ID != "A" {
		t.Errorf("group entry %q resolved to %s, want A", "a", root.Dependencies[0])
	}
	if root.Dependencies[0].Dependencies[0] != root.Dependencies[1].Dependencies[0] {
		t.Error("case-insensitive ids must converge on one node")
	}
}

func TestBuildMetaPackage(t *testing.T) {
	lock := diamondLock()
	// C becomes a pure aggregator: no compile, runtime, or runtime targets.
	lock.Targets[0].Libraries[2].HasCompile = false
	lock.Targets[0].Libraries[2].HasRuntime = false

	root := mustBuild(t, lock, "net6.0", "")

	c := Find(root, "C")
	if c == nil {
		t.Fatal("C not reachable from root")
	}
	if !c.IsMetaPackage {
		t.Error("C carries no assets and must be a meta-package")
	}
	if a := Find(root, "A"); a.IsMetaPackage {
		t.Error("A carries assemblies and must not be a meta-package")
	}
}

func TestBuildSelectsRuntimeSection(t *testing.T) {
	lock := diamondLock()
	lock.Targets = append(lock.Targets, lockfile.Target{
		Framework:         "net6.0",
		RuntimeIdentifier: "win-x64",
		Libraries: []lockfile.Library{
			{ID: "A", Version: "1.0.0", Type: "package", HasRuntime: true},
			{ID: "B", Version: "1.1.0", Type: "package", HasRuntime: true},
		},
	})

	root := mustBuild(t, lock, "net6.0", "win-x64")

	if Find(root, "C") != nil {
		t.Error("runtime-specific section must not contain C")
	}
	if a := Find(root, "A"); a == nil || len(a.Dependencies) != 0 {
		t.Error("A from the runtime section must have no dependencies")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*lockfile.File)
		framework string
		runtime   string
		want      error
	}{
		{
			name:      "UnknownFramework",
			mutate:    func(*lockfile.File) {},
			framework: "net8.0",
			want:      ErrTargetNotFound,
		},
		{
			name:      "UnknownRuntime",
			mutate:    func(*lockfile.File) {},
			framework: "net6.0",
			runtime:   "linux-arm64",
			want:      ErrTargetNotFound,
		},
		{
			name: "MissingDependencyGroup",
			mutate: func(f *lockfile.File) {
				delete(f.DependencyGroups, "net6.0")
			},
			framework: "net6.0",
			want:      ErrDependencyGroupMissing,
		},
		{
			name: "DanglingLibraryDependency",
			mutate: func(f *lockfile.File) {
				f.Targets[0].Libraries[0].Dependencies[0].ID = "Ghost"
			},
			framework: "net6.0",
			want:      ErrDanglingDependency,
		},
		{
			name: "DanglingProjectDependency",
			mutate: func(f *lockfile.File) {
				f.DependencyGroups["net6.0"] = append(f.DependencyGroups["net6.0"], "Ghost >= 1.0.0")
			},
			framework: "net6.0",
			want:      ErrDanglingDependency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lock := diamondLock()
			tt.mutate(lock)

			root, err := Build(lock, tt.framework, tt.runtime)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Build error = %v, want %v", err, tt.want)
			}
			if root != nil {
				t.Error("failed Build must not return a partial graph")
			}
		})
	}
}

func TestFind(t *testing.T) {
	root := mustBuild(t, diamondLock(), "net6.0", "")

	if n := Find(root, "c"); n == nil || n.ID != "C" {
		t.Errorf("Find(root, %q) = %v, want C", "c", n)
	}
	if n := Find(root, "P"); n != root {
		t.Errorf("Find(root, %q) = %v, want the root itself", "P", n)
	}
	if n := Find(root, "nope"); n != nil {
		t.Errorf("Find(root, %q) = %v, want nil", "nope", n)
	}
}

func TestNodes(t *testing.T) {
	root := mustBuild(t, diamondLock(), "net6.0", "")

	nodes := Nodes(root)
	if len(nodes) != 4 {
		t.Fatalf("Nodes returned %d nodes, want 4", len(nodes))
	}
	if nodes[0] != root {
		t.Error("Nodes must start with the root")
	}
	ids := make(map[string]int)
	for _, n := range nodes {
		ids[n.ID]++
	}
	for id, count := range ids {
		if count != 1 {
			t.Errorf("node %s appears %d times, want 1", id, count)
		}
	}
}
