package depgraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/depscope/depscope/pkg/lockfile"
)

var (
	// ErrTargetNotFound is returned by [Build] when the lock file has no
	// resolved section for the requested framework/runtime pair.
	ErrTargetNotFound = errors.New("target not found")

	// ErrDependencyGroupMissing is returned by [Build] when the lock file
	// has no direct-dependency group for the requested framework.
	ErrDependencyGroupMissing = errors.New("project dependency group missing")

	// ErrDanglingDependency is returned by [Build] when a declared
	// dependency id has no corresponding library in the resolved section.
	// A lock file produced by a working resolver never triggers this.
	ErrDanglingDependency = errors.New("dangling dependency reference")
)

// Build constructs the dependency graph for one framework/runtime pair and
// returns its root: a synthetic node carrying the project identity, whose
// Dependencies are the project's direct dependencies for that framework.
// Every resolved library stays reachable from the root.
//
// Construction is atomic. On any error no partial graph is returned, and
// nothing observable was mutated. The returned graph is immutable.
func Build(lock *lockfile.File, framework, runtime string) (*Node, error) {
	target, ok := lock.Target(framework, runtime)
	if !ok {
		return nil, fmt.Errorf("%w: no resolved section for %q", ErrTargetNotFound, sectionKey(framework, runtime))
	}

	// One node per library record, keyed case-insensitively. The lock file
	// guarantees id uniqueness within a section.
	table := make(map[string]*Node, len(target.Libraries))
	for i := range target.Libraries {
		lib := &target.Libraries[i]
		table[strings.ToLower(lib.ID)] = &Node{
			ID:            lib.ID,
			Version:       lib.Version,
			Type:          lib.Type,
			IsMetaPackage: lib.IsMetaPackage(),
		}
	}

	for i := range target.Libraries {
		lib := &target.Libraries[i]
		node := table[strings.ToLower(lib.ID)]
		for _, dep := range lib.Dependencies {
			child, ok := table[strings.ToLower(dep.ID)]
			if !ok {
				return nil, fmt.Errorf("%w: %q declared by %s is not in the resolved set", ErrDanglingDependency, dep.ID, lib.ID)
			}
			node.Dependencies = append(node.Dependencies, child)
			child.Dependers = append(child.Dependers, node)
		}
	}

	group, ok := lock.DependencyGroup(framework)
	if !ok {
		return nil, fmt.Errorf("%w: no group for framework %q", ErrDependencyGroupMissing, framework)
	}

	root := &Node{
		ID:      lock.Project.Name,
		Version: lock.Project.Version,
		Type:    TypeProject,
	}
	for _, entry := range group {
		name := lockfile.BareName(entry)
		child, ok := table[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q declared by the project is not in the resolved set", ErrDanglingDependency, name)
		}
		root.Dependencies = append(root.Dependencies, child)
		child.Dependers = append(child.Dependers, root)
	}

	return root, nil
}

func sectionKey(framework, runtime string) string {
	if runtime == "" {
		return framework
	}
	return framework + "/" + runtime
}
