// Package lockfile parses resolved assets-lock files.
//
// A lock file is the output of package resolution: for every target
// framework (optionally combined with a runtime identifier) it records the
// full set of resolved libraries, each with its declared dependencies and
// the assets it contributes. The file also carries the project identity and
// the project's direct dependency declarations per framework.
//
// Parsing preserves declaration order throughout: targets, libraries within
// a target, and dependencies within a library all keep the order they have
// in the file. Downstream graph construction relies on this ordering.
package lockfile

import (
	"strings"
)

// File is a fully parsed assets-lock file.
type File struct {
	Version int      // lock format version
	Project Project  // identity of the project the file was resolved for
	Targets []Target // resolved sections, one per framework/runtime pair

	// DependencyGroups maps a framework to the project's direct dependency
	// declarations for that framework. Entries may carry a version
	// constraint suffix, e.g. "serilog >= 2.10.0"; use BareName to strip it.
	DependencyGroups map[string][]string
}

// Project identifies the project a lock file belongs to.
type Project struct {
	Name    string
	Version string
}

// Target is one resolved section: the libraries resolved for a single
// framework/runtime pair. The runtime identifier is empty for
// framework-only sections.
type Target struct {
	Framework         string
	RuntimeIdentifier string
	Libraries         []Library
}

// Key returns the section key as written in the lock file:
// "framework" or "framework/runtime".
func (t *Target) Key() string {
	if t.RuntimeIdentifier == "" {
		return t.Framework
	}
	return t.Framework + "/" + t.RuntimeIdentifier
}

// Library is one resolved library record within a target.
type Library struct {
	ID      string
	Version string
	Type    string // "package" or "project"

	// Dependencies lists the declared direct dependencies in declaration order.
	Dependencies []Dependency

	// Asset presence. A library that provides none of the three is a pure
	// aggregator of other dependencies (a meta-package).
	HasCompile        bool // compile-time assemblies
	HasRuntime        bool // runtime assemblies
	HasRuntimeTargets bool // runtime-specific targets
}

// Dependency is a declared dependency edge as written in a library record.
type Dependency struct {
	ID    string
	Range string // version range, informational only
}

// IsMetaPackage reports whether the library carries no compile assemblies,
// no runtime assemblies, and no runtime targets.
func (l *Library) IsMetaPackage() bool {
	return !l.HasCompile && !l.HasRuntime && !l.HasRuntimeTargets
}

// Target returns the resolved section matching framework and runtime by
// exact string comparison, or false if no section matches.
func (f *File) Target(framework, runtime string) (*Target, bool) {
	for i := range f.Targets {
		t := &f.Targets[i]
		if t.Framework == framework && t.RuntimeIdentifier == runtime {
			return t, true
		}
	}
	return nil, false
}

// DependencyGroup returns the project's direct dependency declarations for
// the framework, or false if the file has no group for it.
func (f *File) DependencyGroup(framework string) ([]string, bool) {
	group, ok := f.DependencyGroups[framework]
	return group, ok
}

// BareName strips an optional version constraint suffix from a dependency
// group entry: "serilog >= 2.10.0" becomes "serilog". Entries without a
// constraint are returned unchanged.
func BareName(entry string) string {
	name, _, _ := strings.Cut(entry, " ")
	return name
}

// splitTargetKey splits a section key into framework and runtime parts.
// "net6.0/win-x64" yields ("net6.0", "win-x64"); "net6.0" yields ("net6.0", "").
func splitTargetKey(key string) (framework, runtime string) {
	framework, runtime, _ = strings.Cut(key, "/")
	return framework, runtime
}

// splitLibraryKey splits a library key "id/version" into its parts.
// Versions never contain '/', so the last separator wins.
func splitLibraryKey(key string) (id, version string) {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[:i], key[i+1:]
	}
	return key, ""
}

// assetPlaceholder marks an intentionally empty asset group. A record like
// "lib/netstandard2.0/_._" declares that the library ships nothing for that
// group, so placeholders do not count as present assets.
const assetPlaceholder = "_._"

// isPlaceholder reports whether an asset path is the empty-group marker.
func isPlaceholder(path string) bool {
	return path == assetPlaceholder || strings.HasSuffix(path, "/"+assetPlaceholder)
}
