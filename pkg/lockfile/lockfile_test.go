package lockfile

import (
	"strings"
	"testing"
)

const sampleLock = `{
  "version": 3,
  "project": {"name": "demo.api", "version": "1.0.0"},
  "targets": {
    "net6.0": {
      "serilog/2.10.0": {
        "type": "package",
        "compile": {"lib/netstandard2.0/Serilog.dll": {}},
        "runtime": {"lib/netstandard2.0/Serilog.dll": {}}
      },
      "serilog.sinks.file/5.0.0": {
        "type": "package",
        "dependencies": {"serilog": "2.10.0"},
        "compile": {"lib/netstandard2.0/Serilog.Sinks.File.dll": {}},
        "runtime": {"lib/netstandard2.0/Serilog.Sinks.File.dll": {}}
      },
      "microsoft.extensions.logging.abstractions/6.0.0": {
        "type": "package",
        "compile": {"lib/netstandard2.0/_._": {}},
        "runtime": {"lib/netstandard2.0/_._": {}}
      },
      "demo.shared/1.0.0": {
        "type": "project",
        "dependencies": {"serilog": "2.10.0"}
      }
    },
    "net6.0/win-x64": {
      "serilog/2.10.0": {
        "type": "package",
        "runtime": {"lib/netstandard2.0/Serilog.dll": {}},
        "runtimeTargets": {"runtimes/win-x64/native/dummy.dll": {}}
      }
    }
  },
  "projectFileDependencyGroups": {
    "net6.0": [
      "serilog.sinks.file >= 5.0.0",
      "demo.shared"
    ]
  },
  "packageFolders": {"/home/user/.nuget/packages": {}}
}`

func parseSample(t *testing.T) *File {
	t.Helper()
	f, err := Parse(strings.NewReader(sampleLock))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return f
}

func TestParseProject(t *testing.T) {
	f := parseSample(t)

	if f.Version != 3 {
		t.Errorf("Version = %d, want 3", f.Version)
	}
	if f.Project.Name != "demo.api" || f.Project.Version != "1.0.0" {
		t.Errorf("Project = %+v, want demo.api/1.0.0", f.Project)
	}
}

func TestParseTargets(t *testing.T) {
	f := parseSample(t)

	if len(f.Targets) != 2 {
		t.Fatalf("parsed %d targets, want 2", len(f.Targets))
	}

	plain := f.Targets[0]
	if plain.Framework != "net6.0" || plain.RuntimeIdentifier != "" {
		t.Errorf("first target = %s/%s, want net6.0 with no runtime", plain.Framework, plain.RuntimeIdentifier)
	}
	if plain.Key() != "net6.0" {
		t.Errorf("Key() = %q, want net6.0", plain.Key())
	}

	rid := f.Targets[1]
	if rid.Framework != "net6.0" || rid.RuntimeIdentifier != "win-x64" {
		t.Errorf("second target = %s/%s, want net6.0/win-x64", rid.Framework, rid.RuntimeIdentifier)
	}
	if rid.Key() != "net6.0/win-x64" {
		t.Errorf("Key() = %q, want net6.0/win-x64", rid.Key())
	}
}

func TestParseLibraryOrder(t *testing.T) {
	f := parseSample(t)

	want := []string{"serilog", "serilog.sinks.file", "microsoft.extensions.logging.abstractions", "demo.shared"}
	libs := f.Targets[0].Libraries
	if len(libs) != len(want) {
		t.Fatalf("parsed %d libraries, want %d", len(libs), len(want))
	}
	for i, id := range want {
		if libs[i].ID != id {
			t.Errorf("library %d = %s, want %s (declaration order must survive)", i, libs[i].ID, id)
		}
	}
}

func TestParseLibraryFields(t *testing.T) {
	f := parseSample(t)
	libs := f.Targets[0].Libraries

	sink := libs[1]
	if sink.Version != "5.0.0" || sink.Type != "package" {
		t.Errorf("sink = %s/%s %s, want 5.0.0 package", sink.ID, sink.Version, sink.Type)
	}
	if len(sink.Dependencies) != 1 || sink.Dependencies[0].ID != "serilog" || sink.Dependencies[0].Range != "2.10.0" {
		t.Errorf("sink dependencies = %v, want [serilog 2.10.0]", sink.Dependencies)
	}

	shared := libs[3]
	if shared.Type != "project" {
		t.Errorf("demo.shared type = %q, want project", shared.Type)
	}
}

func TestParseMetaPackage(t *testing.T) {
	f := parseSample(t)
	libs := f.Targets[0].Libraries

	// Placeholder assets ("_._") mark empty groups, so the abstractions
	// package aggregates nothing tangible.
	if !libs[2].IsMetaPackage() {
		t.Errorf("%s must be a meta-package, flags = compile:%v runtime:%v targets:%v",
			libs[2].ID, libs[2].HasCompile, libs[2].HasRuntime, libs[2].HasRuntimeTargets)
	}
	if libs[0].IsMetaPackage() {
		t.Errorf("%s ships assemblies and must not be a meta-package", libs[0].ID)
	}

	ridLib := f.Targets[1].Libraries[0]
	if !ridLib.HasRuntimeTargets {
		t.Error("runtime-specific serilog must report runtime targets")
	}
}

func TestTargetLookup(t *testing.T) {
	f := parseSample(t)

	if _, ok := f.Target("net6.0", ""); !ok {
		t.Error("exact framework lookup failed")
	}
	if _, ok := f.Target("net6.0", "win-x64"); !ok {
		t.Error("framework/runtime lookup failed")
	}
	if _, ok := f.Target("net6.0", "linux-x64"); ok {
		t.Error("lookup must not fall back across runtimes")
	}
	if _, ok := f.Target("net8.0", ""); ok {
		t.Error("lookup must require an exact framework match")
	}
}

func TestDependencyGroups(t *testing.T) {
	f := parseSample(t)

	group, ok := f.DependencyGroup("net6.0")
	if !ok {
		t.Fatal("net6.0 dependency group missing")
	}
	if len(group) != 2 {
		t.Fatalf("group has %d entries, want 2", len(group))
	}
	if got := BareName(group[0]); got != "serilog.sinks.file" {
		t.Errorf("BareName(%q) = %q, want serilog.sinks.file", group[0], got)
	}
	if got := BareName(group[1]); got != "demo.shared" {
		t.Errorf("BareName(%q) = %q, want demo.shared", group[1], got)
	}

	if _, ok := f.DependencyGroup("net8.0"); ok {
		t.Error("unknown framework must have no group")
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "NotAnObject", input: `[1, 2, 3]`},
		{name: "Truncated", input: `{"version": 3, "targets": {"net6.0": {`},
		{name: "BadVersion", input: `{"version": "three"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.input)); err == nil {
				t.Error("Parse accepted malformed input")
			}
		})
	}
}
