package lockfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Parse decodes an assets-lock file from r.
//
// The decoder walks the JSON token stream instead of unmarshalling into
// maps so that declaration order survives: Go maps would shuffle targets,
// libraries, and dependencies, and the graph built downstream is defined
// in terms of declaration order.
func Parse(r io.Reader) (*File, error) {
	dec := json.NewDecoder(r)

	file := &File{DependencyGroups: make(map[string][]string)}

	err := readObject(dec, func(key string) error {
		switch key {
		case "version":
			return dec.Decode(&file.Version)
		case "project":
			return dec.Decode(&file.Project)
		case "targets":
			return readObject(dec, func(targetKey string) error {
				target := Target{}
				target.Framework, target.RuntimeIdentifier = splitTargetKey(targetKey)
				if err := readObject(dec, func(libKey string) error {
					lib, err := readLibrary(dec, libKey)
					if err != nil {
						return fmt.Errorf("library %q: %w", libKey, err)
					}
					target.Libraries = append(target.Libraries, lib)
					return nil
				}); err != nil {
					return fmt.Errorf("target %q: %w", targetKey, err)
				}
				file.Targets = append(file.Targets, target)
				return nil
			})
		case "projectFileDependencyGroups":
			return readObject(dec, func(framework string) error {
				var entries []string
				if err := dec.Decode(&entries); err != nil {
					return fmt.Errorf("dependency group %q: %w", framework, err)
				}
				file.DependencyGroups[framework] = entries
				return nil
			})
		default:
			return skipValue(dec)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("parse lock file: %w", err)
	}

	return file, nil
}

// ParseFile reads and parses the assets-lock file at path.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// readLibrary decodes one library record. The key carries the identity
// ("id/version"); the object body carries type, dependencies, and assets.
func readLibrary(dec *json.Decoder, key string) (Library, error) {
	lib := Library{Type: "package"}
	lib.ID, lib.Version = splitLibraryKey(key)

	err := readObject(dec, func(field string) error {
		switch field {
		case "type":
			return dec.Decode(&lib.Type)
		case "dependencies":
			return readObject(dec, func(depID string) error {
				var rng string
				if err := dec.Decode(&rng); err != nil {
					return err
				}
				lib.Dependencies = append(lib.Dependencies, Dependency{ID: depID, Range: rng})
				return nil
			})
		case "compile":
			present, err := readAssetGroup(dec)
			lib.HasCompile = present
			return err
		case "runtime":
			present, err := readAssetGroup(dec)
			lib.HasRuntime = present
			return err
		case "runtimeTargets":
			present, err := readAssetGroup(dec)
			lib.HasRuntimeTargets = present
			return err
		default:
			return skipValue(dec)
		}
	})
	return lib, err
}

// readAssetGroup consumes an asset object and reports whether it contains
// at least one non-placeholder entry.
func readAssetGroup(dec *json.Decoder) (bool, error) {
	present := false
	err := readObject(dec, func(path string) error {
		if !isPlaceholder(path) {
			present = true
		}
		return skipValue(dec)
	})
	return present, err
}

// readObject consumes a JSON object, calling fn once per key with the
// decoder positioned at the key's value. fn must fully consume the value.
func readObject(dec *json.Decoder, fn func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// skipValue consumes and discards the next JSON value.
func skipValue(dec *json.Decoder) error {
	var raw json.RawMessage
	return dec.Decode(&raw)
}
