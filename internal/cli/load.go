package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/cache"
	"github.com/depscope/depscope/pkg/depgraph"
	"github.com/depscope/depscope/pkg/graph"
	"github.com/depscope/depscope/pkg/lockfile"
	"github.com/depscope/depscope/pkg/observability"
)

// targetOpts holds the flags shared by every command that loads a lock file.
type targetOpts struct {
	framework string // target framework moniker (e.g., "net6.0")
	runtime   string // runtime identifier (e.g., "win-x64"), empty for the RID-less target
	noCache   bool   // bypass the graph cache
}

// addTargetFlags registers the shared target-selection flags on cmd.
func addTargetFlags(cmd *cobra.Command, opts *targetOpts) {
	cmd.Flags().StringVarP(&opts.framework, "framework", "f", "", "target framework (defaults to the only target in the lock file)")
	cmd.Flags().StringVarP(&opts.runtime, "runtime", "r", "", "runtime identifier")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the graph cache")
}

// loadResult is a built dependency graph together with where it came from.
type loadResult struct {
	Root      *depgraph.Node
	Lock      *lockfile.File
	Framework string
	Runtime   string
	Cached    bool
}

// loadGraph reads the lock file at path and produces the dependency graph for
// the selected target, consulting the graph cache before building. When no
// framework flag is given and the lock file has exactly one target, that
// target is used.
func (c *CLI) loadGraph(ctx context.Context, path string, opts *targetOpts) (*loadResult, error) {
	logger := loggerFromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lock file: %w", err)
	}

	lock, err := lockfile.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	framework, runtime, err := selectTarget(lock, opts)
	if err != nil {
		return nil, err
	}

	res := &loadResult{Lock: lock, Framework: framework, Runtime: runtime}
	key := cache.GraphKey(cache.Hash(data), framework, runtime)

	gc := c.newGraphCache(ctx, opts.noCache)
	defer gc.Close()

	if cached, ok, err := gc.Get(ctx, key); err == nil && ok {
		if root, err := graph.Read(bytes.NewReader(cached)); err == nil {
			logger.Debugf("Graph cache hit for %s", targetLabel(framework, runtime))
			res.Root = root
			res.Cached = true
			return res, nil
		}
		// Stale or corrupt entry, rebuild below.
		_ = gc.Delete(ctx, key)
	}

	hooks := observability.Graph()
	target := targetLabel(framework, runtime)
	hooks.OnBuildStart(ctx, lock.Project.Name, target)

	prog := newProgress(logger)
	start := time.Now()
	root, err := depgraph.Build(lock, framework, runtime)
	if err != nil {
		hooks.OnBuildComplete(ctx, lock.Project.Name, target, 0, time.Since(start), err)
		return nil, err
	}
	nodes := depgraph.Nodes(root)
	hooks.OnBuildComplete(ctx, lock.Project.Name, target, len(nodes), time.Since(start), nil)
	prog.done(fmt.Sprintf("Built graph with %d packages for %s", len(nodes), target))

	if encoded, err := graph.Marshal(root); err == nil {
		ttl := time.Duration(c.Config.Cache.TTLHours) * time.Hour
		if err := gc.Set(ctx, key, encoded, ttl); err != nil {
			logger.Debugf("Graph cache write failed: %v", err)
		}
	}

	res.Root = root
	return res, nil
}

// selectTarget resolves the framework/runtime pair to build, defaulting to
// the lock file's only target when no framework flag was given.
func selectTarget(lock *lockfile.File, opts *targetOpts) (string, string, error) {
	if opts.framework != "" {
		return opts.framework, opts.runtime, nil
	}
	if len(lock.Targets) == 1 {
		t := lock.Targets[0]
		return t.Framework, t.RuntimeIdentifier, nil
	}

	keys := make([]string, len(lock.Targets))
	for i, t := range lock.Targets {
		keys[i] = t.Key()
	}
	return "", "", fmt.Errorf("lock file has %d targets, pick one with --framework: %s",
		len(lock.Targets), strings.Join(keys, ", "))
}

// targetLabel renders a framework/runtime pair for display.
func targetLabel(framework, runtime string) string {
	if runtime == "" {
		return framework
	}
	return framework + "/" + runtime
}

// edgeCount returns the number of dependency edges reachable from root.
func edgeCount(nodes []*depgraph.Node) int {
	n := 0
	for _, node := range nodes {
		n += len(node.Dependencies)
	}
	return n
}
