package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/depgraph"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	target   targetOpts
	maxDepth int    // prune subtrees deeper than this, 0 means unlimited
	focus    string // only show subtrees rooted at this package
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{}

	cmd := &cobra.Command{
		Use:   "tree <lockfile>",
		Short: "Print the dependency graph as an indented tree",
		Long: `Print the resolved dependency graph as an indented tree, one line per
occurrence. Packages referenced from several places appear once per
reference, so shared dependencies show up under each of their dependers.

Examples:
  depscope tree project.assets.json
  depscope tree project.assets.json --depth 2
  depscope tree project.assets.json --focus serilog`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.loadGraph(cmd.Context(), args[0], &opts.target)
			if err != nil {
				return err
			}

			root := res.Root
			if opts.focus != "" {
				root = depgraph.Find(res.Root, opts.focus)
				if root == nil {
					return fmt.Errorf("package %q not found in graph", opts.focus)
				}
			}

			depgraph.Traverse(root, func(path []*depgraph.Node, n *depgraph.Node) bool {
				depth := len(path) - 1
				if opts.maxDepth > 0 && depth > opts.maxDepth {
					return false
				}
				fmt.Println(renderTreeLine(depth, n))
				return true
			})

			nodes := depgraph.Nodes(root)
			printStats(len(nodes), edgeCount(nodes), res.Cached)
			return nil
		},
	}

	addTargetFlags(cmd, &opts.target)
	cmd.Flags().IntVarP(&opts.maxDepth, "depth", "d", 0, "maximum tree depth (0 = unlimited)")
	cmd.Flags().StringVar(&opts.focus, "focus", "", "show only the subtree rooted at this package")

	return cmd
}

// renderTreeLine formats one occurrence at the given depth.
func renderTreeLine(depth int, n *depgraph.Node) string {
	indent := strings.Repeat("  ", depth)
	name := StyleValue.Render(n.ID)
	if depth == 0 {
		name = StyleTitle.Render(n.ID)
	} else if n.IsMetaPackage {
		name = StyleDim.Render(n.ID)
	}
	line := indent + name
	if n.Version != "" {
		line += " " + StyleVersion.Render(n.Version)
	}
	if n.IsMetaPackage {
		line += " " + StyleDim.Render("(meta)")
	}
	if len(n.Dependers) > 1 {
		line += " " + StyleDim.Render("(shared)")
	}
	return line
}
