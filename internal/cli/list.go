package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/depgraph"
)

// listOpts holds the command-line flags for the list command.
type listOpts struct {
	target      targetOpts
	typeFilter  string // restrict to "package" or "project" nodes
	direct      bool   // only direct dependencies of the root
	includeMeta bool   // include meta-packages, hidden by default
}

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	opts := listOpts{}

	cmd := &cobra.Command{
		Use:   "list <lockfile>",
		Short: "List all packages in the resolved dependency graph",
		Long: `List every package reachable from the project root in the resolved
dependency graph, one per line with its resolved version.

Examples:
  depscope list project.assets.json
  depscope list project.assets.json --direct
  depscope list project.assets.json -f net6.0 -r win-x64 --type project`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.loadGraph(cmd.Context(), args[0], &opts.target)
			if err != nil {
				return err
			}

			var nodes []*depgraph.Node
			if opts.direct {
				nodes = res.Root.Dependencies
			} else {
				nodes = depgraph.Nodes(res.Root)[1:] // skip the root itself
			}

			var rows []*depgraph.Node
			for _, n := range nodes {
				if opts.typeFilter != "" && n.Type != opts.typeFilter {
					continue
				}
				if n.IsMetaPackage && !opts.includeMeta {
					continue
				}
				rows = append(rows, n)
			}
			sort.Slice(rows, func(i, j int) bool {
				return strings.ToLower(rows[i].ID) < strings.ToLower(rows[j].ID)
			})

			for _, n := range rows {
				fmt.Println(StyleValue.Render(n.ID) + " " + StyleVersion.Render(n.Version))
			}
			printStats(len(rows), 0, res.Cached)
			return nil
		},
	}

	addTargetFlags(cmd, &opts.target)
	cmd.Flags().StringVar(&opts.typeFilter, "type", "", `only show nodes of this type ("package" or "project")`)
	cmd.Flags().BoolVar(&opts.direct, "direct", false, "only direct dependencies of the project")
	cmd.Flags().BoolVar(&opts.includeMeta, "include-meta", false, "include meta-packages")

	return cmd
}
