package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/depgraph"
)

// whyOpts holds the command-line flags for the why command.
type whyOpts struct {
	target   targetOpts
	maxPaths int // stop after this many paths, 0 means all
}

// whyCommand creates the why command.
func (c *CLI) whyCommand() *cobra.Command {
	opts := whyOpts{}

	cmd := &cobra.Command{
		Use:   "why <lockfile> <package>",
		Short: "Explain why a package is in the dependency graph",
		Long: `Show every reference chain from the project root down to the given
package, shortest first. Each line reads left to right: the project
depends on the first entry, which depends on the next, and so on.

Examples:
  depscope why project.assets.json serilog.sinks.file
  depscope why project.assets.json newtonsoft.json --max 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.loadGraph(cmd.Context(), args[0], &opts.target)
			if err != nil {
				return err
			}

			node := depgraph.Find(res.Root, args[1])
			if node == nil {
				return fmt.Errorf("package %q not found in graph", args[1])
			}

			count := 0
			for path := range depgraph.ReferencePaths(node) {
				fmt.Println(StyleValue.Render(path))
				count++
				if opts.maxPaths > 0 && count == opts.maxPaths {
					printDetail("Stopped after %d paths (--max)", count)
					return nil
				}
			}
			printDetail("%d reference paths", count)
			return nil
		},
	}

	addTargetFlags(cmd, &opts.target)
	cmd.Flags().IntVar(&opts.maxPaths, "max", 0, "maximum number of paths to print (0 = all)")

	return cmd
}
