package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/render"
)

// dotOpts holds the command-line flags for the dot command.
type dotOpts struct {
	target   targetOpts
	output   string // output file path, stdout if empty
	svg      bool   // render to SVG instead of emitting DOT source
	detailed bool   // include versions and types in node labels
}

// dotCommand creates the dot command.
func (c *CLI) dotCommand() *cobra.Command {
	opts := dotOpts{}

	cmd := &cobra.Command{
		Use:   "dot <lockfile>",
		Short: "Export the dependency graph as Graphviz DOT or SVG",
		Long: `Export the resolved dependency graph in Graphviz DOT format, or render
it directly to SVG with --svg.

Examples:
  depscope dot project.assets.json
  depscope dot project.assets.json -o graph.dot
  depscope dot project.assets.json --svg -o graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.loadGraph(cmd.Context(), args[0], &opts.target)
			if err != nil {
				return err
			}

			dot := render.ToDOT(res.Root, render.Options{Detailed: opts.detailed})

			out := []byte(dot)
			if opts.svg {
				out, err = render.RenderSVG(dot)
				if err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
			}

			if opts.output == "" {
				fmt.Print(string(out))
				return nil
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			printSuccess("Exported %s graph", strings.ToUpper(formatName(opts.svg)))
			printFile(opts.output)
			return nil
		},
	}

	addTargetFlags(cmd, &opts.target)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.svg, "svg", false, "render to SVG instead of DOT source")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include versions and node types in labels")

	return cmd
}

func formatName(svg bool) string {
	if svg {
		return "svg"
	}
	return "dot"
}
