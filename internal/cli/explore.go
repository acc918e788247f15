package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/depgraph"
)

// maxPathRows caps how many reference paths the detail view enumerates.
const maxPathRows = 50

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	opts := targetOpts{}

	cmd := &cobra.Command{
		Use:   "explore <lockfile>",
		Short: "Browse the dependency graph interactively",
		Long: `Open an interactive terminal browser over the resolved dependency
graph. Navigate the package list with the arrow keys and press enter to
see every reference chain that pulls the selected package in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.loadGraph(cmd.Context(), args[0], &opts)
			if err != nil {
				return err
			}

			model := newExploreModel(res.Root)
			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return fmt.Errorf("run explorer: %w", err)
			}
			return nil
		},
	}

	addTargetFlags(cmd, &opts)

	return cmd
}

// =============================================================================
// exploreModel - Interactive graph browser
// =============================================================================

// exploreModel is the bubbletea model for browsing a dependency graph.
// It has two screens: the package list, and the reference paths of the
// package selected from it.
type exploreModel struct {
	root  *depgraph.Node
	nodes []*depgraph.Node

	cursor int
	offset int
	height int

	// paths holds the detail screen content; nil means the list is shown.
	paths    []string
	pathsFor *depgraph.Node
}

func newExploreModel(root *depgraph.Node) exploreModel {
	nodes := depgraph.Nodes(root)[1:]
	sort.Slice(nodes, func(i, j int) bool {
		return strings.ToLower(nodes[i].ID) < strings.ToLower(nodes[j].ID)
	})
	return exploreModel{
		root:   root,
		nodes:  nodes,
		height: 15,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			if m.paths != nil {
				m.paths = nil
				m.pathsFor = nil
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.paths == nil && m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.paths == nil && m.cursor < len(m.nodes)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			if m.paths == nil && len(m.nodes) > 0 {
				m.pathsFor = m.nodes[m.cursor]
				m.paths = collectPaths(m.pathsFor, maxPathRows)
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	if m.paths != nil {
		return m.pathsView()
	}
	return m.listView()
}

func (m exploreModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.root.ID + " dependencies"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ reference paths  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.nodes) {
		end = len(m.nodes)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		n := m.nodes[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		meta := ""
		if n.IsMetaPackage {
			meta = "meta"
		}

		rows = append(rows, []string{
			cursor + n.ID,
			n.Version,
			n.Type,
			meta,
			fmt.Sprintf("%d", len(n.Dependers)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Package", "Version", "Type", "", "Dependers").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	return b.String()
}

func (m exploreModel) pathsView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Reference paths to " + m.pathsFor.ID))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	for _, p := range m.paths {
		b.WriteString("  " + listNormalStyle.Render(p) + "\n")
	}
	if len(m.paths) == maxPathRows {
		b.WriteString("\n" + listDimStyle.Render(fmt.Sprintf("showing first %d paths", maxPathRows)) + "\n")
	}
	return b.String()
}

// collectPaths enumerates up to limit reference paths for n, shortest first.
func collectPaths(n *depgraph.Node, limit int) []string {
	paths := []string{}
	for p := range depgraph.ReferencePaths(n) {
		paths = append(paths, p)
		if len(paths) == limit {
			break
		}
	}
	return paths
}
