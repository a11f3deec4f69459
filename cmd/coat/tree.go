package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/go-coat/coat/cmd/coat/internal/config"
	"github.com/go-coat/coat/cmd/coat/internal/demo"
	"github.com/go-coat/coat/pkg/backend/terminal"
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/engine"
	"github.com/go-coat/coat/pkg/graphics"
)

func treeCmd(flags *globalFlags) *cobra.Command {
	var (
		width, height int
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the laid out demo tree",
		Long: `Mount the demo app headlessly, run one frame, and print every
node with its full debug name and root-relative bounds.

Examples:
  coat tree
  coat tree --width=40 --height=12
  coat tree --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.resolve()
			if err != nil {
				return err
			}
			if width > 0 {
				r.Width = width
			}
			if height > 0 {
				r.Height = height
			}

			logger := newLogger(cmd.ErrOrStderr(), r.LogLevel)
			root, err := buildTree(r, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(root)
			}
			renderTree(out, r, root, defaultTreeStyles())
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Surface width (default from coat.yaml)")
	cmd.Flags().IntVar(&height, "height", 0, "Surface height (default from coat.yaml)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the tree as JSON")

	return cmd
}

// buildTree runs one headless frame of the demo and snapshots the result.
func buildTree(r *config.Resolved, logger *slog.Logger) (*core.NodeInfo, error) {
	app := core.Mount(demo.App, demo.Props{Title: r.AppName, Shaper: terminal.CellShaper{}})
	e := engine.New(app, r.EngineConfig(logger, nil))

	size := graphics.Size{Width: float64(r.Width), Height: float64(r.Height)}
	e.Frame(context.Background(), nil, size)
	root := e.Arena().Snapshot(e.Root())
	if root == nil {
		return nil, fmt.Errorf("%s: nothing was mounted", r.AppName)
	}
	return root, nil
}

type treeStyles struct {
	header   lipgloss.Style
	kind     lipgloss.Style
	path     lipgloss.Style
	geometry lipgloss.Style
	focused  lipgloss.Style
}

func defaultTreeStyles() treeStyles {
	return treeStyles{
		header: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Bold(true),
		kind:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		path:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		geometry: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		focused:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// renderTree prints a header and one line per node, indented by depth.
func renderTree(w io.Writer, r *config.Resolved, root *core.NodeInfo, st treeStyles) {
	header := fmt.Sprintf("%s  %dx%d  %d nodes", r.AppName, r.Width, r.Height, root.Count())
	fmt.Fprintln(w, st.header.Render(header))

	var walk func(n *core.NodeInfo, origin graphics.Offset, depth int)
	walk = func(n *core.NodeInfo, origin graphics.Offset, depth int) {
		at := origin.Add(n.Position)
		line := strings.Repeat("  ", depth) +
			st.kind.Render(n.Kind) + " " +
			st.path.Render(n.Path) + " " +
			st.geometry.Render(formatBounds(at, n.Size))
		if n.Focused {
			line += " " + st.focused.Render("focused")
		}
		fmt.Fprintln(w, line)
		for i := range n.Children {
			walk(&n.Children[i], at, depth+1)
		}
	}
	walk(root, graphics.Offset{}, 0)
}

func formatBounds(at graphics.Offset, size graphics.Size) string {
	return fmt.Sprintf("(%g,%g %gx%g)", at.X, at.Y, size.Width, size.Height)
}
