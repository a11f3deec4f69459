package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/go-coat/coat/cmd/coat/internal/config"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// globalFlags are shared by every command.
type globalFlags struct {
	dir     string
	verbose bool
}

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "coat",
		Short: "Run and inspect coat component trees",
		Long: `coat drives retained-mode component trees.

Commands run the bundled demo in the terminal, dump its laid out
tree, and report build information. Settings are read from an
optional coat.yaml in the project root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", "", "Project directory (default: nearest directory with go.mod or coat.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		demoCmd(&flags),
		treeCmd(&flags),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

// resolve loads the configuration for the selected project directory.
func (f *globalFlags) resolve() (*config.Resolved, error) {
	dir := f.dir
	if dir == "" {
		root, err := config.FindProjectRoot()
		if err != nil {
			return nil, err
		}
		dir = root
	}
	r, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if f.verbose {
		r.LogLevel = slog.LevelDebug
	}
	return r, nil
}

// newLogger returns a text logger writing to w at level.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", mutedStyle.Render(fmt.Sprintf(format, args...)))
}
