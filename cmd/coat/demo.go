package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/go-coat/coat/cmd/coat/internal/config"
	"github.com/go-coat/coat/cmd/coat/internal/demo"
	"github.com/go-coat/coat/pkg/backend/terminal"
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/engine"
	"github.com/go-coat/coat/pkg/errors"
)

func demoCmd(flags *globalFlags) *cobra.Command {
	var (
		debugAddr string
		logFile   string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the demo app in the terminal",
		Long: `Run the demo app in the terminal.

Click the button to count, click the name field and type.
Press Ctrl+C or Esc to quit.

The screen belongs to the app while it runs, so logs go to
--log-file or are discarded.

Examples:
  coat demo
  coat demo --debug-addr=127.0.0.1:9090 --log-file=coat.log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := flags.resolve()
			if err != nil {
				return err
			}
			if debugAddr != "" {
				r.DebugAddr = debugAddr
			}
			return runDemo(cmd, r, logFile)
		},
	}

	cmd.Flags().StringVar(&debugAddr, "debug-addr", "", "Serve the debug API on this address (default from coat.yaml)")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Append logs to this file")

	return cmd
}

func runDemo(cmd *cobra.Command, r *config.Resolved, logFile string) error {
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, r.LogLevel).With(slog.String("app", r.AppName))

	var (
		metrics  *engine.Metrics
		gatherer prometheus.Gatherer
	)
	if r.Metrics {
		registry := prometheus.NewRegistry()
		metrics = engine.NewMetrics(engine.WithRegistry(registry))
		gatherer = registry
	}

	var handler errors.ErrorHandler = &errors.LogHandler{Logger: logger, Verbose: r.LogLevel <= slog.LevelDebug}
	if metrics != nil {
		handler = metrics.ErrorHandler(handler)
	}
	defer errors.SetHandler(errors.SetHandler(handler))

	app := core.Mount(demo.App, demo.Props{Title: r.AppName, Shaper: terminal.CellShaper{}})
	e := engine.New(app, r.EngineConfig(logger, metrics))

	if r.DebugAddr != "" {
		server := engine.NewDebugServer(e, gatherer)
		defer server.Close()
		addr, err := server.Start(r.DebugAddr)
		if err != nil {
			return err
		}
		success(cmd.ErrOrStderr(), "debug server on http://%s", addr)
		info(cmd.ErrOrStderr(), "routes: /health /debug /tree /frames /frames/stream")
		if gatherer != nil {
			info(cmd.ErrOrStderr(), "metrics: http://%s/metrics", addr)
		}
	}

	platform, err := terminal.New(
		terminal.WithLogger(logger),
		terminal.WithQuitKeys(tcell.KeyCtrlC, tcell.KeyEscape),
	)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := e.Run(ctx, platform); err != nil {
		return err
	}
	success(cmd.OutOrStdout(), "%s closed", r.AppName)
	return nil
}
