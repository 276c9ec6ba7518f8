// SPDX-License-Identifier: Unlicense OR MIT

// Package cli implements the passthrough command-line interface.
//
// The commands load a scene, either a TOML file given with --scene or the
// built-in demo window, and route taps through it, render it, export its
// layer tree or serve it over HTTP for inspection.
//
// All commands support --verbose (-v) for debug-level logging, which also
// enables the routing diagnostics of the library packages.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/wasiq-nisar/passthrough/passthrough"
	"github.com/wasiq-nisar/passthrough/scene"
)

const appName = "passthrough"

// Version is reported by --version.
var Version = "devel"

// Execute runs the command line with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           appName,
		Short:         "Route taps through transparent layers",
		Long:          `passthrough decides which layer of a window receives a tap by sampling the rendered alpha under the pointer, letting taps fall through transparent pixels.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			l := newLogger(cmd.ErrOrStderr(), level)
			passthrough.SetLogger(slog.New(l))
			cmd.SetContext(withLogger(cmd.Context(), l))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringP("scene", "s", "", "scene file (TOML); the demo window when empty")

	root.AddCommand(newRouteCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newTreeCmd())
	root.AddCommand(newServeCmd())
	return root
}

// loadScene returns the scene named by the --scene flag together with its
// description.
func loadScene(cmd *cobra.Command) (*scene.File, *scene.Scene, error) {
	path, _ := cmd.Flags().GetString("scene")
	logger := loggerFromContext(cmd.Context())
	if path == "" {
		logger.Debug("Using demo scene")
		f := scene.DefaultFile()
		s, err := scene.Build(f)
		return f, s, err
	}
	f, err := scene.DecodeFile(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := scene.Build(f)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Loaded scene", "path", path, "name", s.Name(), "scale", s.Scale(), "policy", s.Policy())
	return f, s, nil
}

// createFile opens path for writing; "-" and "" select standard output.
func createFile(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(path)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
