// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wasiq-nisar/passthrough/scene"
)

func newTreeCmd() *cobra.Command {
	var (
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Export the layer tree as DOT, SVG or TOML",
		Long: `tree writes the layer tree of the scene. The dot and svg formats show the
structure, front to back; the toml format writes the scene description, which
is a starting point for custom scene files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, s, err := loadScene(cmd)
			if err != nil {
				return err
			}
			var write func(w io.Writer) error
			switch format {
			case "dot":
				write = func(w io.Writer) error {
					_, err := io.WriteString(w, scene.DOT(s.Root()))
					return err
				}
			case "svg":
				svg, err := scene.RenderSVG(cmd.Context(), scene.DOT(s.Root()))
				if err != nil {
					return err
				}
				write = func(w io.Writer) error {
					_, err := w.Write(svg)
					return err
				}
			case "toml":
				write = f.Encode
			default:
				return fmt.Errorf("unknown format %q: want dot, svg or toml", format)
			}
			w, err := createFile(cmd, output)
			if err != nil {
				return err
			}
			if err := write(w); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg or toml")
	return cmd
}
