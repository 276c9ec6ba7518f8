// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wasiq-nisar/passthrough/f32"
)

func newRouteCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "route x,y [x,y...]",
		Short: "Print the receiver of a tap at each point",
		Example: `  passthrough route 100,180 2,502
  passthrough route --scene sheet.toml 200,700`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pts := make([]f32.Point, len(args))
			for i, a := range args {
				p, err := parsePoint(a)
				if err != nil {
					return err
				}
				pts[i] = p
			}
			_, s, err := loadScene(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !quiet {
				fmt.Fprintln(out, formatTitle(s.Name(), s.Size(), s.Policy()))
			}
			for _, p := range pts {
				fmt.Fprintln(out, formatResult(p, s.Route(p)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "omit the scene header")
	return cmd
}

// parsePoint parses "x,y", optionally enclosed in parentheses.
func parsePoint(s string) (f32.Point, error) {
	v := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s), "("), ")")
	xs, ys, ok := strings.Cut(v, ",")
	if !ok {
		return f32.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return f32.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return f32.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	p := f32.Pt(float32(x), float32(y))
	if !p.Finite() {
		return f32.Point{}, fmt.Errorf("point %q: not finite", s)
	}
	return p, nil
}
