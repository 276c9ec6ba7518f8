// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"fmt"
	"image/png"
	"time"

	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the scene to a PNG image at device scale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			_, s, err := loadScene(cmd)
			if err != nil {
				return err
			}
			start := time.Now()
			img, err := s.Render()
			if err != nil {
				return err
			}
			w, err := createFile(cmd, output)
			if err != nil {
				return err
			}
			if err := png.Encode(w, img); err != nil {
				w.Close()
				return fmt.Errorf("encode %s: %w", output, err)
			}
			if err := w.Close(); err != nil {
				return err
			}
			logger.Infof("Rendered %s at %gx (%s)", s.Name(), s.Scale(), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}
