// SPDX-License-Identifier: Unlicense OR MIT

package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/hit"
	"github.com/wasiq-nisar/passthrough/layer"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	stylePoint    = lipgloss.NewStyle().Foreground(colorGray)
	styleReceiver = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	stylePass     = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconArrow = "→"
	iconInfo  = "›"
)

// formatResult renders one routing decision on a single line.
func formatResult(p f32.Point, res hit.Result) string {
	point := stylePoint.Render(p.String())
	if res.Passed() {
		return fmt.Sprintf("%s %s %s", point, iconArrow, stylePass.Render("pass through"))
	}
	return fmt.Sprintf("%s %s %s %s", point, iconArrow,
		styleReceiver.Render(layer.Name(res.Receiver)),
		styleDim.Render("at "+res.Local.String()))
}

func formatTitle(name string, size f32.Point, policy hit.Policy) string {
	return fmt.Sprintf("%s %s %s", iconInfo, styleTitle.Render(name),
		styleDim.Render(fmt.Sprintf("%gx%g, %s", size.X, size.Y, policy)))
}
