// SPDX-License-Identifier: Unlicense OR MIT

package layer

import (
	"strings"

	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
	"golang.org/x/image/font"
)

// wrapLines breaks text into lines no wider than width, in face units
// divided by scale. Explicit newlines always break; other breaks are placed
// at UAX #14 line break opportunities. A word wider than width gets a line
// of its own. A width of zero or less disables wrapping.
func wrapLines(face font.Face, text string, width, scale float32) []string {
	paras := strings.Split(text, "\n")
	if !(width > 0) {
		return paras
	}
	measure := func(s string) float32 {
		return float32(font.MeasureString(face, s)) / 64 / scale
	}
	var lines []string
	for _, para := range paras {
		if measure(para) <= width {
			lines = append(lines, para)
			continue
		}
		seg := segment.NewSegmenter(uax14.NewLineWrap())
		seg.Init(strings.NewReader(para))
		var line string
		for seg.Next() {
			word := seg.Text()
			if line != "" && measure(strings.TrimRight(line+word, " ")) > width {
				lines = append(lines, strings.TrimRight(line, " "))
				line = ""
			}
			line += word
		}
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}
