// SPDX-License-Identifier: Unlicense OR MIT

package layer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/gogpu/gg"
	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/raster"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Painter draws part of a layer's content. size is the local size of the
// layer.
type Painter interface {
	Paint(s *raster.Surface, size f32.Point) error
}

// Fill paints the whole layer with a solid color.
type Fill struct {
	Color color.NRGBA
}

// RoundRect paints the whole layer with a solid color and rounded corners.
// A Radius of at least half the shorter side gives a capsule.
type RoundRect struct {
	Color  color.NRGBA
	Radius float32
}

// Alignment is the horizontal alignment of Text lines.
type Alignment uint8

const (
	Start Alignment = iota
	Middle
	End
)

// Text paints lines of text set in Go Regular. Lines wrap at the width of
// the layer. The first baseline sits one ascent below the top of the layer.
type Text struct {
	Text      string
	Size      float32
	Color     color.NRGBA
	Alignment Alignment
}

// Image paints an image scaled to the layer size.
type Image struct {
	Src image.Image
}

// Canvas paints arbitrary vector content with a gg drawing context whose
// transform maps local coordinates to surface pixels.
type Canvas func(dc *gg.Context, size f32.Point) error

// DefaultTextSize is used by Text painters with a zero Size.
const DefaultTextSize = 17

func (f Fill) Paint(s *raster.Surface, size f32.Point) error {
	return s.FillRect(f32.Rectangle{Max: size}, f.Color)
}

func (r RoundRect) Paint(s *raster.Surface, size f32.Point) error {
	return s.Fill(raster.UniformRRect(f32.Rectangle{Max: size}, r.Radius), r.Color)
}

func (i Image) Paint(s *raster.Surface, size f32.Point) error {
	if i.Src == nil {
		return nil
	}
	return s.DrawImage(i.Src, f32.Rectangle{Max: size})
}

func (t Text) Paint(s *raster.Surface, size f32.Point) error {
	if t.Text == "" || t.Color.A == 0 {
		return nil
	}
	scale := s.Scale()
	if !(scale > 0) {
		scale = 1
	}
	pt := t.Size
	if pt <= 0 {
		pt = DefaultTextSize
	}
	face, err := goRegularFace(pt * scale)
	if err != nil {
		return err
	}
	defer face.Close()

	m := face.Metrics()
	ascent := float32(m.Ascent) / 64 / scale
	lineHeight := float32(m.Height) / 64 / scale
	y := ascent
	for _, line := range wrapLines(face, t.Text, size.X, scale) {
		var x float32
		if t.Alignment != Start {
			w := float32(font.MeasureString(face, line)) / 64 / scale
			switch t.Alignment {
			case Middle:
				x = (size.X - w) / 2
			case End:
				x = size.X - w
			}
		}
		if err := s.DrawString(face, f32.Pt(x, y), line, t.Color); err != nil {
			return err
		}
		y += lineHeight
	}
	return nil
}

func (c Canvas) Paint(s *raster.Surface, size f32.Point) error {
	img, err := s.Image()
	if err != nil {
		return err
	}
	px := img.Rect.Size()
	dc := gg.NewContext(px.X, px.Y)
	defer dc.Close()
	sx, hx, ox, hy, sy, oy := s.Transform().Elems()
	dc.SetTransform(gg.Matrix{
		A: float64(sx), B: float64(hx), C: float64(ox),
		D: float64(hy), E: float64(sy), F: float64(oy),
	})
	if err := c(dc, size); err != nil {
		return fmt.Errorf("layer: canvas: %w", err)
	}
	draw.Draw(img, img.Rect, dc.Image(), image.Point{}, draw.Over)
	return nil
}

var goRegular struct {
	once sync.Once
	font *opentype.Font
	err  error
}

func goRegularFace(size float32) (font.Face, error) {
	goRegular.once.Do(func() {
		goRegular.font, goRegular.err = opentype.Parse(goregular.TTF)
	})
	if goRegular.err != nil {
		return nil, fmt.Errorf("layer: parse Go Regular: %w", goRegular.err)
	}
	return opentype.NewFace(goRegular.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
