// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/hit"
	"github.com/wasiq-nisar/passthrough/layer"
	"github.com/wasiq-nisar/passthrough/passthrough"
	"github.com/wasiq-nisar/passthrough/pixel"
)

// Default window size for files that leave it out.
const (
	DefaultWidth  = 400
	DefaultHeight = 800
)

// MaxScale is the largest device scale a file may request.
const MaxScale = 16

// Load reads and builds the scene in the file at path.
func Load(path string) (*Scene, error) {
	f, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return Build(f)
}

// Build constructs the layer tree described by f.
func Build(f *File) (*Scene, error) {
	w, h := f.Width, f.Height
	if w == 0 && h == 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	if !finite(w) || !finite(h) || w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: window size %vx%v", ErrInvalid, w, h)
	}
	scale := f.Scale
	if scale == 0 {
		scale = 1
	}
	if !finite(scale) || scale < 0 || scale > MaxScale {
		return nil, fmt.Errorf("%w: scale %v", ErrInvalid, scale)
	}
	policy, err := hit.ParsePolicy(f.Policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	mode, err := parseMode(f.Mode)
	if err != nil {
		return nil, err
	}
	name := f.Name
	if name == "" {
		name = "window"
	}
	bg, err := ParseColor(f.Color)
	if err != nil {
		return nil, err
	}
	root := layer.NewBox(name, f32.Rect(0, 0, w, h))
	if bg.A != 0 {
		root.SetPainters(layer.Fill{Color: bg})
	}
	b := builder{scale: scale, mode: mode, policy: policy}
	for i := range f.Layers {
		l, err := b.layer(&f.Layers[i], name, i)
		if err != nil {
			return nil, err
		}
		root.Add(l)
	}
	return New(root, WithScale(scale), WithMode(mode), WithPolicy(policy)), nil
}

type builder struct {
	scale  float32
	mode   pixel.Mode
	policy hit.Policy
}

func (b *builder) layer(s *Node, parent string, index int) (layer.Layer, error) {
	name := s.Name
	if name == "" {
		name = fmt.Sprintf("layer%d", index)
	}
	path := parent + "/" + name
	wrap := func(err error) error {
		return fmt.Errorf("scene: layer %s: %w", path, err)
	}
	if len(s.Frame) != 4 {
		return nil, wrap(fmt.Errorf("%w: frame needs x, y, width and height, have %v", ErrInvalid, s.Frame))
	}
	x, y, w, h := s.Frame[0], s.Frame[1], s.Frame[2], s.Frame[3]
	if w < 0 || h < 0 {
		return nil, wrap(fmt.Errorf("%w: negative size %vx%v", ErrInvalid, w, h))
	}
	frame := f32.Rectangle{Min: f32.Pt(x, y), Max: f32.Pt(x+w, y+h)}
	if !frame.Finite() {
		return nil, wrap(fmt.Errorf("%w: frame %v", ErrInvalid, s.Frame))
	}
	painters, err := painters(s)
	if err != nil {
		return nil, wrap(err)
	}
	opacity := float32(1)
	if s.Opacity != nil {
		opacity = *s.Opacity
		if !finite(opacity) || opacity < 0 || opacity > 1 {
			return nil, wrap(fmt.Errorf("%w: opacity %v", ErrInvalid, opacity))
		}
	}

	if !finite(s.Rotation) || s.Rotation != 0 && s.Passthrough {
		return nil, wrap(fmt.Errorf("%w: rotation %v", ErrInvalid, s.Rotation))
	}

	box := layer.NewBox(name, frame, painters...)
	if s.Rotation != 0 {
		rad := float32(float64(s.Rotation) * math.Pi / 180)
		box.SetTransform(f32.Affine2D{}.Rotate(frame.Size().Mul(0.5), rad))
	}
	for i := range s.Layers {
		c, err := b.layer(&s.Layers[i], path, i)
		if err != nil {
			return nil, err
		}
		box.Add(c)
	}
	box.SetInteractive(!s.Disabled)
	if !s.Passthrough {
		box.SetHidden(s.Hidden)
		box.SetOpacity(opacity)
		return box, nil
	}
	box.SetName(name + "/overlay")
	c := passthrough.New(frame, box,
		passthrough.WithScale(b.scale),
		passthrough.WithMode(b.mode),
		passthrough.WithPolicy(b.policy),
	)
	c.SetName(name)
	c.SetHidden(s.Hidden)
	c.SetOpacity(opacity)
	return c, nil
}

func painters(s *Node) ([]layer.Painter, error) {
	var ps []layer.Painter
	fill, err := ParseColor(s.Color)
	if err != nil {
		return nil, err
	}
	if fill.A != 0 {
		switch strings.ToLower(s.Shape) {
		case "", "rect":
			if s.Radius > 0 {
				ps = append(ps, layer.RoundRect{Color: fill, Radius: s.Radius})
			} else {
				ps = append(ps, layer.Fill{Color: fill})
			}
		case "capsule":
			ps = append(ps, layer.RoundRect{Color: fill, Radius: math.MaxFloat32})
		case "ellipse":
			ps = append(ps, ellipse(fill))
		default:
			return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalid, s.Shape)
		}
	}
	if s.Text != "" {
		tc := color.NRGBA{A: 0xff}
		if s.TextColor != "" {
			if tc, err = ParseColor(s.TextColor); err != nil {
				return nil, err
			}
		}
		align, err := parseAlign(s.Align)
		if err != nil {
			return nil, err
		}
		ps = append(ps, layer.Text{Text: s.Text, Size: s.TextSize, Color: tc, Alignment: align})
	}
	return ps, nil
}

// ellipse paints an ellipse inscribed in the layer with gg.
func ellipse(c color.NRGBA) layer.Canvas {
	return func(dc *gg.Context, size f32.Point) error {
		rx, ry := float64(size.X)/2, float64(size.Y)/2
		dc.DrawEllipse(rx, ry, rx, ry)
		dc.SetColor(c)
		return dc.Fill()
	}
}

func parseAlign(s string) (layer.Alignment, error) {
	switch strings.ToLower(s) {
	case "", "start", "left":
		return layer.Start, nil
	case "middle", "center":
		return layer.Middle, nil
	case "end", "right":
		return layer.End, nil
	default:
		return 0, fmt.Errorf("%w: unknown alignment %q", ErrInvalid, s)
	}
}

func parseMode(s string) (pixel.Mode, error) {
	switch s {
	case "", "subtree":
		return pixel.SubtreeMode, nil
	case "self":
		return pixel.SelfMode, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalid, s)
	}
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
