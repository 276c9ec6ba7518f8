// SPDX-License-Identifier: Unlicense OR MIT

/*
Package raster implements off-screen CPU raster surfaces.

A Surface is an explicit render target: it is acquired with New, drawn
into through its current transform and released with Release. Nothing in
this package keeps a process wide "current" surface.
*/
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/wasiq-nisar/passthrough/f32"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	// ErrEmpty is returned when acquiring a surface without pixels.
	ErrEmpty = errors.New("raster: empty surface")
	// ErrReleased is returned by operations on a released surface.
	ErrReleased = errors.New("raster: surface released")
	// ErrOutOfRange is returned when reading a pixel outside the surface.
	ErrOutOfRange = errors.New("raster: pixel out of range")
	// ErrTooLarge is returned when acquiring a surface of more than
	// MaxPixels pixels.
	ErrTooLarge = errors.New("raster: surface too large")
)

// MaxPixels bounds the pixel count of a Surface.
const MaxPixels = 1 << 26

// Surface is an off-screen RGBA (premultiplied) render target. The zero
// value is a released surface.
type Surface struct {
	img   *image.RGBA
	trans f32.Affine2D
}

// TransformStack restores the transform of a Surface.
type TransformStack struct {
	s    *Surface
	prev f32.Affine2D
}

// New acquires a transparent surface of the given pixel size.
func New(size image.Point) (*Surface, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrEmpty, size)
	}
	if size.X > MaxPixels || size.Y > MaxPixels/size.X {
		return nil, fmt.Errorf("%w: %v", ErrTooLarge, size)
	}
	return &Surface{img: image.NewRGBA(image.Rectangle{Max: size})}, nil
}

// Release drops the pixel buffer. It is safe to call Release more than
// once.
func (s *Surface) Release() {
	s.img = nil
	s.trans = f32.Affine2D{}
}

// Released reports whether the surface has been released.
func (s *Surface) Released() bool {
	return s.img == nil
}

// Size returns the surface size in pixels, or the zero point after
// Release.
func (s *Surface) Size() image.Point {
	if s.img == nil {
		return image.Point{}
	}
	return s.img.Rect.Size()
}

// Image returns the backing image.
func (s *Surface) Image() (*image.RGBA, error) {
	if s.img == nil {
		return nil, ErrReleased
	}
	return s.img, nil
}

// Transform returns the transform from local to pixel coordinates.
func (s *Surface) Transform() f32.Affine2D {
	return s.trans
}

// SetTransform replaces the local to pixel transform.
func (s *Surface) SetTransform(t f32.Affine2D) {
	s.trans = t
}

// Push applies t in the current local frame until the returned stack is
// popped.
func (s *Surface) Push(t f32.Affine2D) TransformStack {
	st := TransformStack{s: s, prev: s.trans}
	s.trans = s.trans.Mul(t)
	return st
}

// Pop restores the transform in effect before the matching Push.
func (t TransformStack) Pop() {
	t.s.trans = t.prev
}

// Scale returns the linear scale factor of the current transform.
func (s *Surface) Scale() float32 {
	sx, hx, _, hy, sy, _ := s.trans.Elems()
	return float32(math.Sqrt(math.Abs(float64(sx*sy - hx*hy))))
}

// Alpha returns the alpha channel of the pixel at (x, y).
func (s *Surface) Alpha(x, y int) (uint8, error) {
	if s.img == nil {
		return 0, ErrReleased
	}
	if !image.Pt(x, y).In(s.img.Rect) {
		return 0, fmt.Errorf("%w: (%d,%d) in %v", ErrOutOfRange, x, y, s.img.Rect)
	}
	return s.img.Pix[s.img.PixOffset(x, y)+3], nil
}

// Clear resets every pixel to transparent.
func (s *Surface) Clear() {
	if s.img == nil {
		return
	}
	clear(s.img.Pix)
}

// Fill paints the area enclosed by p, given in local coordinates, with c.
func (s *Surface) Fill(p *Path, c color.NRGBA) error {
	if s.img == nil {
		return ErrReleased
	}
	if p == nil || len(p.cmds) == 0 || c.A == 0 {
		return nil
	}
	bounds := transformBounds(s.trans, p.Bounds()).Intersect(s.img.Rect)
	if bounds.Empty() {
		return nil
	}
	vr := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	vr.DrawOp = draw.Over
	off := f32.Pt(float32(-bounds.Min.X), float32(-bounds.Min.Y))
	p.rasterize(vr, s.trans.Offset(off))
	vr.Draw(s.img, bounds, image.NewUniform(c), image.Point{})
	return nil
}

// FillRect paints the rectangle r, given in local coordinates, with c.
func (s *Surface) FillRect(r f32.Rectangle, c color.NRGBA) error {
	return s.Fill(RectPath(r), c)
}

// DrawImage scales src into the local rectangle dst and composites it over
// the surface.
func (s *Surface) DrawImage(src image.Image, dst f32.Rectangle) error {
	if s.img == nil {
		return ErrReleased
	}
	sb := src.Bounds()
	if sb.Empty() || dst.Empty() {
		return nil
	}
	fit := f32.Affine2D{}.
		Offset(f32.Pt(float32(-sb.Min.X), float32(-sb.Min.Y))).
		Scale(f32.Point{}, f32.Pt(dst.Dx()/float32(sb.Dx()), dst.Dy()/float32(sb.Dy()))).
		Offset(dst.Min)
	sx, hx, ox, hy, sy, oy := s.trans.Mul(fit).Elems()
	s2d := f64.Aff3{
		float64(sx), float64(hx), float64(ox),
		float64(hy), float64(sy), float64(oy),
	}
	xdraw.ApproxBiLinear.Transform(s.img, s2d, src, sb, xdraw.Over, nil)
	return nil
}

// DrawString draws text with its baseline starting at the local point dot.
// The face must already be sized for the surface scale. Only the position
// of the baseline follows the transform; glyphs are drawn axis aligned.
func (s *Surface) DrawString(face font.Face, dot f32.Point, text string, c color.NRGBA) error {
	if s.img == nil {
		return ErrReleased
	}
	if c.A == 0 || text == "" {
		return nil
	}
	p := s.trans.Transform(dot)
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)},
	}
	d.DrawString(text)
	return nil
}

// Group renders fn into a scratch surface with the same size and transform
// and composites the result over s with the given opacity.
func (s *Surface) Group(opacity float32, fn func(*Surface) error) error {
	if s.img == nil {
		return ErrReleased
	}
	if opacity >= 1 {
		return fn(s)
	}
	if !(opacity > 0) {
		return nil
	}
	tmp, err := New(s.Size())
	if err != nil {
		return err
	}
	defer tmp.Release()
	tmp.trans = s.trans
	if err := fn(tmp); err != nil {
		return err
	}
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + .5)})
	draw.DrawMask(s.img, s.img.Rect, tmp.img, image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

// transformBounds returns the smallest integer rectangle covering bounds
// transformed by t.
func transformBounds(t f32.Affine2D, bounds f32.Rectangle) image.Rectangle {
	b0 := f32.Rectangle{
		Min: t.Transform(bounds.Min),
		Max: t.Transform(bounds.Max),
	}.Canon()
	b1 := f32.Rectangle{
		Min: t.Transform(f32.Pt(bounds.Max.X, bounds.Min.Y)),
		Max: t.Transform(f32.Pt(bounds.Min.X, bounds.Max.Y)),
	}.Canon()
	u := b0.Union(b1)
	if !u.Finite() {
		return image.Rectangle{}
	}
	return image.Rect(
		clampInt(math.Floor(float64(u.Min.X))), clampInt(math.Floor(float64(u.Min.Y))),
		clampInt(math.Ceil(float64(u.Max.X))), clampInt(math.Ceil(float64(u.Max.Y))),
	)
}

func clampInt(v float64) int {
	const limit = 1 << 30
	return int(max(-limit, min(limit, v)))
}
