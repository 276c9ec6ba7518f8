// SPDX-License-Identifier: Unlicense OR MIT

package raster

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/wasiq-nisar/passthrough/f32"
	"golang.org/x/image/colornames"
)

var red = color.NRGBA(colornames.Red)

func newSurface(t *testing.T, w, h int) *Surface {
	t.Helper()
	s, err := New(image.Pt(w, h))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Release)
	return s
}

func expectAlpha(t *testing.T, s *Surface, x, y int, want uint8) {
	t.Helper()
	a, err := s.Alpha(x, y)
	if err != nil {
		t.Fatalf("Alpha(%d, %d): %v", x, y, err)
	}
	if a != want {
		t.Errorf("alpha at (%d,%d): have %d, want %d", x, y, a, want)
	}
}

func TestNewEmpty(t *testing.T) {
	for _, sz := range []image.Point{{}, {X: 1}, {Y: 1}, {X: -1, Y: 4}} {
		if _, err := New(sz); !errors.Is(err, ErrEmpty) {
			t.Errorf("New(%v): have %v, want %v", sz, err, ErrEmpty)
		}
	}
}

func TestNewTooLarge(t *testing.T) {
	for _, sz := range []image.Point{{X: 1 << 14, Y: 1 << 14}, {X: 1, Y: MaxPixels + 1}, {X: math.MaxInt32, Y: math.MaxInt32}} {
		if _, err := New(sz); !errors.Is(err, ErrTooLarge) {
			t.Errorf("New(%v): have %v, want %v", sz, err, ErrTooLarge)
		}
	}
}

func TestFillRect(t *testing.T) {
	s := newSurface(t, 4, 4)
	if err := s.FillRect(f32.Rect(1, 1, 3, 3), red); err != nil {
		t.Fatal(err)
	}
	expectAlpha(t, s, 0, 0, 0)
	expectAlpha(t, s, 1, 1, 255)
	expectAlpha(t, s, 2, 2, 255)
	expectAlpha(t, s, 3, 3, 0)
}

func TestFillTransform(t *testing.T) {
	s := newSurface(t, 2, 2)
	s.SetTransform(f32.Affine2D{}.Offset(f32.Pt(-10, -10)).Scale(f32.Point{}, f32.Pt(2, 2)))
	if err := s.FillRect(f32.Rect(10, 10, 11, 11), red); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			expectAlpha(t, s, x, y, 255)
		}
	}
}

func TestRRectCorners(t *testing.T) {
	s := newSurface(t, 40, 40)
	if err := s.Fill(UniformRRect(f32.Rect(0, 0, 40, 40), 20), red); err != nil {
		t.Fatal(err)
	}
	expectAlpha(t, s, 2, 2, 0)
	expectAlpha(t, s, 37, 2, 0)
	expectAlpha(t, s, 2, 37, 0)
	expectAlpha(t, s, 37, 37, 0)
	expectAlpha(t, s, 20, 20, 255)
	expectAlpha(t, s, 20, 5, 255)
}

func TestRRectClampsRadius(t *testing.T) {
	p := UniformRRect(f32.Rect(0, 0, 10, 4), 100)
	if b := p.Bounds(); b != f32.Rect(0, 0, 10, 4) {
		t.Errorf("bounds: have %v, want %v", b, f32.Rect(0, 0, 10, 4))
	}
}

func TestRelease(t *testing.T) {
	s, err := New(image.Pt(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	s.Release()
	s.Release()
	if !s.Released() {
		t.Error("surface not released")
	}
	if err := s.FillRect(f32.Rect(0, 0, 1, 1), red); !errors.Is(err, ErrReleased) {
		t.Errorf("Fill after Release: have %v, want %v", err, ErrReleased)
	}
	if _, err := s.Alpha(0, 0); !errors.Is(err, ErrReleased) {
		t.Errorf("Alpha after Release: have %v, want %v", err, ErrReleased)
	}
	if _, err := s.Image(); !errors.Is(err, ErrReleased) {
		t.Errorf("Image after Release: have %v, want %v", err, ErrReleased)
	}
}

func TestAlphaOutOfRange(t *testing.T) {
	s := newSurface(t, 1, 1)
	if _, err := s.Alpha(1, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("have %v, want %v", err, ErrOutOfRange)
	}
}

func TestGroupOpacity(t *testing.T) {
	s := newSurface(t, 1, 1)
	err := s.Group(0.5, func(g *Surface) error {
		return g.FillRect(f32.Rect(0, 0, 1, 1), red)
	})
	if err != nil {
		t.Fatal(err)
	}
	expectAlpha(t, s, 0, 0, 128)

	s.Clear()
	err = s.Group(0, func(g *Surface) error {
		t.Error("group with zero opacity was rendered")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	expectAlpha(t, s, 0, 0, 0)
}

func TestPushPop(t *testing.T) {
	s := newSurface(t, 1, 1)
	base := f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(3, 3))
	s.SetTransform(base)
	st := s.Push(f32.Affine2D{}.Offset(f32.Pt(5, 5)))
	if got, want := s.Transform().Transform(f32.Point{}), f32.Pt(15, 15); got != want {
		t.Errorf("pushed transform: have %v, want %v", got, want)
	}
	if got := s.Scale(); got != 3 {
		t.Errorf("scale: have %v, want 3", got)
	}
	st.Pop()
	if s.Transform() != base {
		t.Errorf("popped transform: have %v, want %v", s.Transform(), base)
	}
}

func TestDrawImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	s := newSurface(t, 8, 8)
	if err := s.DrawImage(src, f32.Rect(2, 2, 6, 6)); err != nil {
		t.Fatal(err)
	}
	expectAlpha(t, s, 3, 3, 255)
	expectAlpha(t, s, 4, 4, 255)
	expectAlpha(t, s, 0, 0, 0)
	expectAlpha(t, s, 7, 7, 0)
}
