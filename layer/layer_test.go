// SPDX-License-Identifier: Unlicense OR MIT

package layer

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gg"
	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/raster"
	"golang.org/x/image/colornames"
)

var (
	red   = color.NRGBA(colornames.Red)
	black = color.NRGBA(colornames.Black)
)

func TestAddFrontToBack(t *testing.T) {
	root := NewBox("root", f32.Rect(0, 0, 100, 100))
	a := NewBox("a", f32.Rect(0, 0, 10, 10))
	b := NewBox("b", f32.Rect(0, 0, 10, 10))
	c := NewBox("c", f32.Rect(0, 0, 10, 10))
	root.Add(a)
	root.Add(b)
	root.AddBack(c)
	want := []Layer{b, a, c}
	got := root.Children()
	if len(got) != len(want) {
		t.Fatalf("children: have %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d: have %v, want %v", i, Name(got[i]), Name(want[i]))
		}
	}
}

func TestAddReparents(t *testing.T) {
	p1 := NewBox("p1", f32.Rect(0, 0, 10, 10))
	p2 := NewBox("p2", f32.Rect(0, 0, 10, 10))
	c := NewBox("c", f32.Rect(0, 0, 1, 1))
	p1.Add(c)
	p2.Add(c)
	if n := len(p1.Children()); n != 0 {
		t.Errorf("old parent kept %d children", n)
	}
	if c.Parent() != p2 {
		t.Errorf("parent: have %v, want p2", c.Parent())
	}
	if !p2.Remove(c) {
		t.Error("Remove reported missing child")
	}
	if c.Parent() != nil {
		t.Error("removed child kept its parent")
	}
	if p2.Remove(c) {
		t.Error("second Remove reported success")
	}
}

func TestHitTestable(t *testing.T) {
	hidden := NewBox("hidden", f32.Rect(0, 0, 1, 1))
	hidden.SetHidden(true)
	faint := NewBox("faint", f32.Rect(0, 0, 1, 1))
	faint.SetOpacity(0.005)
	disabled := NewBox("disabled", f32.Rect(0, 0, 1, 1))
	disabled.SetInteractive(false)
	plain := NewBox("plain", f32.Rect(0, 0, 1, 1))

	tests := []struct {
		l       Layer
		visible bool
		hit     bool
	}{
		{hidden, false, false},
		{faint, false, false},
		{disabled, true, false},
		{plain, true, true},
	}
	for _, tc := range tests {
		if got := Visible(tc.l); got != tc.visible {
			t.Errorf("Visible(%v): have %v, want %v", Name(tc.l), got, tc.visible)
		}
		if got := HitTestable(tc.l); got != tc.hit {
			t.Errorf("HitTestable(%v): have %v, want %v", Name(tc.l), got, tc.hit)
		}
	}
}

func TestToLocal(t *testing.T) {
	b := NewBox("b", f32.Rect(10, 20, 30, 40))
	b.SetTransform(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(2, 2)))
	if got, want := ToLocal(b, f32.Pt(14, 24)), f32.Pt(2, 2); got != want {
		t.Errorf("have %v, want %v", got, want)
	}
	if !Contains(b, f32.Pt(0, 0)) || Contains(b, f32.Pt(20, 0)) {
		t.Error("local containment does not follow the frame size")
	}
}

func TestMalformed(t *testing.T) {
	b := NewBox("b", f32.Rectangle{Min: f32.Pt(10, 10), Max: f32.Pt(5, 20)})
	if !Malformed(b) {
		t.Error("negative width not reported")
	}
	if Malformed(NewBox("ok", f32.Rect(0, 0, 1, 1))) {
		t.Error("valid bounds reported as malformed")
	}
}

func TestFind(t *testing.T) {
	root := NewBox("root", f32.Rect(0, 0, 10, 10))
	mid := NewBox("mid", f32.Rect(0, 0, 10, 10))
	leaf := NewBox("leaf", f32.Rect(0, 0, 10, 10))
	root.Add(mid)
	mid.Add(leaf)
	if got := root.Find("leaf"); got != leaf {
		t.Errorf("have %v, want leaf", got)
	}
	if got := root.Find("missing"); got != nil {
		t.Errorf("have %v, want nil", got)
	}
}

func newSurface(t *testing.T, w, h int) *raster.Surface {
	t.Helper()
	s, err := raster.New(image.Pt(w, h))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(s.Release)
	return s
}

func alphaAt(t *testing.T, s *raster.Surface, x, y int) uint8 {
	t.Helper()
	a, err := s.Alpha(x, y)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestCompositeChildren(t *testing.T) {
	parent := NewBox("parent", f32.Rect(0, 0, 10, 10))
	child := NewBox("child", f32.Rect(2, 2, 6, 6), Fill{Color: red})
	child.SetOpacity(0.5)
	hidden := NewBox("hidden", f32.Rect(0, 0, 10, 10), Fill{Color: red})
	hidden.SetHidden(true)
	parent.Add(child)
	parent.Add(hidden)

	s := newSurface(t, 10, 10)
	if err := Composite(parent, s); err != nil {
		t.Fatal(err)
	}
	if a := alphaAt(t, s, 3, 3); a != 128 {
		t.Errorf("child alpha: have %d, want 128", a)
	}
	if a := alphaAt(t, s, 0, 0); a != 0 {
		t.Errorf("background alpha: have %d, want 0", a)
	}
}

func TestRoundRectPaint(t *testing.T) {
	b := NewBox("sheet", f32.Rect(0, 0, 40, 40), RoundRect{Color: red, Radius: 20})
	s := newSurface(t, 40, 40)
	if err := b.Render(s); err != nil {
		t.Fatal(err)
	}
	if a := alphaAt(t, s, 1, 1); a != 0 {
		t.Errorf("corner alpha: have %d, want 0", a)
	}
	if a := alphaAt(t, s, 20, 20); a != 255 {
		t.Errorf("center alpha: have %d, want 255", a)
	}
}

func TestTextPaint(t *testing.T) {
	b := NewBox("label", f32.Rect(0, 0, 120, 30), Text{Text: "Tap Me", Size: 20, Color: black, Alignment: Middle})
	s := newSurface(t, 120, 30)
	if err := b.Render(s); err != nil {
		t.Fatal(err)
	}
	img, err := s.Image()
	if err != nil {
		t.Fatal(err)
	}
	var inked, blank int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			inked++
		} else {
			blank++
		}
	}
	if inked == 0 {
		t.Error("text left no ink")
	}
	if blank == 0 {
		t.Error("text covered the whole layer")
	}
	// Centered text leaves the left margin clear.
	if a := alphaAt(t, s, 0, 15); a != 0 {
		t.Errorf("left margin alpha: have %d, want 0", a)
	}
}

func TestCanvasPaint(t *testing.T) {
	b := NewBox("canvas", f32.Rect(0, 0, 5, 5), Canvas(func(dc *gg.Context, size f32.Point) error {
		dc.SetRGBA(0, 0, 1, 1)
		dc.DrawRectangle(0, 0, 2, 2)
		return dc.Fill()
	}))
	s := newSurface(t, 10, 10)
	s.SetTransform(f32.Affine2D{}.Scale(f32.Point{}, f32.Pt(2, 2)))
	if err := b.Render(s); err != nil {
		t.Fatal(err)
	}
	if a := alphaAt(t, s, 1, 1); a == 0 {
		t.Error("canvas content missing")
	}
	if a := alphaAt(t, s, 8, 8); a != 0 {
		t.Errorf("outside canvas content: have %d, want 0", a)
	}
}
