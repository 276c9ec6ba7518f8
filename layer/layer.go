// SPDX-License-Identifier: Unlicense OR MIT

/*
Package layer defines the capability set of a visual layer and a concrete
Box implementation.

A Layer's Bounds are its frame in the parent's coordinate space. The layer's
local space has its origin at Bounds().Min, optionally followed by an extra
transform (see Transformed). Children are listed front to back: index 0 is
drawn last and is hit first.
*/
package layer

import (
	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/raster"
)

// MinOpacity is the opacity below which a layer is treated as invisible.
const MinOpacity = 0.01

// Layer is a node in the visual tree.
type Layer interface {
	// Bounds returns the frame of the layer in its parent's space.
	Bounds() f32.Rectangle
	Hidden() bool
	// Opacity returns the layer opacity in [0, 1].
	Opacity() float32
	// Render draws the layer's own content, not its children, in local
	// coordinates through the surface transform.
	Render(s *raster.Surface) error
	// Children returns the children front to back.
	Children() []Layer
}

// Interactive is implemented by layers that can opt out of hit testing.
// A layer reporting false is skipped together with its subtree.
type Interactive interface {
	Interactive() bool
}

// Transformed is implemented by layers with a local transform applied
// before the offset of their frame.
type Transformed interface {
	Transform() f32.Affine2D
}

// Resizer is implemented by layers whose frame can be set by a parent.
type Resizer interface {
	SetBounds(f32.Rectangle)
}

// Child is implemented by layers that track their parent. A layer has at
// most one parent: adopting it detaches it from the previous one.
type Child interface {
	Parent() Layer
	SetParent(p Layer)
}

// Remover is implemented by parents that can give up a child.
type Remover interface {
	Remove(l Layer) bool
}

// Adopt records parent as the parent of l after removing l from its
// current parent. Layers that do not implement Child are not tracked.
func Adopt(parent, l Layer) {
	c, ok := l.(Child)
	if !ok {
		return
	}
	if old := c.Parent(); old != nil {
		if r, ok := old.(Remover); ok {
			r.Remove(l)
		}
	}
	c.SetParent(parent)
}

// Disown clears the parent of l if it is parent.
func Disown(parent, l Layer) {
	if c, ok := l.(Child); ok && c.Parent() == parent {
		c.SetParent(nil)
	}
}

// Visible reports whether l is neither hidden nor (nearly) transparent.
func Visible(l Layer) bool {
	return !l.Hidden() && l.Opacity() >= MinOpacity
}

// HitTestable reports whether l takes part in hit testing.
func HitTestable(l Layer) bool {
	if !Visible(l) {
		return false
	}
	if i, ok := l.(Interactive); ok && !i.Interactive() {
		return false
	}
	return true
}

// Size returns the local size of l.
func Size(l Layer) f32.Point {
	return l.Bounds().Size()
}

// LocalBounds returns the bounds of l in its own coordinate space.
func LocalBounds(l Layer) f32.Rectangle {
	return f32.Rectangle{Max: Size(l)}
}

// Malformed reports whether the bounds of l cannot describe an area.
func Malformed(l Layer) bool {
	b := l.Bounds()
	return !b.Finite() || b.Dx() < 0 || b.Dy() < 0
}

// ToParent returns the transform from the local space of l to the space of
// its parent.
func ToParent(l Layer) f32.Affine2D {
	var t f32.Affine2D
	if tl, ok := l.(Transformed); ok {
		t = tl.Transform()
	}
	return t.Offset(l.Bounds().Min)
}

// ToLocal maps p from the parent space of l to the local space of l.
func ToLocal(l Layer, p f32.Point) f32.Point {
	return ToParent(l).Invert().Transform(p)
}

// Contains reports whether the local point p lies within l.
func Contains(l Layer, p f32.Point) bool {
	return LocalBounds(l).Contains(p)
}

// Name returns a display name for l.
func Name(l Layer) string {
	if l == nil {
		return "<nil>"
	}
	if s, ok := l.(interface{ String() string }); ok {
		return s.String()
	}
	return "layer"
}
