// SPDX-License-Identifier: Unlicense OR MIT

package layer

import (
	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/raster"
	"golang.org/x/exp/slices"
)

// Box is a general purpose layer: a frame, a stack of painters and owned
// children.
type Box struct {
	name     string
	frame    f32.Rectangle
	trans    f32.Affine2D
	hidden   bool
	opacity  float32
	disabled bool
	painters []Painter

	parent   Layer
	children []Layer
}

// NewBox returns a visible, fully opaque and interactive box.
func NewBox(name string, frame f32.Rectangle, painters ...Painter) *Box {
	return &Box{
		name:     name,
		frame:    frame,
		opacity:  1,
		painters: painters,
	}
}

func (b *Box) String() string {
	return b.name
}

// SetName renames the box.
func (b *Box) SetName(name string) {
	b.name = name
}

// Bounds implements Layer.
func (b *Box) Bounds() f32.Rectangle {
	return b.frame
}

// SetBounds implements Resizer.
func (b *Box) SetBounds(r f32.Rectangle) {
	b.frame = r
}

// Hidden implements Layer.
func (b *Box) Hidden() bool {
	return b.hidden
}

// SetHidden hides or shows the box and its subtree.
func (b *Box) SetHidden(hidden bool) {
	b.hidden = hidden
}

// Opacity implements Layer.
func (b *Box) Opacity() float32 {
	return b.opacity
}

// SetOpacity sets the opacity, clamped to [0, 1].
func (b *Box) SetOpacity(o float32) {
	b.opacity = max(0, min(1, o))
}

// Interactive implements the Interactive interface.
func (b *Box) Interactive() bool {
	return !b.disabled
}

// SetInteractive enables or disables hit testing for the box and its
// subtree.
func (b *Box) SetInteractive(enabled bool) {
	b.disabled = !enabled
}

// Transform implements Transformed.
func (b *Box) Transform() f32.Affine2D {
	return b.trans
}

// SetTransform sets the local transform applied before the frame offset.
func (b *Box) SetTransform(t f32.Affine2D) {
	b.trans = t
}

// SetPainters replaces the painters of the box.
func (b *Box) SetPainters(painters ...Painter) {
	b.painters = painters
}

// Render implements Layer by running the painters in order.
func (b *Box) Render(s *raster.Surface) error {
	size := b.frame.Size()
	for _, p := range b.painters {
		if err := p.Paint(s, size); err != nil {
			return err
		}
	}
	return nil
}

// Children implements Layer.
func (b *Box) Children() []Layer {
	return b.children
}

// Parent implements Child.
func (b *Box) Parent() Layer {
	return b.parent
}

// SetParent implements Child. Use Add to move a box between parents.
func (b *Box) SetParent(p Layer) {
	b.parent = p
}

// Add puts l in front of the existing children. A Child already owned by
// a parent is detached from it first.
func (b *Box) Add(l Layer) {
	Adopt(b, l)
	b.children = slices.Insert(b.children, 0, l)
}

// AddBack puts l behind the existing children.
func (b *Box) AddBack(l Layer) {
	Adopt(b, l)
	b.children = append(b.children, l)
}

// Remove detaches l from b. It reports whether l was a child of b.
func (b *Box) Remove(l Layer) bool {
	i := slices.Index(b.children, l)
	if i == -1 {
		return false
	}
	b.children = slices.Delete(b.children, i, i+1)
	Disown(b, l)
	return true
}

// Find returns the first layer in the subtree rooted at b, b included,
// whose name is name.
func (b *Box) Find(name string) Layer {
	return Find(b, name)
}

// Find searches the subtree rooted at root, front to back, for a layer
// named name.
func Find(root Layer, name string) Layer {
	if Name(root) == name {
		return root
	}
	for _, c := range root.Children() {
		if l := Find(c, name); l != nil {
			return l
		}
	}
	return nil
}
