// SPDX-License-Identifier: Unlicense OR MIT

package layer

import "github.com/wasiq-nisar/passthrough/raster"

// Composite renders l followed by its descendants, back to front, and
// applies the opacity of every layer on the way. The surface transform must
// map the local space of l to pixels. Layers that are not Visible are
// skipped with their subtrees.
func Composite(l Layer, s *raster.Surface) error {
	if !Visible(l) {
		return nil
	}
	return s.Group(l.Opacity(), func(s *raster.Surface) error {
		if err := l.Render(s); err != nil {
			return err
		}
		children := l.Children()
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			st := s.Push(ToParent(c))
			err := Composite(c, s)
			st.Pop()
			if err != nil {
				return err
			}
		}
		return nil
	})
}
