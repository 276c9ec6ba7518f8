// SPDX-License-Identifier: Unlicense OR MIT

package raster

import (
	"math"

	"github.com/wasiq-nisar/passthrough/f32"
	"golang.org/x/image/vector"
)

type pathOp uint8

const (
	opMove pathOp = iota
	opLine
	opQuad
	opCube
	opClose
)

type pathCmd struct {
	op  pathOp
	pts [3]f32.Point
}

// Path is an outline in local coordinates. Sub-paths are closed
// implicitly when filled.
type Path struct {
	cmds   []pathCmd
	bounds f32.Rectangle
}

// MoveTo starts a new sub-path at to.
func (p *Path) MoveTo(to f32.Point) {
	p.add(pathCmd{op: opMove, pts: [3]f32.Point{to}})
}

// LineTo adds a line segment to to.
func (p *Path) LineTo(to f32.Point) {
	p.add(pathCmd{op: opLine, pts: [3]f32.Point{to}})
}

// QuadTo adds a quadratic Bézier segment.
func (p *Path) QuadTo(ctrl, to f32.Point) {
	p.add(pathCmd{op: opQuad, pts: [3]f32.Point{ctrl, to}})
}

// CubeTo adds a cubic Bézier segment.
func (p *Path) CubeTo(ctrl0, ctrl1, to f32.Point) {
	p.add(pathCmd{op: opCube, pts: [3]f32.Point{ctrl0, ctrl1, to}})
}

// Close closes the current sub-path.
func (p *Path) Close() {
	p.cmds = append(p.cmds, pathCmd{op: opClose})
}

// Bounds returns the bounds of every point of the path, control points
// included.
func (p *Path) Bounds() f32.Rectangle {
	return p.bounds
}

func (p *Path) add(c pathCmd) {
	n := 1
	switch c.op {
	case opQuad:
		n = 2
	case opCube:
		n = 3
	}
	for _, pt := range c.pts[:n] {
		if len(p.cmds) == 0 {
			p.bounds = f32.Rectangle{Min: pt, Max: pt}
		}
		p.bounds = p.bounds.Union(f32.Rectangle{Min: pt, Max: pt})
	}
	p.cmds = append(p.cmds, c)
}

func (p *Path) rasterize(r *vector.Rasterizer, t f32.Affine2D) {
	for _, c := range p.cmds {
		switch c.op {
		case opMove:
			to := t.Transform(c.pts[0])
			r.MoveTo(to.X, to.Y)
		case opLine:
			to := t.Transform(c.pts[0])
			r.LineTo(to.X, to.Y)
		case opQuad:
			ctrl, to := t.Transform(c.pts[0]), t.Transform(c.pts[1])
			r.QuadTo(ctrl.X, ctrl.Y, to.X, to.Y)
		case opCube:
			ctrl0, ctrl1, to := t.Transform(c.pts[0]), t.Transform(c.pts[1]), t.Transform(c.pts[2])
			r.CubeTo(ctrl0.X, ctrl0.Y, ctrl1.X, ctrl1.Y, to.X, to.Y)
		case opClose:
			r.ClosePath()
		}
	}
}

// RectPath returns the outline of r.
func RectPath(r f32.Rectangle) *Path {
	p := new(Path)
	p.MoveTo(r.Min)
	p.LineTo(f32.Pt(r.Max.X, r.Min.Y))
	p.LineTo(r.Max)
	p.LineTo(f32.Pt(r.Min.X, r.Max.Y))
	p.Close()
	return p
}

// RRect returns the outline of r with rounded corners. Radii larger than
// half the shorter side are clamped.
func RRect(r f32.Rectangle, se, sw, nw, ne float32) *Path {
	lim := min(r.Dx(), r.Dy()) / 2
	clamp := func(v float32) float32 {
		return max(0, min(v, lim))
	}
	se, sw, nw, ne = clamp(se), clamp(sw), clamp(nw), clamp(ne)

	// https://pomax.github.io/bezierinfo/#circles_cubic.
	const q = 4 * (math.Sqrt2 - 1) / 3
	const iq = 1 - q

	w, n, e, s := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y

	p := new(Path)
	p.MoveTo(f32.Point{X: w + nw, Y: n})
	p.LineTo(f32.Point{X: e - ne, Y: n}) // N
	p.CubeTo(                            // NE
		f32.Point{X: e - ne*iq, Y: n},
		f32.Point{X: e, Y: n + ne*iq},
		f32.Point{X: e, Y: n + ne})
	p.LineTo(f32.Point{X: e, Y: s - se}) // E
	p.CubeTo(                            // SE
		f32.Point{X: e, Y: s - se*iq},
		f32.Point{X: e - se*iq, Y: s},
		f32.Point{X: e - se, Y: s})
	p.LineTo(f32.Point{X: w + sw, Y: s}) // S
	p.CubeTo(                            // SW
		f32.Point{X: w + sw*iq, Y: s},
		f32.Point{X: w, Y: s - sw*iq},
		f32.Point{X: w, Y: s - sw})
	p.LineTo(f32.Point{X: w, Y: n + nw}) // W
	p.CubeTo(                            // NW
		f32.Point{X: w, Y: n + nw*iq},
		f32.Point{X: w + nw*iq, Y: n},
		f32.Point{X: w + nw, Y: n})
	p.Close()
	return p
}

// UniformRRect returns the outline of r with all corner radii set to
// radius.
func UniformRRect(r f32.Rectangle, radius float32) *Path {
	return RRect(r, radius, radius, radius, radius)
}

// Capsule returns the outline of r with fully rounded short ends.
func Capsule(r f32.Rectangle) *Path {
	return UniformRRect(r, min(r.Dx(), r.Dy())/2)
}
