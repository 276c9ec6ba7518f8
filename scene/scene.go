// SPDX-License-Identifier: Unlicense OR MIT

/*
Package scene describes complete windows of layers: loading them from TOML,
routing taps through them, rendering them and exporting their structure.
*/
package scene

import (
	"fmt"
	"image"
	"math"

	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/hit"
	"github.com/wasiq-nisar/passthrough/layer"
	"github.com/wasiq-nisar/passthrough/pixel"
	"github.com/wasiq-nisar/passthrough/raster"
)

// Scene is a window: a root layer together with the device scale and the
// routing configuration used for taps on it.
type Scene struct {
	root   *layer.Box
	scale  float32
	mode   pixel.Mode
	policy hit.Policy
	router *hit.Router
}

// Option configures a Scene.
type Option func(*Scene)

// WithScale sets the device scale.
func WithScale(scale float32) Option {
	return func(s *Scene) {
		s.scale = scale
	}
}

// WithMode sets the sampling mode of the window router.
func WithMode(m pixel.Mode) Option {
	return func(s *Scene) {
		s.mode = m
	}
}

// WithPolicy sets the policy of the window router.
func WithPolicy(p hit.Policy) Option {
	return func(s *Scene) {
		s.policy = p
	}
}

// New returns a scene for the window root.
func New(root *layer.Box, opts ...Option) *Scene {
	s := &Scene{root: root, scale: 1}
	for _, o := range opts {
		o(s)
	}
	if !finite(s.scale) || s.scale <= 0 {
		s.scale = 1
	}
	sampler := pixel.NewSampler(pixel.WithScale(s.scale), pixel.WithMode(s.mode))
	s.router = hit.NewRouter(sampler, hit.WithPolicy(s.policy))
	return s
}

// Name returns the name of the window.
func (s *Scene) Name() string {
	return s.root.String()
}

// Root returns the window layer.
func (s *Scene) Root() *layer.Box {
	return s.root
}

// Size returns the window size.
func (s *Scene) Size() f32.Point {
	return layer.Size(s.root)
}

// Scale returns the device scale.
func (s *Scene) Scale() float32 {
	return s.scale
}

// Policy returns the routing policy of the window.
func (s *Scene) Policy() hit.Policy {
	return s.policy
}

// Mode returns the sampling mode of the window.
func (s *Scene) Mode() pixel.Mode {
	return s.mode
}

// Route returns the receiver of a tap at p in window coordinates.
// Containers in the window decide for their own bounds.
func (s *Scene) Route(p f32.Point) hit.Result {
	return s.router.Route(s.root, p)
}

// Find returns the first layer named name, front to back.
func (s *Scene) Find(name string) layer.Layer {
	return layer.Find(s.root, name)
}

// Render composites the window at device scale.
func (s *Scene) Render() (*image.RGBA, error) {
	sz := s.Size().Mul(s.scale)
	px := image.Pt(int(math.Ceil(float64(sz.X))), int(math.Ceil(float64(sz.Y))))
	surf, err := raster.New(px)
	if err != nil {
		return nil, fmt.Errorf("scene: render %s: %w", s.Name(), err)
	}
	defer surf.Release()
	surf.SetTransform(layer.ToParent(s.root).Scale(f32.Point{}, f32.Pt(s.scale, s.scale)))
	if err := layer.Composite(s.root, surf); err != nil {
		return nil, fmt.Errorf("scene: render %s: %w", s.Name(), err)
	}
	return surf.Image()
}
