// SPDX-License-Identifier: Unlicense OR MIT

/*
Package passthrough provides Container, a layer that lets pointer events
fall through the transparent parts of its overlay.

A Container owns two stacked children: an overlay subtree holding the
interactive content, for example a bottom sheet, and a background that is
always rendered clear. The container performs hit testing for its own
bounds with a hit.Router: points where the overlay renders no alpha yield
no receiver, so whatever lies beneath the container receives the event.
*/
package passthrough

import (
	"log/slog"

	"github.com/gogpu/gg"
	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/hit"
	"github.com/wasiq-nisar/passthrough/internal/logger"
	"github.com/wasiq-nisar/passthrough/layer"
	"github.com/wasiq-nisar/passthrough/pixel"
	"github.com/wasiq-nisar/passthrough/raster"
)

// SetLogger configures the logger of the hit testing packages and of the
// gg canvas painters. By default nothing is logged. Pass nil to restore
// the silent default.
//
// Routing decisions are logged at [slog.LevelDebug].
func SetLogger(l *slog.Logger) {
	logger.Set(l)
	gg.SetLogger(l)
}

// Option configures a Container.
type Option func(*config)

type config struct {
	scale   float32
	mode    pixel.Mode
	policy  hit.Policy
	sampler hit.AlphaSampler
}

// WithScale sets the device scale used for alpha sampling.
func WithScale(scale float32) Option {
	return func(c *config) {
		c.scale = scale
	}
}

// WithMode sets the sampling mode. The default composites the candidate
// together with its descendants.
func WithMode(m pixel.Mode) Option {
	return func(c *config) {
		c.mode = m
	}
}

// WithPolicy sets the routing policy. The default is hit.Occlude.
func WithPolicy(p hit.Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithSampler replaces the pixel sampler. WithScale and WithMode are
// ignored when a sampler is set.
func WithSampler(s hit.AlphaSampler) Option {
	return func(c *config) {
		c.sampler = s
	}
}

// Container is a layer whose transparent pixels pass pointer events
// through. The zero value is not usable; use New.
type Container struct {
	name       string
	frame      f32.Rectangle
	hidden     bool
	opacity    float32
	parent     layer.Layer
	overlay    layer.Layer
	background *layer.Box
	router     *hit.Router
}

// New returns a container occupying frame, in the parent's space, with
// overlay sized to fill it. overlay may be nil.
func New(frame f32.Rectangle, overlay layer.Layer, opts ...Option) *Container {
	cfg := config{scale: 1}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.sampler == nil {
		cfg.sampler = pixel.NewSampler(pixel.WithScale(cfg.scale), pixel.WithMode(cfg.mode))
	}
	c := &Container{
		name:       "container",
		frame:      frame,
		opacity:    1,
		background: layer.NewBox("background", f32.Rectangle{}),
	}
	layer.Adopt(c, c.background)
	c.router = hit.NewRouter(cfg.sampler, hit.WithSelf(c, c.background), hit.WithPolicy(cfg.policy))
	c.SetOverlay(overlay)
	return c
}

// SetName sets the name reported by String.
func (c *Container) SetName(name string) {
	c.name = name
}

func (c *Container) String() string {
	return c.name
}

// Bounds implements layer.Layer.
func (c *Container) Bounds() f32.Rectangle {
	return c.frame
}

// SetBounds moves or resizes the container, resizing the overlay with it.
func (c *Container) SetBounds(r f32.Rectangle) {
	c.frame = r
	c.layout()
}

// Hidden implements layer.Layer.
func (c *Container) Hidden() bool {
	return c.hidden
}

// SetHidden hides or shows the container.
func (c *Container) SetHidden(hidden bool) {
	c.hidden = hidden
}

// Opacity implements layer.Layer.
func (c *Container) Opacity() float32 {
	return c.opacity
}

// SetOpacity sets the opacity, clamped to [0, 1].
func (c *Container) SetOpacity(o float32) {
	c.opacity = max(0, min(1, o))
}

// Render implements layer.Layer. The container has no content of its own.
func (c *Container) Render(*raster.Surface) error {
	return nil
}

// Children implements layer.Layer: the overlay in front of the background.
func (c *Container) Children() []layer.Layer {
	if c.overlay == nil {
		return []layer.Layer{c.background}
	}
	return []layer.Layer{c.overlay, c.background}
}

// Overlay returns the overlay subtree.
func (c *Container) Overlay() layer.Layer {
	return c.overlay
}

// SetOverlay replaces the overlay and sizes it to the container. The new
// overlay is detached from its previous parent.
func (c *Container) SetOverlay(l layer.Layer) {
	if c.overlay != nil {
		layer.Disown(c, c.overlay)
		c.overlay = nil
	}
	if l != nil {
		layer.Adopt(c, l)
	}
	c.overlay = l
	c.layout()
}

// Remove implements layer.Remover. Only the overlay can be removed.
func (c *Container) Remove(l layer.Layer) bool {
	if l == nil || l != c.overlay {
		return false
	}
	c.SetOverlay(nil)
	return true
}

// Parent implements layer.Child.
func (c *Container) Parent() layer.Layer {
	return c.parent
}

// SetParent implements layer.Child.
func (c *Container) SetParent(p layer.Layer) {
	c.parent = p
}

// Background returns the clear background layer.
func (c *Container) Background() layer.Layer {
	return c.background
}

// Router returns the router deciding hits within the container.
func (c *Container) Router() *hit.Router {
	return c.router
}

// HitTest implements hit.Tester for a point in the container's local space.
func (c *Container) HitTest(p f32.Point) hit.Result {
	return c.Route(layer.ToParent(c).Transform(p))
}

// Route returns the receiver of a pointer-down event at p, in the parent
// space of the container.
func (c *Container) Route(p f32.Point) hit.Result {
	return c.router.Route(c, p)
}

func (c *Container) layout() {
	local := f32.Rectangle{Max: c.frame.Size()}
	c.background.SetBounds(local)
	if r, ok := c.overlay.(layer.Resizer); ok {
		r.SetBounds(local)
	}
}
