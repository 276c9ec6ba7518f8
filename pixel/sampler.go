// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pixel samples the rendered alpha of a layer at a single point.

Sampling renders the layer, scaled by the device scale, into a private
single-pixel surface positioned at the point and reads back its alpha. Whenever the alpha cannot be established the
sampler reports Opaque: transparency has to be proven, so an unreadable
pixel blocks input instead of letting it pass through.
*/
package pixel

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/internal/logger"
	"github.com/wasiq-nisar/passthrough/layer"
	"github.com/wasiq-nisar/passthrough/raster"
)

// Sample is an 8-bit alpha value.
type Sample uint8

const (
	Transparent Sample = 0
	Opaque      Sample = 255
)

// Transparent reports whether the sample is fully transparent.
func (s Sample) Transparent() bool {
	return s == Transparent
}

// Normalized returns the sample in [0, 1].
func (s Sample) Normalized() float32 {
	return float32(s) / 255
}

// Mode selects what is rendered for a sample.
type Mode uint8

const (
	// SubtreeMode composites the layer and its descendants, as on screen.
	SubtreeMode Mode = iota
	// SelfMode renders the layer's own content only.
	SelfMode
)

func (m Mode) String() string {
	switch m {
	case SubtreeMode:
		return "subtree"
	case SelfMode:
		return "self"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

var (
	// ErrOutOfBounds is returned for points outside the layer.
	ErrOutOfBounds = errors.New("pixel: point outside layer")
	// ErrMalformed is returned for non-finite points or unusable bounds.
	ErrMalformed = errors.New("pixel: malformed layer or point")
	// ErrRender wraps failures, panics included, of a layer's Render.
	ErrRender = errors.New("pixel: render failed")
)

// Option configures a Sampler.
type Option func(*Sampler)

// MaxScale is the largest device scale a Sampler samples at.
const MaxScale = 64

// WithScale sets the device scale, the number of device pixels per
// logical unit. Non-finite or non-positive values select 1; larger values
// than MaxScale select MaxScale.
func WithScale(scale float32) Option {
	return func(s *Sampler) {
		s.scale = scale
	}
}

// WithMode sets the sampling mode. The default is SubtreeMode.
func WithMode(m Mode) Option {
	return func(s *Sampler) {
		s.mode = m
	}
}

// Sampler samples layer alpha. A Sampler is immutable after construction
// and safe for concurrent use.
type Sampler struct {
	scale float32
	mode  Mode
}

// NewSampler returns a sampler configured by opts.
func NewSampler(opts ...Option) *Sampler {
	s := &Sampler{scale: 1}
	for _, o := range opts {
		o(s)
	}
	if f := float64(s.scale); math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		s.scale = 1
	}
	s.scale = min(s.scale, MaxScale)
	return s
}

// Scale returns the device scale.
func (s *Sampler) Scale() float32 {
	return s.scale
}

// Mode returns the sampling mode.
func (s *Sampler) Mode() Mode {
	return s.mode
}

// Alpha returns the alpha of l at p, in the local space of l. Every
// failure yields Opaque.
func (s *Sampler) Alpha(l layer.Layer, p f32.Point) Sample {
	a, err := s.Sample(l, p)
	if err != nil {
		logger.Get().Debug("pixel: sample unavailable, assuming opaque",
			"layer", layer.Name(l), "point", p, "err", err)
		return Opaque
	}
	return a
}

// Sample is like Alpha but reports why a sample could not be taken. The
// returned Sample is Opaque whenever err is non-nil.
func (s *Sampler) Sample(l layer.Layer, p f32.Point) (a Sample, err error) {
	if l == nil || !p.Finite() || layer.Malformed(l) {
		return Opaque, ErrMalformed
	}
	if !layer.Contains(l, p) {
		return Opaque, fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, p, layer.LocalBounds(l))
	}
	// The transform maps the device pixel at p onto the only pixel.
	surf, err := raster.New(image.Pt(1, 1))
	if err != nil {
		return Opaque, err
	}
	defer surf.Release()
	surf.SetTransform(f32.Affine2D{}.
		Offset(p.Mul(-1)).
		Scale(f32.Point{}, f32.Pt(s.scale, s.scale)))

	if err := s.render(l, surf); err != nil {
		return Opaque, err
	}
	v, err := surf.Alpha(0, 0)
	if err != nil {
		return Opaque, err
	}
	return Sample(v), nil
}

func (s *Sampler) render(l layer.Layer, surf *raster.Surface) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: panic: %v", ErrRender, layer.Name(l), r)
		}
	}()
	switch s.mode {
	case SelfMode:
		err = l.Render(surf)
	default:
		err = layer.Composite(l, surf)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, layer.Name(l), err)
	}
	return nil
}
