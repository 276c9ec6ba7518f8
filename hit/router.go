// SPDX-License-Identifier: Unlicense OR MIT

package hit

import (
	"fmt"
	"log/slog"

	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/internal/logger"
	"github.com/wasiq-nisar/passthrough/layer"
	"github.com/wasiq-nisar/passthrough/pixel"
)

// Result is the outcome of routing one pointer event. A nil Receiver
// means the event passes through.
type Result struct {
	Receiver layer.Layer
	// Local is the event position in the local space of Receiver.
	Local f32.Point
}

// Passed reports whether no layer receives the event.
func (r Result) Passed() bool {
	return r.Receiver == nil
}

func (r Result) String() string {
	if r.Passed() {
		return "pass"
	}
	return fmt.Sprintf("%s@%v", layer.Name(r.Receiver), r.Local)
}

// Policy decides what happens when the frontmost candidate is
// transparent under the pointer.
type Policy uint8

const (
	// Occlude ends the search at the frontmost candidate: if it is
	// transparent the event passes through, even when an occluded
	// sibling beneath it is opaque.
	Occlude Policy = iota
	// Fallthrough continues with the next candidate beneath a transparent
	// one until an opaque layer or a self layer is reached.
	Fallthrough
)

func (p Policy) String() string {
	switch p {
	case Occlude:
		return "occlude"
	case Fallthrough:
		return "fallthrough"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy parses the String form of a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "occlude":
		return Occlude, nil
	case "fallthrough":
		return Fallthrough, nil
	default:
		return 0, fmt.Errorf("hit: unknown policy %q", s)
	}
}

// AlphaSampler samples the rendered alpha of a layer at a local point.
// Implementations report pixel.Opaque when the alpha is unknown.
type AlphaSampler interface {
	Alpha(l layer.Layer, p f32.Point) pixel.Sample
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithSelf marks the layers that stand for the router's owner. A self
// layer is sampled like any other, but under Fallthrough a transparent self
// layer ends the search.
func WithSelf(layers ...layer.Layer) RouterOption {
	return func(r *Router) {
		r.self = append(r.self, layers...)
	}
}

// WithPolicy sets the policy. The default is Occlude.
func WithPolicy(p Policy) RouterOption {
	return func(r *Router) {
		r.policy = p
	}
}

// WithLogger sets the logger for routing decisions. The package logger
// is used by default.
func WithLogger(l *slog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = l
	}
}

// Router decides, per pointer-down event, which layer receives the event
// based on the rendered alpha under the pointer. A Router holds no state
// between calls; Route is safe for concurrent use as long as the layer tree
// is not mutated.
type Router struct {
	sampler AlphaSampler
	self    []layer.Layer
	policy  Policy
	logger  *slog.Logger
}

// NewRouter returns a router sampling with s. A nil s selects a
// pixel.Sampler with default options.
func NewRouter(s AlphaSampler, opts ...RouterOption) *Router {
	if s == nil {
		s = pixel.NewSampler()
	}
	r := &Router{sampler: s}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Policy returns the router's policy.
func (r *Router) Policy() Policy {
	return r.policy
}

// Route returns the receiver of a pointer-down event at p, in the parent
// space of root. Every candidate is sampled at most once.
func (r *Router) Route(root layer.Layer, p f32.Point) Result {
	log := r.logger
	if log == nil {
		log = logger.Get()
	}
	var res Result
	Walk(root, p, func(c Candidate) bool {
		if c.Decided {
			res = Result{Receiver: c.Layer, Local: c.Local}
			return false
		}
		alpha := r.sampler.Alpha(c.Layer, c.Local)
		self := r.isSelf(c.Layer)
		log.Debug("hit: candidate",
			"layer", layer.Name(c.Layer), "local", c.Local, "alpha", uint8(alpha), "self", self)
		if !alpha.Transparent() {
			res = Result{Receiver: c.Layer, Local: c.Local}
			return false
		}
		return r.policy == Fallthrough && !self
	})
	log.Debug("hit: routed", "point", p, "result", res)
	return res
}

func (r *Router) isSelf(l layer.Layer) bool {
	for _, s := range r.self {
		if s == l {
			return true
		}
	}
	return false
}
