// SPDX-License-Identifier: Unlicense OR MIT

/*
Package hit maps pointer positions to the layers that receive them.

Walk and Query implement plain geometric hit testing over a layer tree.
Router refines the geometric answer with the rendered alpha of the hit
layer so that transparent pixels let input pass through.
*/
package hit

import (
	"github.com/wasiq-nisar/passthrough/f32"
	"github.com/wasiq-nisar/passthrough/layer"
)

// Candidate is a layer whose bounds contain the hit point.
type Candidate struct {
	Layer layer.Layer
	// Local is the hit point in the local space of Layer.
	Local f32.Point
	// Decided is set when a Tester below the root chose Layer; its
	// transparency has already been accounted for.
	Decided bool
}

// Tester is implemented by layers that take over hit testing for their
// subtree. HitTest receives the point in the layer's local space and
// returns the receiver, or a Result without receiver to let the event
// reach whatever lies beneath the layer.
type Tester interface {
	HitTest(p f32.Point) Result
}

// Walk reports every hit-testable layer under p, deepest and frontmost
// first, followed by its ancestors. p is in the parent space of root. The
// walk stops when fn returns false.
//
// Layers that are hidden, nearly transparent or not interactive are
// skipped with their subtrees, and children are searched only within the
// bounds of their parent. A layer with negative size is reported without
// its children over the area its edges span, so that sampling it fails
// safe. Containment is half-open: a point on the
// minimum edge of a layer hits, a point on its maximum edge does not. A
// layer other than root that implements Tester is asked for the receiver
// of its whole subtree.
func Walk(root layer.Layer, p f32.Point, fn func(c Candidate) bool) {
	if root == nil {
		return
	}
	walk(root, p, true, fn)
}

// Query returns the deepest, frontmost layer under p.
func Query(root layer.Layer, p f32.Point) (Candidate, bool) {
	var (
		found Candidate
		ok    bool
	)
	Walk(root, p, func(c Candidate) bool {
		found, ok = c, true
		return false
	})
	return found, ok
}

func walk(l layer.Layer, p f32.Point, root bool, fn func(Candidate) bool) bool {
	if !layer.HitTestable(l) {
		return true
	}
	if layer.Malformed(l) {
		return walkMalformed(l, p, fn)
	}
	local := layer.ToLocal(l, p)
	if !layer.Contains(l, local) {
		return true
	}
	if t, ok := l.(Tester); ok && !root {
		res := t.HitTest(local)
		if res.Receiver == nil {
			return true
		}
		return fn(Candidate{Layer: res.Receiver, Local: res.Local, Decided: true})
	}
	for _, c := range l.Children() {
		if !walk(c, local, false, fn) {
			return false
		}
	}
	return fn(Candidate{Layer: l, Local: local})
}

// walkMalformed reports a layer with negative size as a candidate wherever
// its frame, taken with swapped edges, covers p. Its children are not
// searched. Layers with non-finite bounds cover no point.
func walkMalformed(l layer.Layer, p f32.Point, fn func(Candidate) bool) bool {
	if !l.Bounds().Finite() {
		return true
	}
	local := layer.ToLocal(l, p)
	if !layer.LocalBounds(l).Canon().Contains(local) {
		return true
	}
	return fn(Candidate{Layer: l, Local: local})
}
