// SPDX-License-Identifier: Unlicense OR MIT

package f32

import (
	"math"
	"testing"
)

func TestRectangleContains(t *testing.T) {
	r := Rect(60, 150, 310, 250)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(100, 180), true},
		{Pt(60, 150), true},
		{Pt(310, 180), false},
		{Pt(100, 250), false},
		{Pt(59.99, 180), false},
		{Pt(float32(math.NaN()), 180), false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.p); got != tc.want {
			t.Errorf("%v.Contains(%v): have %v, want %v", r, tc.p, got, tc.want)
		}
	}
}

func TestRectCanon(t *testing.T) {
	r := Rect(10, 20, 0, 5)
	if want := (Rectangle{Min: Pt(0, 5), Max: Pt(10, 20)}); r != want {
		t.Errorf("have %v, want %v", r, want)
	}
}

func TestFinite(t *testing.T) {
	inf := float32(math.Inf(1))
	if !Pt(1, 2).Finite() {
		t.Error("finite point reported as non-finite")
	}
	if Pt(inf, 2).Finite() {
		t.Error("infinite point reported as finite")
	}
	if (Rectangle{Max: Pt(float32(math.NaN()), 1)}).Finite() {
		t.Error("NaN rectangle reported as finite")
	}
}
