package controllers

import (
	"math"
	"testing"
)

func TestZoomStepsAndBounds(t *testing.T) {
	z := NewZoom(nil)

	if got := z.In(); math.Abs(got-1.1) > 1e-9 {
		t.Errorf("In() from default = %v, want 1.1", got)
	}

	// Step far past the upper bound.
	for i := 0; i < 40; i++ {
		z.In()
	}
	if got := z.Scale(); got != ZoomMax {
		t.Errorf("scale after many In() = %v, want %v", got, ZoomMax)
	}

	// And far past the lower bound.
	for i := 0; i < 60; i++ {
		z.Out()
	}
	if got := z.Scale(); got != ZoomMin {
		t.Errorf("scale after many Out() = %v, want %v", got, ZoomMin)
	}
}

func TestZoomFitIsExactlyOne(t *testing.T) {
	z := NewZoom(nil)
	z.In()
	z.In()
	z.Out()

	if got := z.Fit(); got != 1.0 {
		t.Errorf("Fit() = %v, want exactly 1.0", got)
	}
}

func TestZoomNoFloatDrift(t *testing.T) {
	z := NewZoom(nil)

	// 0.1 is not exactly representable; five steps up and five down must
	// still land on exactly the grid value.
	for i := 0; i < 5; i++ {
		z.In()
	}
	for i := 0; i < 5; i++ {
		z.Out()
	}
	if got := z.Scale(); got != 1.0 {
		t.Errorf("scale after symmetric steps = %v, want 1.0", got)
	}
}

func TestZoomOnChange(t *testing.T) {
	var last float64
	z := NewZoom(func(s float64) { last = s })

	z.In()
	if math.Abs(last-1.1) > 1e-9 {
		t.Errorf("onChange got %v, want 1.1", last)
	}
	z.Fit()
	if last != 1.0 {
		t.Errorf("onChange after Fit got %v, want 1.0", last)
	}
}
