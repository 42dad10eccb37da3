package controllers

import (
	"math"
	"sync"
)

const (
	ZoomMin     = 0.5
	ZoomMax     = 3.0
	ZoomStep    = 0.1
	ZoomDefault = 1.0
)

// Zoom holds the shared scale factor. The same scalar is applied to both
// image layers so they stay pixel-aligned under the comparison clip.
type Zoom struct {
	mu       sync.Mutex
	scale    float64
	onChange func(float64)
}

func NewZoom(onChange func(float64)) *Zoom {
	return &Zoom{scale: ZoomDefault, onChange: onChange}
}

func (z *Zoom) In() float64 {
	return z.apply(ZoomStep)
}

func (z *Zoom) Out() float64 {
	return z.apply(-ZoomStep)
}

// Fit resets the scale to exactly 1.0.
func (z *Zoom) Fit() float64 {
	z.mu.Lock()
	z.scale = ZoomDefault
	s := z.scale
	onChange := z.onChange
	z.mu.Unlock()

	if onChange != nil {
		onChange(s)
	}
	return s
}

func (z *Zoom) Scale() float64 {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.scale
}

func (z *Zoom) apply(delta float64) float64 {
	z.mu.Lock()
	// Round to the step grid so repeated steps never accumulate float
	// drift past the bounds.
	s := math.Round((z.scale+delta)*10) / 10
	if s < ZoomMin {
		s = ZoomMin
	}
	if s > ZoomMax {
		s = ZoomMax
	}
	z.scale = s
	onChange := z.onChange
	z.mu.Unlock()

	if onChange != nil {
		onChange(s)
	}
	return s
}
