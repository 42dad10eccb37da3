package controllers

import "sync"

// InitialSplit is the split position a fresh comparison starts at.
const InitialSplit = 50.0

// Slider is the comparison-slider state machine. Two states: Idle and
// Dragging. A drag begins only when the pointer goes down inside the
// handle's circular hit region; moves then map pointer X to a 0-100 split
// percentage; any pointer release ends the drag.
type Slider struct {
	mu       sync.Mutex
	dragging bool
	position float64
}

func NewSlider() *Slider {
	return &Slider{position: InitialSplit}
}

// BeginDrag transitions Idle -> Dragging when (startX, startY) lies within
// radius of the handle center. Returns whether the drag was accepted.
func (s *Slider) BeginDrag(startX, startY, handleX, handleY, radius float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dragging {
		return true
	}

	dx := startX - handleX
	dy := startY - handleY
	if dx*dx+dy*dy > radius*radius {
		return false
	}
	s.dragging = true
	return true
}

// Drag recomputes the split position from a pointer move. Positions are
// clamped to [0, 100] even when the pointer leaves the container bounds.
// Moves while Idle are ignored.
func (s *Slider) Drag(pointerX, containerLeft, containerWidth float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dragging || containerWidth <= 0 {
		return s.position
	}
	s.position = clampPercent((pointerX - containerLeft) / containerWidth * 100)
	return s.position
}

// EndDrag transitions back to Idle. Releases are accepted anywhere, not just
// over the handle, so a drag is always terminable.
func (s *Slider) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = false
}

func (s *Slider) Dragging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dragging
}

func (s *Slider) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// SetPosition jumps the split directly, clamped. Used on reset.
func (s *Slider) SetPosition(p float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = clampPercent(p)
}

func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
