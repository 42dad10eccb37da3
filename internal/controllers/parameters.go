package controllers

import (
	"sync"

	"splitpeek/internal/codec"
)

// DefaultQuality is the quality every new session starts from.
const DefaultQuality = 0.8

// InferDefaultFormat picks the initial target format for a source subtype.
// JPEG sources default to PNG and everything else defaults to JPEG. This is
// a fixed product rule, not a content heuristic.
func InferDefaultFormat(sourceSubtype string) codec.Format {
	switch sourceSubtype {
	case "jpeg", "jpg":
		return codec.PNG
	default:
		return codec.JPEG
	}
}

// Parameters holds the current target format and quality. Setter changes
// fire the onChange callback so the app layer can issue a fresh conversion
// request; values are always passed out as an immutable snapshot, never read
// back from live state inside async completions.
type Parameters struct {
	mu       sync.Mutex
	format   codec.Format
	quality  float64
	onChange func(codec.Format, float64)
}

func NewParameters(onChange func(codec.Format, float64)) *Parameters {
	return &Parameters{
		format:   codec.JPEG,
		quality:  DefaultQuality,
		onChange: onChange,
	}
}

// ResetFor silently reinitializes the controller for a newly loaded source:
// inferred default format, default quality, no onChange fire. The caller
// decides when the first conversion runs.
func (p *Parameters) ResetFor(sourceSubtype string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.format = InferDefaultFormat(sourceSubtype)
	p.quality = DefaultQuality
}

func (p *Parameters) SetFormat(format codec.Format) {
	p.mu.Lock()
	if p.format == format {
		p.mu.Unlock()
		return
	}
	p.format = format
	f, q := p.format, p.quality
	onChange := p.onChange
	p.mu.Unlock()

	if onChange != nil {
		onChange(f, q)
	}
}

func (p *Parameters) SetQuality(quality float64) {
	quality = codec.ClampQuality(quality)

	p.mu.Lock()
	if p.quality == quality {
		p.mu.Unlock()
		return
	}
	p.quality = quality
	f, q := p.format, p.quality
	onChange := p.onChange
	p.mu.Unlock()

	if onChange != nil {
		onChange(f, q)
	}
}

// Snapshot returns the current (format, quality) pair.
func (p *Parameters) Snapshot() (codec.Format, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.format, p.quality
}
