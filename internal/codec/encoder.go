package codec

import (
	"fmt"
	"strings"

	"splitpeek/internal/raster"
)

// Encoder re-encodes a decoded surface into one output format.
type Encoder interface {
	// Format returns the output format the encoder produces.
	Format() Format

	// Encode converts the frame to bytes at the given quality in
	// [0.1, 1.0]. Implementations never return an empty, nil-error
	// result; no output is always an error.
	Encode(frame *raster.Frame, quality float64) ([]byte, error)

	// Available reports whether the encoder is ready on this host.
	// External encoders (avifenc) may not be installed.
	Available() bool
}

// Registry holds the encoder for each supported format.
type Registry struct {
	encoders map[Format]Encoder
}

// NewRegistry builds the default encoder set. avifencPath optionally pins
// the avifenc binary; empty means PATH lookup.
func NewRegistry(avifencPath string) *Registry {
	return NewRegistryWith(
		&JPEGEncoder{},
		&PNGEncoder{},
		&WebPEncoder{},
		&AVIFEncoder{Path: avifencPath},
	)
}

// NewRegistryWith builds a registry from explicit encoders. Tests use it to
// substitute deterministic fakes.
func NewRegistryWith(encoders ...Encoder) *Registry {
	r := &Registry{encoders: make(map[Format]Encoder, len(encoders))}
	for _, enc := range encoders {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns the encoder for a format, or an error naming what is missing.
// Unavailable encoders are reported distinctly so the UI can keep the last
// good conversion and explain why.
func (r *Registry) Get(format Format) (Encoder, error) {
	enc, ok := r.encoders[format]
	if !ok {
		return nil, fmt.Errorf("no encoder registered for %s", format)
	}
	if !enc.Available() {
		return nil, fmt.Errorf("%s encoder is not available on this host", format)
	}
	return enc, nil
}

// Available returns the formats with a usable encoder, in display order.
func (r *Registry) Available() []Format {
	var out []Format
	for _, f := range Formats() {
		if enc, ok := r.encoders[f]; ok && enc.Available() {
			out = append(out, f)
		}
	}
	return out
}

func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	names := make([]string, len(avail))
	for i, f := range avail {
		names[i] = string(f)
	}
	return "encoders: " + strings.Join(names, ", ")
}
