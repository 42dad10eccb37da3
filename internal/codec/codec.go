package codec

import (
	"fmt"
	"math"
	"strings"
)

// Format identifies a supported output codec.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
	WebP Format = "webp"
	AVIF Format = "avif"
)

// Formats returns the supported output formats in display order.
func Formats() []Format {
	return []Format{JPEG, PNG, WebP, AVIF}
}

// Parse normalizes a format name. "jpg" is accepted as an alias for "jpeg".
func Parse(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jpg", "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	case "avif":
		return AVIF, nil
	default:
		return "", fmt.Errorf("unsupported format %q", name)
	}
}

// Extension returns the file extension without the dot. Export filenames are
// built from the selected target format, never sniffed from content.
func (f Format) Extension() string {
	return string(f)
}

// MIME returns the media type for the format.
func (f Format) MIME() string {
	return "image/" + string(f)
}

func (f Format) String() string {
	return string(f)
}

// Quality bounds for every encoder. Values are snapped to the step grid
// before they reach an encoder.
const (
	QualityMin  = 0.1
	QualityMax  = 1.0
	QualityStep = 0.05
)

// ClampQuality snaps q to the 0.05 grid and clamps it to [0.1, 1.0].
func ClampQuality(q float64) float64 {
	q = math.Round(q/QualityStep) * QualityStep
	if q < QualityMin {
		return QualityMin
	}
	if q > QualityMax {
		return QualityMax
	}
	return q
}

// qualityPercent maps the [0.1, 1.0] quality scalar to the 1-100 scale used
// by the JPEG and WebP encoders.
func qualityPercent(q float64) int {
	p := int(math.Round(ClampQuality(q) * 100))
	if p < 1 {
		p = 1
	}
	if p > 100 {
		p = 100
	}
	return p
}

// avifQuantizer maps the quality scalar to avifenc's quantizer scale, where
// lower is better and the range is 0-63.
func avifQuantizer(q float64) int {
	return 63 - qualityPercent(q)*63/100
}
