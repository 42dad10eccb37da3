package codec

import (
	"testing"

	"splitpeek/internal/raster"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"jpeg", JPEG, false},
		{"jpg", JPEG, false},
		{"JPEG", JPEG, false},
		{" png ", PNG, false},
		{"webp", WebP, false},
		{"avif", AVIF, false},
		{"gif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Parse(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampQuality(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in range on grid", 0.5, 0.5},
		{"snap down", 0.52, 0.5},
		{"snap up", 0.53, 0.55},
		{"below minimum", 0.0, QualityMin},
		{"negative", -3, QualityMin},
		{"above maximum", 1.7, QualityMax},
		{"maximum", 1.0, QualityMax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampQuality(tt.in); got != tt.want {
				t.Errorf("ClampQuality(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQualityScales(t *testing.T) {
	if got := qualityPercent(1.0); got != 100 {
		t.Errorf("qualityPercent(1.0) = %d", got)
	}
	if got := qualityPercent(0.1); got != 10 {
		t.Errorf("qualityPercent(0.1) = %d", got)
	}
	if got := qualityPercent(0.9); got != 90 {
		t.Errorf("qualityPercent(0.9) = %d", got)
	}

	// avifenc quantizers are inverted: 0 is best.
	if got := avifQuantizer(1.0); got != 0 {
		t.Errorf("avifQuantizer(1.0) = %d", got)
	}
	if got := avifQuantizer(0.1); got != 57 {
		t.Errorf("avifQuantizer(0.1) = %d", got)
	}
}

func TestFormatMetadata(t *testing.T) {
	if got := JPEG.Extension(); got != "jpeg" {
		t.Errorf("JPEG extension = %q", got)
	}
	if got := WebP.MIME(); got != "image/webp" {
		t.Errorf("WebP MIME = %q", got)
	}
	if got := len(Formats()); got != 4 {
		t.Errorf("Formats() length = %d, want 4", got)
	}
}

type fakeEncoder struct {
	format    Format
	available bool
	out       []byte
	err       error
}

func (f *fakeEncoder) Format() Format  { return f.format }
func (f *fakeEncoder) Available() bool { return f.available }

func (f *fakeEncoder) Encode(*raster.Frame, float64) ([]byte, error) {
	return f.out, f.err
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistryWith(
		&fakeEncoder{format: JPEG, available: true, out: []byte("j")},
		&fakeEncoder{format: AVIF, available: false},
	)

	if _, err := r.Get(JPEG); err != nil {
		t.Errorf("Get(jpeg): %v", err)
	}
	if _, err := r.Get(AVIF); err == nil {
		t.Error("Get(avif) should report the encoder as unavailable")
	}
	if _, err := r.Get(WebP); err == nil {
		t.Error("Get(webp) should report no registered encoder")
	}
}

func TestRegistryAvailableKeepsDisplayOrder(t *testing.T) {
	r := NewRegistryWith(
		&fakeEncoder{format: AVIF, available: true},
		&fakeEncoder{format: JPEG, available: true},
		&fakeEncoder{format: WebP, available: false},
		&fakeEncoder{format: PNG, available: true},
	)

	got := r.Available()
	want := []Format{JPEG, PNG, AVIF}
	if len(got) != len(want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Available() = %v, want %v", got, want)
		}
	}
}
