package models

import "testing"

func TestFormatByteSize(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{"zero", 0, "0 B"},
		{"small", 512, "512 B"},
		{"just below KB threshold", 1023, "1023 B"},
		{"exactly 1 KiB", 1024, "1.0 KB"},
		{"typical thumbnail", 45875, "44.8 KB"},
		{"just below MB threshold", 1048575, "1024.0 KB"},
		{"exactly 1 MiB", 1048576, "1.0 MB"},
		{"photo sized", 3460300, "3.3 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatByteSize(tt.n); got != tt.want {
				t.Errorf("FormatByteSize(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}
