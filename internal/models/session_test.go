package models

import "testing"

func TestSessionSetSourceDropsConversion(t *testing.T) {
	s := NewSession()

	first := &SourceImage{MIME: "image/png", Name: "a.png"}
	s.SetSource(first)
	s.SetConverted(&ConvertedImage{Size: 10})

	second := &SourceImage{MIME: "image/jpeg", Name: "b.jpg"}
	s.SetSource(second)

	if s.Source() != second {
		t.Error("source was not replaced")
	}
	if s.Converted() != nil {
		t.Error("stale conversion survived a source replacement")
	}
}

func TestSessionClear(t *testing.T) {
	s := NewSession()
	s.SetSource(&SourceImage{MIME: "image/webp"})
	s.SetConverted(&ConvertedImage{Size: 1})

	s.Clear()

	if s.HasSource() {
		t.Error("HasSource() = true after Clear")
	}
	if s.Converted() != nil {
		t.Error("converted image survived Clear")
	}
}

func TestSourceImageSubtype(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/jpeg", "jpeg"},
		{"image/png", "png"},
		{"image/webp", "webp"},
		{"image/avif", "avif"},
		{"weird", "weird"},
	}

	for _, tt := range tests {
		src := &SourceImage{MIME: tt.mime}
		if got := src.Subtype(); got != tt.want {
			t.Errorf("Subtype(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}

func TestAcceptedMIME(t *testing.T) {
	for _, m := range AcceptedMIMEs {
		if !AcceptedMIME(m) {
			t.Errorf("AcceptedMIME(%q) = false", m)
		}
	}
	for _, m := range []string{"image/gif", "image/tiff", "text/plain", ""} {
		if AcceptedMIME(m) {
			t.Errorf("AcceptedMIME(%q) = true", m)
		}
	}
}
