package models

import (
	"strings"
	"time"

	"splitpeek/internal/codec"
)

// AcceptedMIMEs lists the declared media types the ingestion surface admits.
// Declared types are trusted; magic bytes are not sniffed here.
var AcceptedMIMEs = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/avif",
}

// SourceImage is the original ingested image. It is immutable; a new file or
// a reset replaces it wholesale.
type SourceImage struct {
	Data     []byte
	MIME     string
	Name     string
	Size     int64
	LoadTime time.Time

	// Locator is the live display locator for the original bytes,
	// assigned when the session publishes them.
	Locator string
}

// Subtype returns the declared media subtype, e.g. "jpeg" for "image/jpeg".
func (s *SourceImage) Subtype() string {
	if i := strings.IndexByte(s.MIME, '/'); i >= 0 {
		return s.MIME[i+1:]
	}
	return s.MIME
}

// AcceptedMIME reports whether a declared type is one the tool converts.
func AcceptedMIME(mime string) bool {
	for _, m := range AcceptedMIMEs {
		if m == mime {
			return true
		}
	}
	return false
}

// ConversionRequest is the tuple handed to the conversion pipeline. It is
// constructed fresh on every trigger; Seq orders requests so stale
// completions can be discarded.
type ConversionRequest struct {
	Source  *SourceImage
	Format  codec.Format
	Quality float64
	Seq     uint64
}

// ConvertedImage is the re-encoded output at one (format, quality) point.
type ConvertedImage struct {
	Data    []byte
	Format  codec.Format
	Quality float64
	Width   int
	Height  int
	Size    int64

	// Digest is the xxhash of Data, logged for traceability and used by
	// idempotence checks.
	Digest uint64

	// Locator is the live display locator for the converted bytes.
	Locator string
}
