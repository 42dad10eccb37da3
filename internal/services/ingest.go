package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"

	"splitpeek/internal/logger"
	"splitpeek/internal/models"
)

// AcceptedExtensions drives the file-open dialog filter.
var AcceptedExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".avif"}

// Ingestor turns a picked or dropped file into a SourceImage. The declared
// type is derived from the extension and trusted; decode validation happens
// later in the pipeline.
type Ingestor struct {
	log logger.Logger
}

func NewIngestor(log logger.Logger) *Ingestor {
	return &Ingestor{log: log}
}

// FromReader ingests a named byte stream.
func (in *Ingestor) FromReader(r io.Reader, name string) (*models.SourceImage, error) {
	mime, err := DeclaredMIME(name)
	if err != nil {
		return nil, err
	}
	if !models.AcceptedMIME(mime) {
		return nil, fmt.Errorf("unsupported image type: %s", mime)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty", name)
	}

	src := &models.SourceImage{
		Data:     data,
		MIME:     mime,
		Name:     filepath.Base(name),
		Size:     int64(len(data)),
		LoadTime: time.Now(),
	}

	in.log.Info("Ingestor", "source image loaded", map[string]interface{}{
		"name": src.Name,
		"mime": src.MIME,
		"size": src.Size,
	})
	return src, nil
}

// FromURIReader ingests a dialog result, closing the reader.
func (in *Ingestor) FromURIReader(reader fyne.URIReadCloser) (*models.SourceImage, error) {
	defer reader.Close()
	return in.FromReader(reader, reader.URI().Name())
}

// FromURI ingests a dropped file.
func (in *Ingestor) FromURI(uri fyne.URI) (*models.SourceImage, error) {
	reader, err := storage.Reader(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", uri.Name(), err)
	}
	return in.FromURIReader(reader)
}

// DeclaredMIME maps a filename extension to its declared media type,
// rejecting anything outside the accepted set.
func DeclaredMIME(name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", nil
	case ".png":
		return "image/png", nil
	case ".webp":
		return "image/webp", nil
	case ".avif":
		return "image/avif", nil
	default:
		return "", fmt.Errorf("unsupported image type: %s", name)
	}
}
