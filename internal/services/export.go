package services

import (
	"fmt"

	"fyne.io/fyne/v2"

	"splitpeek/internal/codec"
	"splitpeek/internal/logger"
)

// Exporter writes the current converted bytes to a user-chosen destination.
type Exporter struct {
	log logger.Logger
}

func NewExporter(log logger.Logger) *Exporter {
	return &Exporter{log: log}
}

// SuggestedName builds the default export filename. The extension follows
// the selected target format, never the content.
func SuggestedName(format codec.Format) string {
	return "converted." + format.Extension()
}

// Save writes a locator-backed resource's bytes and closes the writer.
func (ex *Exporter) Save(writer fyne.URIWriteCloser, res fyne.Resource) error {
	defer writer.Close()

	if res == nil || len(res.Content()) == 0 {
		return fmt.Errorf("no converted image to save")
	}

	if _, err := writer.Write(res.Content()); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	ex.log.Info("Exporter", "converted image saved", map[string]interface{}{
		"uri":  writer.URI().String(),
		"name": res.Name(),
		"size": len(res.Content()),
	})
	return nil
}
