package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"splitpeek/internal/models"
)

// InfoPanel shows the original and converted summaries under the comparison
// view: declared subtype (or target format) plus a human-readable byte size.
type InfoPanel struct {
	container      *fyne.Container
	originalLabel  *widget.Label
	convertedLabel *widget.Label
}

func NewInfoPanel() *InfoPanel {
	ip := &InfoPanel{
		originalLabel:  widget.NewLabel(""),
		convertedLabel: widget.NewLabel(""),
	}
	ip.originalLabel.TextStyle = fyne.TextStyle{Monospace: true}
	ip.convertedLabel.TextStyle = fyne.TextStyle{Monospace: true}

	ip.container = container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel("Original:"), ip.originalLabel),
		container.NewHBox(widget.NewLabel("Converted:"), ip.convertedLabel),
	)
	ip.Clear()
	return ip
}

func (ip *InfoPanel) GetContainer() *fyne.Container {
	return ip.container
}

func (ip *InfoPanel) SetOriginal(src *models.SourceImage, width, height int) {
	ip.originalLabel.SetText(fmt.Sprintf("%s, %s (%d×%d)",
		src.Subtype(), models.FormatByteSize(src.Size), width, height))
}

func (ip *InfoPanel) SetConverted(img *models.ConvertedImage) {
	ip.convertedLabel.SetText(fmt.Sprintf("%s, %s (%d×%d)",
		img.Format, models.FormatByteSize(img.Size), img.Width, img.Height))
}

func (ip *InfoPanel) Clear() {
	ip.originalLabel.SetText("—")
	ip.convertedLabel.SetText("—")
}
