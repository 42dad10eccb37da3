package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"splitpeek/internal/codec"
	"splitpeek/internal/controllers"
)

// ControlCallbacks wires user gestures to the application layer.
type ControlCallbacks struct {
	OnOpen          func()
	OnFormatChange  func(codec.Format)
	OnQualityChange func(float64)
	OnZoomIn        func()
	OnZoomOut       func()
	OnZoomFit       func()
	OnReset         func()
	OnDownload      func()
}

// ControlsPanel holds the format selector, quality slider, zoom buttons and
// the session actions.
type ControlsPanel struct {
	container *fyne.Container

	formatSelect  *widget.Select
	qualitySlider *widget.Slider
	qualityValue  *widget.Label
	zoomLabel     *widget.Label
	openButton    *widget.Button
	resetButton   *widget.Button
	saveButton    *widget.Button

	callbacks ControlCallbacks

	// suppress mutes widget callbacks while state is pushed in
	// programmatically (e.g. defaults after a file load).
	suppress bool
}

func NewControlsPanel(callbacks ControlCallbacks) *ControlsPanel {
	cp := &ControlsPanel{callbacks: callbacks}
	cp.setupControls()
	return cp
}

func (cp *ControlsPanel) setupControls() {
	names := make([]string, 0, len(codec.Formats()))
	for _, f := range codec.Formats() {
		names = append(names, string(f))
	}
	cp.formatSelect = widget.NewSelect(names, func(name string) {
		if cp.suppress {
			return
		}
		format, err := codec.Parse(name)
		if err != nil {
			return
		}
		cp.callbacks.OnFormatChange(format)
	})

	cp.qualitySlider = widget.NewSlider(codec.QualityMin, codec.QualityMax)
	cp.qualitySlider.Step = codec.QualityStep
	cp.qualitySlider.OnChanged = func(v float64) {
		cp.qualityValue.SetText(fmt.Sprintf("%.2f", codec.ClampQuality(v)))
		if cp.suppress {
			return
		}
		cp.callbacks.OnQualityChange(v)
	}
	cp.qualityValue = widget.NewLabel(fmt.Sprintf("%.2f", controllers.DefaultQuality))

	cp.openButton = widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), cp.callbacks.OnOpen)
	cp.resetButton = widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), cp.callbacks.OnReset)
	cp.saveButton = widget.NewButtonWithIcon("Download", theme.DocumentSaveIcon(), cp.callbacks.OnDownload)
	cp.saveButton.Importance = widget.HighImportance

	zoomIn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), cp.callbacks.OnZoomIn)
	zoomOut := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), cp.callbacks.OnZoomOut)
	zoomFit := widget.NewButtonWithIcon("", theme.ZoomFitIcon(), cp.callbacks.OnZoomFit)
	cp.zoomLabel = widget.NewLabel("100%")

	left := container.NewHBox(cp.openButton, cp.resetButton)
	center := container.NewHBox(
		widget.NewLabel("Format"),
		cp.formatSelect,
		widget.NewSeparator(),
		widget.NewLabel("Quality"),
		container.NewGridWrap(fyne.NewSize(160, 36), cp.qualitySlider),
		cp.qualityValue,
		widget.NewSeparator(),
		zoomOut, cp.zoomLabel, zoomIn, zoomFit,
	)
	right := container.NewHBox(cp.saveButton)

	cp.container = container.NewBorder(nil, nil, left, right, container.NewCenter(center))
	cp.SetSessionActive(false)
}

func (cp *ControlsPanel) GetContainer() *fyne.Container {
	return cp.container
}

// SetParameters pushes format and quality into the widgets without firing
// their change callbacks.
func (cp *ControlsPanel) SetParameters(format codec.Format, quality float64) {
	cp.suppress = true
	cp.formatSelect.SetSelected(string(format))
	cp.qualitySlider.SetValue(quality)
	cp.suppress = false
	cp.qualityValue.SetText(fmt.Sprintf("%.2f", quality))
}

// SetZoomLabel reflects the current zoom scale, e.g. 1.3 -> "130%".
func (cp *ControlsPanel) SetZoomLabel(scale float64) {
	cp.zoomLabel.SetText(fmt.Sprintf("%.0f%%", scale*100))
}

// SetSessionActive toggles the controls that require a loaded image.
func (cp *ControlsPanel) SetSessionActive(active bool) {
	if active {
		cp.formatSelect.Enable()
		cp.resetButton.Enable()
		cp.saveButton.Enable()
	} else {
		cp.formatSelect.Disable()
		cp.resetButton.Disable()
		cp.saveButton.Disable()
	}
}
