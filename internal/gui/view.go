package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"splitpeek/internal/controllers"
	"splitpeek/internal/models"
)

// MainView owns the window content: the controls row on top, either the empty
// drop surface or the scrollable comparison in the center, and the info row
// with the status line at the bottom.
type MainView struct {
	window fyne.Window

	controls *ControlsPanel
	compare  *Compare
	info     *InfoPanel

	emptyState    *fyne.Container
	compareScroll *container.Scroll
	centerStack   *fyne.Container
	statusLabel   *widget.Label
	mainContainer *fyne.Container
}

func NewMainView(window fyne.Window, callbacks ControlCallbacks, slider *controllers.Slider) *MainView {
	v := &MainView{
		window:   window,
		controls: NewControlsPanel(callbacks),
		compare:  NewCompare(slider),
		info:     NewInfoPanel(),
	}
	v.setupLayout(callbacks.OnOpen)
	return v
}

func (v *MainView) setupLayout(onOpen func()) {
	hint := widget.NewLabelWithStyle(
		"Drop an image here, or open one to compare formats",
		fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	openButton := widget.NewButtonWithIcon("Open image", theme.FolderOpenIcon(), onOpen)
	v.emptyState = container.NewCenter(container.NewVBox(hint, container.NewCenter(openButton)))

	v.compareScroll = container.NewScroll(container.NewCenter(v.compare))
	v.compareScroll.Hide()

	v.centerStack = container.NewStack(v.emptyState, v.compareScroll)

	v.statusLabel = widget.NewLabel("Ready")
	bottom := container.NewVBox(v.info.GetContainer(), v.statusLabel)

	v.mainContainer = container.NewBorder(
		v.controls.GetContainer(), bottom, nil, nil,
		v.centerStack,
	)
}

func (v *MainView) Controls() *ControlsPanel {
	return v.controls
}

func (v *MainView) Window() fyne.Window {
	return v.window
}

// ShowSource switches to the comparison surface with the freshly loaded
// original. The converted layer is cleared until the first conversion lands.
func (v *MainView) ShowSource(src *models.SourceImage, preview image.Image) {
	fyne.Do(func() {
		v.compare.SetConverted(nil)
		v.compare.SetOriginal(preview)
		v.info.Clear()
		bounds := preview.Bounds()
		v.info.SetOriginal(src, bounds.Dx(), bounds.Dy())
		v.emptyState.Hide()
		v.compareScroll.Show()
		v.controls.SetSessionActive(true)
	})
}

// ShowConverted swaps in the latest conversion result.
func (v *MainView) ShowConverted(img *models.ConvertedImage, preview image.Image) {
	fyne.Do(func() {
		if preview != nil {
			v.compare.SetConverted(preview)
		}
		v.info.SetConverted(img)
	})
}

// ShowEmpty returns to the initial drop surface.
func (v *MainView) ShowEmpty() {
	fyne.Do(func() {
		v.compare.SetOriginal(nil)
		v.compare.SetConverted(nil)
		v.info.Clear()
		v.compareScroll.Hide()
		v.emptyState.Show()
		v.controls.SetSessionActive(false)
		v.statusLabel.SetText("Ready")
	})
}

func (v *MainView) SetZoom(scale float64) {
	fyne.Do(func() {
		v.compare.SetZoom(scale)
		v.controls.SetZoomLabel(scale)
		v.compareScroll.Refresh()
	})
}

func (v *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		v.statusLabel.SetText(status)
	})
}

func (v *MainView) ShowError(err error) {
	fyne.Do(func() {
		dialog.ShowError(err, v.window)
	})
}

func (v *MainView) Show() {
	v.window.SetContent(v.mainContainer)
	v.window.Show()
}
