package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/disintegration/imaging"

	"splitpeek/internal/controllers"
)

const (
	// HandleRadius is the hit radius of the divider handle in points.
	HandleRadius = 16

	placeholderWidth  = 640
	placeholderHeight = 480
)

// Compare renders the original image with the converted image overlaid,
// clipped so only the leftmost split% of the converted layer shows. A
// draggable handle on the divider moves the split; a shared zoom scalar
// keeps both layers pixel-aligned.
type Compare struct {
	widget.BaseWidget

	slider *controllers.Slider

	original  *image.NRGBA
	converted *image.NRGBA
	scale     float64

	// dragRejected latches a gesture that began outside the handle; it
	// holds until DragEnd so later moves never re-test against the handle.
	dragRejected bool
}

func NewCompare(slider *controllers.Slider) *Compare {
	c := &Compare{
		slider: slider,
		scale:  controllers.ZoomDefault,
	}
	c.ExtendBaseWidget(c)
	return c
}

// SetOriginal replaces the base layer. Images are normalized to NRGBA so
// the clip can crop without copying pixels.
func (c *Compare) SetOriginal(img image.Image) {
	if img == nil {
		c.original = nil
	} else {
		c.original = imaging.Clone(img)
	}
	c.Refresh()
}

// SetConverted replaces the overlay layer. A nil image hides the overlay
// (no conversion has succeeded yet).
func (c *Compare) SetConverted(img image.Image) {
	if img == nil {
		c.converted = nil
	} else {
		c.converted = imaging.Clone(img)
	}
	c.Refresh()
}

// SetZoom applies the shared scale factor to both layers.
func (c *Compare) SetZoom(scale float64) {
	c.scale = scale
	c.Refresh()
}

// Dragged implements fyne.Draggable for mouse and touch alike. The drag is
// accepted only when it started inside the handle's hit circle; the accept
// decision is made once, on the gesture's first move event, where
// Position - Dragged recovers the pointer-down origin. Accepted moves map
// the pointer X to the split percentage, clamped to the widget.
func (c *Compare) Dragged(ev *fyne.DragEvent) {
	size := c.Size()
	if size.Width <= 0 || c.dragRejected {
		return
	}

	if !c.slider.Dragging() {
		startX := float64(ev.Position.X - ev.Dragged.DX)
		startY := float64(ev.Position.Y - ev.Dragged.DY)
		handleX := float64(size.Width) * c.slider.Position() / 100
		handleY := float64(size.Height) / 2
		if !c.slider.BeginDrag(startX, startY, handleX, handleY, HandleRadius) {
			c.dragRejected = true
			return
		}
	}

	c.slider.Drag(float64(ev.Position.X), 0, float64(size.Width))
	c.Refresh()
}

// DragEnd fires wherever the pointer is released, so an active drag always
// terminates even outside the widget bounds. It also clears the rejection
// latch for the next gesture.
func (c *Compare) DragEnd() {
	c.dragRejected = false
	c.slider.EndDrag()
}

func (c *Compare) CreateRenderer() fyne.WidgetRenderer {
	originalImage := canvas.NewImageFromImage(nil)
	originalImage.FillMode = canvas.ImageFillStretch

	convertedImage := canvas.NewImageFromImage(nil)
	convertedImage.FillMode = canvas.ImageFillStretch

	divider := canvas.NewRectangle(theme.Color(theme.ColorNameForeground))
	handle := canvas.NewCircle(theme.Color(theme.ColorNameForeground))

	return &compareRenderer{
		w:         c,
		original:  originalImage,
		converted: convertedImage,
		divider:   divider,
		handle:    handle,
		objects:   []fyne.CanvasObject{originalImage, convertedImage, divider, handle},
	}
}

type compareRenderer struct {
	w         *Compare
	original  *canvas.Image
	converted *canvas.Image
	divider   *canvas.Rectangle
	handle    *canvas.Circle
	objects   []fyne.CanvasObject
}

func (r *compareRenderer) Layout(size fyne.Size) {
	position := r.w.slider.Position()
	cut := size.Width * float32(position) / 100

	r.original.Resize(size)
	r.original.Move(fyne.NewPos(0, 0))

	cropW := 0
	if r.w.converted != nil {
		bounds := r.w.converted.Bounds()
		cropW = int(float64(bounds.Dx())*position/100 + 0.5)
		if cropW > bounds.Dx() {
			cropW = bounds.Dx()
		}
	}
	if cropW > 0 {
		bounds := r.w.converted.Bounds()
		r.converted.Image = r.w.converted.SubImage(image.Rect(0, 0, cropW, bounds.Dy()))
		r.converted.Show()
	} else {
		r.converted.Image = nil
		r.converted.Hide()
	}
	r.converted.Resize(fyne.NewSize(cut, size.Height))
	r.converted.Move(fyne.NewPos(0, 0))

	r.divider.Resize(fyne.NewSize(2, size.Height))
	r.divider.Move(fyne.NewPos(cut-1, 0))

	r.handle.Resize(fyne.NewSize(HandleRadius*2, HandleRadius*2))
	r.handle.Move(fyne.NewPos(cut-HandleRadius, size.Height/2-HandleRadius))
}

func (r *compareRenderer) MinSize() fyne.Size {
	if r.w.original == nil {
		return fyne.NewSize(placeholderWidth, placeholderHeight)
	}
	bounds := r.w.original.Bounds()
	return fyne.NewSize(
		float32(float64(bounds.Dx())*r.w.scale),
		float32(float64(bounds.Dy())*r.w.scale),
	)
}

func (r *compareRenderer) Refresh() {
	r.original.Image = r.w.original
	r.Layout(r.w.Size())
	r.original.Refresh()
	r.converted.Refresh()
	r.divider.Refresh()
	r.handle.Refresh()
}

func (r *compareRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *compareRenderer) Destroy() {}
