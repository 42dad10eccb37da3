package gui

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"splitpeek/internal/controllers"
)

func newTestCompare(t *testing.T, width, height float32) (*Compare, *controllers.Slider) {
	t.Helper()
	test.NewApp()
	t.Cleanup(func() { test.NewApp() })

	slider := controllers.NewSlider()
	c := NewCompare(slider)
	win := test.NewWindow(c)
	t.Cleanup(win.Close)
	win.Resize(fyne.NewSize(width, height))
	c.Resize(fyne.NewSize(width, height))
	return c, slider
}

func drag(c *Compare, fromX, fromY, toX, toY float32) {
	c.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(toX, toY)},
		Dragged:    fyne.Delta{DX: toX - fromX, DY: toY - fromY},
	})
}

func TestCompareDragOnHandleMovesSplit(t *testing.T) {
	c, slider := newTestCompare(t, 200, 100)

	// Handle center starts at (100, 50). A drag starting just inside the
	// hit circle is accepted and tracks the pointer.
	drag(c, 102, 52, 150, 52)
	if got := slider.Position(); got != 75 {
		t.Errorf("position after drag = %v, want 75", got)
	}

	c.DragEnd()
	if slider.Dragging() {
		t.Error("drag should end on release")
	}
	if got := slider.Position(); got != 75 {
		t.Errorf("position after release = %v, want 75", got)
	}
}

func TestCompareDragOffHandleIsIgnored(t *testing.T) {
	c, slider := newTestCompare(t, 200, 100)

	// Start far from the handle center (100, 50).
	drag(c, 20, 10, 60, 10)
	if got := slider.Position(); got != controllers.InitialSplit {
		t.Errorf("position = %v, want unchanged %v", got, controllers.InitialSplit)
	}
	if slider.Dragging() {
		t.Error("drag outside the handle must not start")
	}
}

func TestCompareRejectedDragStaysRejectedThroughHandle(t *testing.T) {
	c, slider := newTestCompare(t, 200, 100)

	// The gesture goes down at x=60, far from the handle at x=100. Later
	// moves pass within the hit radius of the handle and must stay ignored;
	// only the pointer-down origin decides acceptance.
	drag(c, 60, 50, 90, 50)
	drag(c, 90, 50, 110, 50)
	if got := slider.Position(); got != controllers.InitialSplit {
		t.Errorf("position = %v, want unchanged %v", got, controllers.InitialSplit)
	}
	if slider.Dragging() {
		t.Error("rejected gesture must not enter the dragging state")
	}
	c.DragEnd()

	// The next gesture starts on the handle and is accepted again.
	drag(c, 100, 50, 130, 50)
	if got := slider.Position(); got != 65 {
		t.Errorf("position after new handle drag = %v, want 65", got)
	}
	c.DragEnd()
}

func TestCompareDragClampsOutsideBounds(t *testing.T) {
	c, slider := newTestCompare(t, 200, 100)

	drag(c, 100, 50, 500, 50)
	if got := slider.Position(); got != 100 {
		t.Errorf("position = %v, want clamped to 100", got)
	}

	drag(c, 500, 50, -300, 50)
	if got := slider.Position(); got != 0 {
		t.Errorf("position = %v, want clamped to 0", got)
	}
	c.DragEnd()
}

func TestCompareMinSizeFollowsZoom(t *testing.T) {
	c, _ := newTestCompare(t, 200, 100)

	c.SetOriginal(image.NewNRGBA(image.Rect(0, 0, 400, 300)))
	if got := c.MinSize(); got.Width != 400 || got.Height != 300 {
		t.Errorf("min size at 1.0 = %v, want 400x300", got)
	}

	c.SetZoom(2.0)
	if got := c.MinSize(); got.Width != 800 || got.Height != 600 {
		t.Errorf("min size at 2.0 = %v, want 800x600", got)
	}

	c.SetZoom(0.5)
	if got := c.MinSize(); got.Width != 200 || got.Height != 150 {
		t.Errorf("min size at 0.5 = %v, want 200x150", got)
	}
}
