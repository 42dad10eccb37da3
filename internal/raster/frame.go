package raster

import (
	"fmt"
	"image"
	"runtime"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// Frame wraps a decoded pixel surface. The underlying Mat holds native
// memory, so Close must run exactly once per Frame; Close is idempotent and
// a finalizer covers Frames that escape without an explicit Close.
type Frame struct {
	mat     gocv.Mat
	isValid int32
	id      uint64
}

var nextFrameID uint64

func newFrame(mat gocv.Mat) (*Frame, error) {
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("decoded surface is empty")
	}
	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		mat.Close()
		return nil, fmt.Errorf("decoded surface has invalid dimensions: %dx%d", mat.Cols(), mat.Rows())
	}

	f := &Frame{
		mat:     mat,
		isValid: 1,
		id:      atomic.AddUint64(&nextFrameID, 1),
	}
	runtime.SetFinalizer(f, (*Frame).finalize)
	return f, nil
}

func (f *Frame) IsValid() bool {
	return atomic.LoadInt32(&f.isValid) == 1
}

func (f *Frame) ID() uint64 {
	return f.id
}

func (f *Frame) Width() int {
	if !f.IsValid() {
		return 0
	}
	return f.mat.Cols()
}

func (f *Frame) Height() int {
	if !f.IsValid() {
		return 0
	}
	return f.mat.Rows()
}

func (f *Frame) Channels() int {
	if !f.IsValid() {
		return 0
	}
	return f.mat.Channels()
}

// Mat exposes the underlying surface for encoding. Callers must not retain
// it past the Frame's lifetime.
func (f *Frame) Mat() (gocv.Mat, error) {
	if !f.IsValid() {
		return gocv.Mat{}, fmt.Errorf("frame %d is closed", f.id)
	}
	return f.mat, nil
}

// Image converts the surface to a standard Go image for display.
func (f *Frame) Image() (image.Image, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("frame %d is closed", f.id)
	}
	img, err := f.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("surface to image conversion failed: %w", err)
	}
	return img, nil
}

// Close releases the native surface. Closing an already-closed Frame is a
// no-op.
func (f *Frame) Close() {
	if !atomic.CompareAndSwapInt32(&f.isValid, 1, 0) {
		return
	}
	runtime.SetFinalizer(f, nil)
	f.mat.Close()
}

func (f *Frame) finalize() {
	f.Close()
}
