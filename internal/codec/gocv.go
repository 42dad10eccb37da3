package codec

import (
	"fmt"

	"gocv.io/x/gocv"

	"splitpeek/internal/raster"
)

// The JPEG, PNG and WebP encoders run through OpenCV's imencode. The output
// buffer lives in native memory, so its bytes are copied out before release.

// JPEGEncoder encodes to JPEG at 1-100 quality.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() Format  { return JPEG }
func (e *JPEGEncoder) Available() bool { return true }

func (e *JPEGEncoder) Encode(frame *raster.Frame, quality float64) ([]byte, error) {
	mat, err := frame.Mat()
	if err != nil {
		return nil, err
	}

	// JPEG has no alpha channel; flatten BGRA surfaces first.
	if mat.Channels() == 4 {
		flat := gocv.NewMat()
		defer flat.Close()
		gocv.CvtColor(mat, &flat, gocv.ColorBGRAToBGR)
		mat = flat
	}

	params := []int{gocv.IMWriteJpegQuality, qualityPercent(quality)}
	return encodeMat(gocv.JPEGFileExt, mat, params)
}

// PNGEncoder encodes to PNG. PNG is lossless, so the quality parameter is
// ignored and a fixed best-compression level is used.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() Format  { return PNG }
func (e *PNGEncoder) Available() bool { return true }

func (e *PNGEncoder) Encode(frame *raster.Frame, _ float64) ([]byte, error) {
	mat, err := frame.Mat()
	if err != nil {
		return nil, err
	}

	params := []int{gocv.IMWritePngCompression, 9}
	return encodeMat(gocv.PNGFileExt, mat, params)
}

// WebPEncoder encodes to lossy WebP at 1-100 quality.
type WebPEncoder struct{}

func (e *WebPEncoder) Format() Format  { return WebP }
func (e *WebPEncoder) Available() bool { return true }

func (e *WebPEncoder) Encode(frame *raster.Frame, quality float64) ([]byte, error) {
	mat, err := frame.Mat()
	if err != nil {
		return nil, err
	}

	params := []int{gocv.IMWriteWebpQuality, qualityPercent(quality)}
	return encodeMat(gocv.FileExt(".webp"), mat, params)
}

func encodeMat(ext gocv.FileExt, mat gocv.Mat, params []int) ([]byte, error) {
	buf, err := gocv.IMEncodeWithParams(ext, mat, params)
	if err != nil {
		return nil, fmt.Errorf("imencode %s failed: %w", ext, err)
	}
	defer buf.Close()

	if buf.Len() == 0 {
		return nil, fmt.Errorf("imencode %s produced no data", ext)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
