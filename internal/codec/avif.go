package codec

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"gocv.io/x/gocv"

	"splitpeek/internal/raster"
)

// Counter for unique temp file names across concurrent encodes.
var tempCounter atomic.Int64

// AVIFEncoder encodes by shelling out to avifenc, which avoids CGO beyond
// what OpenCV already requires. Install: apt install libavif-bin or
// brew install libavif.
type AVIFEncoder struct {
	// Path pins the avifenc binary; empty means PATH lookup.
	Path string

	once      sync.Once
	available bool
	avifenc   string
}

func (e *AVIFEncoder) Format() Format { return AVIF }

func (e *AVIFEncoder) Available() bool {
	e.once.Do(func() {
		if e.Path != "" {
			if _, err := os.Stat(e.Path); err == nil {
				e.available = true
				e.avifenc = e.Path
			}
			return
		}
		if path, err := exec.LookPath("avifenc"); err == nil {
			e.available = true
			e.avifenc = path
		}
	})
	return e.available
}

func (e *AVIFEncoder) Encode(frame *raster.Frame, quality float64) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("avifenc not found in PATH; install libavif")
	}

	mat, err := frame.Mat()
	if err != nil {
		return nil, err
	}

	// avifenc reads files; hand it the surface as lossless PNG.
	pngBuf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("intermediate png encode failed: %w", err)
	}
	pngBytes := make([]byte, pngBuf.Len())
	copy(pngBytes, pngBuf.GetBytes())
	pngBuf.Close()

	id := tempCounter.Add(1)
	srcFile, err := os.CreateTemp("", fmt.Sprintf("splitpeek_src_%d_*.png", id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath := srcFile.Name()
	defer os.Remove(srcPath)

	if _, err := srcFile.Write(pngBytes); err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("write temp png: %w", err)
	}
	srcFile.Close()

	dstFile, err := os.CreateTemp("", fmt.Sprintf("splitpeek_dst_%d_*.avif", id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath := dstFile.Name()
	dstFile.Close()
	defer os.Remove(dstPath)

	// avifenc quality runs on an inverted 0-63 quantizer scale.
	quantizer := avifQuantizer(quality)
	cmd := exec.Command(e.avifenc,
		"--min", fmt.Sprintf("%d", quantizer),
		"--max", fmt.Sprintf("%d", quantizer),
		"--speed", "6",
		"-j", "all",
		srcPath,
		dstPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("avifenc: %w: %s", err, string(out))
	}

	data, err := os.ReadFile(dstPath)
	if err != nil {
		return nil, fmt.Errorf("read avifenc output: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("avifenc produced no data")
	}
	return data, nil
}
