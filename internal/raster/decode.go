package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"sync"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/webp"
)

// Decoder turns encoded image bytes into a Frame. OpenCV handles the common
// cases; a pure-Go path covers formats the local OpenCV build lacks, and
// AVIF sources fall back to the avifdec tool when one is installed.
type Decoder struct {
	// AvifdecPath overrides PATH lookup for the avifdec binary.
	AvifdecPath string

	once    sync.Once
	avifdec string
}

func NewDecoder(avifdecPath string) *Decoder {
	return &Decoder{AvifdecPath: avifdecPath}
}

// Decode produces a Frame sized to the image's intrinsic dimensions. The
// caller owns the Frame and must Close it.
func (d *Decoder) Decode(data []byte) (*Frame, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no image data")
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadUnchanged)
	if err == nil && !mat.Empty() {
		// Encoders expect 8-bit surfaces; re-decode high bit-depth
		// sources through OpenCV's 8-bit color path.
		if depth := int(mat.Type()) & 7; depth != 0 {
			mat.Close()
			mat, err = gocv.IMDecode(data, gocv.IMReadColor)
			if err != nil {
				return nil, fmt.Errorf("failed to decode image: %w", err)
			}
		}
		return newFrame(mat)
	}
	if err == nil {
		mat.Close()
	}

	if frame, stdErr := d.decodeStandard(data); stdErr == nil {
		return frame, nil
	}

	if isAVIF(data) && d.avifdecAvailable() {
		return d.decodeAVIFTool(data)
	}

	return nil, fmt.Errorf("cannot decode image (%d bytes)", len(data))
}

// decodeStandard is the pure-Go fallback: stdlib JPEG/PNG plus x/image WebP.
func (d *Decoder) decodeStandard(data []byte) (*Frame, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("standard library decode failed: %w", err)
	}
	return frameFromImage(img)
}

// frameFromImage copies a Go image into an 8-bit BGRA surface.
func frameFromImage(img image.Image) (*Frame, error) {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	src, err := gocv.NewMatFromBytes(bounds.Dy(), bounds.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("surface creation failed: %w", err)
	}
	defer src.Close()

	dst := gocv.NewMat()
	// ColorBGRAToRGBA is the same conversion code as ColorRGBAToBGRA
	// (the R/B swap is symmetric); the latter name only exists in gocv >= v0.36.
	gocv.CvtColor(src, &dst, gocv.ColorBGRAToRGBA)
	return newFrame(dst)
}

func (d *Decoder) avifdecAvailable() bool {
	d.once.Do(func() {
		if d.AvifdecPath != "" {
			if _, err := os.Stat(d.AvifdecPath); err == nil {
				d.avifdec = d.AvifdecPath
			}
			return
		}
		if path, err := exec.LookPath("avifdec"); err == nil {
			d.avifdec = path
		}
	})
	return d.avifdec != ""
}

// decodeAVIFTool round-trips AVIF bytes through avifdec to PNG.
func (d *Decoder) decodeAVIFTool(data []byte) (*Frame, error) {
	srcFile, err := os.CreateTemp("", "splitpeek_dec_src_*.avif")
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath := srcFile.Name()
	defer os.Remove(srcPath)

	if _, err := srcFile.Write(data); err != nil {
		srcFile.Close()
		return nil, fmt.Errorf("write temp avif: %w", err)
	}
	srcFile.Close()

	dstFile, err := os.CreateTemp("", "splitpeek_dec_dst_*.png")
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath := dstFile.Name()
	dstFile.Close()
	defer os.Remove(dstPath)

	cmd := exec.Command(d.avifdec, srcPath, dstPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("avifdec: %w: %s", err, string(out))
	}

	png, err := os.ReadFile(dstPath)
	if err != nil {
		return nil, fmt.Errorf("read avifdec output: %w", err)
	}

	mat, err := gocv.IMDecode(png, gocv.IMReadUnchanged)
	if err != nil {
		return nil, fmt.Errorf("failed to decode avifdec output: %w", err)
	}
	return newFrame(mat)
}

// isAVIF sniffs the ISO-BMFF ftyp brand. Only used to pick the tool
// fallback; declared MIME types are trusted everywhere else.
func isAVIF(data []byte) bool {
	limit := len(data)
	if limit > 64 {
		limit = 64
	}
	return bytes.Contains(data[:limit], []byte("ftypavif")) ||
		bytes.Contains(data[:limit], []byte("ftypavis"))
}
