package pipeline

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"splitpeek/internal/codec"
	"splitpeek/internal/logger"
	"splitpeek/internal/models"
	"splitpeek/internal/raster"
)

// Engine turns a conversion request into converted bytes. It computes bytes
// only; publishing locators is the coordinator's job.
type Engine interface {
	Convert(req models.ConversionRequest) (*models.ConvertedImage, error)
}

// RasterEngine is the production engine: decode the source into a surface at
// its intrinsic dimensions, then re-encode at the requested format and
// quality. Output dimensions always equal input dimensions.
type RasterEngine struct {
	decoder  *raster.Decoder
	encoders *codec.Registry
	log      logger.Logger
}

func NewRasterEngine(decoder *raster.Decoder, encoders *codec.Registry, log logger.Logger) *RasterEngine {
	return &RasterEngine{
		decoder:  decoder,
		encoders: encoders,
		log:      log,
	}
}

func (e *RasterEngine) Convert(req models.ConversionRequest) (*models.ConvertedImage, error) {
	if req.Source == nil {
		return nil, fmt.Errorf("no source image in request")
	}

	start := time.Now()

	frame, err := e.decoder.Decode(req.Source.Data)
	if err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	defer frame.Close()

	encoder, err := e.encoders.Get(req.Format)
	if err != nil {
		return nil, err
	}

	quality := codec.ClampQuality(req.Quality)
	data, err := encoder.Encode(frame, quality)
	if err != nil {
		return nil, fmt.Errorf("encode to %s failed: %w", req.Format, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("encode to %s produced no data", req.Format)
	}

	converted := &models.ConvertedImage{
		Data:    data,
		Format:  req.Format,
		Quality: quality,
		Width:   frame.Width(),
		Height:  frame.Height(),
		Size:    int64(len(data)),
		Digest:  xxhash.Sum64(data),
	}

	e.log.Info("ConversionEngine", "conversion complete", map[string]interface{}{
		"seq":      req.Seq,
		"format":   string(req.Format),
		"quality":  quality,
		"width":    converted.Width,
		"height":   converted.Height,
		"in_size":  req.Source.Size,
		"out_size": converted.Size,
		"digest":   fmt.Sprintf("%016x", converted.Digest),
		"elapsed":  time.Since(start).String(),
	})

	return converted, nil
}
