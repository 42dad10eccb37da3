package pipeline

import (
	"sync"
	"sync/atomic"

	"splitpeek/internal/codec"
	"splitpeek/internal/logger"
	"splitpeek/internal/models"
	"splitpeek/internal/resources"
)

// Coordinator runs conversions asynchronously and applies results in request
// order. Every trigger gets a monotonic sequence number; a completion is
// applied only while its sequence is still the latest issued, so the visible
// result always reflects the most recent parameters regardless of completion
// order (last-requested-wins).
type Coordinator struct {
	engine   Engine
	registry *resources.Registry
	log      logger.Logger

	// seq is both the ticket counter and the latest-issued marker: a
	// completion is current iff its ticket still equals seq. One atomic, so
	// concurrent triggers cannot publish their markers out of ticket order.
	seq atomic.Uint64

	// applyMu serializes the check-then-publish step so a stale
	// completion cannot slip in between a newer one's check and publish.
	applyMu sync.Mutex

	onConverted func(*models.ConvertedImage)
	onFailed    func(error)
}

func NewCoordinator(engine Engine, registry *resources.Registry, log logger.Logger) *Coordinator {
	return &Coordinator{
		engine:   engine,
		registry: registry,
		log:      log,
	}
}

// SetOnConverted registers the callback invoked after a result is published.
// It runs on the conversion goroutine; GUI callers marshal to the UI thread
// themselves.
func (c *Coordinator) SetOnConverted(fn func(*models.ConvertedImage)) {
	c.onConverted = fn
}

// SetOnFailed registers the callback for failed conversions. Prior state is
// never disturbed on failure; the callback only reports.
func (c *Coordinator) SetOnFailed(fn func(error)) {
	c.onFailed = fn
}

// Trigger issues a conversion for the given parameters. The parameters are
// captured here, at trigger time; the in-flight conversion never reads live
// UI state. Trigger returns immediately.
func (c *Coordinator) Trigger(source *models.SourceImage, format codec.Format, quality float64) {
	if source == nil {
		return
	}

	req := models.ConversionRequest{
		Source:  source,
		Format:  format,
		Quality: quality,
		Seq:     c.seq.Add(1),
	}

	c.log.Debug("ConversionCoordinator", "conversion triggered", map[string]interface{}{
		"seq":     req.Seq,
		"format":  string(req.Format),
		"quality": req.Quality,
	})

	go c.run(req)
}

func (c *Coordinator) run(req models.ConversionRequest) {
	converted, err := c.engine.Convert(req)

	if err != nil {
		// Keep the last good state; a failed conversion only reports.
		c.log.Warning("ConversionCoordinator", "conversion failed", map[string]interface{}{
			"seq":   req.Seq,
			"error": err.Error(),
		})
		if c.seq.Load() == req.Seq && c.onFailed != nil {
			c.onFailed(err)
		}
		return
	}

	c.applyMu.Lock()
	if c.seq.Load() != req.Seq {
		c.applyMu.Unlock()
		c.log.Debug("ConversionCoordinator", "stale result discarded", map[string]interface{}{
			"seq":    req.Seq,
			"latest": c.seq.Load(),
		})
		return
	}

	// Publishing revokes the previous converted locator in the same
	// critical section, so exactly one converted locator is live. The
	// callback also runs under applyMu so notifications arrive in publish
	// order; GUI callers hand off to the UI thread and return promptly.
	converted.Locator = c.registry.Publish(
		resources.RoleConverted,
		"converted."+converted.Format.Extension(),
		converted.Data,
	)
	if c.onConverted != nil {
		c.onConverted(converted)
	}
	c.applyMu.Unlock()
}

// Reset invalidates all in-flight requests and revokes the converted
// locator. In-flight work is discarded on completion, not aborted.
func (c *Coordinator) Reset() {
	// Burn a ticket so no outstanding completion can match.
	c.seq.Add(1)

	c.applyMu.Lock()
	defer c.applyMu.Unlock()
	if locator, ok := c.registry.Live(resources.RoleConverted); ok {
		c.registry.Release(locator)
	}
}
