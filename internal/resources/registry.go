package resources

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"

	"splitpeek/internal/logger"
)

// Role names the slot a published blob renders into. At most one locator is
// live per role.
type Role string

const (
	RoleOriginal  Role = "original"
	RoleConverted Role = "converted"
)

type entry struct {
	role Role
	name string
	data []byte
}

// Stats counts registry activity. Published-Released must equal the live
// count at every quiescent point; the pipeline tests assert exactly that.
type Stats struct {
	Published uint64
	Released  uint64
	Live      int
}

// Registry owns the display locators for the original and converted blobs.
// Publishing a role revokes the role's previous locator in the same critical
// section, so a rendered reference is never left pointing at revoked bytes.
type Registry struct {
	mu    sync.Mutex
	log   logger.Logger
	live  map[Role]string
	blobs map[string]*entry
	stats Stats
}

func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		log:   log,
		live:  make(map[Role]string),
		blobs: make(map[string]*entry),
	}
}

// Publish creates a revocable locator for the blob and makes it the live
// locator for the role, revoking the previous one atomically.
func (r *Registry) Publish(role Role, name string, data []byte) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	locator := fmt.Sprintf("blob:%s:%s", role, uuid.NewString())
	r.blobs[locator] = &entry{role: role, name: name, data: data}
	r.stats.Published++

	if prev, ok := r.live[role]; ok {
		r.releaseLocked(prev)
	}
	r.live[role] = locator

	r.log.Debug("ResourceRegistry", "locator published", map[string]interface{}{
		"role":    string(role),
		"locator": locator,
		"bytes":   len(data),
	})
	return locator
}

// Release revokes a locator. Releasing an unknown or already-revoked locator
// is a no-op; rapid re-conversions may race their releases and must not
// fault.
func (r *Registry) Release(locator string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.releaseLocked(locator)
}

func (r *Registry) releaseLocked(locator string) {
	e, ok := r.blobs[locator]
	if !ok {
		return
	}
	delete(r.blobs, locator)
	if r.live[e.role] == locator {
		delete(r.live, e.role)
	}
	r.stats.Released++

	r.log.Debug("ResourceRegistry", "locator released", map[string]interface{}{
		"role":    string(e.role),
		"locator": locator,
	})
}

// Bytes resolves a locator to its blob. Revoked locators resolve to nothing.
func (r *Registry) Bytes(locator string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.blobs[locator]
	if !ok {
		return nil, false
	}
	return e.data, true
}

// Resource wraps a live locator's bytes as a Fyne resource for rendering.
func (r *Registry) Resource(locator string) (fyne.Resource, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.blobs[locator]
	if !ok {
		return nil, false
	}
	return fyne.NewStaticResource(e.name, e.data), true
}

// Live returns the current locator for a role, if any.
func (r *Registry) Live(role Role) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc, ok := r.live[role]
	return loc, ok
}

// Reset revokes every live locator. Used on session reset and teardown.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, locator := range r.live {
		r.releaseLocked(locator)
	}
}

func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.stats
	s.Live = len(r.blobs)
	return s
}

// Shutdown satisfies the shutdown manager contract.
func (r *Registry) Shutdown() {
	r.Reset()
}
