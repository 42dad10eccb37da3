package resources

import (
	"testing"

	"splitpeek/internal/logger"
)

func newTestRegistry() *Registry {
	return NewRegistry(logger.Nop{})
}

func TestPublishRevokesPredecessor(t *testing.T) {
	r := newTestRegistry()

	first := r.Publish(RoleConverted, "converted.png", []byte("one"))
	second := r.Publish(RoleConverted, "converted.png", []byte("two"))

	if _, ok := r.Bytes(first); ok {
		t.Error("superseded locator still resolves")
	}
	data, ok := r.Bytes(second)
	if !ok || string(data) != "two" {
		t.Errorf("live locator resolves to %q, %v", data, ok)
	}
	if live, _ := r.Live(RoleConverted); live != second {
		t.Errorf("live locator = %q, want %q", live, second)
	}
}

func TestRolesAreIndependent(t *testing.T) {
	r := newTestRegistry()

	orig := r.Publish(RoleOriginal, "photo.jpg", []byte("orig"))
	conv := r.Publish(RoleConverted, "converted.webp", []byte("conv"))

	if _, ok := r.Bytes(orig); !ok {
		t.Error("publishing converted revoked the original locator")
	}
	if _, ok := r.Bytes(conv); !ok {
		t.Error("converted locator does not resolve")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	r := newTestRegistry()

	loc := r.Publish(RoleOriginal, "photo.png", []byte("data"))
	r.Release(loc)
	r.Release(loc)                // double release
	r.Release("blob:original:no") // never published

	if got := r.Stats().Released; got != 1 {
		t.Errorf("Released = %d, want 1", got)
	}
	if got := r.Stats().Live; got != 0 {
		t.Errorf("Live = %d, want 0", got)
	}
}

func TestRepeatedPublishKeepsOneLiveLocator(t *testing.T) {
	r := newTestRegistry()

	var last string
	for i := 0; i < 20; i++ {
		last = r.Publish(RoleConverted, "converted.jpeg", []byte{byte(i)})
	}

	s := r.Stats()
	if s.Live != 1 {
		t.Errorf("Live = %d after 20 publishes, want 1", s.Live)
	}
	if s.Published != 20 || s.Released != 19 {
		t.Errorf("Published/Released = %d/%d, want 20/19", s.Published, s.Released)
	}
	if _, ok := r.Bytes(last); !ok {
		t.Error("latest locator does not resolve")
	}
}

func TestResetRevokesAllRoles(t *testing.T) {
	r := newTestRegistry()
	orig := r.Publish(RoleOriginal, "a.png", []byte("a"))
	conv := r.Publish(RoleConverted, "converted.png", []byte("b"))

	r.Reset()

	for _, loc := range []string{orig, conv} {
		if _, ok := r.Bytes(loc); ok {
			t.Errorf("locator %s survived Reset", loc)
		}
	}
	if _, ok := r.Live(RoleOriginal); ok {
		t.Error("original role still live after Reset")
	}
	if _, ok := r.Live(RoleConverted); ok {
		t.Error("converted role still live after Reset")
	}
}

func TestResourceWrapsLiveBytes(t *testing.T) {
	r := newTestRegistry()
	loc := r.Publish(RoleOriginal, "photo.webp", []byte{1, 2, 3})

	res, ok := r.Resource(loc)
	if !ok {
		t.Fatal("Resource() did not resolve a live locator")
	}
	if res.Name() != "photo.webp" {
		t.Errorf("resource name = %q", res.Name())
	}
	if len(res.Content()) != 3 {
		t.Errorf("resource content length = %d", len(res.Content()))
	}

	r.Release(loc)
	if _, ok := r.Resource(loc); ok {
		t.Error("Resource() resolved a revoked locator")
	}
}
