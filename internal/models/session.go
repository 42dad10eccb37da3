package models

import "sync"

// Session holds the single active source image and its latest conversion.
// Exactly one source is live at a time; loading a new file or resetting
// replaces the whole session state.
type Session struct {
	mu        sync.RWMutex
	source    *SourceImage
	converted *ConvertedImage
}

func NewSession() *Session {
	return &Session{}
}

// SetSource replaces the active source and drops any conversion belonging to
// the previous one.
func (s *Session) SetSource(src *SourceImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = src
	s.converted = nil
}

func (s *Session) Source() *SourceImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

func (s *Session) SetConverted(img *ConvertedImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.converted = img
}

func (s *Session) Converted() *ConvertedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.converted
}

func (s *Session) HasSource() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source != nil
}

// Clear drops both images. Locator revocation is the registry's job; the
// session only forgets the references.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = nil
	s.converted = nil
}
