package repo

import (
	"context"
	"sync"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

// MemoryStore is an in-process implementation of the gallery, preset and
// settings stores. It backs tests and the database-less dev mode; insertion
// order is the list order.
type MemoryStore struct {
	mu          sync.RWMutex
	imageOrder  []string
	images      map[string]domain.GeneratedImage
	presetOrder []string
	presets     map[string]domain.StylePreset
	settings    map[string]string

	// FailWrites rejects every mutation, simulating an unavailable engine.
	FailWrites error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		images:   make(map[string]domain.GeneratedImage),
		presets:  make(map[string]domain.StylePreset),
		settings: make(map[string]string),
	}
}

// UpsertImage inserts or replaces the record with that id.
func (s *MemoryStore) UpsertImage(ctx context.Context, img domain.GeneratedImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, exists := s.images[img.ID]; !exists {
		s.imageOrder = append(s.imageOrder, img.ID)
	}
	s.images[img.ID] = img.Clone()
	return nil
}

// ListImages returns every record in insertion order.
func (s *MemoryStore) ListImages(ctx context.Context) ([]domain.GeneratedImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.GeneratedImage, 0, len(s.imageOrder))
	for _, id := range s.imageOrder {
		out = append(out, s.images[id].Clone())
	}
	return out, nil
}

// DeleteImage removes the record if present.
func (s *MemoryStore) DeleteImage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, exists := s.images[id]; !exists {
		return nil
	}
	delete(s.images, id)
	for i, existing := range s.imageOrder {
		if existing == id {
			s.imageOrder = append(s.imageOrder[:i], s.imageOrder[i+1:]...)
			break
		}
	}
	return nil
}

// UpsertPreset inserts or replaces the preset with that id.
func (s *MemoryStore) UpsertPreset(ctx context.Context, preset domain.StylePreset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, exists := s.presets[preset.ID]; !exists {
		s.presetOrder = append(s.presetOrder, preset.ID)
	}
	s.presets[preset.ID] = preset.Clone()
	return nil
}

// ListPresets returns every stored preset, sentinel first, then in
// insertion order.
func (s *MemoryStore) ListPresets(ctx context.Context) ([]domain.StylePreset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.StylePreset, 0, len(s.presetOrder))
	if sentinel, ok := s.presets[domain.PresetNone]; ok {
		out = append(out, sentinel.Clone())
	}
	for _, id := range s.presetOrder {
		if id == domain.PresetNone {
			continue
		}
		out = append(out, s.presets[id].Clone())
	}
	return out, nil
}

// DeletePreset removes the preset if present.
func (s *MemoryStore) DeletePreset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, exists := s.presets[id]; !exists {
		return nil
	}
	delete(s.presets, id)
	for i, existing := range s.presetOrder {
		if existing == id {
			s.presetOrder = append(s.presetOrder[:i], s.presetOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the stored value, or "" when unset.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings[key], nil
}

// Set stores the value, replacing any previous one.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.settings[key] = value
	return nil
}
