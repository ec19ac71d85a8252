package preset

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

// Registry caches style presets in memory, seeded from built-in defaults and
// backed by the preset store. After Init the sentinel preset always exists.
type Registry struct {
	store  domain.PresetStore
	logger zerolog.Logger

	mu      sync.RWMutex
	presets []domain.StylePreset
}

// NewRegistry wires a registry over its store. Call Init before use.
func NewRegistry(store domain.PresetStore, logger zerolog.Logger) *Registry {
	return &Registry{store: store, logger: logger}
}

// Init upserts the sentinel unconditionally, seeds only the defaults whose
// ids are not stored yet, then loads the merged set. Seeding by
// set-difference preserves user edits to previously seeded defaults.
func (r *Registry) Init(ctx context.Context) error {
	if err := r.store.UpsertPreset(ctx, Sentinel()); err != nil {
		return fmt.Errorf("seed sentinel preset: %w", err)
	}

	existing, err := r.store.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("list presets: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p.ID] = true
	}

	seeded := 0
	for _, def := range Defaults() {
		if known[def.ID] {
			continue
		}
		if err := r.store.UpsertPreset(ctx, def); err != nil {
			return fmt.Errorf("seed preset %s: %w", def.ID, err)
		}
		seeded++
	}
	if seeded > 0 {
		r.logger.Info().Int("seeded", seeded).Msg("seeded default style presets")
	}

	return r.Refresh(ctx)
}

// Refresh re-reads the merged set from the store.
func (r *Registry) Refresh(ctx context.Context) error {
	presets, err := r.store.ListPresets(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets = presets
	return nil
}

// List returns the current merged set, sentinel first.
func (r *Registry) List() []domain.StylePreset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.StylePreset, len(r.presets))
	for i, p := range r.presets {
		out[i] = p.Clone()
	}
	return out
}

// Get looks a preset up by id in the cached set.
func (r *Registry) Get(id string) (domain.StylePreset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.presets {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return domain.StylePreset{}, false
}

// Save upserts a preset and refreshes the cache.
func (r *Registry) Save(ctx context.Context, preset domain.StylePreset) error {
	if preset.IsSentinel() {
		return domain.ErrSentinelPreset
	}
	if err := r.store.UpsertPreset(ctx, preset); err != nil {
		return err
	}
	return r.Refresh(ctx)
}

// Delete removes a preset and refreshes the cache. The sentinel cannot be
// deleted; callers that had the deleted preset selected fall back to it.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if id == domain.PresetNone {
		return domain.ErrSentinelPreset
	}
	if err := r.store.DeletePreset(ctx, id); err != nil {
		return err
	}
	return r.Refresh(ctx)
}
