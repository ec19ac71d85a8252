package preset

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/songofhawk/Giga-Peach/internal/adapter/repo"
	"github.com/songofhawk/Giga-Peach/internal/domain"
)

func initRegistry(t *testing.T) (*Registry, *repo.MemoryStore) {
	t.Helper()
	store := repo.NewMemoryStore()
	reg := NewRegistry(store, zerolog.Nop())
	if err := reg.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return reg, store
}

func TestInitSeedsSentinelAndDefaults(t *testing.T) {
	reg, _ := initRegistry(t)

	presets := reg.List()
	if len(presets) != len(Defaults())+1 {
		t.Fatalf("expected sentinel + %d defaults, got %d presets", len(Defaults()), len(presets))
	}
	if !presets[0].IsSentinel() {
		t.Fatalf("sentinel must come first, got %q", presets[0].ID)
	}
	if _, ok := reg.Get(domain.PresetNone); !ok {
		t.Fatalf("sentinel missing after init")
	}
}

func TestInitPreservesUserEditsToSeededDefaults(t *testing.T) {
	store := repo.NewMemoryStore()
	edited := Defaults()[0]
	edited.Description = "my own spin"
	if err := store.UpsertPreset(context.Background(), edited); err != nil {
		t.Fatalf("UpsertPreset: %v", err)
	}

	reg := NewRegistry(store, zerolog.Nop())
	if err := reg.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	got, ok := reg.Get(edited.ID)
	if !ok {
		t.Fatalf("edited preset disappeared")
	}
	if got.Description != "my own spin" {
		t.Fatalf("seeding overwrote a user edit: %q", got.Description)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	reg, _ := initRegistry(t)
	if err := reg.Init(context.Background()); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if got := len(reg.List()); got != len(Defaults())+1 {
		t.Fatalf("re-init changed the preset count: %d", got)
	}
}

func TestSentinelCannotBeDeletedOrEdited(t *testing.T) {
	reg, _ := initRegistry(t)

	if err := reg.Delete(context.Background(), domain.PresetNone); err != domain.ErrSentinelPreset {
		t.Fatalf("expected ErrSentinelPreset on delete, got %v", err)
	}
	if err := reg.Save(context.Background(), Sentinel()); err != domain.ErrSentinelPreset {
		t.Fatalf("expected ErrSentinelPreset on save, got %v", err)
	}
}

func TestSaveAndDeleteRefreshTheCache(t *testing.T) {
	reg, _ := initRegistry(t)

	custom := domain.StylePreset{ID: "film-grain", Name: "Film Grain", Description: "35mm film grain"}
	if err := reg.Save(context.Background(), custom); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := reg.Get("film-grain"); !ok {
		t.Fatalf("saved preset not visible via the cache")
	}

	if err := reg.Delete(context.Background(), "film-grain"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := reg.Get("film-grain"); ok {
		t.Fatalf("deleted preset still cached")
	}
}
