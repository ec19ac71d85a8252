package domain

import "context"

// GalleryStore persists generated-image records keyed by id. Upsert inserts
// or fully replaces; delete is an idempotent no-op when the id is absent.
// List reflects every prior mutation made through this process.
type GalleryStore interface {
	UpsertImage(ctx context.Context, img GeneratedImage) error
	ListImages(ctx context.Context) ([]GeneratedImage, error)
	DeleteImage(ctx context.Context, id string) error
}

// PresetStore persists style presets, an independent collection with the
// same contract as GalleryStore.
type PresetStore interface {
	UpsertPreset(ctx context.Context, preset StylePreset) error
	ListPresets(ctx context.Context) ([]StylePreset, error)
	DeletePreset(ctx context.Context, id string) error
}

// SettingsStore holds simple key-value settings: the generation credential,
// the optional endpoint override and the last-used generation parameters.
// Get returns "" without error for unset keys.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Settings keys.
const (
	SettingAPIKey     = "api_key"
	SettingEndpoint   = "endpoint_override"
	SettingLastParams = "last_params"
)
