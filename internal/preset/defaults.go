package preset

import "github.com/songofhawk/Giga-Peach/internal/domain"

// Sentinel is the reserved "no style" preset. It is upserted unconditionally
// at init so definition updates always land.
func Sentinel() domain.StylePreset {
	return domain.StylePreset{
		ID:          domain.PresetNone,
		Name:        "None",
		Description: "",
		Icon:        "◯",
	}
}

// Defaults lists the built-in style presets seeded on first run. Users may
// edit the seeded copies; seeding never overwrites an id that already
// exists in the store.
func Defaults() []domain.StylePreset {
	return []domain.StylePreset{
		{
			ID:          "cinematic",
			Name:        "Cinematic",
			Description: "Cinematic film still, anamorphic lens, dramatic lighting, shallow depth of field",
			Icon:        "🎬",
		},
		{
			ID:          "neon-noir",
			Name:        "Neon Noir",
			Description: "Neon noir, rain-slicked streets, saturated neon reflections, moody shadows",
			Icon:        "🌃",
		},
		{
			ID:          "watercolor",
			Name:        "Watercolor",
			Description: "Soft watercolor painting, loose brush strokes, paper texture, muted palette",
			Icon:        "🎨",
		},
		{
			ID:          "anime",
			Name:        "Anime",
			Description: "Anime key visual, clean line art, cel shading, vibrant colors",
			Icon:        "✨",
		},
		{
			ID:          "pixel-art",
			Name:        "Pixel Art",
			Description: "Retro pixel art, 16-bit palette, crisp dithering",
			Icon:        "🕹",
		},
		{
			ID:          "isometric",
			Name:        "Isometric",
			Description: "Isometric 3D render, soft studio lighting, pastel materials",
			Icon:        "📐",
		},
	}
}
