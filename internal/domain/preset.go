package domain

// PresetNone is the reserved sentinel preset id meaning "no style".
const PresetNone = "none"

// StylePreset is a reusable prompt prefix plus optional reference images.
// The description is prepended verbatim to the user prompt at submission
// time; the preset's reference images are appended after the user's own.
type StylePreset struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Icon            string   `json:"icon,omitempty"`
	ReferenceImages []string `json:"referenceImages,omitempty"`
}

// IsSentinel reports whether the preset is the reserved "none" entry.
func (p StylePreset) IsSentinel() bool {
	return p.ID == PresetNone
}

// Clone returns a copy that does not share the reference-image slice.
func (p StylePreset) Clone() StylePreset {
	out := p
	if p.ReferenceImages != nil {
		out.ReferenceImages = append([]string(nil), p.ReferenceImages...)
	}
	return out
}
