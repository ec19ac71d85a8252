package domain

import "time"

// AspectRatio enumerates the supported output shapes.
type AspectRatio string

const (
	RatioSquare         AspectRatio = "1:1"
	RatioLandscape      AspectRatio = "16:9"
	RatioPortrait       AspectRatio = "9:16"
	RatioClassic        AspectRatio = "4:3"
	RatioClassicTall    AspectRatio = "3:4"
	RatioPhoto          AspectRatio = "3:2"
	RatioPhotoTall      AspectRatio = "2:3"
	RatioUltrawide      AspectRatio = "21:9"
	RatioMonitor        AspectRatio = "5:4"
	RatioSocialPortrait AspectRatio = "4:5"
)

// SupportedRatios lists every ratio the generator accepts, in display order.
func SupportedRatios() []AspectRatio {
	return []AspectRatio{
		RatioSquare, RatioLandscape, RatioPortrait, RatioClassic, RatioClassicTall,
		RatioPhoto, RatioPhotoTall, RatioUltrawide, RatioMonitor, RatioSocialPortrait,
	}
}

// Valid reports whether the ratio is one of the supported values.
func (r AspectRatio) Valid() bool {
	for _, known := range SupportedRatios() {
		if r == known {
			return true
		}
	}
	return false
}

// Resolution enumerates output quality tiers.
type Resolution string

const (
	ResolutionLow    Resolution = "low"
	ResolutionMedium Resolution = "medium"
	ResolutionHigh   Resolution = "high"
)

// Valid reports whether the resolution is one of the supported tiers.
func (res Resolution) Valid() bool {
	switch res {
	case ResolutionLow, ResolutionMedium, ResolutionHigh:
		return true
	}
	return false
}

// longEdge maps a resolution tier to the pixel length of the image's long edge.
func (res Resolution) longEdge() int {
	switch res {
	case ResolutionLow:
		return 512
	case ResolutionHigh:
		return 2048
	default:
		return 1024
	}
}

// Dimensions returns pixel width and height for a ratio at a resolution tier.
func Dimensions(r AspectRatio, res Resolution) (int, int) {
	type frac struct{ w, h int }
	fractions := map[AspectRatio]frac{
		RatioSquare:         {1, 1},
		RatioLandscape:      {16, 9},
		RatioPortrait:       {9, 16},
		RatioClassic:        {4, 3},
		RatioClassicTall:    {3, 4},
		RatioPhoto:          {3, 2},
		RatioPhotoTall:      {2, 3},
		RatioUltrawide:      {21, 9},
		RatioMonitor:        {5, 4},
		RatioSocialPortrait: {4, 5},
	}
	f, ok := fractions[r]
	if !ok {
		f = frac{1, 1}
	}
	long := res.longEdge()
	if f.w >= f.h {
		return long, long * f.h / f.w
	}
	return long * f.w / f.h, long
}

// GeneratedImage is a durable gallery record. Only IsFavorite mutates after
// creation; everything else is fixed at generation time.
type GeneratedImage struct {
	ID              string      `json:"id"`
	BatchID         string      `json:"batchId"`
	URL             string      `json:"url"`
	Prompt          string      `json:"prompt"`
	AspectRatio     AspectRatio `json:"aspectRatio"`
	Resolution      Resolution  `json:"resolution"`
	Timestamp       time.Time   `json:"timestamp"`
	StyleID         string      `json:"styleId"`
	ReferenceImages []string    `json:"referenceImages,omitempty"`
	IsFavorite      bool        `json:"isFavorite"`
}

// Clone returns a deep copy so callers can hand out records without sharing
// the reference-image slice.
func (img GeneratedImage) Clone() GeneratedImage {
	out := img
	if img.ReferenceImages != nil {
		out.ReferenceImages = append([]string(nil), img.ReferenceImages...)
	}
	return out
}
