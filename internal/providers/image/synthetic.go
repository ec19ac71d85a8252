package image

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	goimage "image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

// SyntheticGenerator produces a deterministic placeholder image for a
// request, keeping the whole pipeline operational in local and CI
// environments without a real credential. The same prompt, ratio and
// resolution always yield the same bytes.
type SyntheticGenerator struct{}

// NewSyntheticGenerator returns the placeholder generator.
func NewSyntheticGenerator() *SyntheticGenerator {
	return &SyntheticGenerator{}
}

// Generate renders a solid-color PNG whose color derives from the request
// and returns it as a data URL.
func (g *SyntheticGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sum := sha256.Sum256([]byte(req.Prompt + "|" + string(req.AspectRatio) + "|" + string(req.Resolution)))
	fill := color.NRGBA{R: sum[0], G: sum[1], B: sum[2], A: 0xff}

	// A 1/16-scale canvas keeps placeholders cheap while preserving the
	// requested shape.
	width, height := domain.Dimensions(req.AspectRatio, req.Resolution)
	width /= 16
	height /= 16
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	canvas := goimage.NewNRGBA(goimage.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), goimage.NewUniform(fill), goimage.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return "", fmt.Errorf("encode placeholder: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
