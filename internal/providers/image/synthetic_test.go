package image

import (
	"context"
	"strings"
	"testing"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

func TestSyntheticGeneratorIsDeterministic(t *testing.T) {
	gen := NewSyntheticGenerator()
	req := Request{
		Prompt:      "a cat",
		AspectRatio: domain.RatioLandscape,
		Resolution:  domain.ResolutionMedium,
	}

	first, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if first != second {
		t.Fatalf("same request produced different placeholders")
	}
	if !strings.HasPrefix(first, "data:image/png;base64,") {
		t.Fatalf("placeholder is not a PNG data url: %.40s", first)
	}

	req.Prompt = "a dog"
	third, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if third == first {
		t.Fatalf("different prompts produced identical placeholders")
	}
}

func TestReferencePartHandlesDataAndRemoteURLs(t *testing.T) {
	part, err := referencePart("data:image/jpeg;base64,QUJD")
	if err != nil {
		t.Fatalf("referencePart: %v", err)
	}
	if part.InlineData == nil || part.InlineData.MimeType != "image/jpeg" || part.InlineData.Data != "QUJD" {
		t.Fatalf("inline part mismatch: %+v", part)
	}

	part, err = referencePart("https://cdn.example.com/ref.png")
	if err != nil {
		t.Fatalf("referencePart: %v", err)
	}
	if part.FileData == nil || part.FileData.FileURI != "https://cdn.example.com/ref.png" {
		t.Fatalf("file part mismatch: %+v", part)
	}

	if _, err := referencePart("data:image/png"); err == nil {
		t.Fatalf("malformed data url must be rejected")
	}
}
