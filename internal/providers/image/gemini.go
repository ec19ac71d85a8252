package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiOptions controls how the Gemini generator is configured.
type GeminiOptions struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// GeminiGenerator calls the Gemini generateContent endpoint and returns the
// first produced image as a data URL. The credential and an optional
// endpoint override travel with each request rather than the client, so a
// settings change takes effect on the next dispatch without rebuilding
// anything.
type GeminiGenerator struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewGeminiGenerator constructs a generator with sane defaults. A nil HTTP
// client gets replaced with one carrying a generation-sized timeout.
func NewGeminiGenerator(opts GeminiOptions) *GeminiGenerator {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash-image"
	}
	return &GeminiGenerator{
		baseURL:    baseURL,
		model:      model,
		httpClient: client,
		logger:     opts.Logger,
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
	FileData   *geminiFileData   `json:"fileData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiFileData struct {
	MimeType string `json:"mimeType,omitempty"`
	FileURI  string `json:"fileUri,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string           `json:"responseModalities,omitempty"`
	ImageConfig        *geminiImageConfig `json:"imageConfig,omitempty"`
}

type geminiGenerateRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// Generate issues one generateContent call and extracts the first inline
// image from the response.
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Credential) == "" {
		return "", domain.ErrMissingCredential
	}

	parts := []geminiPart{{Text: req.Prompt}}
	for _, ref := range req.ReferenceImages {
		part, err := referencePart(ref)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}

	body := geminiGenerateRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &geminiImageConfig{AspectRatio: string(req.AspectRatio)},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	baseURL := g.baseURL
	if override := strings.TrimSuffix(strings.TrimSpace(req.Endpoint), "/"); override != "" {
		baseURL = override
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", baseURL, g.model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", req.Credential)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr geminiErrorResponse
		if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("gemini: %s", apiErr.Error.Message)
		}
		return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}

	var parsed geminiGenerateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	for _, candidate := range parsed.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				mime := part.InlineData.MimeType
				if mime == "" {
					mime = "image/png"
				}
				return fmt.Sprintf("data:%s;base64,%s", mime, part.InlineData.Data), nil
			}
		}
	}
	return "", fmt.Errorf("gemini: response contained no image")
}

// referencePart converts one opaque reference into a request part: data URLs
// become inline data, anything else rides along as a file reference.
func referencePart(ref string) (geminiPart, error) {
	if strings.HasPrefix(ref, "data:") {
		rest := strings.TrimPrefix(ref, "data:")
		meta, data, ok := strings.Cut(rest, ",")
		if !ok {
			return geminiPart{}, fmt.Errorf("malformed data url reference")
		}
		mime, _, _ := strings.Cut(meta, ";")
		if mime == "" {
			mime = "image/png"
		}
		return geminiPart{InlineData: &geminiInlineData{MimeType: mime, Data: data}}, nil
	}
	return geminiPart{FileData: &geminiFileData{MimeType: "image/png", FileURI: ref}}, nil
}
