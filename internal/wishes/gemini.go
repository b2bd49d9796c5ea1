package wishes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

var errEmptyResponse = errors.New("no content generated")

// GeminiConfig configures a GeminiGenerator.
type GeminiConfig struct {
	APIKey string
	Model  string

	// BaseURL and HTTPClient override the endpoint, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiGenerator asks a Gemini model for a JSON wish.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: cfg.Model}, nil
}

func (g *GeminiGenerator) Model() string { return g.model }

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, p Params) (Result, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(p)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		return Result{}, &WishGenerationError{Op: "request", Err: err}
	}
	return parseResponse(resp.Text())
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"wish": {
				Type:        genai.TypeString,
				Description: "A creative birthday wish.",
			},
			"giftIdeas": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "List of 3 gift ideas.",
			},
		},
		Required: []string{"wish", "giftIdeas"},
	}
}

type geminiPayload struct {
	Wish      string   `json:"wish"`
	GiftIdeas []string `json:"giftIdeas"`
}

// parseResponse decodes and validates the model's JSON text.
func parseResponse(text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, &WishGenerationError{Op: "parse", Err: errEmptyResponse}
	}

	var payload geminiPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return Result{}, &WishGenerationError{Op: "parse", Err: err}
	}

	res, err := normalizeResult(Result{Wish: payload.Wish, GiftIdeas: payload.GiftIdeas})
	if err != nil {
		return Result{}, &WishGenerationError{Op: "parse", Err: err}
	}
	return res, nil
}
