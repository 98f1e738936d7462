// Package gemini implements the text and image generation collaborators
// on Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/forgeads/forgeads"
	"google.golang.org/genai"
)

// DefaultModel is the text generation model.
const DefaultModel = "gemini-2.5-flash"

// DefaultTemperature is the sampling temperature of text requests.
const DefaultTemperature = 0.7

// Ensure TextGenerator implements forgeads.TextGenerator at compile time.
var _ forgeads.TextGenerator = (*TextGenerator)(nil)

// TextGenerator implements forgeads.TextGenerator using Google Gemini.
type TextGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
}

// Option configures a TextGenerator.
type Option func(*TextGenerator)

// WithModel sets the model used for generation.
func WithModel(model string) Option {
	return func(g *TextGenerator) {
		g.model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(g *TextGenerator) {
		g.temperature = t
	}
}

// NewTextGenerator creates a new TextGenerator.
func NewTextGenerator(client *genai.Client, opts ...Option) *TextGenerator {
	g := &TextGenerator{
		client:      client,
		model:       DefaultModel,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns one completion for req. In structured mode the
// response is constrained to req.Schema and returned as JSON text.
func (g *TextGenerator) Generate(ctx context.Context, req *forgeads.GenerateRequest) (string, error) {
	contents := BuildContents(req)
	if len(contents) == 0 {
		return "", forgeads.Errorf(forgeads.EINVALID, "generation request has no user message")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, BuildConfig(req, g.temperature))
	if err != nil {
		return "", forgeads.Errorf(forgeads.EUPSTREAM, "gemini: %v", err)
	}
	if result == nil {
		return "", forgeads.Errorf(forgeads.EUPSTREAM, "gemini returned nil result")
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", forgeads.Errorf(forgeads.EUPSTREAM, "gemini returned empty response")
	}
	if req.Schema != nil {
		text = forgeads.StripCodeFence(text)
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for req. System messages
// become the system instruction; a schema switches to JSON output.
func BuildConfig(req *forgeads.GenerateRequest, temperature float32) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	var system []*genai.Part
	for _, m := range req.Messages {
		if m.Role == forgeads.RoleSystem {
			system = append(system, &genai.Part{Text: m.Content})
		}
	}
	if len(system) > 0 {
		config.SystemInstruction = &genai.Content{Parts: system}
	}

	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = BuildSchema(req.Schema)
	}
	return config
}

// BuildContents converts the non-system messages of req to Gemini contents.
func BuildContents(req *forgeads.GenerateRequest) []*genai.Content {
	var contents []*genai.Content
	for _, m := range req.Messages {
		var role string
		switch m.Role {
		case forgeads.RoleUser:
			role = "user"
		case forgeads.RoleAssistant:
			role = "model"
		default:
			continue
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return contents
}

// BuildSchema converts a structured output description to a Gemini
// object schema with every field required and ordered as declared.
func BuildSchema(s *forgeads.Schema) *genai.Schema {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(s.Fields)),
	}
	for _, f := range s.Fields {
		schema.Properties[f.Name] = &genai.Schema{
			Type:        genai.TypeString,
			Description: f.Description,
		}
		schema.Required = append(schema.Required, f.Name)
		schema.PropertyOrdering = append(schema.PropertyOrdering, f.Name)
	}
	return schema
}
