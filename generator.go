package forgeads

import (
	"context"
	"strings"
)

// Role tags a message sent to a text generator.
type Role string

// Message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged message of a generation request.
type Message struct {
	Role    Role
	Content string
}

// Schema describes a structured output made of required string fields.
type Schema struct {
	Name   string
	Fields []SchemaField
}

// SchemaField is one string property of a structured output.
type SchemaField struct {
	Name        string
	Description string
}

// GenerateRequest is a single completion request.
type GenerateRequest struct {
	Messages []Message

	// Schema requests schema-conforming JSON output when set.
	Schema *Schema
}

// TextGenerator produces text completions.
type TextGenerator interface {
	// Generate returns one completion. In structured mode the result is
	// JSON text conforming to req.Schema.
	Generate(ctx context.Context, req *GenerateRequest) (string, error)
}

// ImageGenerator produces images from text prompts.
type ImageGenerator interface {
	// GenerateImage returns the URL of the generated image.
	GenerateImage(ctx context.Context, prompt string) (url string, err error)
}

// PDFConverter converts PDF documents to plain text.
type PDFConverter interface {
	ConvertPDF(ctx context.Context, pdf []byte) (string, error)
}

// StripCodeFence removes a markdown code fence around a response, such as
// the ```json fences some models add in structured mode.
func StripCodeFence(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}
