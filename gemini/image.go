package gemini

import (
	"context"
	"encoding/base64"

	"github.com/forgeads/forgeads"
	"google.golang.org/genai"
)

// DefaultImageModel is the image generation model.
const DefaultImageModel = "imagen-4.0-generate-001"

// Ensure ImageGenerator implements forgeads.ImageGenerator at compile time.
var _ forgeads.ImageGenerator = (*ImageGenerator)(nil)

// ImageGenerator implements forgeads.ImageGenerator using Imagen on the
// Gemini API. Images are returned inline as data URLs.
type ImageGenerator struct {
	client *genai.Client
	model  string
}

// NewImageGenerator creates a new ImageGenerator. An empty model selects
// DefaultImageModel.
func NewImageGenerator(client *genai.Client, model string) *ImageGenerator {
	if model == "" {
		model = DefaultImageModel
	}
	return &ImageGenerator{client: client, model: model}
}

// GenerateImage generates one square image for prompt.
func (g *ImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", forgeads.Errorf(forgeads.EINVALID, "image prompt required")
	}

	resp, err := g.client.Models.GenerateImages(ctx, g.model, prompt, BuildImageConfig())
	if err != nil {
		return "", forgeads.Errorf(forgeads.EUPSTREAM, "imagen: %v", err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return "", forgeads.Errorf(forgeads.EUPSTREAM, "imagen returned no images")
	}

	img := resp.GeneratedImages[0]
	if img.Image == nil || len(img.Image.ImageBytes) == 0 {
		return "", forgeads.Errorf(forgeads.EUPSTREAM, "imagen returned empty image: %s", img.RAIFilteredReason)
	}
	return DataURL(img.Image.MIMEType, img.Image.ImageBytes), nil
}

// BuildImageConfig returns the GenerateImagesConfig for ad images.
func BuildImageConfig() *genai.GenerateImagesConfig {
	return &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
		OutputMIMEType: "image/png",
	}
}

// DataURL encodes data as a base64 data URL. An empty mimeType defaults
// to image/png.
func DataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
