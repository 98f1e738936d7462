package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/forgeads/forgeads"
)

// Run executes the image command.
func (c *ImageCmd) Run(deps *Dependencies) error {
	result, err := deps.Creatives.GenerateImage(deps.Ctx, &forgeads.ImageRequest{
		Niche:     c.Niche,
		Audience:  c.Audience,
		Objective: forgeads.Objective(c.Objective),
		Tone:      forgeads.Tone(c.Tone),
		Headline:  c.Headline,
	})
	if err != nil {
		return fail(deps, err)
	}

	if c.Output == "" {
		return encode(deps.Stdout, deps.Format, result)
	}

	data, err := decodeDataURL(result.URL)
	if err != nil {
		return fail(deps, err)
	}
	if err := os.WriteFile(c.Output, data, 0644); err != nil {
		return fail(deps, fmt.Errorf("writing image: %w", err))
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s (%d bytes)\n", c.Output, len(data))
	return nil
}

// decodeDataURL returns the bytes of a base64 data URL.
func decodeDataURL(url string) ([]byte, error) {
	_, payload, ok := strings.Cut(url, ";base64,")
	if !ok || !strings.HasPrefix(url, "data:") {
		return nil, forgeads.Errorf(forgeads.EUPSTREAM, "image is not a base64 data URL")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, forgeads.Errorf(forgeads.EUPSTREAM, "decoding image: %v", err)
	}
	return data, nil
}
