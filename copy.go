package forgeads

import (
	"fmt"
	"strings"
)

// AssetType identifies one discrete piece of ad text.
type AssetType string

// Copy asset types.
const (
	AssetHeadline AssetType = "headline"
	AssetBody     AssetType = "body"
	AssetCTA      AssetType = "cta"
)

// AssetTypes lists every asset type of a complete ad.
var AssetTypes = []AssetType{AssetHeadline, AssetBody, AssetCTA}

// Guidance returns the advisory length constraint for the asset type.
// It is prompt guidance only; generated text is never truncated.
func (t AssetType) Guidance() string {
	switch t {
	case AssetHeadline:
		return "Crie uma headline impactante (máximo 40 caracteres)"
	case AssetBody:
		return "Crie um texto de anúncio completo (100-150 palavras)"
	case AssetCTA:
		return "Crie um CTA (call-to-action) poderoso (máximo 20 caracteres)"
	}
	return ""
}

// Validate returns an error if t is not a known asset type.
func (t AssetType) Validate() error {
	switch t {
	case AssetHeadline, AssetBody, AssetCTA:
		return nil
	}
	return Errorf(EINVALID, "Tipo de copy inválido: %q.", string(t))
}

// CopyAssets holds the three copy assets of one ad.
type CopyAssets struct {
	Headline string `json:"headline"`
	Body     string `json:"textoAnuncio"`
	CTA      string `json:"cta"`
}

// Set stores text as the asset of type t.
func (a *CopyAssets) Set(t AssetType, text string) {
	switch t {
	case AssetHeadline:
		a.Headline = text
	case AssetBody:
		a.Body = text
	case AssetCTA:
		a.CTA = text
	}
}

// AnalysisResult is the outcome of a completed pipeline run.
type AnalysisResult struct {
	ProductProfile `yaml:",inline"`
	CopyAssets     `yaml:",inline"`

	Briefing   string     `json:"briefing"`
	SourceType SourceType `json:"sourceType"`
	SourceURL  string     `json:"sourceUrl,omitempty"`
}

// Objective is the campaign goal an ad is written for.
type Objective string

// Campaign objectives.
const (
	ObjectiveSales    Objective = "Vendas"
	ObjectiveLeads    Objective = "Leads"
	ObjectiveWhatsApp Objective = "WhatsApp"
)

// Validate returns an error if o is not a known objective.
func (o Objective) Validate() error {
	switch o {
	case ObjectiveSales, ObjectiveLeads, ObjectiveWhatsApp:
		return nil
	}
	return Errorf(EINVALID, "Objetivo inválido: %q. Use Vendas, Leads ou WhatsApp.", string(o))
}

// Awareness is the audience's awareness level of the product.
type Awareness string

// Awareness levels.
const (
	AwarenessCold Awareness = "Frio"
	AwarenessWarm Awareness = "Morno"
	AwarenessHot  Awareness = "Quente"
)

// Validate returns an error if a is not a known awareness level.
func (a Awareness) Validate() error {
	switch a {
	case AwarenessCold, AwarenessWarm, AwarenessHot:
		return nil
	}
	return Errorf(EINVALID, "Nível de consciência inválido: %q. Use Frio, Morno ou Quente.", string(a))
}

// Tone is the voice an ad is written in.
type Tone string

// Tones.
const (
	ToneEmotional    Tone = "Emocional"
	ToneProfessional Tone = "Profissional"
	ToneDirect       Tone = "Direto"
	ToneUrgent       Tone = "Urgente"
)

// Validate returns an error if t is not a known tone.
func (t Tone) Validate() error {
	switch t {
	case ToneEmotional, ToneProfessional, ToneDirect, ToneUrgent:
		return nil
	}
	return Errorf(EINVALID, "Tom inválido: %q. Use Emocional, Profissional, Direto ou Urgente.", string(t))
}

// CopyRequest holds the manual inputs of an ad written without a source.
type CopyRequest struct {
	Niche     string    `json:"nicho"`
	Audience  string    `json:"publico"`
	Objective Objective `json:"objetivo"`
	Awareness Awareness `json:"consciencia"`
	Tone      Tone      `json:"tom"`
}

// Validate returns an error if the request has missing or invalid fields.
func (r *CopyRequest) Validate() error {
	if err := required("Nicho", r.Niche); err != nil {
		return err
	} else if err := required("Público-alvo", r.Audience); err != nil {
		return err
	} else if err := r.Objective.Validate(); err != nil {
		return err
	} else if err := r.Awareness.Validate(); err != nil {
		return err
	}
	return r.Tone.Validate()
}

// ImageRequest holds the inputs of an ad image.
type ImageRequest struct {
	Niche     string    `json:"nicho"`
	Audience  string    `json:"publico"`
	Objective Objective `json:"objetivo"`
	Tone      Tone      `json:"tom"`
	Headline  string    `json:"headline"`
}

// Validate returns an error if the request has missing or invalid fields.
func (r *ImageRequest) Validate() error {
	if err := required("Nicho", r.Niche); err != nil {
		return err
	} else if err := required("Público-alvo", r.Audience); err != nil {
		return err
	} else if err := required("Headline", r.Headline); err != nil {
		return err
	} else if err := r.Objective.Validate(); err != nil {
		return err
	}
	return r.Tone.Validate()
}

// ImageResult is a generated ad image.
type ImageResult struct {
	URL string `json:"url"`
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return Errorf(EINVALID, "%s é obrigatório.", name)
	}
	return nil
}

// AdCopy is a complete manually requested ad.
type AdCopy struct {
	Headline       string `json:"headline"`
	Body           string `json:"textoAnuncio"`
	CTA            string `json:"cta"`
	EmotionalAngle string `json:"anguloEmocional"`
	CreativeIdea   string `json:"ideiaCreativo"`
}

// Ad copy section headers, in the order they are requested. Extra
// headers are unaccented spellings.
var adSections = []struct {
	headers []string
	field   func(*AdCopy) *string
}{
	{[]string{"HEADLINE"}, func(a *AdCopy) *string { return &a.Headline }},
	{[]string{"TEXTO DO ANÚNCIO", "TEXTO DO ANUNCIO"}, func(a *AdCopy) *string { return &a.Body }},
	{[]string{"CTA"}, func(a *AdCopy) *string { return &a.CTA }},
	{[]string{"ÂNGULO EMOCIONAL", "ANGULO EMOCIONAL"}, func(a *AdCopy) *string { return &a.EmotionalAngle }},
	{[]string{"IDEIA DE CRIATIVO"}, func(a *AdCopy) *string { return &a.CreativeIdea }},
}

// ParseAdCopy parses a sectioned ad copy response. Each section starts
// with its header followed by a colon, e.g. "HEADLINE: ...", and runs
// until the next header. Markdown emphasis around headers is ignored.
//
// Returns EUPSTREAM if the response contains no headline.
func ParseAdCopy(text string) (*AdCopy, error) {
	var ad AdCopy
	sections := make(map[*string][]string)
	var current *string

	for _, line := range strings.Split(text, "\n") {
		if field, rest, ok := parseAdHeader(&ad, line); ok {
			current = field
			line = rest
		}
		if current != nil {
			sections[current] = append(sections[current], line)
		}
	}
	for field, lines := range sections {
		*field = strings.TrimSpace(strings.Join(lines, "\n"))
	}

	if ad.Headline == "" {
		return nil, Errorf(EUPSTREAM, "ad copy response has no headline section")
	}
	return &ad, nil
}

// parseAdHeader reports whether line starts a section. A header that
// ends its line matches in any case. A header followed by text on the
// same line must be written in capitals or marked up, so body text such
// as "Cta: clique no link" stays in its section.
func parseAdHeader(ad *AdCopy, line string) (field *string, rest string, ok bool) {
	line = strings.TrimSpace(line)
	trimmed := strings.TrimLeft(line, "#*_ ")
	marked := len(trimmed) < len(line)
	for _, s := range adSections {
		for _, header := range s.headers {
			if len(trimmed) < len(header) || !strings.EqualFold(trimmed[:len(header)], header) {
				continue
			}
			after := strings.TrimLeft(trimmed[len(header):], "*_ ")
			if !strings.HasPrefix(after, ":") {
				continue
			}
			after = strings.TrimLeft(after[1:], "*_ ")
			if after != "" && !marked && trimmed[:len(header)] != header {
				continue
			}
			return s.field(ad), after, true
		}
	}
	return nil, "", false
}

// String renders the ad in its sectioned form.
func (a *AdCopy) String() string {
	var b strings.Builder
	for _, s := range adSections {
		fmt.Fprintf(&b, "%s: %s\n", s.headers[0], *s.field(a))
	}
	return b.String()
}
