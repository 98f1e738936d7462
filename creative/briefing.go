package creative

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgeads/forgeads"
)

// MaxBriefingLength is the advisory briefing length given to the model.
const MaxBriefingLength = 200

const artDirectorSystemPrompt = "Você é um diretor de arte que cria briefings para imagens profissionais."

// Briefer writes image generation briefings from product profiles.
type Briefer struct {
	Generator forgeads.TextGenerator
}

// Brief returns an image generation directive for profile. The length
// cap is prompt guidance only.
func (b *Briefer) Brief(ctx context.Context, profile *forgeads.ProductProfile) (string, error) {
	if !profile.Usable() {
		return "", forgeads.Errorf(forgeads.EUNANALYZABLE, "%s", IncompleteMessage)
	}
	return generate(ctx, b.Generator, BuildBriefingRequest(profile), "briefing")
}

// BuildBriefingRequest builds the free-text briefing request.
func BuildBriefingRequest(p *forgeads.ProductProfile) *forgeads.GenerateRequest {
	var sb strings.Builder
	sb.WriteString("Você é um diretor de arte especializado em criativos para Facebook Ads.\n\n")
	sb.WriteString("DADOS REAIS DO PRODUTO:\n")
	fmt.Fprintf(&sb, "- Nome: %s\n", forgeads.Field(p.ProductName))
	fmt.Fprintf(&sb, "- Nicho: %s\n", forgeads.Field(p.Niche))
	fmt.Fprintf(&sb, "- Benefício principal: %s\n", forgeads.Field(p.MainBenefit))
	fmt.Fprintf(&sb, "- Tom: %s\n\n", forgeads.Field(p.CommunicationTone))
	sb.WriteString("Crie um briefing PROFISSIONAL para geração de imagem que:\n")
	sb.WriteString("- Seja executivo e premium, sem aparência de IA genérica\n")
	sb.WriteString("- Represente o produto de forma realista\n")
	sb.WriteString("- Use elementos visuais adequados ao nicho\n")
	sb.WriteString("- Tenha aparência de anúncio profissional\n\n")
	sb.WriteString("Retorne APENAS o prompt para geração de imagem, sem explicações.\n")
	fmt.Fprintf(&sb, "Máximo %d caracteres.", MaxBriefingLength)

	return &forgeads.GenerateRequest{Messages: messages(artDirectorSystemPrompt, sb.String())}
}
