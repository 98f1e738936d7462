package creative

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgeads/forgeads"
)

const adSpecialistSystemPrompt = "Você é um especialista em copywriting para Facebook Ads. Sempre responda no formato exato solicitado."

// AdWriter writes complete ads from manual inputs, without a source.
type AdWriter struct {
	Generator forgeads.TextGenerator
}

// WriteAd validates req and writes a sectioned ad in one request.
func (w *AdWriter) WriteAd(ctx context.Context, req *forgeads.CopyRequest) (*forgeads.AdCopy, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	text, err := generate(ctx, w.Generator, BuildAdRequest(req), "ad")
	if err != nil {
		return nil, err
	}
	return forgeads.ParseAdCopy(text)
}

// BuildAdRequest builds the request for a sectioned ad.
func BuildAdRequest(req *forgeads.CopyRequest) *forgeads.GenerateRequest {
	var sb strings.Builder
	sb.WriteString("Você é um especialista em Facebook Ads com mais de 10 anos de experiência.\n\n")
	sb.WriteString("Crie UM anúncio persuasivo com base nas informações abaixo:\n\n")
	fmt.Fprintf(&sb, "Nicho do produto: %s\n", req.Niche)
	fmt.Fprintf(&sb, "Público-alvo: %s\n", req.Audience)
	fmt.Fprintf(&sb, "Objetivo do anúncio: %s\n", req.Objective)
	fmt.Fprintf(&sb, "Nível de consciência: %s\n", req.Awareness)
	fmt.Fprintf(&sb, "Tom da comunicação: %s\n\n", req.Tone)
	sb.WriteString("Regras:\n")
	sb.WriteString("- Linguagem simples e direta\n")
	sb.WriteString("- Não usar palavras proibidas pelo Facebook\n")
	sb.WriteString("- Não prometer ganhos ou resultados irreais\n")
	sb.WriteString("- Focar em dor, solução e ação\n\n")
	sb.WriteString("Entregue EXATAMENTE neste formato:\n\n")
	sb.WriteString("HEADLINE:\n(uma headline curta e impactante)\n\n")
	sb.WriteString("TEXTO DO ANÚNCIO:\n(até 3 parágrafos curtos)\n\n")
	sb.WriteString("CTA:\n(chamada clara para ação)\n\n")
	sb.WriteString("ÂNGULO EMOCIONAL:\n(emoção principal explorada)\n\n")
	sb.WriteString("IDEIA DE CRIATIVO:\n(uma ideia de imagem ou vídeo)")

	return &forgeads.GenerateRequest{Messages: messages(adSpecialistSystemPrompt, sb.String())}
}

// BuildImagePrompt builds the image generation prompt for req.
func BuildImagePrompt(req *forgeads.ImageRequest) string {
	var sb strings.Builder
	sb.WriteString("Crie uma imagem publicitária realista e de alta conversão para Facebook e Instagram Ads.\n\n")
	sb.WriteString("Contexto do anúncio:\n")
	fmt.Fprintf(&sb, "- Nicho: %s\n", req.Niche)
	fmt.Fprintf(&sb, "- Público-alvo: %s\n", req.Audience)
	fmt.Fprintf(&sb, "- Objetivo: %s\n", req.Objective)
	fmt.Fprintf(&sb, "- Tom: %s\n\n", req.Tone)
	sb.WriteString("Mensagem principal do anúncio:\n")
	sb.WriteString(req.Headline)
	sb.WriteString("\n\nEstilo da imagem: visual profissional, alto impacto, estilo publicitário, sem textos longos na imagem.\n")
	sb.WriteString("Formato: 1:1 (quadrado), alta qualidade, fundo limpo ou desfocado, elemento visual central claro.\n\n")
	sb.WriteString("A imagem deve comunicar a ideia principal do anúncio visualmente.")
	return sb.String()
}
