package creative

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgeads/forgeads"
	"golang.org/x/sync/errgroup"
)

const copywriterSystemPrompt = "Você é um copywriter profissional que cria textos baseados em dados reais. Nunca invente informações."

// CopyWriter writes copy assets from product profiles.
//
// Length guidance is part of the prompt only: responses are returned as
// generated, without truncation.
type CopyWriter struct {
	Generator forgeads.TextGenerator
}

// WriteCopy writes one asset for profile with one generation request.
// Returns EUNANALYZABLE without any request when the profile is not usable.
func (w *CopyWriter) WriteCopy(ctx context.Context, profile *forgeads.ProductProfile, asset forgeads.AssetType, objective forgeads.Objective) (string, error) {
	if err := asset.Validate(); err != nil {
		return "", err
	}
	if !profile.Usable() {
		return "", forgeads.Errorf(forgeads.EUNANALYZABLE, "%s", IncompleteMessage)
	}
	return generate(ctx, w.Generator, BuildCopyRequest(profile, asset, objective), string(asset))
}

// WriteAll writes every asset type concurrently. Any failure fails the
// whole set and no partial assets are returned.
func (w *CopyWriter) WriteAll(ctx context.Context, profile *forgeads.ProductProfile, objective forgeads.Objective) (*forgeads.CopyAssets, error) {
	if !profile.Usable() {
		return nil, forgeads.Errorf(forgeads.EUNANALYZABLE, "%s", IncompleteMessage)
	}

	texts := make([]string, len(forgeads.AssetTypes))
	g, gctx := errgroup.WithContext(ctx)
	for i, asset := range forgeads.AssetTypes {
		g.Go(func() error {
			text, err := w.WriteCopy(gctx, profile, asset, objective)
			if err != nil {
				return fmt.Errorf("write %s: %w", asset, err)
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var assets forgeads.CopyAssets
	for i, asset := range forgeads.AssetTypes {
		assets.Set(asset, texts[i])
	}
	return &assets, nil
}

// BuildCopyRequest builds the free-text request for one asset.
func BuildCopyRequest(profile *forgeads.ProductProfile, asset forgeads.AssetType, objective forgeads.Objective) *forgeads.GenerateRequest {
	var sb strings.Builder
	sb.WriteString("Você é um copywriter profissional especializado em anúncios para Facebook Ads.\n\n")
	writeProfile(&sb, profile)
	fmt.Fprintf(&sb, "\nOBJETIVO: %s\n\n", objective)
	fmt.Fprintf(&sb, "TIPO DE COPY: %s\n\n", asset)
	sb.WriteString("INSTRUÇÕES CRÍTICAS:\n")
	sb.WriteString("- Use APENAS as informações reais fornecidas acima\n")
	sb.WriteString("- NÃO invente benefícios ou características\n")
	sb.WriteString("- NÃO use exemplos genéricos\n")
	sb.WriteString("- Seja específico e direto\n")
	sb.WriteString("- Mantenha o tom de comunicação identificado\n\n")
	sb.WriteString(asset.Guidance())
	sb.WriteString("\n\nRetorne APENAS o texto da copy, sem explicações ou comentários.")

	return &forgeads.GenerateRequest{Messages: messages(copywriterSystemPrompt, sb.String())}
}

func writeProfile(sb *strings.Builder, p *forgeads.ProductProfile) {
	sb.WriteString("DADOS REAIS DO PRODUTO:\n")
	fmt.Fprintf(sb, "- Nome: %s\n", forgeads.Field(p.ProductName))
	fmt.Fprintf(sb, "- Público-alvo: %s\n", forgeads.Field(p.TargetAudience))
	fmt.Fprintf(sb, "- Dor principal: %s\n", forgeads.Field(p.MainPain))
	fmt.Fprintf(sb, "- Benefício principal: %s\n", forgeads.Field(p.MainBenefit))
	fmt.Fprintf(sb, "- Promessa central: %s\n", forgeads.Field(p.CentralPromise))
	fmt.Fprintf(sb, "- Tom de comunicação: %s\n", forgeads.Field(p.CommunicationTone))
	fmt.Fprintf(sb, "- Nicho: %s\n", forgeads.Field(p.Niche))
}
