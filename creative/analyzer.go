package creative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/forgeads/forgeads"
)

// Analysis input bounds.
const (
	MinAnalysisTextLength = 50
	MaxAnalysisTextLength = 4000
)

// ProfileSchema is the structured output of a product analysis.
var ProfileSchema = &forgeads.Schema{
	Name: "product_analysis",
	Fields: []forgeads.SchemaField{
		{Name: "productName", Description: "Nome real do produto encontrado"},
		{Name: "targetAudience", Description: "Público-alvo identificado no conteúdo"},
		{Name: "mainPain", Description: "Principal dor ou problema que o produto resolve"},
		{Name: "mainBenefit", Description: "Principal benefício oferecido"},
		{Name: "centralPromise", Description: "Promessa central do produto"},
		{Name: "communicationTone", Description: "Tom de comunicação usado (formal, informal, técnico, emocional)"},
		{Name: "niche", Description: "Nicho ou categoria do produto"},
	},
}

const analystSystemPrompt = "Você é um analista de marketing que extrai informações REAIS de conteúdo. Nunca invente dados."

// Analyzer derives product profiles from extracted text with one
// structured generation request.
type Analyzer struct {
	Generator forgeads.TextGenerator
}

// Analyze returns the profile evidenced by text.
//
// Text shorter than MinAnalysisTextLength fails with EINSUFFICIENT before
// any request is made. A profile without product name or main benefit
// fails with EUNANALYZABLE.
func (a *Analyzer) Analyze(ctx context.Context, sourceType forgeads.SourceType, text string) (*forgeads.ProductProfile, error) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinAnalysisTextLength {
		return nil, forgeads.Errorf(forgeads.EINSUFFICIENT, "%s", insufficientAnalysisInput(sourceType))
	}

	resp, err := a.Generator.Generate(ctx, BuildAnalysisRequest(sourceType, text))
	if err != nil {
		return nil, err
	}

	profile, err := DecodeProfile(resp)
	if err != nil {
		return nil, err
	}
	if !profile.Usable() {
		return nil, forgeads.Errorf(forgeads.EUNANALYZABLE, "%s", UnanalyzableMessage)
	}
	return profile, nil
}

// DecodeProfile decodes a structured analysis response. Code fences are
// tolerated and sentinel values are mapped to absent fields.
func DecodeProfile(resp string) (*forgeads.ProductProfile, error) {
	var profile forgeads.ProductProfile
	if err := json.Unmarshal([]byte(forgeads.StripCodeFence(resp)), &profile); err != nil {
		return nil, forgeads.Errorf(forgeads.EUPSTREAM, "decoding product analysis: %v", err)
	}
	profile.Normalize()
	return &profile, nil
}

// BuildAnalysisRequest builds the structured request for text, truncated
// to MaxAnalysisTextLength characters.
func BuildAnalysisRequest(sourceType forgeads.SourceType, text string) *forgeads.GenerateRequest {
	origin := "uma landing page"
	switch sourceType {
	case forgeads.SourcePDF:
		origin = "um PDF"
	case forgeads.SourceFile:
		origin = "um arquivo de texto"
	}

	var sb strings.Builder
	sb.WriteString("Você é um analista de marketing especializado em produtos digitais e físicos.\n\n")
	fmt.Fprintf(&sb, "Analise o seguinte conteúdo extraído de %s e retorne APENAS informações REAIS encontradas no conteúdo.\n\n", origin)
	sb.WriteString("CONTEÚDO:\n")
	sb.WriteString(forgeads.Truncate(text, MaxAnalysisTextLength))
	sb.WriteString("\n\nINSTRUÇÕES CRÍTICAS:\n")
	sb.WriteString("- NÃO invente ou assuma informações\n")
	sb.WriteString("- NÃO use exemplos genéricos\n")
	fmt.Fprintf(&sb, "- Se não houver informação clara sobre algum campo, retorne %q\n", forgeads.NotIdentified)
	sb.WriteString("- Base sua análise EXCLUSIVAMENTE no conteúdo fornecido\n")

	return &forgeads.GenerateRequest{
		Messages: messages(analystSystemPrompt, sb.String()),
		Schema:   ProfileSchema,
	}
}

func insufficientAnalysisInput(sourceType forgeads.SourceType) string {
	switch sourceType {
	case forgeads.SourcePDF:
		return "Conteúdo insuficiente para análise. Verifique se o PDF contém texto legível (não apenas imagens)."
	case forgeads.SourceFile:
		return "Conteúdo insuficiente para análise. Verifique se o arquivo contém texto sobre o produto."
	default:
		return "Conteúdo insuficiente para análise. Verifique se a URL está correta e acessível."
	}
}
