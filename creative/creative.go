// Package creative turns extracted product content into analyzed product
// profiles, ad copy and image briefings.
//
// The package is independent of any concrete model provider: every
// external call goes through the collaborator interfaces of the root
// package, so retries, throttling and logging are added by wrapping them.
package creative

import (
	"context"
	"strings"

	"github.com/forgeads/forgeads"
)

// User-facing messages.
const (
	PDFUnreadableMessage = "Não foi possível extrair texto do PDF. Verifique se o arquivo contém texto selecionável (não é apenas uma imagem digitalizada)."
	PDFTooShortMessage   = "PDF não contém texto legível suficiente. Verifique se o arquivo não está protegido ou é apenas imagem."
	UnanalyzableMessage  = "Não foi possível identificar informações suficientes do produto. Verifique se o conteúdo fornecido contém informações claras sobre o produto."
	IncompleteMessage    = "Dados insuficientes para gerar copy. Análise do produto incompleta."
)

// generate issues a single free-text request and returns the trimmed
// response. An empty response is a collaborator failure.
func generate(ctx context.Context, g forgeads.TextGenerator, req *forgeads.GenerateRequest, what string) (string, error) {
	text, err := g.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", forgeads.Errorf(forgeads.EUPSTREAM, "empty %s response", what)
	}
	return text, nil
}

func messages(system, user string) []forgeads.Message {
	return []forgeads.Message{
		{Role: forgeads.RoleSystem, Content: system},
		{Role: forgeads.RoleUser, Content: user},
	}
}
