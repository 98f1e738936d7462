package forgeads_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/forgeads/forgeads"
	"github.com/stretchr/testify/assert"
)

const brochure = `Curso Completo de Marketing Digital
Aprenda a vender todos os dias com tráfego pago
MÓDULO 1 - FUNDAMENTOS
- Como escolher seu público
• Como criar anúncios que convertem
→ Suporte por 12 meses
MÓDULO 2 - ESCALA
De R$ 997,00 por apenas R$ 497,00
Quero garantir minha vaga
Inscreva-se e garantir acesso vitalício hoje mesmo
`

func TestStructureDocumentText(t *testing.T) {
	t.Parallel()

	t.Run("structures lines into fields", func(t *testing.T) {
		t.Parallel()

		c := forgeads.StructureDocumentText(brochure)

		assert.Equal(t, "Curso Completo de Marketing Digital", c.Title)
		assert.Equal(t, "Aprenda a vender todos os dias com tráfego pago", c.Description)
		assert.Equal(t, []string{"MÓDULO 1 - FUNDAMENTOS", "MÓDULO 2 - ESCALA"}, c.Headings)
		assert.Equal(t, []string{"Como escolher seu público", "Como criar anúncios que convertem", "Suporte por 12 meses"}, c.Bullets)
		assert.Equal(t, []string{"R$ 997,00", "R$ 497,00"}, c.Prices)
		assert.Equal(t, []string{"Quero garantir minha vaga", "Inscreva-se e garantir acesso vitalício hoje mesmo"}, c.CTAs)
		assert.Equal(t, brochure, c.FullText)
		assert.True(t, c.IsSufficient())
	})

	t.Run("returns empty insufficient content below structuring threshold", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("x", forgeads.MinStructuredTextLength-1)

		c := forgeads.StructureDocumentText(text)

		assert.Empty(t, c.Title)
		assert.Empty(t, c.FullText)
		assert.Empty(t, c.Headings)
		assert.False(t, c.IsSufficient())
	})

	t.Run("is sufficient at the structuring threshold", func(t *testing.T) {
		t.Parallel()

		c := forgeads.StructureDocumentText(strings.Repeat("x", forgeads.MinStructuredTextLength))

		assert.True(t, c.IsSufficient())
	})

	t.Run("caps title description and full text", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("t", 150) + "\n" + strings.Repeat("d", 300) + "\n" + strings.Repeat("f", 6000)

		c := forgeads.StructureDocumentText(text)

		assert.Equal(t, 100, utf8.RuneCountInString(c.Title))
		assert.Equal(t, 200, utf8.RuneCountInString(c.Description))
		assert.Equal(t, forgeads.MaxFullTextLength, utf8.RuneCountInString(c.FullText))
	})

	t.Run("caps headings bullets and ctas", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("Título do documento\nDescrição\n")
		for i := 0; i < 15; i++ {
			b.WriteString("SEÇÃO NÚMERO " + strings.Repeat("I", i+1) + "\n")
		}
		for i := 0; i < 25; i++ {
			b.WriteString("- benefício " + strings.Repeat("b", i+1) + "\n")
		}
		for i := 0; i < 8; i++ {
			b.WriteString("comprar agora " + strings.Repeat("c", i+1) + "\n")
		}

		c := forgeads.StructureDocumentText(b.String())

		assert.Len(t, c.Headings, forgeads.MaxDocumentHeadings)
		assert.Len(t, c.Bullets, forgeads.MaxBullets)
		assert.Len(t, c.CTAs, forgeads.MaxDocumentCTAs)
	})

	t.Run("ignores lines without letters as headings", func(t *testing.T) {
		t.Parallel()

		text := "Título do documento\nDescrição\n12345678\nTEXTO EM CAIXA ALTA\n" + strings.Repeat("x", 150)

		c := forgeads.StructureDocumentText(text)

		assert.Equal(t, []string{"TEXTO EM CAIXA ALTA"}, c.Headings)
	})
}

func TestNewTextContent(t *testing.T) {
	t.Parallel()

	t.Run("uses placeholder title", func(t *testing.T) {
		t.Parallel()

		c := forgeads.NewTextContent("conteúdo")

		assert.Equal(t, forgeads.PlainTextTitle, c.Title)
		assert.Equal(t, "conteúdo", c.FullText)
	})

	t.Run("is sufficient only above 200 characters", func(t *testing.T) {
		t.Parallel()

		assert.False(t, forgeads.NewTextContent(strings.Repeat("a", 200)).IsSufficient())
		assert.True(t, forgeads.NewTextContent(strings.Repeat("a", 201)).IsSufficient())
	})

	t.Run("keeps surrounding whitespace in full text", func(t *testing.T) {
		t.Parallel()

		text := "\n\n" + strings.Repeat("a", 199) + "\n"
		c := forgeads.NewTextContent(text)

		assert.Equal(t, text, c.FullText)
		assert.True(t, c.IsSufficient())
	})

	t.Run("caps full text", func(t *testing.T) {
		t.Parallel()

		c := forgeads.NewTextContent(strings.Repeat("a", 9000))

		assert.Equal(t, forgeads.MaxFullTextLength, utf8.RuneCountInString(c.FullText))
	})
}
