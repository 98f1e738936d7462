package forgeads_test

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/forgeads/forgeads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSufficient(t *testing.T) {
	t.Parallel()

	t.Run("requires title longer than five characters", func(t *testing.T) {
		t.Parallel()

		c := forgeads.NewExtractedContent(forgeads.ExtractedContent{
			Title:    "Curso",
			FullText: strings.Repeat("a", 400),
		})

		assert.False(t, c.IsSufficient())
	})

	t.Run("accepts long body", func(t *testing.T) {
		t.Parallel()

		c := forgeads.NewExtractedContent(forgeads.ExtractedContent{
			Title:    "Curso de Marketing",
			FullText: strings.Repeat("a", 301),
		})

		assert.True(t, c.IsSufficient())
	})

	t.Run("accepts two headings with short body", func(t *testing.T) {
		t.Parallel()

		c := forgeads.NewExtractedContent(forgeads.ExtractedContent{
			Title:    "Curso de Marketing",
			FullText: "curto",
			Headings: []string{"Módulo 1", "Módulo 2"},
		})

		assert.True(t, c.IsSufficient())
	})

	t.Run("rejects short body and fewer than two headings regardless of title", func(t *testing.T) {
		t.Parallel()

		c := forgeads.NewExtractedContent(forgeads.ExtractedContent{
			Title:    "Um título muito longo e descritivo",
			FullText: strings.Repeat("a", 300),
			Headings: []string{"Único"},
		})

		assert.False(t, c.IsSufficient())
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		// Six two-byte characters.
		c := forgeads.NewExtractedContent(forgeads.ExtractedContent{
			Title:    "çãéíóú",
			Headings: []string{"a", "b"},
		})
		assert.True(t, c.IsSufficient())

		c = forgeads.NewExtractedContent(forgeads.ExtractedContent{
			Title:    "çãéíó",
			Headings: []string{"a", "b"},
		})
		assert.False(t, c.IsSufficient())
	})

	t.Run("applies length rule to document content", func(t *testing.T) {
		t.Parallel()

		short := forgeads.NewDocumentContent(forgeads.ExtractedContent{FullText: strings.Repeat("a", 149)}, 150)
		long := forgeads.NewDocumentContent(forgeads.ExtractedContent{FullText: strings.Repeat("a", 150)}, 150)

		assert.False(t, short.IsSufficient())
		assert.True(t, long.IsSufficient())
	})

	t.Run("nil content is insufficient", func(t *testing.T) {
		t.Parallel()

		assert.False(t, forgeads.IsSufficient(nil))
	})

	t.Run("method and function agree", func(t *testing.T) {
		t.Parallel()

		c := forgeads.NewExtractedContent(forgeads.ExtractedContent{Title: "Curso de Marketing", Headings: []string{"a", "b"}})

		assert.Equal(t, forgeads.IsSufficient(c), c.IsSufficient())
	})
}

func TestExtractedContent_MarshalJSON(t *testing.T) {
	t.Parallel()

	c := forgeads.NewExtractedContent(forgeads.ExtractedContent{
		Title:    "Curso de Marketing",
		Headings: []string{"Módulo 1", "Módulo 2"},
	})

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Curso de Marketing", decoded["title"])
	assert.Equal(t, true, decoded["isSufficient"])
}

func TestFindPrices(t *testing.T) {
	t.Parallel()

	t.Run("matches Brazilian currency tokens", func(t *testing.T) {
		t.Parallel()

		prices := forgeads.FindPrices("De R$ 1.997,00 por apenas R$497,00 ou 12x de R$49")

		assert.Equal(t, []string{"R$ 1.997,00", "R$497,00", "R$49"}, prices)
	})

	t.Run("deduplicates repeated tokens", func(t *testing.T) {
		t.Parallel()

		prices := forgeads.FindPrices("R$ 97,00 hoje. Só R$ 97,00! Garanta por R$ 97,00")

		assert.Equal(t, []string{"R$ 97,00"}, prices)
	})

	t.Run("ignores other currencies", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, forgeads.FindPrices("US$ 20 or €30"))
	})
}

func TestIsCallToAction(t *testing.T) {
	t.Parallel()

	assert.True(t, forgeads.IsCallToAction("Quero me inscrever"))
	assert.True(t, forgeads.IsCallToAction("GARANTIR MINHA VAGA"))
	assert.True(t, forgeads.IsCallToAction("Comprar agora"))
	assert.False(t, forgeads.IsCallToAction("Saiba mais"))
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", forgeads.CleanText("  a \n\t b  c  "))
	assert.Empty(t, forgeads.CleanText(" \n "))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	t.Run("keeps short strings", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "abc", forgeads.Truncate("abc", 5))
	})

	t.Run("cuts at character boundary", func(t *testing.T) {
		t.Parallel()

		got := forgeads.Truncate("ação rápida", 3)

		assert.Equal(t, "açã", got)
		assert.True(t, utf8.ValidString(got))
	})

	t.Run("returns empty for non-positive limit", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, forgeads.Truncate("abc", 0))
	})
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"b", "a", "c"}, forgeads.Dedupe([]string{"b", "a", "b", "c", "a"}))
	assert.Empty(t, forgeads.Dedupe(nil))
}

func TestAnalysisText(t *testing.T) {
	t.Parallel()

	t.Run("renders every populated field", func(t *testing.T) {
		t.Parallel()

		c := forgeads.NewExtractedContent(forgeads.ExtractedContent{
			Title:       "Curso de Marketing",
			Description: "Aprenda marketing digital",
			Headings:    []string{"Módulo 1", "Módulo 2"},
			Bullets:     []string{"Aulas ao vivo"},
			Prices:      []string{"R$ 97,00"},
			CTAs:        []string{"Quero comprar"},
			FullText:    "Conteúdo completo",
		})

		text := forgeads.AnalysisText(c)

		assert.Contains(t, text, "Título: Curso de Marketing")
		assert.Contains(t, text, "Descrição: Aprenda marketing digital")
		assert.Contains(t, text, "Seções: Módulo 1 | Módulo 2")
		assert.Contains(t, text, "Benefícios: Aulas ao vivo")
		assert.Contains(t, text, "Preços: R$ 97,00")
		assert.Contains(t, text, "Chamadas para ação: Quero comprar")
		assert.Contains(t, text, "Conteúdo: Conteúdo completo")
	})

	t.Run("omits empty fields", func(t *testing.T) {
		t.Parallel()

		text := forgeads.AnalysisText(forgeads.NewExtractedContent(forgeads.ExtractedContent{FullText: "só texto"}))

		assert.Equal(t, "Conteúdo: só texto", text)
	})

	t.Run("empty content renders empty text", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, forgeads.AnalysisText(forgeads.NewExtractedContent(forgeads.ExtractedContent{})))
		assert.Empty(t, forgeads.AnalysisText(nil))
	})
}
