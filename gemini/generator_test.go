package gemini_test

import (
	"context"
	"testing"

	"github.com/forgeads/forgeads"
	"github.com/forgeads/forgeads/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

var profileSchema = &forgeads.Schema{
	Name: "product_analysis",
	Fields: []forgeads.SchemaField{
		{Name: "productName", Description: "Nome do produto"},
		{Name: "mainBenefit", Description: "Benefício principal"},
	},
}

func TestTextGenerator_Generate_ReturnsErrorWithoutUserMessage(t *testing.T) {
	t.Parallel()

	g := gemini.NewTextGenerator(nil) // nil client ok for this test

	_, err := g.Generate(context.Background(), &forgeads.GenerateRequest{
		Messages: []forgeads.Message{{Role: forgeads.RoleSystem, Content: "system only"}},
	})

	require.Error(t, err)
	assert.Equal(t, forgeads.EINVALID, forgeads.ErrorCode(err))
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("uses system messages as system instruction", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(&forgeads.GenerateRequest{
			Messages: []forgeads.Message{
				{Role: forgeads.RoleSystem, Content: "Você é um copywriter."},
				{Role: forgeads.RoleUser, Content: "Escreva."},
			},
		}, 0.7)

		require.NotNil(t, config.SystemInstruction)
		require.Len(t, config.SystemInstruction.Parts, 1)
		assert.Equal(t, "Você é um copywriter.", config.SystemInstruction.Parts[0].Text)
	})

	t.Run("sets temperature", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(&forgeads.GenerateRequest{}, 0.3)

		require.NotNil(t, config.Temperature)
		assert.InDelta(t, 0.3, *config.Temperature, 0.001)
		assert.Nil(t, config.SystemInstruction)
	})

	t.Run("free text mode sets no schema", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(&forgeads.GenerateRequest{}, 0.7)

		assert.Empty(t, config.ResponseMIMEType)
		assert.Nil(t, config.ResponseSchema)
	})

	t.Run("structured mode requests JSON with schema", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(&forgeads.GenerateRequest{Schema: profileSchema}, 0.7)

		assert.Equal(t, "application/json", config.ResponseMIMEType)
		require.NotNil(t, config.ResponseSchema)
		assert.Equal(t, genai.TypeObject, config.ResponseSchema.Type)
	})
}

func TestBuildContents(t *testing.T) {
	t.Parallel()

	contents := gemini.BuildContents(&forgeads.GenerateRequest{
		Messages: []forgeads.Message{
			{Role: forgeads.RoleSystem, Content: "system"},
			{Role: forgeads.RoleUser, Content: "pergunta"},
			{Role: forgeads.RoleAssistant, Content: "resposta"},
		},
	})

	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "pergunta", contents[0].Parts[0].Text)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "resposta", contents[1].Parts[0].Text)
}

func TestBuildSchema(t *testing.T) {
	t.Parallel()

	schema := gemini.BuildSchema(profileSchema)

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"productName", "mainBenefit"}, schema.Required)
	assert.Equal(t, []string{"productName", "mainBenefit"}, schema.PropertyOrdering)
	require.Contains(t, schema.Properties, "productName")
	assert.Equal(t, genai.TypeString, schema.Properties["productName"].Type)
	assert.Equal(t, "Nome do produto", schema.Properties["productName"].Description)
}
