package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EmbedsContractTextVerbatim(t *testing.T) {
	text := "Payment due within 30 days.\nNo late fee specified.\n100% on acceptance."
	out := Build(text)

	assert.True(t, strings.HasSuffix(out, text))
	assert.Contains(t, out, "Contract text:\n\n"+text)
}

func TestBuild_ListsAllSevenCategories(t *testing.T) {
	out := Build("x")
	for _, cat := range []string{
		"Payment Terms",
		"Intellectual Property",
		"Scope of Work",
		"Termination",
		"Liability",
		"Non-Compete",
		"Confidentiality",
	} {
		assert.Contains(t, out, cat)
	}
}

func TestBuild_RequiresSingleJSONObject(t *testing.T) {
	out := Build("x")
	assert.Contains(t, out, "one JSON object only")
}

// The embedded example is what the model imitates; it has to parse.
func TestSchemaExample_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(schemaExample), &v))

	assert.Contains(t, v, "risks")
	assert.Contains(t, v, "overallScore")
	assert.Contains(t, v, "totalClauses")
	assert.Contains(t, v, "revisedSections")
}
