package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstJSONObjectPlain(t *testing.T) {
	obj, ok := FirstJSONObject(`{"ph":{"min":6,"max":7.5}}`)
	require.True(t, ok)
	assert.JSONEq(t, `{"ph":{"min":6,"max":7.5}}`, obj)
}

func TestFirstJSONObjectWithFencesAndProse(t *testing.T) {
	raw := "Sure! Here are the targets:\n```json\n{\"temp\":{\"min\":18,\"max\":26}}\n```\nHope that helps."
	obj, ok := FirstJSONObject(raw)
	require.True(t, ok)
	assert.JSONEq(t, `{"temp":{"min":18,"max":26}}`, obj)
}

func TestFirstJSONObjectNestedBraces(t *testing.T) {
	raw := `prefix {"targets":{"ph":{"min":6,"max":7}}} trailing {"other":1}`
	obj, ok := FirstJSONObject(raw)
	require.True(t, ok)
	assert.JSONEq(t, `{"targets":{"ph":{"min":6,"max":7}}}`, obj)
}

func TestFirstJSONObjectBracesInsideStrings(t *testing.T) {
	raw := `{"note":"a } brace and \" quote","ph":{"min":6,"max":7}}`
	obj, ok := FirstJSONObject(raw)
	require.True(t, ok)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(obj), &m))
	assert.Equal(t, `a } brace and " quote`, m["note"])
}

func TestFirstJSONObjectStripsComments(t *testing.T) {
	raw := "{\n  \"ph\": {\"min\": 6, \"max\": 7}, // usual range\n  /* block */ \"ec\": {\"min\": 800, \"max\": 2200}\n}"
	obj, ok := FirstJSONObject(raw)
	require.True(t, ok)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(obj), &m))
	assert.Len(t, m, 2)
}

func TestFirstJSONObjectFixesLeadingDecimals(t *testing.T) {
	obj, ok := FirstJSONObject(`{"humic":{"min":.5,"max":-.25}}`)
	require.True(t, ok)

	var m map[string]map[string]float64
	require.NoError(t, json.Unmarshal([]byte(obj), &m))
	assert.InDelta(t, 0.5, m["humic"]["min"], 1e-9)
	assert.InDelta(t, -0.25, m["humic"]["max"], 1e-9)
}

func TestFirstJSONObjectNoObject(t *testing.T) {
	_, ok := FirstJSONObject("no json here")
	assert.False(t, ok)

	_, ok = FirstJSONObject("unbalanced { oops")
	assert.False(t, ok)
}
