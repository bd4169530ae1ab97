package nlp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

func TestExtractProductKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"strips stop words and price", "I want to buy a cheap oak chair under $100", []string{"oak", "chair"}},
		{"dedupes preserving order", "chair chair table chair", []string{"chair", "table"}},
		{"drops short tokens", "a TV on my desk", []string{"desk"}},
		{"empty input", "", []string{}},
		{"only stop words", "show me something", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractProductKeywords(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractProductKeywordsIdempotent(t *testing.T) {
	inputs := []string{
		"I'm looking for a walnut coffee table under $250",
		"compare the oak chair and the brass lamp",
		"wireless headphones around $150",
	}
	for _, in := range inputs {
		first := ExtractProductKeywords(in)
		second := ExtractProductKeywords(strings.Join(first, " "))
		assert.Equal(t, first, second, "re-extraction changed keywords for %q", in)
	}
}

func TestDetectConfirmation(t *testing.T) {
	tests := []struct {
		text string
		want Confirmation
	}{
		{"yes", ConfirmYes},
		{"  Yes!  ", ConfirmYes},
		{"sure", ConfirmYes},
		{"go ahead", ConfirmYes},
		{"no", ConfirmNo},
		{"no thanks", ConfirmNo},
		{"Not now.", ConfirmNo},
		{"maybe", ConfirmNone},
		{"yes i would like the blue one", ConfirmNone},
		{"", ConfirmNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectConfirmation(tt.text), "text=%q", tt.text)
	}
}

func TestConfirmationWhitelistsDisjoint(t *testing.T) {
	for phrase := range affirmatives {
		_, overlap := negatives[phrase]
		assert.False(t, overlap, "%q is in both whitelists", phrase)
	}
}

func TestIsNonsense(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"aaaaa", true},
		{"helloooooo", true},
		{"xkcdqrtz", true},
		{"hi", true},
		{"12345", true},
		{"$42", true},
		{"oak chair", false},
		{"rhythm", false}, // no vowel but only six chars
		{"tell me about shipping", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNonsense(tt.text), "text=%q", tt.text)
	}
}

func TestIsVagueProductRequest(t *testing.T) {
	assert.True(t, IsVagueProductRequest("show me products"))
	assert.True(t, IsVagueProductRequest("  What do you sell?  "))
	assert.True(t, IsVagueProductRequest("Recommend something!"))
	// Substrings are not enough; the whole string must be generic.
	assert.False(t, IsVagueProductRequest("show me products for my office"))
	assert.False(t, IsVagueProductRequest("what do you sell in lighting"))
}

func TestDetectComparison(t *testing.T) {
	cmp := DetectComparison("compare the Oak Chair and the Brass Lamp")
	require.NotNil(t, cmp)
	assert.Equal(t, "Oak Chair", cmp.Left)
	assert.Equal(t, "Brass Lamp", cmp.Right)

	cmp = DetectComparison("Oak Chair vs Brass Lamp")
	require.NotNil(t, cmp)
	assert.Equal(t, "Oak Chair", cmp.Left)
	assert.Equal(t, "Brass Lamp", cmp.Right)

	cmp = DetectComparison("which is better, the desk lamp or the floor lamp?")
	require.NotNil(t, cmp)
	assert.Equal(t, "desk lamp", cmp.Left)
	assert.Equal(t, "floor lamp", cmp.Right)

	// Trigger without structure, and structure without trigger.
	assert.Nil(t, DetectComparison("just compare prices"))
	assert.Nil(t, DetectComparison("chairs and tables"))
	assert.Nil(t, DetectComparison("hello there"))
}

func TestDetectAction(t *testing.T) {
	act := DetectAction("buy the oak chair")
	require.NotNil(t, act)
	assert.Equal(t, model.ActionBuy, act.Action)
	assert.Equal(t, "oak chair", act.Target)
	assert.False(t, act.Vague)

	act = DetectAction("I want to buy it")
	require.NotNil(t, act)
	assert.Equal(t, model.ActionBuy, act.Action)
	assert.True(t, act.Vague)
	assert.Empty(t, act.Target)

	act = DetectAction("buy")
	require.NotNil(t, act)
	assert.True(t, act.Vague)

	act = DetectAction("add the brass lamp to my cart")
	require.NotNil(t, act)
	assert.Equal(t, model.ActionCart, act.Action)
	assert.Equal(t, "brass lamp", act.Target)

	act = DetectAction("see details for the walnut coffee table")
	require.NotNil(t, act)
	assert.Equal(t, model.ActionView, act.Action)
	assert.Equal(t, "walnut coffee table", act.Target)

	assert.Nil(t, DetectAction("show me chairs"))
	assert.Nil(t, DetectAction("what is your return policy"))
}
