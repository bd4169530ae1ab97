package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPriceRange(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  *float64
		max  *float64
	}{
		{"between", "show me chairs between $10 and $50", f(10), f(50)},
		{"from-to", "something from 100 to 200", f(100), f(200)},
		{"between reversed bounds", "between $50 and $10", f(10), f(50)},
		{"under", "lamps under $20", nil, f(20)},
		{"below", "anything below 35", nil, f(35)},
		{"less than", "tables less than $300", nil, f(300)},
		{"over", "speakers over $50", f(50), nil},
		{"at least", "at least 25 dollars", f(25), nil},
		{"around", "a lamp around $100", f(80), f(120)},
		{"approximately", "approximately 50", f(40), f(60)},
		{"exactly", "exactly $50", f(47.5), f(52.5)},
		{"bare dollar amount", "a chair for $100", f(95), f(105)},
		{"no price", "show me some chairs", nil, nil},
		{"empty", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectPriceRange(tt.text)
			if tt.min == nil && tt.max == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			if tt.min == nil {
				assert.Nil(t, got.Min)
			} else {
				require.NotNil(t, got.Min)
				assert.InDelta(t, *tt.min, *got.Min, 0.001)
			}
			if tt.max == nil {
				assert.Nil(t, got.Max)
			} else {
				require.NotNil(t, got.Max)
				assert.InDelta(t, *tt.max, *got.Max, 0.001)
			}
		})
	}
}

func TestDetectPriceRangePrecedence(t *testing.T) {
	// A range phrasing wins over "under" even when both could match.
	got := DetectPriceRange("between $10 and $50 but under $30")
	require.NotNil(t, got)
	require.NotNil(t, got.Min)
	require.NotNil(t, got.Max)
	assert.InDelta(t, 10, *got.Min, 0.001)
	assert.InDelta(t, 50, *got.Max, 0.001)

	// "under" wins over "around".
	got = DetectPriceRange("under $20, around $100")
	require.NotNil(t, got)
	assert.Nil(t, got.Min)
	require.NotNil(t, got.Max)
	assert.InDelta(t, 20, *got.Max, 0.001)
}

func TestStripPricePhrases(t *testing.T) {
	stripped := StripPricePhrases("chairs under $100 please")
	assert.NotContains(t, stripped, "100")
	assert.Contains(t, stripped, "chairs")
}

func f(v float64) *float64 { return &v }
