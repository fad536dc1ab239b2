package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string returns empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace-only string returns empty",
			input: "   ",
			want:  "",
		},
		{
			name:  "lowercases and trims",
			input: "  Olive Oil  ",
			want:  "olive oil",
		},
		{
			name:  "underscores become spaces",
			input: "olive_oil",
			want:  "olive oil",
		},
		{
			name:  "hyphens become spaces",
			input: "Olive-Oil",
			want:  "olive oil",
		},
		{
			name:  "concatenated synonym resolves",
			input: "oliveoil",
			want:  "olive oil",
		},
		{
			name:  "ies plural collapses to y",
			input: "berries",
			want:  "berry",
		},
		{
			name:  "oes plural drops es",
			input: "tomatoes",
			want:  "tomato",
		},
		{
			name:  "es plural drops es",
			input: "boxes",
			want:  "box",
		},
		{
			name:  "trailing s drops",
			input: "carrots",
			want:  "carrot",
		},
		{
			name:  "single s is left alone",
			input: "s",
			want:  "s",
		},
		{
			name:  "short word is never truncated empty",
			input: "es",
			want:  "e",
		},
		{
			name:  "synonym before singularization",
			input: "bell pepper",
			want:  "pepper",
		},
		{
			name:  "synonym after singularization",
			input: "peppers",
			want:  "pepper",
		},
		{
			name:  "buttermilk maps to milk",
			input: "buttermilk",
			want:  "milk",
		},
		{
			name:  "yoghurt maps to yogurt",
			input: "yoghurt",
			want:  "yogurt",
		},
		{
			name:  "eggs maps to egg",
			input: "eggs",
			want:  "egg",
		},
		{
			name:  "misspelled tomatos maps to tomato",
			input: "tomatos",
			want:  "tomato",
		},
		{
			name:  "already canonical is unchanged",
			input: "tomato",
			want:  "tomato",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Normalize(tc.input)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", "Olive-Oil", "olive_oil", "OLIVE OIL", "tomatoes", "berries",
		"buttermilk", "yoghurt", "eggs", "bell pepper", "strawberries",
		"soy sauce", "curry powder", "s", "peas",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestNormalizeCaseAndSeparatorInvariance(t *testing.T) {
	t.Parallel()

	variants := []string{"Olive-Oil", "olive_oil", "OLIVE OIL", " olive oil "}
	for _, v := range variants {
		assert.Equal(t, "olive oil", Normalize(v))
	}
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "preserves first-occurrence order",
			input: []string{"Milk", "eggs", "EGG", "tomatoes", "milk"},
			want:  []string{"milk", "egg", "tomato"},
		},
		{
			name:  "drops empty results",
			input: []string{"", "  ", "cheese"},
			want:  []string{"cheese"},
		},
		{
			name:  "plural and singular collapse to one entry",
			input: []string{"berries", "berry"},
			want:  []string{"berry"},
		},
		{
			name:  "nil input yields empty slice",
			input: nil,
			want:  []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Dedupe(tc.input))
		})
	}
}

func TestSet(t *testing.T) {
	t.Parallel()

	set := Set([]string{"Eggs", "milk", "", "tomatoes"})
	assert.Len(t, set, 3)
	assert.Contains(t, set, "egg")
	assert.Contains(t, set, "milk")
	assert.Contains(t, set, "tomato")
}

// Every synonym target must itself be canonical, or matching would depend on
// which lookup pass resolved a token.
func TestSynonymTargetsAreCanonical(t *testing.T) {
	t.Parallel()

	for key, target := range synonyms {
		assert.Equal(t, target, Normalize(target), "synonym target for %q is not canonical", key)
	}
}
