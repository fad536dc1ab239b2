package detect

import (
	"path/filepath"
	"regexp"
	"strings"

	"fridge-chef/internal/core/ingredient"
)

// sampleHints maps substrings of well-known demo filenames to a canned
// ingredient list, so the flow stays useful without a detector. Ordered so
// a name matching several keys resolves the same way every time.
var sampleHints = []struct {
	key   string
	items []string
}{
	{"fridgepicture", []string{"milk", "egg", "cheese", "tomato", "lettuce"}},
	{"sample1", []string{"egg", "milk", "butter"}},
	{"sample2", []string{"tomato", "pasta", "garlic", "olive oil"}},
	{"sample3", []string{"bread", "cheese", "butter"}},
}

// wordToIngredient maps single words found in a filename to an ingredient.
var wordToIngredient = map[string]string{
	"milk":     "milk",
	"egg":      "egg",
	"eggs":     "egg",
	"cheese":   "cheese",
	"butter":   "butter",
	"tomato":   "tomato",
	"tomatoes": "tomato",
	"lettuce":  "lettuce",
	"cucumber": "cucumber",
	"bread":    "bread",
	"pasta":    "pasta",
	"garlic":   "garlic",
	"oil":      "olive oil",
	"olive":    "olive oil",
	"banana":   "banana",
	"yogurt":   "yogurt",
	"rice":     "rice",
	"carrot":   "carrot",
	"peas":     "peas",
}

var nonWord = regexp.MustCompile(`[^\w]+`)

// GuessFromFilename extracts ingredient hints from an uploaded file's name.
// A sample-hint key found in the base name wins outright; otherwise each
// word of the name is looked up individually. The result is normalized and
// deduplicated, and empty when nothing matches.
func GuessFromFilename(filename string) []string {
	if filename == "" {
		return nil
	}

	base := strings.ToLower(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	for _, hint := range sampleHints {
		if strings.Contains(base, hint.key) {
			return ingredient.Dedupe(hint.items)
		}
	}

	var hits []string
	for _, w := range nonWord.Split(base, -1) {
		if w == "" {
			continue
		}
		if ing, ok := wordToIngredient[w]; ok {
			hits = append(hits, ing)
		}
	}
	return ingredient.Dedupe(hits)
}
