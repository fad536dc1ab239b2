package ingest

import (
	"strings"

	"fridge-chef/internal/core/ingredient"
)

// fallback is substituted when every source came up empty, so the flow
// never produces a blank result page.
var fallback = []string{"egg", "milk", "tomato", "olive oil"}

// Sources carries the raw ingredient tokens from every input channel, in
// the order they are merged: detector classes, filename guesses, manual
// text, pantry checkboxes.
type Sources struct {
	Detected []string
	Guessed  []string
	Manual   string
	Pantry   []string
}

// SplitManual breaks free-form manual input on commas and semicolons,
// trimming each part and dropping blanks.
func SplitManual(manual string) []string {
	if manual == "" {
		return nil
	}
	parts := strings.Split(strings.ReplaceAll(manual, ";", ","), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Merge assembles the working ingredient list from all sources and returns
// it normalized and deduplicated, first occurrence winning. Filename guesses
// only apply when detection yielded nothing. When everything is empty the
// demo fallback list is substituted — that policy lives here, upstream of
// the matching engine.
func Merge(src Sources) []string {
	var raws []string
	raws = append(raws, src.Detected...)
	if len(src.Detected) == 0 {
		raws = append(raws, src.Guessed...)
	}
	raws = append(raws, SplitManual(src.Manual)...)
	raws = append(raws, src.Pantry...)

	merged := ingredient.Dedupe(raws)
	if len(merged) == 0 {
		return ingredient.Dedupe(fallback)
	}
	return merged
}
