package recipe

import (
	"sort"
	"strings"

	"fridge-chef/internal/core/ingredient"
)

// MatchResult partitions a recipe's requirements into the ones covered by
// the ingredient set and the ones missing, in catalog requirement order.
type MatchResult struct {
	Have    []string `json:"have"`
	Missing []string `json:"missing"`
}

// Coverage is the fraction of requirements covered, 0 for a recipe with no
// requirements.
func (r MatchResult) Coverage() float64 {
	total := len(r.Have) + len(r.Missing)
	if total == 0 {
		return 0
	}
	return float64(len(r.Have)) / float64(total)
}

// RankedEntry is one recipe in the ranked output.
type RankedEntry struct {
	Name     string      `json:"name"`
	Result   MatchResult `json:"result"`
	Coverage float64     `json:"coverage"`
}

// Match scores every catalog recipe against a set of canonical ingredients.
// Requirement strings are normalized here, so the catalog can keep plural
// human-readable forms. The function is pure; results map one entry per
// catalog recipe, including zero-coverage ones.
func Match(set map[string]struct{}, catalog *Catalog) map[string]MatchResult {
	results := make(map[string]MatchResult, catalog.Len())
	for _, r := range catalog.Recipes() {
		have := make([]string, 0, len(r.Requirements))
		missing := make([]string, 0, len(r.Requirements))
		for _, req := range r.Requirements {
			if _, ok := set[ingredient.Normalize(req)]; ok {
				have = append(have, req)
			} else {
				missing = append(missing, req)
			}
		}
		results[r.Name] = MatchResult{Have: have, Missing: missing}
	}
	return results
}

// Rank orders match results by coverage descending, then recipe name
// ascending case-insensitively, then catalog order. Recipes with nothing
// covered are excluded, so the ranked output never shows a 0% match.
func Rank(results map[string]MatchResult, catalog *Catalog) []RankedEntry {
	ranked := make([]RankedEntry, 0, len(results))
	for _, r := range catalog.Recipes() {
		res, ok := results[r.Name]
		if !ok || len(res.Have) == 0 {
			continue
		}
		ranked = append(ranked, RankedEntry{
			Name:     r.Name,
			Result:   res,
			Coverage: res.Coverage(),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Coverage != ranked[j].Coverage {
			return ranked[i].Coverage > ranked[j].Coverage
		}
		ni, nj := strings.ToLower(ranked[i].Name), strings.ToLower(ranked[j].Name)
		if ni != nj {
			return ni < nj
		}
		return catalog.position(ranked[i].Name) < catalog.position(ranked[j].Name)
	})

	return ranked
}
