package ingredient

import (
	"strings"
)

// Normalize canonicalizes a raw ingredient token: lowercase, trim, unify
// underscore/hyphen separators to spaces, resolve synonyms and strip plural
// suffixes. It is total — any input maps to some string, possibly empty.
// Normalizing an already-canonical string returns it unchanged.
func Normalize(raw string) string {
	w := strings.ToLower(strings.TrimSpace(raw))
	if w == "" {
		return ""
	}

	w = strings.ReplaceAll(w, "_", " ")
	w = strings.ReplaceAll(w, "-", " ")

	// First synonym pass catches surface forms the suffix rules would
	// mangle ("bell pepper", "buttermilk") plus irregular plurals.
	if canonical, ok := synonyms[w]; ok {
		return canonical
	}

	// Second pass after singularization lets the table hold non-singular
	// keys without pre-singularizing every entry.
	s := singularize(w)
	if canonical, ok := synonyms[s]; ok {
		return canonical
	}
	return s
}

// singularize applies the fixed plural-stripping rules. First matching rule
// wins; length guards keep short words from truncating to nothing.
func singularize(w string) string {
	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 3:
		return w[:len(w)-3] + "y"
	case strings.HasSuffix(w, "oes") && len(w) > 3:
		return w[:len(w)-2]
	case strings.HasSuffix(w, "es") && len(w) > 2:
		return w[:len(w)-2]
	case strings.HasSuffix(w, "s") && len(w) > 1:
		return w[:len(w)-1]
	}
	return w
}

// Dedupe normalizes raw tokens into distinct canonical ingredients,
// preserving first-occurrence order and dropping empty results.
func Dedupe(raws []string) []string {
	seen := make(map[string]struct{}, len(raws))
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		n := Normalize(raw)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Set normalizes raw tokens into a membership set for matching.
func Set(raws []string) map[string]struct{} {
	set := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		if n := Normalize(raw); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
