package extract

import "github.com/ppiankov/attrparse/internal/model"

// Resolve folds matches, in order, into one surviving match per key.
// A later match with a merger is resolved as merger(stored, later);
// a later match without one replaces the stored match.
func Resolve(matches []model.Match) map[string]model.Match {
	resolved := make(map[string]model.Match)
	for _, m := range matches {
		existing, ok := resolved[m.Key]
		if !ok {
			resolved[m.Key] = m
			continue
		}
		if m.Merger != nil {
			resolved[m.Key] = m.Merger(existing, m)
			continue
		}
		resolved[m.Key] = m
	}
	return resolved
}

// Project drops provenance and returns key -> value
func Project(resolved map[string]model.Match) map[string]any {
	out := make(map[string]any, len(resolved))
	for key, m := range resolved {
		out[key] = m.Value
	}
	return out
}
