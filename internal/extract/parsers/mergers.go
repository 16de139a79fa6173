package parsers

import (
	"strings"

	"github.com/ppiankov/attrparse/internal/model"
)

// ReturnHighest keeps the match with the larger numeric value. Ties and
// non-numeric values keep the incumbent.
func ReturnHighest(incumbent, challenger model.Match) model.Match {
	a, okA := model.Number(incumbent.Value)
	b, okB := model.Number(challenger.Value)
	if okA && okB && a < b {
		return challenger
	}
	return incumbent
}

// livingAreaKeywords rank source keys: an earlier keyword outweighs all
// later ones
var livingAreaKeywords = []string{"oppervlakte", "wonen", "woon"}

// MergeArea prefers the match whose source key reads most like living
// area ("Woonoppervlakte" over "Perceel oppervlakte"), then the larger value.
func MergeArea(incumbent, challenger model.Match) model.Match {
	switch compareFlags(keywordFlags(incumbent), keywordFlags(challenger)) {
	case 1:
		return incumbent
	case -1:
		return challenger
	}
	return ReturnHighest(incumbent, challenger)
}

// keywordFlags marks which living-area keywords occur in the source key.
// A match without a source key has no flags.
func keywordFlags(m model.Match) []bool {
	if m.Attribute.Key == "" {
		return nil
	}
	key := strings.ToLower(m.Attribute.Key)
	flags := make([]bool, len(livingAreaKeywords))
	for i, kw := range livingAreaKeywords {
		flags[i] = strings.Contains(key, kw)
	}
	return flags
}

// compareFlags orders flag lists lexicographically with false < true and a
// shorter prefix first
func compareFlags(a, b []bool) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		if a[i] {
			return 1
		}
		return -1
	}
	switch {
	case len(a) > len(b):
		return 1
	case len(a) < len(b):
		return -1
	}
	return 0
}
