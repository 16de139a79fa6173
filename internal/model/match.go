package model

import "fmt"

// Merger reconciles two matches sharing a key. The incumbent is the match
// already stored for the key, the challenger is the newly produced one.
type Merger func(incumbent, challenger Match) Match

// Match is one extracted fact
type Match struct {
	Value     any       `json:"value"`
	Key       string    `json:"key"`
	Attribute Attribute `json:"attribute"` // Snapshot of the producing attribute (value/key only)
	Merger    Merger    `json:"-"`
}

func (m Match) String() string {
	return fmt.Sprintf("<Match %s=%v>", m.Key, m.Value)
}

// Number returns the numeric view of a match value
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
