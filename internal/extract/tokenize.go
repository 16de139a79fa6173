package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Tokenizer splits an attribute value into tokens
type Tokenizer func(text string) []string

// WhitespaceTokenizer splits on runs of whitespace
func WhitespaceTokenizer(text string) []string {
	return strings.Fields(text)
}

// wordRegex keeps numbers with inner separators ("2.250,00") together,
// detaches currency symbols and punctuation, and splits "75m2" into "75" "m2".
var wordRegex = regexp.MustCompile(`\p{Sc}|\d+(?:[.,]\d+)*|[\p{L}\p{N}_]+(?:['-][\p{L}\p{N}_]+)*|\S`)

// WordTokenizer splits text into words, numbers and single punctuation marks
func WordTokenizer(text string) []string {
	return wordRegex.FindAllString(text, -1)
}

// TokenizerByName returns a tokenizer for a config name
func TokenizerByName(name string) (Tokenizer, error) {
	switch strings.ToLower(name) {
	case "", "whitespace":
		return WhitespaceTokenizer, nil
	case "word":
		return WordTokenizer, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q (want whitespace or word)", name)
	}
}
