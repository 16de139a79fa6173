package parsers

import (
	"iter"
	"strconv"
	"strings"

	"github.com/ppiankov/attrparse/internal/extract"
	"golang.org/x/text/unicode/norm"
)

// AreaParser extracts floor area in square meters ("75 m2", "75m²")
type AreaParser struct {
	BaseParser
	keyTerms  []string
	unitTerms []extract.Term
}

// NewAreaParser creates a floor area parser
func NewAreaParser() *AreaParser {
	return &AreaParser{
		keyTerms:  []string{"oppervlakte", "wonen", "woon", "leef"},
		unitTerms: extract.Literals("m2", "m²"),
	}
}

// Name returns the parser name
func (p *AreaParser) Name() string {
	return "area"
}

// TestAttribute accepts values carrying a square meter unit, or keys that
// name an area
func (p *AreaParser) TestAttribute(c *extract.Context) bool {
	if extract.TermsInText(foldUnits(c.Value), p.unitTerms...) {
		return true
	}
	return p.KeyContains(c, p.keyTerms...)
}

// Parse yields each number followed by a square meter unit within two tokens
func (p *AreaParser) Parse(c *extract.Context) iter.Seq[extract.Output] {
	return func(yield func(extract.Output) bool) {
		tokens := areaTokens(c.Value)
		window := extract.Window{Distance: 2, After: true}

		for i, token := range tokens {
			if !p.IsDigits(token) {
				continue
			}
			if !extract.TermsInTokens(tokens, i, window, p.unitTerms...) {
				continue
			}
			area, err := strconv.Atoi(token)
			if err != nil {
				continue
			}
			if !yield(extract.Emit(c.CreateMatch(area, "oppervlakte", MergeArea))) {
				return
			}
		}
	}
}

// foldUnits lowercases text and applies NFKC so "m²" reads as "m2"
func foldUnits(text string) string {
	return strings.ToLower(norm.NFKC.String(text))
}

// areaTokens splits glued units off their number: "75m2" -> "75", "m2"
func areaTokens(text string) []string {
	return extract.WordTokenizer(foldUnits(text))
}
