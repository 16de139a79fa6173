package parsers

import (
	"iter"

	"github.com/ppiankov/attrparse/internal/extract"
)

// MoneyParser extracts amounts from attributes mentioning one of its terms
type MoneyParser struct {
	BaseParser
	name     string
	terms    []string
	matchKey string
}

// NewRentParser creates a parser for monthly rent ("huur")
func NewRentParser() *MoneyParser {
	return &MoneyParser{
		name:     "rent",
		terms:    []string{"huur", "prijs"},
		matchKey: "huur",
	}
}

// NewDepositParser creates a parser for deposits ("borg")
func NewDepositParser() *MoneyParser {
	return &MoneyParser{
		name:     "deposit",
		terms:    []string{"borg"},
		matchKey: "borg",
	}
}

// Name returns the parser name
func (p *MoneyParser) Name() string {
	return p.name
}

// TestAttribute checks the value and the key for the parser's terms
func (p *MoneyParser) TestAttribute(c *extract.Context) bool {
	return p.KeyOrValueContains(c, p.terms...)
}

// Parse yields every token that reads as an amount. The value is split
// with the word tokenizer so "€2.650" yields "2.650".
func (p *MoneyParser) Parse(c *extract.Context) iter.Seq[extract.Output] {
	return func(yield func(extract.Output) bool) {
		for _, token := range extract.WordTokenizer(c.Value) {
			amount, ok := extract.MoneyRepr(token)
			if !ok {
				continue
			}
			if !yield(extract.Emit(c.CreateMatch(amount, p.matchKey, nil))) {
				return
			}
		}
	}
}
