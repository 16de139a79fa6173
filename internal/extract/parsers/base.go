package parsers

import (
	"strings"

	"github.com/ppiankov/attrparse/internal/extract"
)

// BaseParser provides helpers shared by the built-in parsers
type BaseParser struct{}

// ValueContains reports whether the lowercased value contains any term
func (b *BaseParser) ValueContains(c *extract.Context, terms ...string) bool {
	return extract.TermsInText(strings.ToLower(c.Value), extract.Literals(terms...)...)
}

// KeyContains reports whether the lowercased key contains any term.
// It is false for attributes without a key.
func (b *BaseParser) KeyContains(c *extract.Context, terms ...string) bool {
	if !c.HasKey() {
		return false
	}
	return extract.TermsInText(strings.ToLower(c.Key), extract.Literals(terms...)...)
}

// KeyOrValueContains reports whether the key or the value contains any term
func (b *BaseParser) KeyOrValueContains(c *extract.Context, terms ...string) bool {
	return b.ValueContains(c, terms...) || b.KeyContains(c, terms...)
}

// IsDigits reports whether token is made of ASCII digits only
func (b *BaseParser) IsDigits(token string) bool {
	if token == "" {
		return false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return false
		}
	}
	return true
}
