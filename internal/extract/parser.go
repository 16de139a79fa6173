package extract

import (
	"iter"

	"github.com/ppiankov/attrparse/internal/model"
	"golang.org/x/net/html"
)

// Parser defines the interface for domain-specific attribute parsers
type Parser interface {
	// Name returns the parser name
	Name() string

	// TestAttribute reports whether this parser should attempt extraction.
	// It must not have side effects and must accept attributes without a
	// key or tokens.
	TestAttribute(c *Context) bool

	// Parse extracts facts from the attribute. Every call returns a fresh
	// sequence; the engine drains it once.
	Parse(c *Context) iter.Seq[Output]
}

// Output is a single item produced by Parse: either a terminal Match or an
// Attribute that must be routed through all parsers again.
type Output struct {
	Match     *model.Match
	Attribute *model.Attribute
}

// Emit wraps a match as parser output
func Emit(m model.Match) Output {
	return Output{Match: &m}
}

// Requeue wraps a derived attribute as parser output
func Requeue(a model.Attribute) Output {
	return Output{Attribute: &a}
}

// Context is the parser-facing view of an attribute. Value and Key are
// HTML-unescaped once, when the view is built, unless the attribute is
// already decoded.
type Context struct {
	Value  string
	Key    string
	HTML   string
	Tokens []string
}

// NewContext builds the parser view of an attribute
func NewContext(a model.Attribute) *Context {
	if a.IsDecoded() {
		return &Context{Value: a.Value, Key: a.Key, HTML: a.HTML, Tokens: a.Tokens}
	}
	c := &Context{
		Value:  html.UnescapeString(a.Value),
		HTML:   a.HTML,
		Tokens: a.Tokens,
	}
	if a.Key != "" {
		c.Key = html.UnescapeString(a.Key)
	}
	return c
}

// HasKey reports whether the attribute carries a key
func (c *Context) HasKey() bool {
	return c.Key != ""
}

// CreateMatch builds a match bound to this attribute
func (c *Context) CreateMatch(value any, key string, merger model.Merger) model.Match {
	return model.Match{
		Value:     value,
		Key:       key,
		Attribute: model.Attribute{Value: c.Value, Key: c.Key},
		Merger:    merger,
	}
}

// Derive builds a follow-up attribute from text taken out of this view.
// The text is already unescaped, so the result is marked decoded. Tokens
// are left empty for the engine to fill.
func (c *Context) Derive(key, value string) model.Attribute {
	return model.Attribute{Value: value, Key: key}.Decoded()
}
