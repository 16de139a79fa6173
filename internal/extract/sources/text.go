package sources

import (
	"strings"

	"github.com/ppiankov/attrparse/internal/model"
	"golang.org/x/net/html"
)

// blockTags hold one fact candidate each in the fallback source
var blockTags = []string{"li", "p", "h1", "h2", "h3", "h4", "h5", "h6", "td", "dd", "span"}

// TextSource is the fallback: every text block becomes a keyless attribute
type TextSource struct {
	BaseSource
}

// NewTextSource creates the fallback text source
func NewTextSource() *TextSource {
	return &TextSource{}
}

// Name returns the source name
func (s *TextSource) Name() string {
	return "text"
}

// CanHandle always returns true (fallback source)
func (s *TextSource) CanHandle(doc *html.Node, url string) bool {
	return true
}

// ExtractAttributes returns one keyless attribute per innermost text block
func (s *TextSource) ExtractAttributes(doc *html.Node, url string) ([]model.Attribute, error) {
	var attrs []model.Attribute
	seen := make(map[string]bool)

	blocks := s.FindAll(doc, func(n *html.Node) bool {
		return s.IsElement(n, blockTags...) && !s.hasBlockChild(n)
	})
	for _, block := range blocks {
		text := strings.Join(strings.Fields(s.ExtractText(block)), " ")
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		attrs = append(attrs, model.Attribute{
			Value: text,
			HTML:  s.RenderHTML(block),
		}.Decoded())
	}

	return attrs, nil
}

// hasBlockChild reports whether n contains another block element
func (s *TextSource) hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if s.IsElement(c, blockTags...) || s.hasBlockChild(c) {
			return true
		}
	}
	return false
}
