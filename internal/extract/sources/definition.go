package sources

import (
	"github.com/ppiankov/attrparse/internal/model"
	"golang.org/x/net/html"
)

// DefinitionListSource reads <dt>label</dt><dd>value</dd> pairs, the
// layout most listing sites use for their feature lists
type DefinitionListSource struct {
	BaseSource
}

// NewDefinitionListSource creates a definition list source
func NewDefinitionListSource() *DefinitionListSource {
	return &DefinitionListSource{}
}

// Name returns the source name
func (s *DefinitionListSource) Name() string {
	return "definition-list"
}

// CanHandle checks for a <dl> containing a <dt>
func (s *DefinitionListSource) CanHandle(doc *html.Node, url string) bool {
	return s.FindFirst(doc, func(n *html.Node) bool {
		return s.IsElement(n, "dt") && s.IsElement(n.Parent, "dl", "div")
	}) != nil
}

// ExtractAttributes pairs every <dt> with the <dd> that follows it
func (s *DefinitionListSource) ExtractAttributes(doc *html.Node, url string) ([]model.Attribute, error) {
	var attrs []model.Attribute

	for _, dt := range s.FindAll(doc, func(n *html.Node) bool { return s.IsElement(n, "dt") }) {
		dd := dt.NextSibling
		for dd != nil && dd.Type != html.ElementNode {
			dd = dd.NextSibling
		}
		if !s.IsElement(dd, "dd") {
			continue
		}

		value := s.ExtractText(dd)
		if value == "" {
			continue
		}
		attrs = append(attrs, model.Attribute{
			Key:   s.ExtractText(dt),
			Value: value,
			HTML:  s.RenderHTML(dd),
		}.Decoded())
	}

	return attrs, nil
}
