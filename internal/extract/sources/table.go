package sources

import (
	"github.com/ppiankov/attrparse/internal/model"
	"golang.org/x/net/html"
)

// TableSource reads two-cell table rows as label/value pairs
type TableSource struct {
	BaseSource
}

// NewTableSource creates a table source
func NewTableSource() *TableSource {
	return &TableSource{}
}

// Name returns the source name
func (s *TableSource) Name() string {
	return "table"
}

// CanHandle checks for at least one label/value row
func (s *TableSource) CanHandle(doc *html.Node, url string) bool {
	return s.FindFirst(doc, func(n *html.Node) bool {
		_, _, ok := s.rowCells(n)
		return ok
	}) != nil
}

// ExtractAttributes reads every label/value row
func (s *TableSource) ExtractAttributes(doc *html.Node, url string) ([]model.Attribute, error) {
	var attrs []model.Attribute

	for _, tr := range s.FindAll(doc, func(n *html.Node) bool { return s.IsElement(n, "tr") }) {
		label, cell, ok := s.rowCells(tr)
		if !ok {
			continue
		}
		value := s.ExtractText(cell)
		if value == "" {
			continue
		}
		attrs = append(attrs, model.Attribute{
			Key:   s.ExtractText(label),
			Value: value,
			HTML:  s.RenderHTML(cell),
		}.Decoded())
	}

	return attrs, nil
}

// rowCells returns the label and value cells of a two-cell row
func (s *TableSource) rowCells(n *html.Node) (*html.Node, *html.Node, bool) {
	if !s.IsElement(n, "tr") {
		return nil, nil, false
	}
	cells := elementChildren(n)
	if len(cells) != 2 {
		return nil, nil, false
	}
	if !s.IsElement(cells[0], "th", "td") || !s.IsElement(cells[1], "td") {
		return nil, nil, false
	}
	return cells[0], cells[1], true
}
