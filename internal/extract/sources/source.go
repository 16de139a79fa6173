package sources

import (
	"bytes"
	"strings"

	"github.com/ppiankov/attrparse/internal/model"
	"golang.org/x/net/html"
)

// Source defines the interface for reading attributes out of a listing page
type Source interface {
	// Name returns the source name
	Name() string

	// CanHandle checks if this source recognizes the page layout
	CanHandle(doc *html.Node, url string) bool

	// ExtractAttributes reads raw attributes from the HTML document
	ExtractAttributes(doc *html.Node, url string) ([]model.Attribute, error)
}

// Registry manages attribute sources
type Registry struct {
	sources  []Source
	fallback Source
}

// NewRegistry creates a new source registry
func NewRegistry() *Registry {
	registry := &Registry{
		sources: make([]Source, 0),
	}

	// Register built-in sources
	registry.Register(NewDefinitionListSource())
	registry.Register(NewTableSource())

	// Plain text blocks as fallback
	registry.fallback = NewTextSource()

	return registry
}

// Register registers a new source
func (r *Registry) Register(source Source) {
	r.sources = append(r.sources, source)
}

// FindSource finds the first source recognizing the page
func (r *Registry) FindSource(doc *html.Node, url string) Source {
	for _, source := range r.sources {
		if source.CanHandle(doc, url) {
			return source
		}
	}
	return r.fallback
}

// BaseSource provides common functionality for sources
type BaseSource struct{}

// ExtractText extracts visible text from a node, skipping scripts and styles
func (b *BaseSource) ExtractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "iframe":
			return ""
		}
	}

	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if text := b.ExtractText(c); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// RenderHTML renders a node back to markup
func (b *BaseSource) RenderHTML(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// IsElement checks if a node is an element with one of the given tags
func (b *BaseSource) IsElement(n *html.Node, tags ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, tag := range tags {
		if n.Data == tag {
			return true
		}
	}
	return false
}

// FindAll finds all nodes matching a predicate
func (b *BaseSource) FindAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return results
}

// FindFirst finds the first node matching a predicate
func (b *BaseSource) FindFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	walk(n)
	return result
}

// elementChildren returns the element children of n
func elementChildren(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}
