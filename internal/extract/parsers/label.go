package parsers

import (
	"iter"
	"regexp"
	"strings"

	"github.com/ppiankov/attrparse/internal/extract"
)

// labelRegex matches "Label: value" where the label starts with a letter
var labelRegex = regexp.MustCompile(`^\s*(\p{L}[^:]{0,59}?)\s*:\s*(\S.*?)\s*$`)

// LabelParser splits keyless "Label: value" text into a keyed attribute
// and routes it back through all parsers
type LabelParser struct {
	BaseParser
}

// NewLabelParser creates a label splitting parser
func NewLabelParser() *LabelParser {
	return &LabelParser{}
}

// Name returns the parser name
func (p *LabelParser) Name() string {
	return "label"
}

// TestAttribute accepts keyless attributes shaped "Label: value".
// Requeued attributes carry a key, so they are never split again.
func (p *LabelParser) TestAttribute(c *extract.Context) bool {
	return !c.HasKey() && labelRegex.MatchString(c.Value)
}

// Parse requeues the labelled value
func (p *LabelParser) Parse(c *extract.Context) iter.Seq[extract.Output] {
	return func(yield func(extract.Output) bool) {
		m := labelRegex.FindStringSubmatch(c.Value)
		if m == nil {
			return
		}
		yield(extract.Requeue(c.Derive(strings.TrimSpace(m[1]), m[2])))
	}
}
