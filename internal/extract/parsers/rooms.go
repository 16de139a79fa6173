package parsers

import (
	"iter"
	"regexp"
	"strconv"

	"github.com/ppiankov/attrparse/internal/extract"
)

// roomKind maps a keyword pattern to the match key it produces
type roomKind struct {
	key     string
	pattern *regexp.Regexp
}

// RoomParser extracts room counts ("3 kamers", "2 slaapkamers")
type RoomParser struct {
	BaseParser
	kinds []roomKind
}

// NewRoomParser creates a room count parser
func NewRoomParser() *RoomParser {
	return &RoomParser{
		// Most specific first: "slaapkamer" also contains "kamer".
		kinds: []roomKind{
			{"slaapkamer", regexp.MustCompile(`(?i)slaap`)},
			{"badkamer", regexp.MustCompile(`(?i)bad`)},
			{"wc", regexp.MustCompile(`(?i)(wc|toilet)`)},
			{"kamer", regexp.MustCompile(`(?i)kamer`)},
		},
	}
}

// Name returns the parser name
func (p *RoomParser) Name() string {
	return "rooms"
}

// TestAttribute checks for "kamer" in the value or the key
func (p *RoomParser) TestAttribute(c *extract.Context) bool {
	return p.KeyOrValueContains(c, "kamer")
}

// Parse yields one match per number followed by a room keyword, or per
// number in an attribute whose key names the room kind
func (p *RoomParser) Parse(c *extract.Context) iter.Seq[extract.Output] {
	return func(yield func(extract.Output) bool) {
		window := extract.Window{Distance: 1, After: true}

		for i, token := range c.Tokens {
			if !p.IsDigits(token) {
				continue
			}
			count, err := strconv.Atoi(token)
			if err != nil {
				continue
			}

			for _, kind := range p.kinds {
				term := extract.Pattern(kind.pattern)
				if !extract.TermsInTokens(c.Tokens, i, window, term) && !extract.TermsInText(c.Key, term) {
					continue
				}
				if !yield(extract.Emit(c.CreateMatch(count, kind.key, ReturnHighest))) {
					return
				}
				break
			}
		}
	}
}
