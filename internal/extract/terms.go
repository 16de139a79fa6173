package extract

import (
	"iter"
	"regexp"
	"strings"
)

// Term is a literal substring or a regular expression anchored at the
// start of the text it is tested against.
type Term struct {
	literal string
	pattern *regexp.Regexp
}

// Literal creates a term matching s anywhere in the text
func Literal(s string) Term {
	return Term{literal: s}
}

// Pattern creates a term matching re at the start of the text
func Pattern(re *regexp.Regexp) Term {
	return Term{pattern: re}
}

// Literals creates one literal term per string
func Literals(ss ...string) []Term {
	terms := make([]Term, len(ss))
	for i, s := range ss {
		terms[i] = Literal(s)
	}
	return terms
}

// Matches reports whether the term matches text. An empty literal, which
// includes the zero Term, matches nothing.
func (t Term) Matches(text string) bool {
	if t.pattern == nil {
		return t.literal != "" && strings.Contains(text, t.literal)
	}
	loc := t.pattern.FindStringIndex(text)
	return loc != nil && loc[0] == 0
}

func (t Term) String() string {
	if t.pattern != nil {
		return t.pattern.String()
	}
	return t.literal
}

// TermsInText reports whether any of the terms matches text
func TermsInText(text string, terms ...Term) bool {
	for _, term := range terms {
		if term.Matches(text) {
			return true
		}
	}
	return false
}

// Window describes the neighborhood searched around a token index
type Window struct {
	Distance int  // Number of rounds, each round takes at most one token per side
	Before   bool // Include tokens before the index
	After    bool // Include tokens after the index
}

// DefaultWindow is the nearest neighbor on both sides
var DefaultWindow = Window{Distance: 1, Before: true, After: true}

// TokensNear yields the tokens around index, alternating outward: the
// nearest token before, the nearest after, the next before, and so on for
// Distance rounds. A side that runs out is skipped.
func TokensNear(tokens []string, index int, w Window) iter.Seq[string] {
	return func(yield func(string) bool) {
		if index < 0 || index >= len(tokens) {
			return
		}
		before := index - 1
		after := index + 1

		for range w.Distance {
			if w.Before && before >= 0 {
				if !yield(tokens[before]) {
					return
				}
				before--
			}
			if w.After && after < len(tokens) {
				if !yield(tokens[after]) {
					return
				}
				after++
			}
			if before < 0 && after >= len(tokens) {
				return
			}
		}
	}
}

// TermsInTokens reports whether any term matches a token in the
// neighborhood of index
func TermsInTokens(tokens []string, index int, w Window, terms ...Term) bool {
	for token := range TokensNear(tokens, index, w) {
		if TermsInText(token, terms...) {
			return true
		}
	}
	return false
}
