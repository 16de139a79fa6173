package extract

import (
	"regexp"
	"slices"
	"testing"
)

func TestTokensNear_AlternatesOutward(t *testing.T) {
	tokens := []string{"x", "y", "TARGET", "z", "w"}

	got := slices.Collect(TokensNear(tokens, 2, Window{Distance: 1, Before: true, After: true}))
	if !slices.Equal(got, []string{"y", "z"}) {
		t.Errorf("distance 1: got %v, want [y z]", got)
	}

	got = slices.Collect(TokensNear(tokens, 2, Window{Distance: 2, Before: true, After: true}))
	if !slices.Equal(got, []string{"y", "z", "x", "w"}) {
		t.Errorf("distance 2: got %v, want [y z x w]", got)
	}
}

func TestTokensNear_OneSide(t *testing.T) {
	tokens := []string{"a", "b", "c", "d"}

	got := slices.Collect(TokensNear(tokens, 1, Window{Distance: 3, After: true}))
	if !slices.Equal(got, []string{"c", "d"}) {
		t.Errorf("after only: got %v, want [c d]", got)
	}

	got = slices.Collect(TokensNear(tokens, 2, Window{Distance: 3, Before: true}))
	if !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("before only: got %v, want [b a]", got)
	}
}

func TestTokensNear_Boundaries(t *testing.T) {
	tokens := []string{"a", "b", "c"}

	got := slices.Collect(TokensNear(tokens, 0, Window{Distance: 10, Before: true, After: true}))
	if !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("index 0: got %v, want [b c]", got)
	}

	got = slices.Collect(TokensNear(tokens, 2, Window{Distance: 10, Before: true, After: true}))
	if !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("last index: got %v, want [b a]", got)
	}

	if got := slices.Collect(TokensNear(tokens, 1, Window{Distance: 0, Before: true, After: true})); len(got) != 0 {
		t.Errorf("distance 0: got %v, want none", got)
	}
	if got := slices.Collect(TokensNear(tokens, 7, DefaultWindow)); len(got) != 0 {
		t.Errorf("index out of range: got %v, want none", got)
	}
	if got := slices.Collect(TokensNear(nil, 0, DefaultWindow)); len(got) != 0 {
		t.Errorf("no tokens: got %v, want none", got)
	}
}

func TestTokensNear_DoesNotMutate(t *testing.T) {
	tokens := []string{"a", "b", "c"}
	for range TokensNear(tokens, 1, Window{Distance: 2, Before: true, After: true}) {
	}
	if !slices.Equal(tokens, []string{"a", "b", "c"}) {
		t.Errorf("tokens mutated: %v", tokens)
	}
}

func TestTokensNear_StopsEarly(t *testing.T) {
	tokens := []string{"a", "b", "c", "d", "e"}
	var seen []string
	for tok := range TokensNear(tokens, 2, Window{Distance: 2, Before: true, After: true}) {
		seen = append(seen, tok)
		if tok == "d" {
			break
		}
	}
	if !slices.Equal(seen, []string{"b", "d"}) {
		t.Errorf("got %v, want [b d]", seen)
	}
}

func TestTermsInText(t *testing.T) {
	bad := regexp.MustCompile(`(?i)bad`)

	if !TermsInText("Slaapkamers", Literal("kamer")) {
		t.Error("literal substring should match")
	}
	if TermsInText("Slaapkamers", Literal("Kamer")) {
		t.Error("literal match is case sensitive")
	}
	if !TermsInText("Badkamer", Pattern(bad)) {
		t.Error("pattern at start should match")
	}
	if TermsInText("Extra badkamer", Pattern(bad)) {
		t.Error("pattern must match from the start of the text")
	}
	if !TermsInText("Extra badkamer", Literal("wc"), Pattern(bad), Literal("badk")) {
		t.Error("any term should be enough")
	}
	if TermsInText("anything") {
		t.Error("no terms never match")
	}
	if TermsInText("", Literal("x")) {
		t.Error("empty text should not match a non-empty literal")
	}
}

func TestTermsInTokens(t *testing.T) {
	tokens := []string{"75", "m2", "woonoppervlakte"}

	if !TermsInTokens(tokens, 0, Window{Distance: 2, After: true}, Literals("m2", "m²")...) {
		t.Error("expected m2 after index 0")
	}
	if TermsInTokens(tokens, 1, Window{Distance: 1, Before: true}, Literal("woon")) {
		t.Error("woon is after index 1, not before")
	}
	if !TermsInTokens(tokens, 0, Window{Distance: 2, After: true}, Pattern(regexp.MustCompile(`woon`))) {
		t.Error("expected pattern to match within distance 2")
	}
	if TermsInTokens(tokens, 0, Window{Distance: 1, After: true}, Pattern(regexp.MustCompile(`woon`))) {
		t.Error("woonoppervlakte is outside distance 1")
	}
}

func TestTermsInText_EmptyTermMatchesNothing(t *testing.T) {
	if TermsInText("abc", Literal("")) {
		t.Error("Expected empty literal not to match")
	}
	if TermsInText("abc", Term{}) {
		t.Error("Expected zero Term not to match")
	}
	if TermsInTokens([]string{"3", "kamers"}, 0, DefaultWindow, Literal("")) {
		t.Error("Expected empty literal not to match any token")
	}
	if !TermsInText("abc", Literal(""), Literal("b")) {
		t.Error("Expected other terms to still match")
	}
}
