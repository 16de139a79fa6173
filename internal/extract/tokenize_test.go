package extract

import (
	"slices"
	"testing"
)

func TestWhitespaceTokenizer(t *testing.T) {
	got := WhitespaceTokenizer("  3 kamers,\t2 slaapkamers ")
	want := []string{"3", "kamers,", "2", "slaapkamers"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWordTokenizer(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"€2.650", []string{"€", "2.650"}},
		{"€ 2.250.01 per maand (servicekosten onbekend)", []string{"€", "2.250.01", "per", "maand", "(", "servicekosten", "onbekend", ")"}},
		{"75m2", []string{"75", "m2"}},
		{"3 kamers, 2 slaapkamers", []string{"3", "kamers", ",", "2", "slaapkamers"}},
		{"€ 1.200 /mnd", []string{"€", "1.200", "/", "mnd"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := WordTokenizer(tt.in)
		if !slices.Equal(got, tt.want) {
			t.Errorf("WordTokenizer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenizerByName(t *testing.T) {
	for _, name := range []string{"", "whitespace", "WORD"} {
		if _, err := TokenizerByName(name); err != nil {
			t.Errorf("TokenizerByName(%q) unexpected error: %v", name, err)
		}
	}
	if _, err := TokenizerByName("nltk"); err == nil {
		t.Error("expected error for unknown tokenizer")
	}
}
