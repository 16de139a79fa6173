package extract

import (
	"testing"

	"github.com/ppiankov/attrparse/internal/model"
)

func TestNewContext_UnescapesValueAndKey(t *testing.T) {
	c := NewContext(model.Attribute{
		Key:   "Woon&amp;oppervlakte",
		Value: "75 m&sup2;",
		HTML:  "<dd>75 m&sup2;</dd>",
	})

	if c.Value != "75 m²" {
		t.Errorf("Expected unescaped value, got %q", c.Value)
	}
	if c.Key != "Woon&oppervlakte" {
		t.Errorf("Expected unescaped key, got %q", c.Key)
	}
	if c.HTML != "<dd>75 m&sup2;</dd>" {
		t.Errorf("Expected HTML to be kept as-is, got %q", c.HTML)
	}
}

func TestContext_CreateMatchSnapshotsAttribute(t *testing.T) {
	c := NewContext(model.Attribute{Key: "Huur&shy;prijs", Value: "&euro; 1.200", Tokens: []string{"x"}})

	m := c.CreateMatch(1200.0, "huur", nil)
	if m.Attribute.Value != "€ 1.200" {
		t.Errorf("Expected unescaped value snapshot, got %q", m.Attribute.Value)
	}
	if m.Attribute.Key != "Huur\u00adprijs" {
		t.Errorf("Expected unescaped key snapshot, got %q", m.Attribute.Key)
	}
	if m.Attribute.Tokens != nil {
		t.Errorf("Expected snapshot without tokens, got %v", m.Attribute.Tokens)
	}
	if m.Key != "huur" || m.Value != 1200.0 {
		t.Errorf("Unexpected match: %v", m)
	}
}

func TestContext_KeylessAttribute(t *testing.T) {
	c := NewContext(model.NewAttribute("3 slaapkamers"))
	if c.HasKey() {
		t.Error("Expected no key")
	}
	derived := c.Derive(c.Key, "3")
	if derived.Key != "" || derived.Value != "3" || derived.Tokens != nil || !derived.IsDecoded() {
		t.Errorf("Unexpected derived attribute: %+v", derived)
	}
}
