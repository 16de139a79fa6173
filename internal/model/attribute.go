package model

import "errors"

// ErrMissingValue is returned when an input record has no "value" field
var ErrMissingValue = errors.New("record has no value")

// Attribute is one raw fact candidate, e.g. {Key: "Kamers", Value: "3 kamers"}.
// An empty Key or HTML means the field is absent. Nil Tokens means the
// attribute has not been tokenized yet.
type Attribute struct {
	Value  string   `json:"value" yaml:"value"`
	Key    string   `json:"key,omitempty" yaml:"key,omitempty"`
	HTML   string   `json:"html,omitempty" yaml:"html,omitempty"`
	Tokens []string `json:"tokens,omitempty" yaml:"tokens,omitempty"`

	decoded bool // Value and Key are plain text, not HTML
}

// NewAttribute creates an attribute with only a value set
func NewAttribute(value string) Attribute {
	return Attribute{Value: value}
}

// Decoded marks Value and Key as plain text that must not be HTML-unescaped
// again, e.g. text already decoded by an HTML parser
func (a Attribute) Decoded() Attribute {
	a.decoded = true
	return a
}

// IsDecoded reports whether Value and Key are already plain text
func (a Attribute) IsDecoded() bool {
	return a.decoded
}

// HasKey reports whether the attribute carries a key
func (a Attribute) HasKey() bool {
	return a.Key != ""
}

// ToAttribute returns the attribute itself
func (a Attribute) ToAttribute() (Attribute, error) {
	return a, nil
}

// Record is a raw input record as read from JSON or YAML
type Record map[string]string

// ToAttribute converts the record into an Attribute
func (r Record) ToAttribute() (Attribute, error) {
	value, ok := r["value"]
	if !ok {
		return Attribute{}, ErrMissingValue
	}
	return Attribute{
		Value: value,
		Key:   r["key"],
		HTML:  r["html"],
	}, nil
}

// Input is anything the engine can turn into an Attribute
type Input interface {
	ToAttribute() (Attribute, error)
}

// Attributes wraps a slice of attributes as engine inputs
func Attributes(attrs ...Attribute) []Input {
	inputs := make([]Input, len(attrs))
	for i, a := range attrs {
		inputs[i] = a
	}
	return inputs
}

// Records wraps a slice of records as engine inputs
func Records(records ...Record) []Input {
	inputs := make([]Input, len(records))
	for i, r := range records {
		inputs[i] = r
	}
	return inputs
}
