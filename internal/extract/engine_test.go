package extract

import (
	"errors"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/ppiankov/attrparse/internal/model"
)

// stubParser adapts plain functions to the Parser interface
type stubParser struct {
	name  string
	test  func(c *Context) bool
	parse func(c *Context) []Output
}

func (p *stubParser) Name() string { return p.name }

func (p *stubParser) TestAttribute(c *Context) bool {
	if p.test == nil {
		return true
	}
	return p.test(c)
}

func (p *stubParser) Parse(c *Context) iter.Seq[Output] {
	return func(yield func(Output) bool) {
		for _, out := range p.parse(c) {
			if !yield(out) {
				return
			}
		}
	}
}

// echoParser emits one match per attribute: key -> value
func echoParser(name string) *stubParser {
	return &stubParser{
		name: name,
		parse: func(c *Context) []Output {
			return []Output{Emit(c.CreateMatch(c.Value, c.Key, nil))}
		},
	}
}

func TestEngine_EmptyInput(t *testing.T) {
	got, err := Extract([]Parser{echoParser("echo")}, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty mapping, got %v", got)
	}
}

func TestEngine_RecordsAndAttributes(t *testing.T) {
	inputs := []model.Input{
		model.Record{"key": "a", "value": "1"},
		model.Attribute{Key: "b", Value: "2"},
	}

	got, err := Extract([]Parser{echoParser("echo")}, inputs)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got["a"] != "1" || got["b"] != "2" {
		t.Errorf("Unexpected mapping: %v", got)
	}
}

func TestEngine_MissingValueAbortsRun(t *testing.T) {
	inputs := model.Records(
		model.Record{"key": "a", "value": "1"},
		model.Record{"key": "b"},
	)

	got, err := Extract([]Parser{echoParser("echo")}, inputs)
	if err == nil {
		t.Fatal("Expected error for record without value")
	}
	if got != nil {
		t.Errorf("Expected no partial results, got %v", got)
	}

	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("Expected *InputError, got %T", err)
	}
	if inputErr.Index != 1 {
		t.Errorf("Expected index 1, got %d", inputErr.Index)
	}
	if !errors.Is(err, model.ErrMissingValue) {
		t.Errorf("Expected ErrMissingValue in chain, got %v", err)
	}
}

func TestEngine_TokenizesOnlyWhenMissing(t *testing.T) {
	var seen [][]string
	spy := &stubParser{
		name: "spy",
		parse: func(c *Context) []Output {
			seen = append(seen, c.Tokens)
			return nil
		},
	}

	inputs := model.Attributes(
		model.Attribute{Value: "a b c"},
		model.Attribute{Value: "a b c", Tokens: []string{"abc"}},
	)

	upper := func(s string) []string { return strings.Fields(strings.ToUpper(s)) }
	if _, err := Extract([]Parser{spy}, inputs, WithTokenizer(upper)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("Expected 2 parse calls, got %d", len(seen))
	}
	if !slices.Equal(seen[0], []string{"A", "B", "C"}) {
		t.Errorf("Expected tokenizer output, got %v", seen[0])
	}
	if !slices.Equal(seen[1], []string{"abc"}) {
		t.Errorf("Expected precomputed tokens to be kept, got %v", seen[1])
	}
}

func TestEngine_SkipsParsersFailingTest(t *testing.T) {
	calls := 0
	never := &stubParser{
		name: "never",
		test: func(c *Context) bool { return false },
		parse: func(c *Context) []Output {
			calls++
			return nil
		},
	}

	if _, err := Extract([]Parser{never}, model.Attributes(model.NewAttribute("x"))); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if calls != 0 {
		t.Errorf("Parse called %d times for a parser whose test failed", calls)
	}
}

func TestEngine_DispatchOrder(t *testing.T) {
	first := &stubParser{
		name: "first",
		parse: func(c *Context) []Output {
			return []Output{
				Emit(c.CreateMatch("first:"+c.Value+":1", "k", nil)),
				Emit(c.CreateMatch("first:"+c.Value+":2", "k", nil)),
			}
		},
	}
	second := &stubParser{
		name: "second",
		parse: func(c *Context) []Output {
			return []Output{Emit(c.CreateMatch("second:"+c.Value, "k", nil))}
		},
	}

	matches, err := New([]Parser{first, second}).Collect(model.Attributes(
		model.NewAttribute("a"),
		model.NewAttribute("b"),
	))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var got []string
	for _, m := range matches {
		got = append(got, m.Value.(string))
	}
	want := []string{
		"first:a:1", "first:a:2", "second:a",
		"first:b:1", "first:b:2", "second:b",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Dispatch order:\n got  %v\n want %v", got, want)
	}
}

func TestEngine_RequeueGoesToBackAndThroughAllParsers(t *testing.T) {
	var order []string

	splitter := &stubParser{
		name: "splitter",
		test: func(c *Context) bool { return strings.Contains(c.Value, ";") },
		parse: func(c *Context) []Output {
			var outs []Output
			for _, part := range strings.Split(c.Value, ";") {
				outs = append(outs, Requeue(c.Derive(c.Key, strings.TrimSpace(part))))
			}
			return outs
		},
	}
	recorder := &stubParser{
		name: "recorder",
		parse: func(c *Context) []Output {
			order = append(order, c.Key+"="+c.Value)
			return []Output{Emit(c.CreateMatch(c.Value, c.Value, nil))}
		},
	}

	got, err := Extract([]Parser{splitter, recorder}, model.Attributes(
		model.Attribute{Key: "list", Value: "x; y"},
		model.Attribute{Key: "single", Value: "z"},
	))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	wantOrder := []string{"list=x; y", "single=z", "list=x", "list=y"}
	if !slices.Equal(order, wantOrder) {
		t.Errorf("Processing order:\n got  %v\n want %v", order, wantOrder)
	}
	for _, key := range []string{"x", "y", "z"} {
		if got[key] != key {
			t.Errorf("Expected %s=%s in %v", key, key, got)
		}
	}
}

func TestEngine_DequeueLimit(t *testing.T) {
	forever := &stubParser{
		name: "forever",
		parse: func(c *Context) []Output {
			return []Output{Requeue(c.Derive(c.Key, c.Value))}
		},
	}

	_, err := Extract([]Parser{forever}, model.Attributes(model.NewAttribute("loop")), WithMaxDequeues(50))
	if !errors.Is(err, ErrDequeueLimit) {
		t.Fatalf("Expected ErrDequeueLimit, got %v", err)
	}
}

func TestEngine_DrainsEverySequence(t *testing.T) {
	// A parser yielding many items has every item collected.
	many := &stubParser{
		name: "many",
		parse: func(c *Context) []Output {
			outs := make([]Output, 0, 5)
			for i := range 5 {
				outs = append(outs, Emit(c.CreateMatch(i, "n", nil)))
			}
			return outs
		},
	}

	matches, err := New([]Parser{many}).Collect(model.Attributes(model.NewAttribute("x")))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(matches) != 5 {
		t.Errorf("Expected 5 matches, got %d", len(matches))
	}
}

func TestEngine_Idempotent(t *testing.T) {
	inputs := model.Attributes(
		model.Attribute{Key: "a", Value: "1"},
		model.Attribute{Key: "a", Value: "2"},
		model.Attribute{Key: "b", Value: "3"},
	)
	parsers := []Parser{echoParser("echo")}

	first, err := Extract(parsers, inputs)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := Extract(parsers, inputs)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Results differ: %v vs %v", first, second)
	}
	for k, v := range first {
		if second[k] != v {
			t.Errorf("Results differ for %s: %v vs %v", k, v, second[k])
		}
	}
}
