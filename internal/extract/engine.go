package extract

import (
	"fmt"

	"github.com/gammazero/deque"
	"github.com/ppiankov/attrparse/internal/model"
	"go.uber.org/zap"
)

// DefaultMaxDequeues bounds a single run unless overridden
const DefaultMaxDequeues = 10000

// Engine routes attributes through an ordered set of parsers
type Engine struct {
	parsers     []Parser
	tokenizer   Tokenizer
	logger      *zap.Logger
	maxDequeues int
}

// Option configures an Engine
type Option func(*Engine)

// WithTokenizer sets the tokenizer used for attributes without tokens
func WithTokenizer(t Tokenizer) Option {
	return func(e *Engine) {
		if t != nil {
			e.tokenizer = t
		}
	}
}

// WithLogger sets the logger for dispatch diagnostics
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxDequeues bounds the number of attributes a run may dequeue.
// Zero or a negative value disables the bound.
func WithMaxDequeues(n int) Option {
	return func(e *Engine) {
		e.maxDequeues = n
	}
}

// New creates an engine for the given parsers, run in the order given
func New(parsers []Parser, opts ...Option) *Engine {
	e := &Engine{
		parsers:     parsers,
		tokenizer:   WhitespaceTokenizer,
		logger:      zap.NewNop(),
		maxDequeues: DefaultMaxDequeues,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs parsers over inputs and returns the resolved key -> value mapping
func Extract(parsers []Parser, inputs []model.Input, opts ...Option) (map[string]any, error) {
	return New(parsers, opts...).Run(inputs)
}

// Run collects matches for inputs and resolves them into a mapping
func (e *Engine) Run(inputs []model.Input) (map[string]any, error) {
	matches, err := e.Collect(inputs)
	if err != nil {
		return nil, err
	}
	return Project(Resolve(matches)), nil
}

// Collect drains the worklist and returns every match in dispatch order:
// attribute dequeue order, then parser order, then yield order.
func (e *Engine) Collect(inputs []model.Input) ([]model.Match, error) {
	var queue deque.Deque[model.Attribute]
	for i, in := range inputs {
		attr, err := in.ToAttribute()
		if err != nil {
			return nil, &InputError{Index: i, Err: err}
		}
		queue.PushBack(attr)
	}

	var matches []model.Match
	dequeued := 0

	for queue.Len() > 0 {
		if e.maxDequeues > 0 && dequeued >= e.maxDequeues {
			return nil, fmt.Errorf("%w: %d attributes processed, %d still queued", ErrDequeueLimit, dequeued, queue.Len())
		}

		attr := queue.PopFront()
		dequeued++

		ctx := NewContext(attr)
		if ctx.Tokens == nil {
			ctx.Tokens = e.tokenizer(ctx.Value)
		}

		e.logger.Debug("dequeue attribute",
			zap.String("key", ctx.Key),
			zap.String("value", ctx.Value),
			zap.Int("tokens", len(ctx.Tokens)),
			zap.Int("queued", queue.Len()))

		for _, p := range e.parsers {
			if !p.TestAttribute(ctx) {
				continue
			}

			for out := range p.Parse(ctx) {
				switch {
				case out.Attribute != nil:
					e.logger.Debug("requeue attribute",
						zap.String("parser", p.Name()),
						zap.String("key", out.Attribute.Key),
						zap.String("value", out.Attribute.Value))
					queue.PushBack(*out.Attribute)
				case out.Match != nil:
					e.logger.Debug("match",
						zap.String("parser", p.Name()),
						zap.String("key", out.Match.Key),
						zap.Any("value", out.Match.Value))
					matches = append(matches, *out.Match)
				}
			}
		}
	}

	return matches, nil
}
