// Package parser matches byte buffers against finished grammars.
//
// A match result is either a non-negative end offset or an encoded mismatch position, see Encode.
// Ordinary mismatches are values, only failures after a Decision marker, engine limits, and
// cancellation are returned as errors.
package parser

import (
	"context"
	"errors"

	"github.com/tliron/commonlog"

	"github.com/ava12/rdx"
	"github.com/ava12/rdx/grammar"
	"github.com/ava12/rdx/source"
	"github.com/ava12/rdx/tree"
)

var log = commonlog.GetLogger("rdx.parser")

const (
	DefaultMaxDepth = 10000
	DefaultTreeHint = 8
)

// Encode converts mismatch position p >= 0 to a negative result.
// Encoding is strictly decreasing, so the minimum of encoded results is the furthest mismatch.
func Encode(p int) int {
	return -p - 1
}

// Decode converts negative result back to mismatch position, Decode(Encode(p)) == p.
func Decode(e int) int {
	return -e - 1
}

// Parser is immutable and can be used by any number of goroutines, each call owns its own tree.
type Parser struct {
	grammar   *grammar.Grammar
	maxDepth  int
	stepLimit int
	treeHint  int
}

// Option configures a Parser.
type Option func(p *Parser) error

// WithMaxDepth limits recursion depth of rule evaluation.
func WithMaxDepth(n int) Option {
	return func(p *Parser) error {
		if n <= 0 {
			return wrongOptionError("max depth", n)
		}
		p.maxDepth = n
		return nil
	}
}

// WithStepLimit limits the number of rule evaluations per call, 0 means no limit.
func WithStepLimit(n int) Option {
	return func(p *Parser) error {
		if n < 0 {
			return wrongOptionError("step limit", n)
		}
		p.stepLimit = n
		return nil
	}
}

// WithTreeHint sets expected number of input bytes per tree entry, used to preallocate trees.
func WithTreeHint(ratio int) Option {
	return func(p *Parser) error {
		if ratio <= 0 {
			return wrongOptionError("tree hint", ratio)
		}
		p.treeHint = ratio
		return nil
	}
}

// New creates a parser for finished grammar g.
func New(g *grammar.Grammar, opts ...Option) (*Parser, error) {
	if g == nil {
		return nil, unknownStartError("")
	}

	p := &Parser{grammar: g, maxDepth: DefaultMaxDepth, treeHint: DefaultTreeHint}
	for _, opt := range opts {
		if e := opt(p); e != nil {
			return nil, e
		}
	}
	return p, nil
}

func (p *Parser) Grammar() *grammar.Grammar {
	return p.grammar
}

// Failure is returned by Parse and by Match for committed mismatches.
type Failure struct {
	// Err contains error code and message.
	Err *rdx.Error

	// Pos is the byte offset of the mismatch.
	Pos int

	// DecisionPos is the offset where the failed sequence passed its Decision marker, or -1.
	DecisionPos int

	// Tree contains entries matched before the failure. Entries of captures
	// interrupted by a committed failure end at Pos.
	Tree *tree.Tree
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func (p *Parser) startRule(start string) (grammar.ID, error) {
	if start == "" {
		names := p.grammar.Names()
		if len(names) == 0 {
			return grammar.NoID, unknownStartError(start)
		}
		start = names[0]
	}

	id, found := p.grammar.Lookup(start)
	if !found {
		return grammar.NoID, unknownStartError(start)
	}
	return id, nil
}

// Match evaluates start rule (the first defined rule if empty) at offset 0 of buf.
// Returns end offset or encoded mismatch, and the tree of matched captures.
// Partial matches are not an error. Committed mismatches are returned as *Failure.
// The returned tree never contains open entries.
func (p *Parser) Match(ctx context.Context, buf []byte, start string) (int, *tree.Tree, error) {
	id, e := p.startRule(start)
	if e != nil {
		return 0, nil, e
	}

	if ctx == nil {
		ctx = context.Background()
	}
	pc := newParseContext(ctx, p, buf)
	res, e := pc.eval(id, 0)
	if e != nil {
		var ce *commitError
		if errors.As(e, &ce) {
			pc.tree.CloseAll(ce.pos)
			e = &Failure{rawCommittedError(ce.pos, ce.decisionPos), ce.pos, ce.decisionPos, pc.tree}
		} else {
			// limits and cancellation have no mismatch position, interrupted entries become empty
			pc.tree.CloseAll(0)
		}
		return 0, pc.tree, e
	}

	return res, pc.tree, nil
}

// Parse matches the whole content of src against start rule.
// Any mismatch, including a match not covering the input, is returned as *Failure.
func (p *Parser) Parse(ctx context.Context, src *source.Source, start string) (*tree.Tree, error) {
	log.Debugf("parsing %s (%d bytes) from %q", src.Name(), src.Limit(), start)
	res, t, e := p.Match(ctx, src.Content(), start)
	if e != nil {
		var f *Failure
		if errors.As(e, &f) {
			f.Err = committedError(src, f.Pos, f.DecisionPos)
			log.Debugf("%s", f.Err)
			return f.Tree, f
		}
		log.Debugf("parsing %s aborted: %s", src.Name(), e)
		return t, e
	}

	var f *Failure
	switch {
	case res < 0:
		pos := Decode(res)
		f = &Failure{mismatchError(src, pos), pos, -1, t}
	case res < src.Limit():
		f = &Failure{incompleteMatchError(src, res), res, -1, t}
	}
	if f != nil {
		log.Debugf("%s", f.Err)
		return t, f
	}

	log.Debugf("parsed %s: %d tree entries", src.Name(), t.Count())
	return t, nil
}
