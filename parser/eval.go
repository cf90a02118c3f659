package parser

import (
	"context"
	"fmt"

	"github.com/ava12/rdx/grammar"
	"github.com/ava12/rdx/tree"
)

// pollMask sets how often the context is checked, in evaluation steps.
const pollMask = 1<<12 - 1

// commitError is returned up the call stack when a sequence fails after its Decision marker.
// No selection or repetition recovers from it.
type commitError struct {
	pos, decisionPos int
}

func (ce *commitError) Error() string {
	return fmt.Sprintf("committed mismatch at offset %d after offset %d", ce.pos, ce.decisionPos)
}

type parseContext struct {
	ctx     context.Context
	parser  *Parser
	grammar *grammar.Grammar
	buf     []byte
	tree    *tree.Tree
	depth   int
	steps   int
}

func newParseContext(ctx context.Context, p *Parser, buf []byte) *parseContext {
	return &parseContext{
		ctx:     ctx,
		parser:  p,
		grammar: p.grammar,
		buf:     buf,
		tree:    tree.New(len(buf)/p.treeHint + 1),
	}
}

// eval matches rule id at pos, returns end offset or encoded mismatch.
// The error is non-nil only for committed mismatches and engine failures,
// in that case the tree is left as it was at the failure point.
func (pc *parseContext) eval(id grammar.ID, pos int) (int, error) {
	pc.steps++
	if pc.steps&pollMask == 0 {
		if e := pc.ctx.Err(); e != nil {
			return 0, canceledError(e, pos)
		}
	}
	if pc.parser.stepLimit > 0 && pc.steps > pc.parser.stepLimit {
		return 0, stepLimitError(pc.parser.stepLimit, pos)
	}
	if pc.depth >= pc.parser.maxDepth {
		return 0, depthLimitError(pc.parser.maxDepth, pos)
	}

	pc.depth++
	res, e := pc.evalRule(id, pos)
	pc.depth--
	return res, e
}

func (pc *parseContext) evalRule(id grammar.ID, pos int) (int, error) {
	switch r := pc.grammar.Rule(id).(type) {
	case *grammar.Literal:
		return pc.matchLiteral(r.Text, pos), nil

	case *grammar.Terminal:
		width := r.Set.Accept(pc.buf, pos)
		if width == 0 {
			return Encode(pos), nil
		}
		return pos + width, nil

	case *grammar.Pattern:
		return matchPattern(r.Class, pc.buf, pos), nil

	case *grammar.Sequence:
		return pc.evalSequence(r, pos)

	case *grammar.Selection:
		return pc.evalSelection(r, pos)

	case *grammar.Repetition:
		return pc.evalRepetition(r, pos)

	case *grammar.Capture:
		return pc.evalCapture(id, r, pos)

	case *grammar.Lookahead:
		res, e := pc.eval(r.Element, pos)
		if e != nil {
			return 0, e
		}
		pc.tree.Erase(pos)
		if res < 0 {
			return res, nil
		}
		return pos, nil

	case *grammar.Fill:
		return pc.evalFill(r, pos)

	case *grammar.Decision:
		return pos, nil
	}

	return Encode(pos), nil
}

func (pc *parseContext) matchLiteral(text []byte, pos int) int {
	for i, b := range text {
		if pos+i >= len(pc.buf) {
			return Encode(len(pc.buf))
		}
		if pc.buf[pos+i] != b {
			return Encode(pos + i)
		}
	}
	return pos + len(text)
}

func skip(buf []byte, pos int, accept func(byte) bool) int {
	for pos < len(buf) && accept(buf[pos]) {
		pos++
	}
	return pos
}

func matchPattern(class grammar.PatternClass, buf []byte, pos int) int {
	switch class {
	case grammar.MayBeIndent, grammar.MustBeIndent:
		end := skip(buf, pos, grammar.IsIndent)
		if end == pos && class == grammar.MustBeIndent {
			return Encode(pos)
		}
		return end

	case grammar.MayBeWhitespace, grammar.MustBeWhitespace:
		end := skip(buf, pos, grammar.IsWhitespace)
		if end == pos && class == grammar.MustBeWhitespace {
			return Encode(pos)
		}
		return end

	case grammar.MustBeLinebreak:
		start := skip(buf, pos, grammar.IsIndent)
		if start == len(buf) {
			return start
		}
		end := skip(buf, start, grammar.IsLinebreak)
		if end == start {
			return Encode(start)
		}
		return skip(buf, end, grammar.IsIndent)
	}

	return Encode(pos)
}

// evalSequence matches elements one after another.
// After a Decision marker any mismatch is a committed failure.
// The first Lookahead marker fixes the result to the cursor before it, elements following it
// are matched as part of the assertion and leave no tree entries.
func (pc *parseContext) evalSequence(s *grammar.Sequence, pos int) (int, error) {
	cursor := pos
	frozen := -1
	committed := false
	decisionPos := 0

	for _, el := range s.Elements {
		switch r := pc.grammar.Rule(el).(type) {
		case *grammar.Decision:
			committed = true
			decisionPos = cursor
			continue

		case *grammar.Lookahead:
			if frozen < 0 {
				frozen = cursor
			}
			res, e := pc.eval(r.Element, cursor)
			if e != nil {
				return 0, e
			}
			pc.tree.Erase(cursor)
			if res < 0 {
				pc.tree.Erase(pos)
				return res, nil
			}
			continue
		}

		res, e := pc.eval(el, cursor)
		if e != nil {
			return 0, e
		}
		if res < 0 {
			if committed {
				return 0, &commitError{Decode(res), decisionPos}
			}
			pc.tree.Erase(pos)
			return res, nil
		}
		cursor = res
	}

	if frozen >= 0 {
		pc.tree.Erase(frozen)
		return frozen, nil
	}
	return cursor, nil
}

// evalSelection returns the first matching alternative or the furthest mismatch.
func (pc *parseContext) evalSelection(s *grammar.Selection, pos int) (int, error) {
	best := Encode(pos)
	for _, el := range s.Elements {
		res, e := pc.eval(el, pos)
		if e != nil {
			return 0, e
		}
		if res >= 0 {
			return res, nil
		}

		pc.tree.Erase(pos)
		if res < best {
			best = res
		}
	}
	return best, nil
}

// evalRepetition stops at the first failed or empty iteration.
// An empty iteration satisfies the minimum, since repeating it would not advance.
func (pc *parseContext) evalRepetition(r *grammar.Repetition, pos int) (int, error) {
	cursor := pos
	for count := 0; count < r.Occur.Max; count++ {
		res, e := pc.eval(r.Element, cursor)
		if e != nil {
			return 0, e
		}

		if res < 0 {
			pc.tree.Erase(cursor)
			if count < r.Occur.Min {
				pc.tree.Erase(pos)
				return res, nil
			}
			break
		}

		if res == cursor {
			break
		}
		cursor = res
	}
	return cursor, nil
}

// evalCapture records a non-empty match of the element.
func (pc *parseContext) evalCapture(id grammar.ID, c *grammar.Capture, pos int) (int, error) {
	pc.tree.Push(int(id), pos)
	res, e := pc.eval(c.Element, pos)
	if e != nil {
		return 0, e
	}

	if res <= pos {
		pc.tree.Pop()
	} else {
		pc.tree.Done(res)
	}
	return res, nil
}

// evalFill finds the first offset where the element matches, the match itself is not consumed.
func (pc *parseContext) evalFill(f *grammar.Fill, pos int) (int, error) {
	for p := pos; p <= len(pc.buf); p++ {
		res, e := pc.eval(f.Element, p)
		if e != nil {
			return 0, e
		}

		pc.tree.Erase(pos)
		if res >= 0 {
			return p, nil
		}
	}
	return Encode(len(pc.buf)), nil
}
