package grammar

import (
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"github.com/ava12/rdx/charset"
	"github.com/ava12/rdx/internal/bmap"
	"github.com/ava12/rdx/internal/ints"
)

var log = commonlog.GetLogger("rdx.grammar")

type linkStats struct {
	literals, references, unwrapped, flattened, compacted int
}

// linker rewrites a snapshot of builder arena in place.
// Every step is skipped if a previous one failed.
type linker struct {
	g     *Grammar
	stats linkStats
}

// redirect replaces every edge and every named rule ID by target(ID).
func (l *linker) redirect(target func(ID) ID) {
	for name, id := range l.g.names {
		l.g.names[name] = target(id)
	}
	l.g.walk(func(_ ID, r Rule) {
		for _, edge := range edges(r) {
			*edge = target(*edge)
		}
	})
}

func (l *linker) dedupLiterals(e error) error {
	if e != nil {
		return e
	}

	texts := bmap.New[ID](0)
	canonical := make(map[ID]ID)
	l.g.walk(func(id ID, r Rule) {
		lit, isLiteral := r.(*Literal)
		if !isLiteral {
			return
		}

		first, found := texts.Intern(lit.Text, id)
		if found {
			canonical[id] = first
		}
	})
	if len(canonical) == 0 {
		return nil
	}

	l.stats.literals = len(canonical)
	l.redirect(func(id ID) ID {
		if c, has := canonical[id]; has {
			return c
		}
		return id
	})
	return nil
}

func (l *linker) resolveReferences(e error) error {
	if e != nil {
		return e
	}

	g := l.g
	resolved := make(map[ID]ID)
	var resolve func(id ID, visiting *ints.Set) (ID, error)
	resolve = func(id ID, visiting *ints.Set) (ID, error) {
		ref, isRef := g.rules[id].(*Reference)
		if !isRef {
			return id, nil
		}
		if target, done := resolved[id]; done {
			return target, nil
		}
		if !visiting.Visit(int(id)) {
			return NoID, referenceCycleError(referenceNames(g, visiting))
		}

		target, unwrap, found := lookup(g.names, ref.Name)
		if !found {
			return NoID, unknownRuleError(ref.Name)
		}

		target, e := resolve(target, visiting)
		if e == nil && unwrap {
			if c, isCapture := g.rules[target].(*Capture); isCapture {
				target, e = resolve(c.Element, visiting)
			}
		}
		if e != nil {
			return NoID, e
		}

		resolved[id] = target
		return target, nil
	}

	var refs []ID
	g.walk(func(id ID, r Rule) {
		if r.Kind() == ReferenceKind {
			refs = append(refs, id)
		}
	})
	for _, id := range refs {
		if _, e = resolve(id, ints.NewSet(len(g.rules))); e != nil {
			return e
		}
	}

	l.stats.references = len(resolved)
	l.redirect(func(id ID) ID {
		if target, has := resolved[id]; has {
			return target
		}
		return id
	})
	return nil
}

func referenceNames(g *Grammar, ids *ints.Set) []string {
	var result []string
	for _, id := range ids.ToSlice() {
		if ref, isRef := g.rules[id].(*Reference); isRef {
			result = append(result, ref.Name)
		}
	}
	return result
}

// collapse follows single-element sequences and selections, and non-capturing captures.
func (l *linker) collapse(id ID) ID {
	for steps := len(l.g.rules); steps > 0; steps-- {
		switch r := l.g.rules[id].(type) {
		case *Sequence:
			if len(r.Elements) != 1 {
				return id
			}
			id = r.Elements[0]
		case *Selection:
			if len(r.Elements) != 1 {
				return id
			}
			id = r.Elements[0]
		case *Capture:
			if !IsNonCapturing(r.Name) {
				return id
			}
			id = r.Element
		default:
			return id
		}
	}
	return id
}

func (l *linker) unwrapTrivial(e error) error {
	if e != nil {
		return e
	}

	l.redirect(func(id ID) ID {
		target := l.collapse(id)
		if target != id {
			l.stats.unwrapped++
		}
		return target
	})
	return nil
}

// hasMarker reports whether splicing into or out of the sequence would change positional meaning of its elements.
func (l *linker) hasMarker(s *Sequence) bool {
	for _, id := range s.Elements {
		switch l.g.rules[id].Kind() {
		case FillKind, DecisionKind, LookaheadKind:
			return true
		}
	}
	return false
}

func (l *linker) flattenSequences(e error) error {
	if e != nil {
		return e
	}

	g := l.g
	done := ints.NewSet(len(g.rules))
	inProgress := ints.NewSet(len(g.rules))
	var flatten func(id ID)
	flatten = func(id ID) {
		if done.Contains(int(id)) || !inProgress.Visit(int(id)) {
			return
		}
		defer func() {
			inProgress.Remove(int(id))
			done.Add(int(id))
		}()

		seq := g.rules[id].(*Sequence)
		if l.hasMarker(seq) {
			return
		}

		elements := make([]ID, 0, len(seq.Elements))
		for _, el := range seq.Elements {
			inner, isSeq := g.rules[el].(*Sequence)
			if isSeq && !inProgress.Contains(int(el)) {
				flatten(el)
				if !l.hasMarker(inner) {
					elements = append(elements, inner.Elements...)
					l.stats.flattened++
					continue
				}
			}
			elements = append(elements, el)
		}
		seq.Elements = elements
	}

	g.walk(func(id ID, r Rule) {
		if r.Kind() == SequenceKind {
			flatten(id)
		}
	})
	return nil
}

// singleRuneSet returns a set for one-code-point literal or pure inclusion terminal.
func (l *linker) singleRuneSet(id ID) (*charset.Set, bool) {
	switch r := l.g.rules[id].(type) {
	case *Terminal:
		return r.Set, r.Set.IsPureInclusion()
	case *Literal:
		cp, width := utf8.DecodeRune(r.Text)
		if width == 0 || width != len(r.Text) || (cp == utf8.RuneError && width == 1) {
			return nil, false
		}
		return charset.Char(cp), true
	}
	return nil, false
}

func (l *linker) compactCharsets(e error) error {
	if e != nil {
		return e
	}

	g := l.g
	g.walk(func(id ID, r Rule) {
		sel, isSel := r.(*Selection)
		if !isSel || len(sel.Elements) < 2 {
			return
		}

		merged := charset.Empty
		for _, el := range sel.Elements {
			set, valid := l.singleRuneSet(el)
			if valid {
				merged, valid = merged.Union(set)
			}
			if !valid {
				return
			}
		}

		g.rules[id] = &Terminal{merged}
		l.stats.compacted++
	})
	return nil
}

// verify checks that no references are left and every fill is bound.
func (l *linker) verify(e error) error {
	if e != nil {
		return e
	}

	l.g.walk(func(_ ID, r Rule) {
		if e != nil {
			return
		}

		switch r := r.(type) {
		case *Reference:
			e = unresolvedReferenceError(r.Name)
		case *Fill:
			if r.Element == NoID {
				e = unboundFillError()
			}
		}
	})
	return e
}
