package grammar

import (
	"strings"

	"github.com/ava12/rdx/charset"
)

// Builder constructs a raw rule graph. Every method appends a new rule and returns its ID,
// existing rules are never modified. Construction errors are remembered and returned by Finish,
// methods called after an error still return usable IDs.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	rules []Rule
	names map[string]ID
	order []string
	err   error
}

func NewBuilder() *Builder {
	return &Builder{names: make(map[string]ID)}
}

func (b *Builder) add(r Rule) ID {
	b.rules = append(b.rules, r)
	return ID(len(b.rules) - 1)
}

func (b *Builder) fail(e error) {
	if b.err == nil {
		b.err = e
	}
}

// Err returns the first construction error.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) rule(id ID) Rule {
	if id < 0 || int(id) >= len(b.rules) {
		b.fail(wrongIDError(id))
		return nil
	}
	return b.rules[id]
}

func (b *Builder) check(ids ...ID) {
	for _, id := range ids {
		b.rule(id)
	}
}

// Literal matches text exactly.
func (b *Builder) Literal(text string) ID {
	return b.add(&Literal{[]byte(text)})
}

// LiteralBytes matches text exactly, text is copied.
func (b *Builder) LiteralBytes(text []byte) ID {
	return b.add(&Literal{append([]byte(nil), text...)})
}

// Terminal matches one code point belonging to the set.
func (b *Builder) Terminal(set *charset.Set) ID {
	if set == nil {
		set = charset.Empty
	}
	return b.add(&Terminal{set})
}

// Range is a shorthand for Terminal(charset.Range(lo, hi)).
func (b *Builder) Range(lo, hi rune) ID {
	return b.Terminal(charset.Range(lo, hi))
}

// Char is a shorthand for Terminal(charset.Char(cp)).
func (b *Builder) Char(cp rune) ID {
	return b.Terminal(charset.Char(cp))
}

func (b *Builder) Pattern(class PatternClass) ID {
	return b.add(&Pattern{class})
}

// Seq matches ids one after another.
// A Fill marker is bound to the element following it.
func (b *Builder) Seq(ids ...ID) ID {
	b.check(ids...)
	elements := make([]ID, 0, len(ids))
	for i, id := range ids {
		if f, isFill := b.rule(id).(*Fill); isFill && f.Element == NoID {
			if i == len(ids)-1 {
				b.fail(unboundFillError())
			} else {
				id = b.add(&Fill{ids[i+1]})
			}
		}
		elements = append(elements, id)
	}
	return b.add(&Sequence{elements})
}

// Select matches the first matching alternative.
func (b *Builder) Select(ids ...ID) ID {
	b.check(ids...)
	return b.add(&Selection{append([]ID(nil), ids...)})
}

// Occurs wraps rule in Repetition. Repetition is rewrapped with the new bound.
// Once returns id unchanged.
func (b *Builder) Occurs(id ID, o Occur) ID {
	r := b.rule(id)
	if !o.Valid() {
		b.fail(wrongOccurError(o))
		return id
	}
	if o == Once {
		return id
	}

	if rep, isRep := r.(*Repetition); isRep {
		id = rep.Element
	}
	return b.add(&Repetition{id, o})
}

func (b *Builder) Optional(id ID) ID {
	return b.Occurs(id, Optional)
}

func (b *Builder) Many(id ID) ID {
	return b.Occurs(id, Many)
}

func (b *Builder) Some(id ID) ID {
	return b.Occurs(id, Some)
}

// As wraps rule in Capture or renames existing Capture.
// Names starting with NonCapturingPrefix produce captures removed by linking.
func (b *Builder) As(id ID, name string) ID {
	r := b.rule(id)
	if name == "" {
		b.fail(emptyNameError())
		return id
	}

	if c, isCapture := r.(*Capture); isCapture {
		id = c.Element
	}
	return b.add(&Capture{name, id})
}

// Ref refers to a named rule that may be defined later.
func (b *Builder) Ref(name string) ID {
	if name == "" {
		b.fail(emptyNameError())
	}
	return b.add(&Reference{name})
}

func (b *Builder) Lookahead(id ID) ID {
	b.check(id)
	return b.add(&Lookahead{id})
}

// Fill returns a marker which must be used as a Seq element,
// it skips input until the next element of the sequence matches.
func (b *Builder) Fill() ID {
	return b.add(&Fill{NoID})
}

// Completion is the same marker as Fill.
func (b *Builder) Completion() ID {
	return b.Fill()
}

// Decision returns a commit marker for Seq.
func (b *Builder) Decision() ID {
	return b.add(&Decision{})
}

// Define names a rule, making it referable and usable as a start rule.
// The rule is captured under this name. Returns ID of the capture.
func (b *Builder) Define(name string, id ID) ID {
	if name == "" {
		b.fail(emptyNameError())
		return id
	}
	if _, defined := b.names[name]; defined {
		b.fail(ruleDefinedError(name))
		return b.names[name]
	}

	id = b.As(id, name)
	b.names[name] = id
	b.order = append(b.order, name)
	return id
}

// IsDefined reports whether a rule with this name is defined.
func (b *Builder) IsDefined(name string) bool {
	_, defined := b.names[name]
	return defined
}

// lookup finds reference target, non-capturing names fall back to unprefixed rule.
func lookup(names map[string]ID, name string) (id ID, unwrap, found bool) {
	id, found = names[name]
	if found || !strings.HasPrefix(name, NonCapturingPrefix) {
		return
	}

	id, found = names[name[len(NonCapturingPrefix):]]
	return id, found, found
}

// snapshot deep-copies the arena, so finishing does not affect the builder.
func (b *Builder) snapshot() *Grammar {
	g := &Grammar{
		rules: make([]Rule, len(b.rules)),
		names: make(map[string]ID, len(b.names)),
		order: append([]string(nil), b.order...),
	}
	for i, r := range b.rules {
		g.rules[i] = r.clone()
	}
	for name, id := range b.names {
		g.names[name] = id
	}
	return g
}

// Finish links the graph and returns finished grammar.
// The builder stays usable, more rules can be added and finished again.
func (b *Builder) Finish() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}

	g := b.snapshot()
	l := &linker{g: g}
	e := l.dedupLiterals(nil)
	e = l.resolveReferences(e)
	e = l.unwrapTrivial(e)
	e = l.flattenSequences(e)
	e = l.compactCharsets(e)
	e = l.verify(e)
	if e != nil {
		return nil, e
	}

	log.Debugf("linked %d rules (%d named): %d literals merged, %d references resolved, %d nodes unwrapped, %d sequences flattened, %d selections compacted",
		len(g.rules), len(g.order), l.stats.literals, l.stats.references, l.stats.unwrapped, l.stats.flattened, l.stats.compacted)
	return g, nil
}
