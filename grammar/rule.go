// Package grammar defines grammar rules, grammar builder, and the linking pass.
//
// Rules are stored in an arena and refer to each other by ID, so recursive
// grammars are plain cyclic graphs of small integers.
package grammar

import (
	"fmt"
	"strconv"

	"github.com/ava12/rdx/charset"
)

// ID is an index of a rule in a grammar arena.
type ID int

// NoID marks an absent rule, e.g. a Fill marker not bound to its target yet.
const NoID ID = -1

// NonCapturingPrefix starts names of captures removed by linking
// and names of references that skip one capture layer of their target.
const NonCapturingPrefix = "_"

type Kind int

const (
	LiteralKind Kind = iota
	TerminalKind
	PatternKind
	SequenceKind
	SelectionKind
	RepetitionKind
	CaptureKind
	LookaheadKind
	FillKind
	DecisionKind
	ReferenceKind
)

var kindNames = [...]string{
	"literal", "terminal", "pattern", "sequence", "selection", "repetition",
	"capture", "lookahead", "fill", "decision", "reference",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Rule is a grammar node. Implemented by pointers to Literal, Terminal, Pattern, Sequence,
// Selection, Repetition, Capture, Lookahead, Fill, Decision, and Reference.
type Rule interface {
	Kind() Kind
	clone() Rule
}

// Literal matches exact byte sequence.
type Literal struct {
	Text []byte
}

// Terminal matches single code point belonging to the set.
type Terminal struct {
	Set *charset.Set
}

// Pattern matches a run of whitespace of given class.
type Pattern struct {
	Class PatternClass
}

// Sequence matches elements one after another.
// Decision, Lookahead, and Fill elements have special meaning inside a sequence.
type Sequence struct {
	Elements []ID
}

// Selection matches the first matching alternative.
type Selection struct {
	Elements []ID
}

type Repetition struct {
	Element ID
	Occur   Occur
}

// Capture records the span matched by Element in the parse tree.
type Capture struct {
	Name    string
	Element ID
}

// Lookahead is a zero-width assertion.
type Lookahead struct {
	Element ID
}

// Fill skips input until Element matches, the match itself is not consumed.
type Fill struct {
	Element ID
}

// Decision is a commit marker: after it, a failure of the enclosing sequence is fatal.
type Decision struct{}

// Reference links to a named rule, it exists only before linking.
type Reference struct {
	Name string
}

func (*Literal) Kind() Kind    { return LiteralKind }
func (*Terminal) Kind() Kind   { return TerminalKind }
func (*Pattern) Kind() Kind    { return PatternKind }
func (*Sequence) Kind() Kind   { return SequenceKind }
func (*Selection) Kind() Kind  { return SelectionKind }
func (*Repetition) Kind() Kind { return RepetitionKind }
func (*Capture) Kind() Kind    { return CaptureKind }
func (*Lookahead) Kind() Kind  { return LookaheadKind }
func (*Fill) Kind() Kind       { return FillKind }
func (*Decision) Kind() Kind   { return DecisionKind }
func (*Reference) Kind() Kind  { return ReferenceKind }

func (r *Literal) clone() Rule    { c := *r; return &c }
func (r *Terminal) clone() Rule   { c := *r; return &c }
func (r *Pattern) clone() Rule    { c := *r; return &c }
func (r *Repetition) clone() Rule { c := *r; return &c }
func (r *Capture) clone() Rule    { c := *r; return &c }
func (r *Lookahead) clone() Rule  { c := *r; return &c }
func (r *Fill) clone() Rule       { c := *r; return &c }
func (r *Decision) clone() Rule   { return &Decision{} }
func (r *Reference) clone() Rule  { c := *r; return &c }

func (r *Sequence) clone() Rule {
	return &Sequence{append([]ID(nil), r.Elements...)}
}

func (r *Selection) clone() Rule {
	return &Selection{append([]ID(nil), r.Elements...)}
}

// IsNonCapturing reports whether capture name denotes a capture removed by linking.
func IsNonCapturing(name string) bool {
	return len(name) > len(NonCapturingPrefix) && name[:len(NonCapturingPrefix)] == NonCapturingPrefix
}

// Elements returns sub-rules of r in evaluation order.
func Elements(r Rule) []ID {
	switch r := r.(type) {
	case *Sequence:
		return r.Elements
	case *Selection:
		return r.Elements
	case *Repetition:
		return []ID{r.Element}
	case *Capture:
		return []ID{r.Element}
	case *Lookahead:
		return []ID{r.Element}
	case *Fill:
		if r.Element != NoID {
			return []ID{r.Element}
		}
	}
	return nil
}

// edges returns pointers to sub-rule IDs stored in r, used by rewriting passes.
func edges(r Rule) []*ID {
	var result []*ID
	switch r := r.(type) {
	case *Sequence:
		for i := range r.Elements {
			result = append(result, &r.Elements[i])
		}
	case *Selection:
		for i := range r.Elements {
			result = append(result, &r.Elements[i])
		}
	case *Repetition:
		result = append(result, &r.Element)
	case *Capture:
		result = append(result, &r.Element)
	case *Lookahead:
		result = append(result, &r.Element)
	case *Fill:
		if r.Element != NoID {
			result = append(result, &r.Element)
		}
	}
	return result
}

// Describe returns one-line description of rule payload.
func Describe(r Rule) string {
	switch r := r.(type) {
	case *Literal:
		return fmt.Sprintf("literal %q", r.Text)
	case *Terminal:
		if cp, single := r.Set.SingleRune(); single {
			return fmt.Sprintf("terminal %q", cp)
		}
		return "terminal " + r.Set.String()
	case *Pattern:
		return "pattern " + r.Class.String()
	case *Repetition:
		return "repetition " + r.Occur.String()
	case *Capture:
		return fmt.Sprintf("capture %q", r.Name)
	case *Reference:
		return fmt.Sprintf("reference %q", r.Name)
	default:
		return r.Kind().String()
	}
}
