package langdef

import (
	"io"
	"sort"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/ava12/rdx/grammar"
)

// FromEBNF loads EBNF grammar. If start is not empty, the grammar is verified
// (all productions defined and reachable from start) and start becomes the start rule,
// otherwise the first production is used.
func FromEBNF(name string, r io.Reader, start string) (*Language, error) {
	eg, e := ebnf.Parse(name, r)
	if e != nil {
		return nil, ebnfError(e)
	}
	if start != "" {
		if e = ebnf.Verify(eg, start); e != nil {
			return nil, ebnfError(e)
		}
	}

	prods := make([]*ebnf.Production, 0, len(eg))
	for _, p := range eg {
		prods = append(prods, p)
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Pos().Offset < prods[j].Pos().Offset
	})

	b := grammar.NewBuilder()
	for _, p := range prods {
		b.Define(p.Name.String, convertExpr(b, p.Expr))
	}
	return newLanguage(name, start, b)
}

// convertExpr wraps option and repetition bodies in sequences, so [{x}] is not rewrapped as [x].
func convertExpr(b *grammar.Builder, x ebnf.Expression) grammar.ID {
	switch x := x.(type) {
	case nil:
		return b.Seq()

	case *ebnf.Name:
		return b.Ref(x.String)

	case *ebnf.Token:
		return b.Literal(x.String)

	case *ebnf.Range:
		lo, _ := utf8.DecodeRuneInString(x.Begin.String)
		hi, _ := utf8.DecodeRuneInString(x.End.String)
		return b.Range(lo, hi)

	case ebnf.Alternative:
		return b.Select(convertList(b, x)...)

	case ebnf.Sequence:
		return b.Seq(convertList(b, x)...)

	case *ebnf.Group:
		return convertExpr(b, x.Body)

	case *ebnf.Option:
		return b.Optional(b.Seq(convertExpr(b, x.Body)))

	case *ebnf.Repetition:
		return b.Many(b.Seq(convertExpr(b, x.Body)))
	}

	return b.Select()
}

func convertList(b *grammar.Builder, xs []ebnf.Expression) []grammar.ID {
	ids := make([]grammar.ID, len(xs))
	for i, x := range xs {
		ids[i] = convertExpr(b, x)
	}
	return ids
}
