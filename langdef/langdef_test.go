package langdef

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ava12/rdx"
	"github.com/ava12/rdx/grammar"
	. "github.com/ava12/rdx/internal/test"
	"github.com/ava12/rdx/parser"
	"github.com/ava12/rdx/source"
)

const listGrammar = `
start: list
rules:
  list:
    seq:
      - lit: "["
      - cut: true
      - _ws
      - opt: {seq: [item, {many: {seq: [_ws, {lit: ","}, _ws, item]}}]}
      - _ws
      - lit: "]"
  item:
    alt: [number, word, list]
  number:
    some: {range: ["0", "9"]}
  word:
    seq:
      - lit: '"'
      - many: {not: {chars: "\"\\"}}
      - lit: '"'
  _ws:
    pattern: may-space
`

const exprGrammar = `
Expr = Term { ( "+" | "-" ) Term } .
Term = Factor { ( "*" | "/" ) Factor } .
Factor = number | "(" Expr ")" .
number = digit { digit } .
digit = "0" … "9" .
`

func parse(t *testing.T, l *Language, input string) (*parser.Parser, error) {
	t.Helper()
	p, e := parser.New(l.Grammar)
	ExpectNoError(t, e)
	_, e = p.Parse(context.Background(), source.New("input", []byte(input)), l.Start)
	return p, e
}

func rootNames(t *testing.T, l *Language, input string) string {
	t.Helper()
	p, e := parser.New(l.Grammar)
	ExpectNoError(t, e)
	tr, e := p.Parse(context.Background(), source.New("input", []byte(input)), l.Start)
	ExpectNoError(t, e)

	var names []string
	for _, i := range tr.Roots() {
		names = append(names, l.Grammar.CaptureName(tr.Rule(i)))
		for _, c := range tr.Children(i) {
			names = append(names, l.Grammar.CaptureName(tr.Rule(c)))
		}
	}
	return strings.Join(names, " ")
}

func TestYamlGrammar(t *testing.T) {
	l, e := FromYAML("list", []byte(listGrammar))
	ExpectNoError(t, e)
	ExpectString(t, "list", l.Start)
	ExpectString(t, "list,item,number,word,_ws", strings.Join(l.Grammar.Names(), ","))

	samples := []struct {
		input string
		code  int
	}{
		{`[]`, 0},
		{`[1, "a b", [2, []]]`, 0},
		{`[1]x`, parser.IncompleteMatchError},
		{`[ 12 ,"x\"" ]`, parser.CommittedError},
		{`[1 2]`, parser.CommittedError},
		{`1`, parser.UnexpectedInputError},
	}
	for i, s := range samples {
		_, e := parse(t, l, s.input)
		if s.code == 0 {
			if e != nil {
				t.Errorf("sample #%d: unexpected error: %s", i, e)
			}
			continue
		}
		ExpectErrorCode(t, s.code, e)
	}

	ExpectString(t, "list item item", rootNames(t, l, `[1, "a"]`))
}

func TestYamlRepetitionAndFill(t *testing.T) {
	doc := `
rules:
  doc:
    seq:
      - rep: {chars: ab}
        min: 2
        max: 3
      - as: comment
        rule: {seq: [{lit: "/*"}, {fill: true}, {lit: "*/"}]}
      - set: [{range: [U+41, 0x43]}, {chars: "!"}]
`
	l, e := FromYAML("doc", []byte(doc))
	ExpectNoError(t, e)
	ExpectString(t, "doc", l.Start)

	_, e = parse(t, l, "aba/* x */B")
	ExpectNoError(t, e)
	_, e = parse(t, l, "ab/**/!")
	ExpectNoError(t, e)
	_, e = parse(t, l, "a/**/A")
	ExpectErrorCode(t, parser.UnexpectedInputError, e)
	_, e = parse(t, l, "abab/**/A")
	ExpectErrorCode(t, parser.UnexpectedInputError, e)
	ExpectString(t, "doc comment", rootNames(t, l, "ab/* */C"))
}

func TestYamlNestedRepetition(t *testing.T) {
	doc := `
rules:
  num:
    opt: {some: {range: ["0", "9"]}}
  pairs:
    rep: {seq: [{some: {lit: a}}, {lit: b}]}
    min: 2
  bounded:
    rep: {opt: {lit: x}}
    max: 2
`
	l, e := FromYAML("nested", []byte(doc))
	ExpectNoError(t, e)
	p, e := parser.New(l.Grammar)
	ExpectNoError(t, e)

	samples := []struct {
		start, input string
		res          int
	}{
		{"num", "123", 3},
		{"num", "x", 0},
		{"pairs", "aabab", 5},
		{"pairs", "aab", parser.Encode(3)},
		{"bounded", "xxx", 2},
	}
	for i, s := range samples {
		res, _, e := p.Match(context.Background(), []byte(s.input), s.start)
		ExpectNoError(t, e)
		if res != s.res {
			t.Errorf("sample #%d (%s %q): expecting %d, got %d", i, s.start, s.input, s.res, res)
		}
	}
}

func TestYamlLookahead(t *testing.T) {
	l, e := FromYAML("kw", []byte("rules: {kw: {seq: [{lit: if}, {look: {not: {range: [a, z]}}}]}}"))
	ExpectNoError(t, e)
	p, e := parser.New(l.Grammar)
	ExpectNoError(t, e)

	res, _, e := p.Match(context.Background(), []byte("if("), "kw")
	ExpectNoError(t, e)
	ExpectInt(t, 2, res)
	res, _, e = p.Match(context.Background(), []byte("ifx"), "kw")
	ExpectNoError(t, e)
	ExpectInt(t, parser.Encode(2), res)
}

func TestYamlErrors(t *testing.T) {
	samples := []struct {
		doc  string
		code int
	}{
		{"", NoRulesError},
		{"rules: {}", NoRulesError},
		{"rules: [", YamlSyntaxError},
		{"- a", WrongDocumentError},
		{"foo: 1", UnknownKeyError},
		{"start: [a]", WrongNodeError},
		{"rules: [a]", WrongNodeError},
		{"rules: {a: {lit: x, chars: y}}", WrongNodeError},
		{"rules: {a: {lit: x, min: 1}}", UnknownKeyError},
		{"rules: {a: {foo: x}}", WrongNodeError},
		{"rules: {a: {pattern: tabs}}", WrongValueError},
		{"rules: {a: {range: [a, zz]}}", WrongValueError},
		{"rules: {a: {range: [a]}}", WrongNodeError},
		{"rules: {a: {as: x}}", WrongNodeError},
		{"rules: {a: {not: {lit: x}}}", WrongNodeError},
		{"rules: {a: {rep: {lit: x}, min: two}}", WrongValueError},
		{"rules: {a: {rep: {lit: x}, min: 3, max: 1}}", grammar.WrongOccurError},
		{"rules: {a: b}", grammar.UnknownRuleError},
		{"rules: {a: {seq: [{lit: x}, {fill: true}]}}", grammar.UnboundFillError},
		{"rules: {a: {set: []}}", WrongNodeError},
		{"rules: {a: {lit: x}, b: {lit: y}, a: {lit: z}}", DuplicateRuleError},
	}

	for i, s := range samples {
		_, e := FromYAML("sample", []byte(s.doc))
		if e == nil {
			t.Errorf("sample #%d: expecting error code %d, got success", i, s.code)
			continue
		}
		var re *rdx.Error
		if !errors.As(e, &re) || re.Code != s.code {
			t.Errorf("sample #%d: expecting error code %d, got %v", i, s.code, e)
		}
	}
}

func TestYamlErrorPosition(t *testing.T) {
	_, e := FromYAML("sample", []byte("rules:\n  a:\n    pattern: tabs\n"))
	var re *rdx.Error
	Assert(t, errors.As(e, &re), "expecting rdx.Error, got %v", e)
	ExpectInt(t, WrongValueError, re.Code)
	ExpectInt(t, 3, re.Line)
	ExpectInt(t, 14, re.Col)
	ExpectString(t, "sample", re.SourceName)
}

func TestEbnfGrammar(t *testing.T) {
	l, e := FromEBNF("expr", strings.NewReader(exprGrammar), "Expr")
	ExpectNoError(t, e)
	ExpectString(t, "Expr", l.Start)
	ExpectString(t, "Expr,Term,Factor,number,digit", strings.Join(l.Grammar.Names(), ","))

	for _, input := range []string{"1", "2*(3+41)", "(((7)))-8/9"} {
		_, e = parse(t, l, input)
		ExpectNoError(t, e)
	}
	_, e = parse(t, l, "2*(3+)")
	ExpectErrorCode(t, parser.IncompleteMatchError, e)
	_, e = parse(t, l, "+")
	ExpectErrorCode(t, parser.UnexpectedInputError, e)
	ExpectString(t, "Expr Term Term", rootNames(t, l, "1+2"))
}

func TestEbnfErrors(t *testing.T) {
	samples := []struct {
		text, start string
		code        int
	}{
		{`Expr = "x" `, "", EbnfError},
		{`Expr = Term .`, "Expr", EbnfError},
		{`Expr = "x" . Unused = "y" .`, "Expr", EbnfError},
		{`Expr = Term .`, "", grammar.UnknownRuleError},
	}

	for i, s := range samples {
		_, e := FromEBNF("sample", strings.NewReader(s.text), s.start)
		var re *rdx.Error
		if !errors.As(e, &re) || re.Code != s.code {
			t.Errorf("sample #%d: expecting error code %d, got %v", i, s.code, e)
		}
	}

	l, e := FromEBNF("sample", strings.NewReader(`Expr = "x" . Unused = "y" .`), "")
	ExpectNoError(t, e)
	ExpectString(t, "Expr", l.Start)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"list.yaml": listGrammar,
		"expr.ebnf": exprGrammar,
		"expr.txt":  exprGrammar,
	}
	for name, content := range files {
		ExpectNoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	l, e := Load(filepath.Join(dir, "list.yaml"), "item")
	ExpectNoError(t, e)
	ExpectString(t, "item", l.Start)

	l, e = Load(filepath.Join(dir, "expr.ebnf"), "Expr")
	ExpectNoError(t, e)
	_, e = parse(t, l, "1+2")
	ExpectNoError(t, e)

	_, e = Load(filepath.Join(dir, "expr.txt"), "")
	ExpectErrorCode(t, UnknownFormatError, e)
}
