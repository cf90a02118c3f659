package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ava12/rdx/grammar"
	"github.com/ava12/rdx/internal/config"
	"github.com/ava12/rdx/parser"
	"github.com/ava12/rdx/tree"
)

const excerptLen = 32

type styles struct {
	rule, span, text, err, ok lipgloss.Style
}

func newStyles(color bool) *styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &styles{plain, plain, plain, plain, plain}
	}

	return &styles{
		rule: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		span: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		text: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		err:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		ok:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	}
}

type renderer struct {
	w       io.Writer
	styles  *styles
	grammar *grammar.Grammar
	content []byte
}

func excerpt(text []byte) string {
	if len(text) <= excerptLen {
		return strconv.Quote(string(text))
	}

	cut := excerptLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return strconv.Quote(string(text[:cut])) + "..."
}

func span(t *tree.Tree, i int) string {
	return fmt.Sprintf("[%d:%d]", t.Start(i), t.End(i))
}

func (r *renderer) tree(t *tree.Tree, format string) {
	if t == nil {
		return
	}

	switch format {
	case config.TreeIndented:
		t.Walk(func(i int) bool {
			fmt.Fprintf(r.w, "%s%s %s %s\n", strings.Repeat("  ", t.Level(i)),
				r.styles.rule.Render(r.grammar.CaptureName(t.Rule(i))), r.styles.span.Render(span(t, i)),
				r.styles.text.Render(excerpt(t.Text(i, r.content))))
			return true
		})

	case config.TreeFlat:
		for i := 0; i < t.Count(); i++ {
			fmt.Fprintf(r.w, "%d\t%d\t%s\t%d\t%d\n", i, t.Level(i), r.grammar.CaptureName(t.Rule(i)), t.Start(i), t.End(i))
		}
	}
}

func (r *renderer) failure(f *parser.Failure) {
	fmt.Fprintln(r.w, r.styles.err.Render(f.Error()))
}
