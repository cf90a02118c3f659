package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava12/rdx/internal/config"
	"github.com/ava12/rdx/langdef"
	"github.com/ava12/rdx/parser"
	"github.com/ava12/rdx/source"
	"github.com/ava12/rdx/tree"
)

func newCheckCmd(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "check <grammar>",
		Short: "Load and link a grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, e := a.load(args[0])
			if e != nil {
				return e
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s, %d rules, start rule %s\n",
				l.Name, a.styles.ok.Render("ok"), len(l.Grammar.Names()), a.styles.rule.Render(l.Start))
			if dump {
				return l.Grammar.Dump(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "list linked rules")
	return cmd
}

// parseFile returns a non-nil tree for *parser.Failure errors.
func (a *app) parseFile(cmd *cobra.Command, l *langdef.Language, fileName string) (*source.Source, *tree.Tree, error) {
	p, e := parser.New(l.Grammar, a.cfg.ParserOptions()...)
	if e != nil {
		return nil, nil, e
	}

	src, e := source.Load(fileName)
	if e != nil {
		return nil, nil, e
	}

	t, e := p.Parse(cmd.Context(), src, l.Start)
	return src, t, e
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <grammar> <file>...",
		Short: "Parse files, report the first syntax error of each file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, e := a.load(args[0])
			if e != nil {
				return e
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, fileName := range args[1:] {
				_, t, e := a.parseFile(cmd, l, fileName)
				if e == nil {
					fmt.Fprintf(out, "%s: %s, %d tree entries\n", fileName, a.styles.ok.Render("ok"), t.Count())
					continue
				}

				var f *parser.Failure
				if !errors.As(e, &f) {
					return e
				}
				failed++
				fmt.Fprintln(out, a.styles.err.Render(f.Error()))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args)-1)
			}
			return nil
		},
	}
}

func newTreeCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tree <grammar> <file>",
		Short: "Parse a file and print its parse tree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Tree
			}
			switch format {
			case config.TreeIndented, config.TreeFlat, config.TreeNone:
			default:
				return fmt.Errorf("unknown tree format %q", format)
			}

			l, e := a.load(args[0])
			if e != nil {
				return e
			}

			src, t, e := a.parseFile(cmd, l, args[1])
			var f *parser.Failure
			if e != nil && !errors.As(e, &f) {
				return e
			}

			r := &renderer{cmd.OutOrStdout(), a.styles, l.Grammar, src.Content()}
			if f != nil {
				r.failure(f)
			}
			r.tree(t, format)
			if f != nil {
				return fmt.Errorf("%s: parsing failed", args[1])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "tree format: indented, flat, or none")
	return cmd
}
