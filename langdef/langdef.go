package langdef

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/ava12/rdx/grammar"
	"github.com/ava12/rdx/source"
)

var log = commonlog.GetLogger("rdx.langdef")

// Language is a loaded grammar together with its start rule.
type Language struct {
	Name    string
	Start   string
	Grammar *grammar.Grammar
}

func newLanguage(name, start string, b *grammar.Builder) (*Language, error) {
	g, e := b.Finish()
	if e != nil {
		return nil, e
	}

	names := g.Names()
	if len(names) == 0 {
		return nil, noRulesError(name)
	}
	if start == "" {
		start = names[0]
	}

	log.Infof("loaded %s: %d named rules, %d nodes, start rule %q", name, len(names), g.Len(), start)
	return &Language{name, start, g}, nil
}

// Load reads grammar file, the format is detected by file extension: .yaml, .yml, or .ebnf.
// Non-empty start overrides the start rule of the description.
func Load(fileName, start string) (*Language, error) {
	src, e := source.Load(fileName)
	if e != nil {
		return nil, e
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		l, e := FromYAML(src.Name(), src.Content())
		if e == nil && start != "" {
			l.Start = start
		}
		return l, e

	case ".ebnf":
		return FromEBNF(src.Name(), bytes.NewReader(src.Content()), start)
	}

	return nil, unknownFormatError(fileName)
}
