package langdef

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ava12/rdx/charset"
	"github.com/ava12/rdx/grammar"
)

var primaryKeys = map[string]bool{
	"lit": true, "chars": true, "range": true, "any": true, "not": true, "set": true,
	"pattern": true, "seq": true, "alt": true, "opt": true, "many": true, "some": true,
	"rep": true, "as": true, "ref": true, "look": true, "fill": true, "cut": true,
}

var secondaryKeys = map[string]string{
	"min":  "rep",
	"max":  "rep",
	"rule": "as",
}

var setKeys = map[string]bool{"chars": true, "range": true, "any": true, "not": true, "set": true}

type yamlLoader struct {
	name string
	b    *grammar.Builder
}

// FromYAML loads YAML rule document, name is used in error messages.
func FromYAML(name string, data []byte) (*Language, error) {
	var doc yaml.Node
	if e := yaml.Unmarshal(data, &doc); e != nil {
		return nil, yamlSyntaxError(name, e)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, noRulesError(name)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, wrongDocumentError(name, root)
	}

	l := &yamlLoader{name, grammar.NewBuilder()}
	start := ""
	var e error
	for i := 0; i+1 < len(root.Content) && e == nil; i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "start":
			start, e = l.scalar(value, "start rule name")
		case "rules":
			e = l.rules(value)
		default:
			e = unknownKeyError(name, key)
		}
	}
	if e != nil {
		return nil, e
	}

	return newLanguage(name, start, l.b)
}

func (l *yamlLoader) scalar(n *yaml.Node, what string) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", wrongNodeError(l.name, n, what)
	}
	return n.Value, nil
}

func (l *yamlLoader) rules(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return wrongNodeError(l.name, n, "mapping of rules")
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		if l.b.IsDefined(key.Value) {
			return duplicateRuleError(l.name, key)
		}
		id, e := l.rule(value)
		if e != nil {
			return e
		}
		l.b.Define(key.Value, id)
		if e = l.b.Err(); e != nil {
			return e
		}
	}
	return nil
}

// fields validates keys of a rule mapping and returns its primary key and all values by key.
func (l *yamlLoader) fields(n *yaml.Node) (primary string, values map[string]*yaml.Node, e error) {
	values = make(map[string]*yaml.Node, len(n.Content)/2)
	var keys []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		values[key.Value] = n.Content[i+1]
		keys = append(keys, key)
	}

	for _, key := range keys {
		if primaryKeys[key.Value] {
			if primary != "" {
				return "", nil, wrongNodeError(l.name, key, "single rule key, got "+primary+" and "+key.Value)
			}
			primary = key.Value
		}
	}
	if primary == "" {
		return "", nil, wrongNodeError(l.name, n, "rule")
	}

	for _, key := range keys {
		if !primaryKeys[key.Value] && secondaryKeys[key.Value] != primary {
			return "", nil, unknownKeyError(l.name, key)
		}
	}
	return primary, values, nil
}

func (l *yamlLoader) list(n *yaml.Node) ([]grammar.ID, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, wrongNodeError(l.name, n, "list of rules")
	}

	ids := make([]grammar.ID, 0, len(n.Content))
	for _, item := range n.Content {
		id, e := l.rule(item)
		if e != nil {
			return nil, e
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (l *yamlLoader) integer(n *yaml.Node, what string) (int, error) {
	var v int
	if n.Kind != yaml.ScalarNode || n.Decode(&v) != nil {
		return 0, wrongValueError(l.name, n, what)
	}
	return v, nil
}

func (l *yamlLoader) rule(n *yaml.Node) (grammar.ID, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return l.rule(n.Alias)
	case yaml.ScalarNode:
		if n.Value == "" {
			return grammar.NoID, wrongValueError(l.name, n, "rule name")
		}
		return l.b.Ref(n.Value), nil
	case yaml.MappingNode:
	default:
		return grammar.NoID, wrongNodeError(l.name, n, "rule")
	}

	primary, values, e := l.fields(n)
	if e != nil {
		return grammar.NoID, e
	}
	value := values[primary]
	b := l.b

	if setKeys[primary] {
		set, e := l.charset(primary, value)
		if e != nil {
			return grammar.NoID, e
		}
		return b.Terminal(set), nil
	}

	switch primary {
	case "lit", "ref", "pattern", "as":
		text, e := l.scalar(value, primary+" value")
		if e != nil {
			return grammar.NoID, e
		}
		return l.named(primary, text, value, values)

	case "seq", "alt":
		ids, e := l.list(value)
		if e != nil {
			return grammar.NoID, e
		}
		if primary == "seq" {
			return b.Seq(ids...), nil
		}
		return b.Select(ids...), nil

	case "fill":
		return b.Fill(), nil

	case "cut":
		return b.Decision(), nil
	}

	id, e := l.rule(value)
	if e != nil {
		return grammar.NoID, e
	}
	if primary != "look" {
		// Occurs rebounds a Repetition, nested one must keep its own bound.
		id = b.Seq(id)
	}

	switch primary {
	case "opt":
		return b.Optional(id), nil
	case "many":
		return b.Many(id), nil
	case "some":
		return b.Some(id), nil
	case "look":
		return b.Lookahead(id), nil
	}

	min, max := 0, -1
	if n, has := values["min"]; has {
		if min, e = l.integer(n, "minimum"); e != nil {
			return grammar.NoID, e
		}
	}
	if n, has := values["max"]; has {
		if max, e = l.integer(n, "maximum"); e != nil {
			return grammar.NoID, e
		}
	}
	id = b.Occurs(id, grammar.Between(min, max))
	return id, b.Err()
}

// named handles rules having scalar primary value.
func (l *yamlLoader) named(primary, text string, n *yaml.Node, values map[string]*yaml.Node) (grammar.ID, error) {
	b := l.b
	switch primary {
	case "lit":
		return b.Literal(text), nil

	case "ref":
		if text == "" {
			return grammar.NoID, wrongValueError(l.name, n, "rule name")
		}
		return b.Ref(text), nil

	case "pattern":
		class, valid := grammar.ParsePatternClass(text)
		if !valid {
			return grammar.NoID, wrongValueError(l.name, n, "pattern class")
		}
		return b.Pattern(class), nil
	}

	body, has := values["rule"]
	if !has {
		return grammar.NoID, wrongNodeError(l.name, n, "rule key for capture "+text)
	}
	if text == "" {
		return grammar.NoID, wrongValueError(l.name, n, "capture name")
	}
	id, e := l.rule(body)
	if e != nil {
		return grammar.NoID, e
	}
	return b.As(id, text), nil
}

// setNode converts a mapping with single character set key.
func (l *yamlLoader) setNode(n *yaml.Node) (*charset.Set, error) {
	if n.Kind == yaml.AliasNode {
		return l.setNode(n.Alias)
	}
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 || !setKeys[n.Content[0].Value] {
		return nil, wrongNodeError(l.name, n, "character set")
	}
	return l.charset(n.Content[0].Value, n.Content[1])
}

func (l *yamlLoader) charset(key string, n *yaml.Node) (*charset.Set, error) {
	switch key {
	case "chars":
		if n.Kind != yaml.ScalarNode || n.Value == "" {
			return nil, wrongValueError(l.name, n, "character list")
		}
		return charset.Chars(n.Value), nil

	case "range":
		if n.Kind != yaml.SequenceNode || len(n.Content) != 2 {
			return nil, wrongNodeError(l.name, n, "[low, high] range")
		}
		lo, e := l.codePoint(n.Content[0])
		if e != nil {
			return nil, e
		}
		hi, e := l.codePoint(n.Content[1])
		if e != nil {
			return nil, e
		}
		return charset.Range(lo, hi), nil

	case "any":
		return charset.Any(), nil

	case "not":
		set, e := l.setNode(n)
		if e != nil {
			return nil, e
		}
		return set.Not(), nil
	}

	if n.Kind != yaml.SequenceNode {
		return nil, wrongNodeError(l.name, n, "list of character sets")
	}
	result := charset.Empty
	for _, item := range n.Content {
		set, e := l.setNode(item)
		if e != nil {
			return nil, e
		}
		result = result.And(set)
	}
	if result.IsEmpty() {
		return nil, wrongNodeError(l.name, n, "non-empty list of character sets")
	}
	return result, nil
}

// codePoint accepts a single character, a number, or U+XXXX notation.
func (l *yamlLoader) codePoint(n *yaml.Node) (rune, error) {
	if n.Kind != yaml.ScalarNode {
		return 0, wrongNodeError(l.name, n, "code point")
	}

	v := n.Value
	if utf8.RuneCountInString(v) == 1 {
		r, _ := utf8.DecodeRuneInString(v)
		return r, nil
	}

	var cp int64
	var e error
	if strings.HasPrefix(v, "U+") || strings.HasPrefix(v, "u+") {
		cp, e = strconv.ParseInt(v[2:], 16, 32)
	} else {
		cp, e = strconv.ParseInt(v, 0, 32)
	}
	if e != nil || cp < 0 || cp > utf8.MaxRune {
		return 0, wrongValueError(l.name, n, "code point")
	}
	return rune(cp), nil
}
