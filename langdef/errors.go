package langdef

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ava12/rdx"
)

const (
	YamlSyntaxError = iota + rdx.LoadErrors
	WrongDocumentError
	WrongNodeError
	UnknownKeyError
	WrongValueError
	EbnfError
	UnknownFormatError
	NoRulesError
	DuplicateRuleError
)

func nodeError(name string, n *yaml.Node, code int, msg string, params ...any) *rdx.Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return rdx.NewError(code, msg, name, n.Line, n.Column)
}

func yamlSyntaxError(name string, e error) *rdx.Error {
	return rdx.FormatError(YamlSyntaxError, "%s: %s", name, strings.TrimPrefix(e.Error(), "yaml: "))
}

func wrongDocumentError(name string, n *yaml.Node) *rdx.Error {
	return nodeError(name, n, WrongDocumentError, "grammar document must be a mapping")
}

func wrongNodeError(name string, n *yaml.Node, expected string) *rdx.Error {
	return nodeError(name, n, WrongNodeError, "expecting %s", expected)
}

func unknownKeyError(name string, n *yaml.Node) *rdx.Error {
	return nodeError(name, n, UnknownKeyError, "unknown key %q", n.Value)
}

func wrongValueError(name string, n *yaml.Node, what string) *rdx.Error {
	return nodeError(name, n, WrongValueError, "wrong %s %q", what, n.Value)
}

func ebnfError(e error) *rdx.Error {
	return rdx.FormatError(EbnfError, "%s", e)
}

func unknownFormatError(fileName string) *rdx.Error {
	return rdx.FormatError(UnknownFormatError, "cannot detect grammar format of %s", fileName)
}

func duplicateRuleError(name string, n *yaml.Node) *rdx.Error {
	return nodeError(name, n, DuplicateRuleError, "rule %q is already defined", n.Value)
}

func noRulesError(name string) *rdx.Error {
	return rdx.FormatError(NoRulesError, "%s: no rules defined", name)
}
