package grammar

import (
	"strings"

	"github.com/ava12/rdx"
)

const (
	UnknownRuleError = iota + rdx.LinkErrors
	RuleDefinedError
	WrongIDError
	WrongOccurError
	EmptyNameError
	UnboundFillError
	ReferenceCycleError
	UnresolvedReferenceError
)

func unknownRuleError(name string) *rdx.Error {
	return rdx.FormatError(UnknownRuleError, "undefined rule %q", name)
}

func ruleDefinedError(name string) *rdx.Error {
	return rdx.FormatError(RuleDefinedError, "rule %q already defined", name)
}

func wrongIDError(id ID) *rdx.Error {
	return rdx.FormatError(WrongIDError, "unknown rule #%d", id)
}

func wrongOccurError(o Occur) *rdx.Error {
	return rdx.FormatError(WrongOccurError, "wrong repetition bounds {%d,%d}", o.Min, o.Max)
}

func emptyNameError() *rdx.Error {
	return rdx.FormatError(EmptyNameError, "empty capture name")
}

func unboundFillError() *rdx.Error {
	return rdx.FormatError(UnboundFillError, "fill must be followed by a sequence element")
}

func referenceCycleError(names []string) *rdx.Error {
	return rdx.FormatError(ReferenceCycleError, "rules reference each other without matching anything: "+strings.Join(names, ", "))
}

func unresolvedReferenceError(name string) *rdx.Error {
	return rdx.FormatError(UnresolvedReferenceError, "reference %q left after linking", name)
}
