/*
Package rdx is a general-purpose recursive-descent parsing engine.

Consists of subpackages:
  - charset: Unicode code point range sets used by terminal rules;
  - grammar: rule data model, grammar builder, and the linking pass that turns a raw rule graph into a finished grammar;
  - langdef: loaders converting YAML rule documents and EBNF grammars to finished grammars;
  - parser: the matching engine and the top-level parse driver;
  - source: input buffer with line/column information;
  - tree: compact index-based parse tree and read-only traversal functions;
  - cmd/rdx: console utility checking grammars and parsing files.

Typical usage is:

1. Build a grammar either with grammar.Builder or using langdef loaders.
Rules reference each other by name, recursive grammars are fine.

2. Finish the builder once. The finished grammar is immutable and can be shared.

3. Create a parser for the grammar and parse any number of sources, each parse returns its own parse tree.
*/
package rdx

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LinkErrors   = 1   // used by grammar
	SyntaxErrors = 101 // used by parser for input mismatches
	ParserErrors = 201 // used by parser for engine failures
	LoadErrors   = 301 // used by langdef
	ConfigErrors = 401 // used by command line utility
)

// Error is the error type used by rdx subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos implements this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
