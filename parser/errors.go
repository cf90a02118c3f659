package parser

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/ava12/rdx"
	"github.com/ava12/rdx/source"
)

// Input mismatch codes, returned inside Failure.
const (
	UnexpectedInputError = iota + rdx.SyntaxErrors
	UnexpectedEoiError
	IncompleteMatchError
	CommittedError
)

// Engine failure codes.
const (
	UnknownStartError = iota + rdx.ParserErrors
	DepthLimitError
	StepLimitError
	CanceledError
	WrongOptionError
)

// describeInput returns a quoted code point at pos or "end of input".
func describeInput(buf []byte, pos int) string {
	if pos >= len(buf) {
		return "end of input"
	}
	r, width := utf8.DecodeRune(buf[pos:])
	if r == utf8.RuneError && width == 1 {
		return fmt.Sprintf("byte 0x%02x", buf[pos])
	}
	return strconv.QuoteRune(r)
}

func mismatchError(src *source.Source, pos int) *rdx.Error {
	buf := src.Content()
	if pos >= len(buf) {
		return rdx.FormatErrorPos(src.SourcePos(pos), UnexpectedEoiError, "unexpected end of input")
	}
	return rdx.FormatErrorPos(src.SourcePos(pos), UnexpectedInputError, "unexpected %s", describeInput(buf, pos))
}

func incompleteMatchError(src *source.Source, pos int) *rdx.Error {
	return rdx.FormatErrorPos(src.SourcePos(pos), IncompleteMatchError, "unexpected %s, expecting end of input", describeInput(src.Content(), pos))
}

func committedError(src *source.Source, pos, decisionPos int) *rdx.Error {
	line, col := src.LineCol(decisionPos)
	return rdx.FormatErrorPos(src.SourcePos(pos), CommittedError, "unexpected %s after line %d col %d", describeInput(src.Content(), pos), line, col)
}

func rawCommittedError(pos, decisionPos int) *rdx.Error {
	return rdx.FormatError(CommittedError, "mismatch at offset %d after decision at offset %d", pos, decisionPos)
}

func unknownStartError(name string) *rdx.Error {
	return rdx.FormatError(UnknownStartError, "unknown start rule %q", name)
}

func depthLimitError(limit, pos int) *rdx.Error {
	return rdx.FormatError(DepthLimitError, "recursion depth limit %d exceeded at offset %d", limit, pos)
}

func stepLimitError(limit, pos int) *rdx.Error {
	return rdx.FormatError(StepLimitError, "step limit %d exceeded at offset %d", limit, pos)
}

func canceledError(cause error, pos int) *rdx.Error {
	return rdx.FormatError(CanceledError, "parsing canceled at offset %d: %s", pos, cause)
}

func wrongOptionError(name string, value int) *rdx.Error {
	return rdx.FormatError(WrongOptionError, "wrong %s value %d", name, value)
}
