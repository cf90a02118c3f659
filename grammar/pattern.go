package grammar

// PatternClass selects whitespace matched by Pattern rule.
type PatternClass int

const (
	// MayBeIndent matches zero or more spaces and tabs, never fails.
	MayBeIndent PatternClass = iota
	// MustBeIndent matches one or more spaces and tabs.
	MustBeIndent
	// MayBeWhitespace matches zero or more whitespace bytes including line breaks, never fails.
	MayBeWhitespace
	// MustBeWhitespace matches one or more whitespace bytes.
	MustBeWhitespace
	// MustBeLinebreak matches optional indent, one or more CR/LF bytes, and optional indent.
	// End of input right after the leading indent also satisfies it.
	MustBeLinebreak
)

var patternNames = [...]string{"may-indent", "must-indent", "may-space", "must-space", "linebreak"}

func (c PatternClass) String() string {
	if c < 0 || int(c) >= len(patternNames) {
		return "unknown"
	}
	return patternNames[c]
}

// ParsePatternClass converts pattern class name (as returned by String) to class.
func ParsePatternClass(name string) (PatternClass, bool) {
	for i, n := range patternNames {
		if n == name {
			return PatternClass(i), true
		}
	}
	return 0, false
}

// IsIndent reports whether b is a space or a tab.
func IsIndent(b byte) bool {
	return b == ' ' || b == '\t'
}

// IsWhitespace reports whether b is an ASCII whitespace byte.
func IsWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// IsLinebreak reports whether b is CR or LF.
func IsLinebreak(b byte) bool {
	return b == '\n' || b == '\r'
}
