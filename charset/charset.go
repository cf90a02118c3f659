// Package charset implements immutable Unicode code point sets used by terminal rules.
//
// A set is a list of code point ranges. A range is either an inclusion or an exclusion;
// exclusion bounds are stored bitwise-complemented, so they are negative and code point 0
// is representable. All exclusions precede all inclusions.
//
// A code point belongs to a set if any inclusion range contains it. A set containing
// exclusion ranges only accepts every code point not covered by these exclusions.
// In sets having inclusion ranges, exclusions are ignored.
package charset

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Set is an immutable code point set. A nil *Set is not valid, use Empty.
type Set struct {
	ranges []int32
	ascii  [4]uint32
}

// Empty accepts nothing and is the identity element for And.
var Empty = &Set{}

func newSet(ranges []int32) *Set {
	s := &Set{ranges: ranges}
	for c := rune(0); c < utf8.RuneSelf; c++ {
		if s.ContainsRune(c) {
			s.ascii[c>>5] |= 1 << (c & 31)
		}
	}
	return s
}

// Range returns a set accepting code points lo .. hi inclusive.
func Range(lo, hi rune) *Set {
	if lo > hi {
		lo, hi = hi, lo
	}
	return newSet([]int32{lo, hi})
}

// Char returns a set accepting single code point.
func Char(cp rune) *Set {
	return Range(cp, cp)
}

// Chars returns a set accepting any code point of s.
func Chars(s string) *Set {
	result := Empty
	for _, r := range s {
		result = result.And(Char(r))
	}
	return result
}

// Any returns a set accepting every code point.
func Any() *Set {
	return Range(0, unicode.MaxRune)
}

// split returns the index of the first inclusion bound.
func (s *Set) split() int {
	i := 0
	for i < len(s.ranges) && s.ranges[i] < 0 {
		i += 2
	}
	return i
}

// IsEmpty reports whether the set has no ranges at all.
func (s *Set) IsEmpty() bool {
	return len(s.ranges) == 0
}

// IsPureExclusion reports whether the set consists of exclusion ranges only.
func (s *Set) IsPureExclusion() bool {
	return len(s.ranges) > 0 && s.ranges[0] < 0 && s.split() == len(s.ranges)
}

// IsPureInclusion reports whether the set has no exclusion ranges.
func (s *Set) IsPureInclusion() bool {
	return len(s.ranges) == 0 || s.ranges[0] >= 0
}

// Not flips every range: inclusions become exclusions and vice versa.
// Not is an involution: s.Not().Not() accepts exactly what s accepts.
func (s *Set) Not() *Set {
	if len(s.ranges) == 0 {
		return s
	}

	sp := s.split()
	result := make([]int32, 0, len(s.ranges))
	for _, bound := range s.ranges[sp:] {
		result = append(result, ^bound)
	}
	for _, bound := range s.ranges[:sp] {
		result = append(result, ^bound)
	}
	return newSet(result)
}

// And merges two sets: exclusions of both sets followed by inclusions of both sets.
func (s *Set) And(t *Set) *Set {
	if len(s.ranges) == 0 {
		return t
	}
	if len(t.ranges) == 0 {
		return s
	}

	ssp, tsp := s.split(), t.split()
	result := make([]int32, 0, len(s.ranges)+len(t.ranges))
	result = append(result, s.ranges[:ssp]...)
	result = append(result, t.ranges[:tsp]...)
	result = append(result, s.ranges[ssp:]...)
	result = append(result, t.ranges[tsp:]...)
	return newSet(result)
}

// Union returns a set accepting code points of both sets with sorted and merged ranges.
// It is only defined for pure inclusion sets, false is returned otherwise.
func (s *Set) Union(t *Set) (*Set, bool) {
	if !s.IsPureInclusion() || !t.IsPureInclusion() {
		return nil, false
	}

	pairs := make([][2]int32, 0, (len(s.ranges)+len(t.ranges))/2)
	for _, rs := range [][]int32{s.ranges, t.ranges} {
		for i := 0; i < len(rs); i += 2 {
			pairs = append(pairs, [2]int32{rs[i], rs[i+1]})
		}
	}
	if len(pairs) == 0 {
		return Empty, true
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i][0] < pairs[j][0]
	})
	result := []int32{pairs[0][0], pairs[0][1]}
	for _, p := range pairs[1:] {
		last := len(result) - 1
		if p[0] <= result[last]+1 {
			if p[1] > result[last] {
				result[last] = p[1]
			}
		} else {
			result = append(result, p[0], p[1])
		}
	}
	return newSet(result), true
}

// decide gives the answer for a code point not found in inclusion ranges.
func decide(vetoed, pureExclusion bool) bool {
	return pureExclusion && !vetoed
}

// ContainsRune reports whether the set accepts code point cp.
func (s *Set) ContainsRune(cp rune) bool {
	vetoed := false
	rs := s.ranges
	i := 0
	for ; i < len(rs) && rs[i] < 0; i += 2 {
		if cp >= ^rs[i] && cp <= ^rs[i+1] {
			vetoed = true
		}
	}

	pureExclusion := i > 0 && i == len(rs)
	for ; i < len(rs); i += 2 {
		if cp >= rs[i] && cp <= rs[i+1] {
			return true
		}
	}

	return decide(vetoed, pureExclusion)
}

// Accept returns the byte width of UTF-8 encoded code point at buffer position pos
// if the set accepts it, or 0 otherwise.
// Invalid UTF-8 sequences are treated as U+FFFD of width 1.
func (s *Set) Accept(buffer []byte, pos int) int {
	if pos < 0 || pos >= len(buffer) {
		return 0
	}

	b := buffer[pos]
	if b < utf8.RuneSelf {
		if s.ascii[b>>5]&(1<<(b&31)) != 0 {
			return 1
		}
		return 0
	}

	cp, width := utf8.DecodeRune(buffer[pos:])
	if s.ContainsRune(cp) {
		return width
	}
	return 0
}

// Contains reports whether the set accepts code point at buffer position pos.
func (s *Set) Contains(buffer []byte, pos int) bool {
	return s.Accept(buffer, pos) > 0
}

// SingleRune returns the only code point accepted by a single-point inclusion set.
func (s *Set) SingleRune() (rune, bool) {
	if len(s.ranges) == 2 && s.ranges[0] >= 0 && s.ranges[0] == s.ranges[1] {
		return s.ranges[0], true
	}
	return 0, false
}

func writeRune(b *strings.Builder, r rune) {
	switch {
	case r == '-' || r == '[' || r == ']' || r == '\\' || r == '^':
		b.WriteByte('\\')
		b.WriteRune(r)
	case unicode.IsPrint(r) && r != ' ':
		b.WriteRune(r)
	default:
		b.WriteString(`\u{`)
		b.WriteString(strings.ToUpper(hex(r)))
		b.WriteByte('}')
	}
}

func hex(r rune) string {
	const digits = "0123456789abcdef"
	if r == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for r > 0 {
		i--
		buf[i] = digits[r&15]
		r >>= 4
	}
	return string(buf[i:])
}

func writeRange(b *strings.Builder, lo, hi rune) {
	writeRune(b, lo)
	if hi != lo {
		b.WriteByte('-')
		writeRune(b, hi)
	}
}

// String returns set description like [a-z0-9] or [^"\\]; mixed sets list exclusions after ^ and inclusions after |.
func (s *Set) String() string {
	b := &strings.Builder{}
	b.WriteByte('[')
	sp := s.split()
	if sp > 0 {
		b.WriteByte('^')
		for i := 0; i < sp; i += 2 {
			writeRange(b, ^s.ranges[i], ^s.ranges[i+1])
		}
		if sp < len(s.ranges) {
			b.WriteByte('|')
		}
	}
	for i := sp; i < len(s.ranges); i += 2 {
		writeRange(b, s.ranges[i], s.ranges[i+1])
	}
	b.WriteByte(']')
	return b.String()
}
