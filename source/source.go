// Package source defines the input buffer matched by the parser.
package source

import (
	"bytes"
	"os"
	"sort"
	"unicode/utf8"
)

// Source is a named read-only byte buffer.
// Line starts are computed once, so a Source can be shared between concurrent parses.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates a source, content is not copied and must not be modified afterwards.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

// Load reads the whole file into a new source named after the file.
func Load(fileName string) (*Source, error) {
	content, e := os.ReadFile(fileName)
	if e != nil {
		return nil, e
	}

	return New(fileName, content), nil
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

// Limit returns the length of the buffer, valid positions are 0 .. Limit() - 1.
func (s *Source) Limit() int {
	return len(s.content)
}

// Get returns the byte at pos or 0 if pos is out of range.
func (s *Source) Get(pos int) byte {
	if pos < 0 || pos >= len(s.content) {
		return 0
	}
	return s.content[pos]
}

// LineCol returns 1-based line and column (in runes) of byte offset pos.
// Offsets outside the buffer are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.content) {
		pos = len(s.content)
	}

	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Offset converts 1-based line and column (in bytes) to byte offset.
// Returns 0 for non-positive arguments and clamps the result to Limit().
func (s *Source) Offset(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1] + col - 1
	if res > l {
		return l
	}
	return res
}

// SourcePos returns position record for byte offset pos.
func (s *Source) SourcePos(pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

// Pos is a position in a source, it implements rdx.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
