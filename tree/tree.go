// Package tree implements an index-overlay parse tree: a flat, pre-order list of matched rule spans
// over the original input buffer. Entries are addressed by index, no per-node allocation is made.
package tree

// Open is the end position of an entry that is not closed yet.
const Open = -1

type entry struct {
	rule, level, start, end int
}

// Tree is an append-only list of entries (rule, level, start, end) in pre-order.
// Root entries have level 0. A Tree is owned by a single parse and is not safe for concurrent use.
type Tree struct {
	entries []entry
	open    []int
}

// New creates an empty tree with room for sizeHint entries.
func New(sizeHint int) *Tree {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Tree{entries: make([]entry, 0, sizeHint)}
}

// Push opens a new entry one level below the currently open entry and returns its index.
func (t *Tree) Push(rule, start int) int {
	i := len(t.entries)
	t.entries = append(t.entries, entry{rule, len(t.open), start, Open})
	t.open = append(t.open, i)
	return i
}

// Done closes the currently open entry. Does nothing if no entry is open.
func (t *Tree) Done(end int) {
	last := len(t.open) - 1
	if last < 0 {
		return
	}

	e := &t.entries[t.open[last]]
	if end < e.start {
		end = e.start
	}
	e.end = end
	t.open = t.open[:last]
}

// CloseAll closes every open entry at end, or at its start if end precedes it.
func (t *Tree) CloseAll(end int) {
	for len(t.open) > 0 {
		t.Done(end)
	}
}

// Pop discards the currently open entry together with everything appended after it.
func (t *Tree) Pop() {
	last := len(t.open) - 1
	if last < 0 {
		return
	}

	t.entries = t.entries[:t.open[last]]
	t.open = t.open[:last]
}

// Erase removes trailing closed entries ending after pos.
// Open entries are never erased.
func (t *Tree) Erase(pos int) {
	n := len(t.entries)
	for n > 0 && t.entries[n-1].end > pos {
		n--
	}
	t.entries = t.entries[:n]
}

// Reset empties the tree keeping allocated memory.
func (t *Tree) Reset() {
	t.entries = t.entries[:0]
	t.open = t.open[:0]
}

func (t *Tree) Count() int {
	return len(t.entries)
}

// Depth returns the number of open entries.
func (t *Tree) Depth() int {
	return len(t.open)
}

func (t *Tree) Rule(i int) int {
	return t.entries[i].rule
}

func (t *Tree) Level(i int) int {
	return t.entries[i].level
}

func (t *Tree) Start(i int) int {
	return t.entries[i].start
}

// End returns the end position of entry i, or Open while the entry is being matched.
// Trees returned by the parser have no open entries.
func (t *Tree) End(i int) int {
	return t.entries[i].end
}

// Text returns the part of content covered by a closed entry i.
func (t *Tree) Text(i int, content []byte) []byte {
	e := t.entries[i]
	if e.end == Open || e.end > len(content) || e.start > e.end {
		return nil
	}
	return content[e.start:e.end]
}

func (t *Tree) valid(i int) bool {
	return i >= 0 && i < len(t.entries)
}

// Parent returns the index of the entry containing entry i, or -1 for a root entry.
func (t *Tree) Parent(i int) int {
	if !t.valid(i) {
		return -1
	}

	level := t.entries[i].level
	for i--; i >= 0; i-- {
		if t.entries[i].level < level {
			return i
		}
	}
	return -1
}

// Ancestor returns the parent of entry i for levels 0, grandparent for 1 and so on; -1 if there is none.
func (t *Tree) Ancestor(i, levels int) int {
	for i >= 0 && levels >= 0 {
		i = t.Parent(i)
		levels--
	}
	return i
}

// FirstChild returns the index of the first child of entry i, or -1.
func (t *Tree) FirstChild(i int) int {
	if !t.valid(i) || !t.valid(i+1) || t.entries[i+1].level <= t.entries[i].level {
		return -1
	}
	return i + 1
}

// NextSibling returns the index of the next entry sharing parent with entry i, or -1.
func (t *Tree) NextSibling(i int) int {
	if !t.valid(i) {
		return -1
	}

	level := t.entries[i].level
	for i++; i < len(t.entries); i++ {
		switch l := t.entries[i].level; {
		case l == level:
			return i
		case l < level:
			return -1
		}
	}
	return -1
}

// Children returns indexes of direct children of entry i.
func (t *Tree) Children(i int) []int {
	var result []int
	for c := t.FirstChild(i); c >= 0; c = t.NextSibling(c) {
		result = append(result, c)
	}
	return result
}

// NthChild returns the n-th child of entry i, negative n counts from the last child; -1 if there is none.
func (t *Tree) NthChild(i, n int) int {
	children := t.Children(i)
	if n < 0 {
		n += len(children)
	}
	if n < 0 || n >= len(children) {
		return -1
	}
	return children[n]
}

// SiblingIndex returns the position of entry i among children of its parent.
func (t *Tree) SiblingIndex(i int) int {
	if !t.valid(i) {
		return -1
	}

	level := t.entries[i].level
	index := 0
	for j := i - 1; j >= 0; j-- {
		l := t.entries[j].level
		if l < level {
			break
		}
		if l == level {
			index++
		}
	}
	return index
}

// NumOfChildren counts descendants of entry i down to levels below direct children,
// negative levels means no limit.
func (t *Tree) NumOfChildren(i, levels int) int {
	if !t.valid(i) {
		return 0
	}

	base := t.entries[i].level
	count := 0
	for j := i + 1; j < len(t.entries); j++ {
		depth := t.entries[j].level - base
		if depth <= 0 {
			break
		}
		if levels < 0 || depth <= levels+1 {
			count++
		}
	}
	return count
}

// Roots returns indexes of level 0 entries.
func (t *Tree) Roots() []int {
	var result []int
	for i, e := range t.entries {
		if e.level == 0 {
			result = append(result, i)
		}
	}
	return result
}

// Visitor is called for every visited entry, returning false skips descendants of the entry.
type Visitor func(i int) (walkChildren bool)

// Walk visits all entries in pre-order.
func (t *Tree) Walk(visit Visitor) {
	for i := 0; i < len(t.entries); {
		if visit(i) {
			i++
			continue
		}

		level := t.entries[i].level
		for i++; i < len(t.entries) && t.entries[i].level > level; i++ {
		}
	}
}
