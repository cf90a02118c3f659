package grammar

import (
	"fmt"
	"io"

	"github.com/ava12/rdx/internal/ints"
	"github.com/ava12/rdx/internal/queue"
)

// Grammar is a finished (linked) rule graph. It is immutable and safe for concurrent use.
type Grammar struct {
	rules []Rule
	names map[string]ID
	order []string
}

// Len returns the arena size, valid IDs are 0 .. Len() - 1.
// Not every ID is reachable from named rules after linking.
func (g *Grammar) Len() int {
	return len(g.rules)
}

// Rule returns rule by ID or nil for unknown ID.
func (g *Grammar) Rule(id ID) Rule {
	if id < 0 || int(id) >= len(g.rules) {
		return nil
	}
	return g.rules[id]
}

// Lookup returns ID of named rule.
func (g *Grammar) Lookup(name string) (ID, bool) {
	id, found := g.names[name]
	return id, found
}

// Names returns rule names in definition order.
func (g *Grammar) Names() []string {
	return append([]string(nil), g.order...)
}

// CaptureName returns the name of capture rule with given ID, or empty string.
// Parse tree entries store capture IDs, this is the way to get their names.
func (g *Grammar) CaptureName(id int) string {
	if c, isCapture := g.Rule(ID(id)).(*Capture); isCapture {
		return c.Name
	}
	return ""
}

// roots returns named rule IDs in definition order.
func (g *Grammar) roots() []ID {
	result := make([]ID, 0, len(g.order))
	for _, name := range g.order {
		result = append(result, g.names[name])
	}
	return result
}

// walk calls visit once for every rule reachable from named rules, breadth first.
// Sub-rules are read after visit returns, so visit may rewrite them.
func (g *Grammar) walk(visit func(id ID, r Rule)) {
	visited := ints.NewSet(len(g.rules))
	q := queue.New[ID](g.roots()...)
	for {
		id, fetched := q.First()
		if !fetched {
			break
		}

		if !visited.Visit(int(id)) {
			continue
		}

		visit(id, g.rules[id])
		for _, e := range Elements(g.rules[id]) {
			if !visited.Contains(int(e)) {
				q.Append(e)
			}
		}
	}
}

// Reachable returns IDs of rules reachable from named rules in breadth first order.
func (g *Grammar) Reachable() []ID {
	var result []ID
	g.walk(func(id ID, _ Rule) {
		result = append(result, id)
	})
	return result
}

// Dump writes human-readable listing of named rules and all reachable rules.
func (g *Grammar) Dump(w io.Writer) error {
	for _, name := range g.order {
		if _, e := fmt.Fprintf(w, "%s = #%d\n", name, g.names[name]); e != nil {
			return e
		}
	}

	for _, id := range g.Reachable() {
		r := g.rules[id]
		line := fmt.Sprintf("#%d %s", id, Describe(r))
		for i, e := range Elements(r) {
			if i == 0 {
				line += " ->"
			}
			line += fmt.Sprintf(" #%d", e)
		}
		if _, e := fmt.Fprintln(w, line); e != nil {
			return e
		}
	}
	return nil
}
