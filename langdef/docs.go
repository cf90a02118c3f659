/*
Package langdef converts grammar descriptions to finished grammar.Grammar structures.

Two description formats are supported: YAML rule documents and EBNF as accepted by golang.org/x/exp/ebnf.

YAML document is a mapping with two keys: "start" (optional start rule name, the first rule is used by default)
and "rules", a mapping of rule names to rule nodes. A rule node is either a scalar (a reference to a named rule)
or a mapping with exactly one of the keys below:
*/
//  lit: "text"              # literal bytes
//  chars: "+-*/"            # any of listed characters
//  range: [a, z]            # code point range, bounds are characters, numbers, or U+XXXX
//  any: true                # any code point
//  not: {chars: "\"\\"}     # complement of a character set node
//  set: [{range: [a, z]}, {chars: "_"}] # merged character set nodes
//  pattern: must-space      # may-indent, must-indent, may-space, must-space, or linebreak
//  seq: [node, ...]         # sequence
//  alt: [node, ...]         # first matching alternative
//  opt: node                # zero or one time
//  many: node               # zero or more times
//  some: node               # one or more times
//  rep: node                # min to max times, both optional:
//  min: 2
//  max: 5
//  as: name                 # capture match of "rule" node under name:
//  rule: node
//  ref: name                # reference to a named rule, same as scalar node
//  look: node               # zero-width lookahead
//  fill: true               # skip input until the next sequence element matches
//  cut: true                # decision, mismatches after it are final
/*
Rule names starting with underscore are not captured, a reference "_name" to a rule "name" uses the rule
without capturing it.

EBNF productions are converted to captured rules: tokens become literals, character ranges become terminals,
alternatives, groups, options, and repetitions become the corresponding rules. The engine is scannerless,
whitespace between tokens must be described by the grammar itself.

Errors returned by loaders are *rdx.Error with codes from LoadErrors class, or grammar linking errors.
*/
package langdef
