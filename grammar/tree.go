package grammar

import (
	"github.com/sudare9/pema/action"
)

// CharRange is one element of a character class. A single character is
// represented by a range whose Lo and Hi are equal.
type CharRange struct {
	Lo rune
	Hi rune
}

// Expr is a node of a parsing expression operator tree. Which fields
// are meaningful depends on Op. Expressions are treated as immutable
// once a grammar containing them is finalized.
type Expr struct {
	Op      Operator
	Str     string        // OpLiteral
	Ranges  []CharRange   // OpClass
	Negate  bool          // OpClass
	Pattern string        // OpRegex
	Name    string        // OpNonterminal, OpBind, OpRule
	Action  action.Action // OpRule
	Exprs   []*Expr       // OpSequence, OpChoice
	Expr    *Expr         // the remaining unary operators
}

// Dot matches any single character.
func Dot() *Expr {
	return &Expr{
		Op: OpDot,
	}
}

// Literal matches the string s. The empty string matches at any
// position without consuming input.
func Literal(s string) *Expr {
	return &Expr{
		Op:  OpLiteral,
		Str: s,
	}
}

// Class matches a single character contained in ranges, or not
// contained when negate is set.
func Class(ranges []CharRange, negate bool) *Expr {
	return &Expr{
		Op:     OpClass,
		Ranges: ranges,
		Negate: negate,
	}
}

// Ranges builds a range list from a compact class description like
// "a-z0-9_". A '-' between two characters forms a range; any other
// character stands for itself.
func Ranges(s string) []CharRange {
	var ranges []CharRange
	rs := []rune(s)
	i := 0
	for i < len(rs)-2 {
		if rs[i+1] == '-' {
			ranges = append(ranges, CharRange{Lo: rs[i], Hi: rs[i+2]})
			i += 3
		} else {
			ranges = append(ranges, CharRange{Lo: rs[i], Hi: rs[i]})
			i++
		}
	}
	for i < len(rs) {
		ranges = append(ranges, CharRange{Lo: rs[i], Hi: rs[i]})
		i++
	}
	return ranges
}

// Regex matches the regular expression pattern anchored at the current
// position. The pattern uses the syntax of the standard regexp
// package; matching flags are written inline, like (?i).
func Regex(pattern string) *Expr {
	return &Expr{
		Op:      OpRegex,
		Pattern: pattern,
	}
}

// Optional matches e zero or one time.
func Optional(e *Expr) *Expr {
	return &Expr{
		Op:   OpOptional,
		Expr: e,
	}
}

// ZeroOrMore matches e as many times as possible, including none.
func ZeroOrMore(e *Expr) *Expr {
	return &Expr{
		Op:   OpZeroOrMore,
		Expr: e,
	}
}

// OneOrMore matches e as many times as possible, at least once.
func OneOrMore(e *Expr) *Expr {
	return &Expr{
		Op:   OpOneOrMore,
		Expr: e,
	}
}

// Nonterminal refers to the rule named name.
func Nonterminal(name string) *Expr {
	return &Expr{
		Op:   OpNonterminal,
		Name: name,
	}
}

// And is the positive lookahead: it succeeds if e matches but consumes
// no input and emits no values.
func And(e *Expr) *Expr {
	return &Expr{
		Op:   OpAnd,
		Expr: e,
	}
}

// Not is the negative lookahead: it succeeds if e fails, consumes no
// input, and emits no values.
func Not(e *Expr) *Expr {
	return &Expr{
		Op:   OpNot,
		Expr: e,
	}
}

// Capture matches e and emits the matched substring as a value.
func Capture(e *Expr) *Expr {
	return &Expr{
		Op:   OpCapture,
		Expr: e,
	}
}

// Bind matches e and binds its determined value to name.
func Bind(name string, e *Expr) *Expr {
	return &Expr{
		Op:   OpBind,
		Name: name,
		Expr: e,
	}
}

// Sequence matches each expression in order. Nested sequences are
// flattened, and a sequence of one expression is that expression.
func Sequence(exprs ...*Expr) *Expr {
	if len(exprs) == 1 {
		return exprs[0]
	}
	var es []*Expr
	for _, e := range exprs {
		if e.Op == OpSequence {
			es = append(es, e.Exprs...)
		} else {
			es = append(es, e)
		}
	}
	return &Expr{
		Op:    OpSequence,
		Exprs: es,
	}
}

// Choice tries each alternative in order and commits to the first one
// that matches. Nested choices are flattened, and a choice of one
// expression is that expression.
func Choice(exprs ...*Expr) *Expr {
	if len(exprs) == 1 {
		return exprs[0]
	}
	var es []*Expr
	for _, e := range exprs {
		if e.Op == OpChoice {
			es = append(es, e.Exprs...)
		} else {
			es = append(es, e)
		}
	}
	return &Expr{
		Op:    OpChoice,
		Exprs: es,
	}
}

// Rule matches e and, when act is non-nil, applies act to the values e
// emitted and bound.
func Rule(e *Expr, act action.Action) *Expr {
	return &Expr{
		Op:     OpRule,
		Expr:   e,
		Action: act,
	}
}
