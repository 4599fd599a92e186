package machine

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sudare9/pema/grammar"
)

// Failed is the sentinel a scanner returns when it does not match. The
// machine uses the same value as its failure instruction address.
const Failed = -1

// Scanner matches a terminal at a byte position in the input and
// reports the position just past the match, or Failed. A scanner never
// mutates shared state, so one scanner may serve concurrent matches.
type Scanner interface {
	Scan(s string, pos int) int
}

// Dot matches any single character.
type Dot struct{}

func (Dot) Scan(s string, pos int) int {
	if pos >= len(s) {
		return Failed
	}
	_, size := utf8.DecodeRuneInString(s[pos:])
	return pos + size
}

func (Dot) String() string {
	return "."
}

// Literal matches an exact string.
type Literal struct {
	str string
}

func NewLiteral(str string) *Literal {
	return &Literal{
		str: str,
	}
}

func (l *Literal) Scan(s string, pos int) int {
	end := pos + len(l.str)
	if end > len(s) || s[pos:end] != l.str {
		return Failed
	}
	return end
}

func (l *Literal) String() string {
	return fmt.Sprintf("%q", l.str)
}

// Class greedily consumes a run of characters contained in a set of
// ranges (or outside it when negated). It matches when the run is at
// least min characters long; max bounds the run, with a negative max
// meaning unbounded.
type Class struct {
	ranges []grammar.CharRange
	negate bool
	min    int
	max    int
}

func NewClass(ranges []grammar.CharRange, negate bool, min, max int) *Class {
	return &Class{
		ranges: ranges,
		negate: negate,
		min:    min,
		max:    max,
	}
}

func (c *Class) Scan(s string, pos int) int {
	n := 0
	for (c.max < 0 || n < c.max) && pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if c.contains(r) == c.negate {
			break
		}
		pos += size
		n++
	}
	if n < c.min {
		return Failed
	}
	return pos
}

func (c *Class) contains(r rune) bool {
	for _, cr := range c.ranges {
		if cr.Lo <= r && r <= cr.Hi {
			return true
		}
	}
	return false
}

// withCounts derives a scanner with the same character set and new run
// bounds. The receiver is left untouched because compiled scanners are
// shared.
func (c *Class) withCounts(min, max int) *Class {
	return &Class{
		ranges: c.ranges,
		negate: c.negate,
		min:    min,
		max:    max,
	}
}

func (c *Class) String() string {
	var b strings.Builder
	b.WriteString("[")
	if c.negate {
		b.WriteString("^")
	}
	for _, cr := range c.ranges {
		if cr.Lo == cr.Hi {
			fmt.Fprintf(&b, "%v", string(cr.Lo))
		} else {
			fmt.Fprintf(&b, "%v-%v", string(cr.Lo), string(cr.Hi))
		}
	}
	b.WriteString("]")
	if c.min != 1 || c.max != 1 {
		if c.max < 0 {
			fmt.Fprintf(&b, "{%v,}", c.min)
		} else {
			fmt.Fprintf(&b, "{%v,%v}", c.min, c.max)
		}
	}
	return b.String()
}

// Regex matches a regular expression anchored at the current position.
type Regex struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegex(pattern string) (*Regex, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, err
	}
	return &Regex{
		pattern: pattern,
		re:      re,
	}, nil
}

func (r *Regex) Scan(s string, pos int) int {
	loc := r.re.FindStringIndex(s[pos:])
	if loc == nil {
		return Failed
	}
	return pos + loc[1]
}

func (r *Regex) String() string {
	return fmt.Sprintf("`%v`", r.pattern)
}
