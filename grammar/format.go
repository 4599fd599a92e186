package grammar

import (
	"fmt"
	"strings"
)

// Operator precedence for formatting. Lower binds looser.
func (op Operator) precedence() int {
	switch op {
	case OpChoice:
		return 1
	case OpSequence:
		return 2
	case OpAnd, OpNot, OpCapture, OpBind:
		return 3
	case OpOptional, OpZeroOrMore, OpOneOrMore:
		return 4
	}
	return 5
}

// String renders the expression in PEG-like notation. The rendering is
// for diagnostics and program listings; it is not parsed back.
func (e *Expr) String() string {
	return format(e, OpNil)
}

func format(e *Expr, parent Operator) string {
	var b strings.Builder
	switch e.Op {
	case OpDot:
		b.WriteString(".")
	case OpLiteral:
		fmt.Fprintf(&b, "%q", e.Str)
	case OpClass:
		b.WriteString("[")
		if e.Negate {
			b.WriteString("^")
		}
		for _, r := range e.Ranges {
			if r.Lo == r.Hi {
				b.WriteString(escapeClassChar(r.Lo))
			} else {
				fmt.Fprintf(&b, "%v-%v", escapeClassChar(r.Lo), escapeClassChar(r.Hi))
			}
		}
		b.WriteString("]")
	case OpRegex:
		fmt.Fprintf(&b, "`%v`", e.Pattern)
	case OpNonterminal:
		b.WriteString(e.Name)
	case OpOptional:
		fmt.Fprintf(&b, "%v?", format(e.Expr, e.Op))
	case OpZeroOrMore:
		fmt.Fprintf(&b, "%v*", format(e.Expr, e.Op))
	case OpOneOrMore:
		fmt.Fprintf(&b, "%v+", format(e.Expr, e.Op))
	case OpAnd:
		fmt.Fprintf(&b, "&%v", format(e.Expr, e.Op))
	case OpNot:
		fmt.Fprintf(&b, "!%v", format(e.Expr, e.Op))
	case OpCapture:
		fmt.Fprintf(&b, "~%v", format(e.Expr, e.Op))
	case OpBind:
		fmt.Fprintf(&b, "%v:%v", e.Name, format(e.Expr, e.Op))
	case OpSequence:
		subs := make([]string, len(e.Exprs))
		for i, sub := range e.Exprs {
			subs[i] = format(sub, e.Op)
		}
		b.WriteString(strings.Join(subs, " "))
	case OpChoice:
		subs := make([]string, len(e.Exprs))
		for i, sub := range e.Exprs {
			subs[i] = format(sub, e.Op)
		}
		b.WriteString(strings.Join(subs, " / "))
	case OpRule:
		return format(e.Expr, parent)
	default:
		fmt.Fprintf(&b, "<%v>", e.Op)
	}
	if parent != OpNil && e.Op.precedence() <= parent.precedence() {
		return "(" + b.String() + ")"
	}
	return b.String()
}

func escapeClassChar(r rune) string {
	switch r {
	case '[', ']', '-', '^', '\\':
		return "\\" + string(r)
	}
	if r < 0x20 {
		return fmt.Sprintf("\\x%02x", r)
	}
	return string(r)
}
