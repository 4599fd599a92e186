package grammar

// Operator identifies the kind of a parsing expression node.
type Operator int

const (
	OpNil Operator = iota
	OpDot
	OpLiteral
	OpClass
	OpRegex
	OpOptional
	OpZeroOrMore
	OpOneOrMore
	OpNonterminal
	OpAnd
	OpNot
	OpCapture
	OpBind
	OpSequence
	OpChoice
	OpRule
)

func (op Operator) String() string {
	switch op {
	case OpDot:
		return "dot"
	case OpLiteral:
		return "literal"
	case OpClass:
		return "class"
	case OpRegex:
		return "regex"
	case OpOptional:
		return "optional"
	case OpZeroOrMore:
		return "zero-or-more"
	case OpOneOrMore:
		return "one-or-more"
	case OpNonterminal:
		return "nonterminal"
	case OpAnd:
		return "and"
	case OpNot:
		return "not"
	case OpCapture:
		return "capture"
	case OpBind:
		return "bind"
	case OpSequence:
		return "sequence"
	case OpChoice:
		return "choice"
	case OpRule:
		return "rule"
	}
	return "unknown"
}
