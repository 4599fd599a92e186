// Package grammar provides the operator tree data model of parsing
// expression grammars.
package grammar

import (
	"fmt"

	"github.com/sudare9/pema/action"
)

// Grammar is a set of named parsing expressions with a start rule.
// Rules keep their definition order. A grammar must be finalized before
// it is compiled; finalization attaches actions to their rules and
// validates the whole tree.
type Grammar struct {
	start   string
	names   []string
	defs    map[string]*Expr
	actions map[string]action.Action
	final   bool
}

func NewGrammar(start string) *Grammar {
	return &Grammar{
		start:   start,
		defs:    map[string]*Expr{},
		actions: map[string]action.Action{},
	}
}

// Define registers e as the rule named name. Redefining a name before
// finalization replaces the previous expression and keeps the original
// definition order.
func (g *Grammar) Define(name string, e *Expr) {
	if _, defined := g.defs[name]; !defined {
		g.names = append(g.names, name)
	}
	g.defs[name] = e
}

// SetAction associates an action with the rule named name. The action
// is attached to the rule when the grammar is finalized.
func (g *Grammar) SetAction(name string, act action.Action) {
	g.actions[name] = act
}

func (g *Grammar) Start() string {
	return g.start
}

// RuleNames returns the rule names in definition order.
func (g *Grammar) RuleNames() []string {
	return g.names
}

// Rule returns the expression defining the rule named name, or nil.
func (g *Grammar) Rule(name string) *Expr {
	return g.defs[name]
}

func (g *Grammar) Finalized() bool {
	return g.final
}

// Finalize attaches the registered actions to their rules and validates
// the grammar: every nonterminal must refer to a defined rule, character
// class ranges must be well-formed, and repeat operators must not be
// applied to repeat operators.
func (g *Grammar) Finalize() error {
	if g.final {
		return semErrFinalized
	}
	if len(g.names) == 0 {
		return semErrNoRule
	}
	if _, defined := g.defs[g.start]; !defined {
		return fmt.Errorf("%w: %v", semErrUndefinedStart, g.start)
	}
	for name, act := range g.actions {
		e, defined := g.defs[name]
		if !defined {
			return fmt.Errorf("%w: %v", semErrUndefinedRule, name)
		}
		if e.Op == OpRule {
			e = e.Expr
		}
		r := Rule(e, act)
		r.Name = name
		g.defs[name] = r
	}
	for _, name := range g.names {
		err := g.checkExpr(g.defs[name])
		if err != nil {
			return fmt.Errorf("rule %v: %w", name, err)
		}
	}
	g.final = true
	return nil
}

func (g *Grammar) checkExpr(e *Expr) error {
	if e == nil {
		return semErrInvalidNode
	}
	switch e.Op {
	case OpDot, OpLiteral, OpRegex:
		return nil
	case OpClass:
		for _, r := range e.Ranges {
			if r.Lo > r.Hi {
				return fmt.Errorf("%w: %q..%q", semErrMalformedRange, r.Lo, r.Hi)
			}
		}
		return nil
	case OpNonterminal:
		if _, defined := g.defs[e.Name]; !defined {
			return fmt.Errorf("%w: %v", semErrUndefinedRule, e.Name)
		}
		return nil
	case OpOptional, OpZeroOrMore, OpOneOrMore:
		if e.Expr == nil {
			return semErrInvalidNode
		}
		switch e.Expr.Op {
		case OpOptional, OpZeroOrMore, OpOneOrMore:
			return semErrRepeatOfRepeat
		}
		return g.checkExpr(e.Expr)
	case OpAnd, OpNot, OpCapture, OpBind, OpRule:
		return g.checkExpr(e.Expr)
	case OpSequence, OpChoice:
		if len(e.Exprs) == 0 {
			return fmt.Errorf("%w: empty %v", semErrInvalidNode, e.Op)
		}
		for _, sub := range e.Exprs {
			err := g.checkExpr(sub)
			if err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %v", semErrInvalidNode, e.Op)
}
