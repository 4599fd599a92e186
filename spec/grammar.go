// Package spec defines a JSON description of parsing expression
// grammars and its conversion into grammar values. The description
// covers the operator tree only; actions are attached programmatically.
package spec

import (
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/sudare9/pema/grammar"
)

type Grammar struct {
	Name  string  `json:"name,omitempty"`
	Start string  `json:"start"`
	Rules []*Rule `json:"rules"`
}

type Rule struct {
	Name string `json:"name"`
	Expr *Expr  `json:"expr"`
}

type Expr struct {
	Op      string       `json:"op"`
	String  string       `json:"string,omitempty"`
	Pattern string       `json:"pattern,omitempty"`
	Ranges  []*CharRange `json:"ranges,omitempty"`
	Negate  bool         `json:"negate,omitempty"`
	Name    string       `json:"name,omitempty"`
	Exprs   []*Expr      `json:"exprs,omitempty"`
	Expr    *Expr        `json:"expr,omitempty"`
}

// CharRange is one element of a character class. Hi may be omitted for
// a single character.
type CharRange struct {
	Lo string `json:"lo"`
	Hi string `json:"hi,omitempty"`
}

// ReadGrammar decodes a JSON grammar description.
func ReadGrammar(r io.Reader) (*Grammar, error) {
	var g Grammar
	d := json.NewDecoder(r)
	err := d.Decode(&g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ToGrammar converts the description into a grammar value. The result
// is not finalized, so the caller may still register actions.
func (g *Grammar) ToGrammar() (*grammar.Grammar, error) {
	start := g.Start
	if start == "" {
		start = "Start"
	}
	gram := grammar.NewGrammar(start)
	for _, r := range g.Rules {
		if r.Name == "" {
			return nil, fmt.Errorf("a rule needs a name")
		}
		e, err := r.Expr.toExpr()
		if err != nil {
			return nil, fmt.Errorf("rule %v: %w", r.Name, err)
		}
		gram.Define(r.Name, e)
	}
	return gram, nil
}

func (e *Expr) toExpr() (*grammar.Expr, error) {
	if e == nil {
		return nil, fmt.Errorf("invalid operator tree node: missing expression")
	}
	switch e.Op {
	case "dot":
		return grammar.Dot(), nil
	case "literal":
		return grammar.Literal(e.String), nil
	case "class":
		ranges := make([]grammar.CharRange, len(e.Ranges))
		for i, r := range e.Ranges {
			cr, err := r.toCharRange()
			if err != nil {
				return nil, err
			}
			ranges[i] = cr
		}
		return grammar.Class(ranges, e.Negate), nil
	case "regex":
		return grammar.Regex(e.Pattern), nil
	case "optional":
		return e.toUnary(grammar.Optional)
	case "zero-or-more":
		return e.toUnary(grammar.ZeroOrMore)
	case "one-or-more":
		return e.toUnary(grammar.OneOrMore)
	case "nonterminal":
		return grammar.Nonterminal(e.Name), nil
	case "and":
		return e.toUnary(grammar.And)
	case "not":
		return e.toUnary(grammar.Not)
	case "capture":
		return e.toUnary(grammar.Capture)
	case "bind":
		sub, err := e.Expr.toExpr()
		if err != nil {
			return nil, err
		}
		return grammar.Bind(e.Name, sub), nil
	case "sequence":
		subs, err := e.toExprs()
		if err != nil {
			return nil, err
		}
		return grammar.Sequence(subs...), nil
	case "choice":
		subs, err := e.toExprs()
		if err != nil {
			return nil, err
		}
		return grammar.Choice(subs...), nil
	}
	return nil, fmt.Errorf("invalid operator tree node: %v", e.Op)
}

func (e *Expr) toUnary(build func(*grammar.Expr) *grammar.Expr) (*grammar.Expr, error) {
	sub, err := e.Expr.toExpr()
	if err != nil {
		return nil, err
	}
	return build(sub), nil
}

func (e *Expr) toExprs() ([]*grammar.Expr, error) {
	if len(e.Exprs) == 0 {
		return nil, fmt.Errorf("%v needs at least one subexpression", e.Op)
	}
	subs := make([]*grammar.Expr, len(e.Exprs))
	for i, sub := range e.Exprs {
		s, err := sub.toExpr()
		if err != nil {
			return nil, err
		}
		subs[i] = s
	}
	return subs, nil
}

func (r *CharRange) toCharRange() (grammar.CharRange, error) {
	lo, err := singleRune(r.Lo)
	if err != nil {
		return grammar.CharRange{}, err
	}
	hi := lo
	if r.Hi != "" {
		hi, err = singleRune(r.Hi)
		if err != nil {
			return grammar.CharRange{}, err
		}
	}
	return grammar.CharRange{Lo: lo, Hi: hi}, nil
}

func singleRune(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError && size == 1 {
		return 0, fmt.Errorf("a class bound needs exactly one character: %q", s)
	}
	return r, nil
}
