package machine

import (
	"fmt"

	"github.com/sudare9/pema/action"
	"github.com/sudare9/pema/grammar"
)

// Compile translates a grammar into an instruction program. The grammar
// is finalized first if the caller has not done so.
func Compile(g *grammar.Grammar) (*Program, error) {
	if !g.Finalized() {
		err := g.Finalize()
		if err != nil {
			return nil, err
		}
	}

	insts := []Instruction{
		{Op: OpFail},
	}
	index := map[string]int{}
	for _, name := range g.RuleNames() {
		index[name] = len(insts)
		pis, err := compileExpr(g.Rule(name))
		if err != nil {
			return nil, fmt.Errorf("rule %v: %w", name, err)
		}
		insts = append(insts, pis...)
		insts = append(insts, Instruction{Op: OpReturn})
	}
	for i := range insts {
		if insts[i].Op != OpCall {
			continue
		}
		addr, ok := index[insts[i].name]
		if !ok {
			return nil, fmt.Errorf("undefined rule: %v", insts[i].name)
		}
		insts[i].Oploc = addr
	}
	insts = append(insts, Instruction{Op: OpPass})

	return &Program{
		insts: insts,
		index: index,
		start: g.Start(),
	}, nil
}

func compileExpr(e *grammar.Expr) ([]Instruction, error) {
	switch e.Op {
	case grammar.OpDot:
		return []Instruction{
			{Op: OpScan, Scanner: Dot{}},
		}, nil
	case grammar.OpLiteral:
		return []Instruction{
			{Op: OpScan, Scanner: NewLiteral(e.Str)},
		}, nil
	case grammar.OpClass:
		return []Instruction{
			{Op: OpScan, Scanner: NewClass(e.Ranges, e.Negate, 1, 1)},
		}, nil
	case grammar.OpRegex:
		sc, err := NewRegex(e.Pattern)
		if err != nil {
			return nil, err
		}
		return []Instruction{
			{Op: OpScan, Scanner: sc},
		}, nil
	case grammar.OpOptional:
		pis, err := compileExpr(e.Expr)
		if err != nil {
			return nil, err
		}
		out := []Instruction{
			{Op: OpBranch, Oploc: len(pis) + 2},
		}
		out = append(out, pis...)
		return append(out, Instruction{Op: OpCommit, Oploc: 1}), nil
	case grammar.OpZeroOrMore:
		return compileRepeat(e.Expr, 0)
	case grammar.OpOneOrMore:
		return compileRepeat(e.Expr, 1)
	case grammar.OpNonterminal:
		return []Instruction{
			{Op: OpCall, name: e.Name},
		}, nil
	case grammar.OpAnd:
		pis, err := compileExpr(e.Expr)
		if err != nil {
			return nil, err
		}
		out := []Instruction{
			{Op: OpBranch, Oploc: len(pis) + 2},
		}
		out = append(out, pis...)
		return append(out,
			Instruction{Op: OpRestore, Oploc: 2},
			Instruction{Op: OpFail},
		), nil
	case grammar.OpNot:
		pis, err := compileExpr(e.Expr)
		if err != nil {
			return nil, err
		}
		out := []Instruction{
			{Op: OpBranch, Oploc: len(pis) + 2},
		}
		out = append(out, pis...)
		return append(out, Instruction{Op: OpFailTwice}), nil
	case grammar.OpCapture:
		return compileCapture(e.Expr)
	case grammar.OpBind:
		return compileRule(e.Expr, action.Bind(e.Name))
	case grammar.OpSequence:
		var out []Instruction
		for _, sub := range e.Exprs {
			pis, err := compileExpr(sub)
			if err != nil {
				return nil, err
			}
			out = append(out, pis...)
		}
		return out, nil
	case grammar.OpChoice:
		return compileChoice(e.Exprs)
	case grammar.OpRule:
		if e.Action == nil {
			return compileExpr(e.Expr)
		}
		return compileRule(e.Expr, e.Action)
	}
	return nil, fmt.Errorf("invalid operator tree node: %v", e.Op)
}

// compileRepeat emits the zero-or-more loop, preceded by one mandatory
// copy of the body for one-or-more. A body that is a single bare
// character class collapses into the scanner itself, whose greedy run
// semantics match the quantifier exactly.
func compileRepeat(e *grammar.Expr, min int) ([]Instruction, error) {
	pis, err := compileExpr(e)
	if err != nil {
		return nil, err
	}
	if len(pis) == 1 && pis[0].Op == OpScan && !pis[0].Marking && !pis[0].Capturing && pis[0].Action == nil {
		if cls, ok := pis[0].Scanner.(*Class); ok {
			return []Instruction{
				{Op: OpScan, Scanner: cls.withCounts(min, -1)},
			}, nil
		}
	}
	var out []Instruction
	for i := 0; i < min; i++ {
		out = append(out, pis...)
	}
	out = append(out, Instruction{Op: OpBranch, Oploc: len(pis) + 2})
	out = append(out, pis...)
	return append(out, Instruction{Op: OpUpdate, Oploc: -len(pis)}), nil
}

func compileChoice(exprs []*grammar.Expr) ([]Instruction, error) {
	alts := make([][]Instruction, len(exprs))
	for i, sub := range exprs {
		pis, err := compileExpr(sub)
		if err != nil {
			return nil, err
		}
		alts[i] = pis
	}
	out := alts[len(alts)-1]
	for i := len(alts) - 2; i >= 0; i-- {
		alt := alts[i]
		merged := make([]Instruction, 0, len(alt)+len(out)+2)
		merged = append(merged, Instruction{Op: OpBranch, Oploc: len(alt) + 2})
		merged = append(merged, alt...)
		merged = append(merged, Instruction{Op: OpCommit, Oploc: len(out) + 1})
		merged = append(merged, out...)
		out = merged
	}
	return out, nil
}

func compileCapture(e *grammar.Expr) ([]Instruction, error) {
	capturedChoice := e.Op == grammar.OpChoice
	pis, err := compileExpr(e)
	if err != nil {
		return nil, err
	}
	pis = markHead(pis)
	last := &pis[len(pis)-1]
	// A captured choice always gets a fresh noop tail: an alternative
	// taken mid-choice commits past the last alternative's body, and a
	// capture flag there would never pop its mark frame.
	if !last.Capturing && last.Action == nil && !last.Op.manipulatesStack() && !capturedChoice {
		last.Capturing = true
	} else {
		pis = append(pis, Instruction{Op: OpNoop, Capturing: true})
	}
	return pis, nil
}

func compileRule(e *grammar.Expr, act action.Action) ([]Instruction, error) {
	actionedChoice := e.Op == grammar.OpChoice
	pis, err := compileExpr(e)
	if err != nil {
		return nil, err
	}
	pis = markHead(pis)
	last := &pis[len(pis)-1]
	// Like a captured choice, an actioned choice always gets a fresh
	// noop tail: an alternative taken mid-choice commits past the last
	// alternative's body, and an action there would never run nor pop
	// its mark frame.
	if last.Action == nil && !last.Op.manipulatesStack() && !actionedChoice {
		last.Action = act
	} else {
		pis = append(pis, Instruction{Op: OpNoop, Action: act})
	}
	return pis, nil
}

// markHead makes the first instruction push a mark frame, inserting a
// noop carrier when the natural slot already marks or manipulates the
// stack itself.
func markHead(pis []Instruction) []Instruction {
	if !pis[0].Marking && !pis[0].Op.manipulatesStack() {
		pis[0].Marking = true
		return pis
	}
	return append([]Instruction{{Op: OpNoop, Marking: true}}, pis...)
}
