// Package machine compiles parsing expression grammars into instruction
// programs and executes them with a backtracking parsing machine, after
// Medeiros and Ierusalimschy, "A Parsing Machine for PEGs" (2008).
package machine

import (
	"fmt"

	"github.com/sudare9/pema/action"
)

// frame is one entry of the machine stack. A single shape serves three
// roles, told apart by savedPos and markPos:
//
//	backtrack entry  savedPos >= 0, markPos < 0
//	mark entry       savedPos < 0, markPos >= 0
//	call entry       savedPos < 0, markPos < 0, argsLen = kwargsLen = -1
type frame struct {
	retIdx    int
	savedPos  int
	markPos   int
	argsLen   int
	kwargsLen int
}

// Match runs the program against s beginning at byte position pos. It
// returns nil when the program does not match. An error from an action
// propagates unchanged; a program not produced by Compile may also
// yield an invalid-opcode error.
func (p *Program) Match(s string, pos int) (*Match, error) {
	end, args, kwargs, err := p.Exec(p.start, s, pos)
	if err != nil {
		return nil, err
	}
	if end < 0 {
		return nil, nil
	}
	return &Match{
		input:  s,
		pos:    pos,
		end:    end,
		args:   args,
		kwargs: kwargs,
	}, nil
}

// Exec runs the program from the rule named start and returns the raw
// end position along with the top-level emitted and bound values. The
// end position is Failed when the input does not match.
func (p *Program) Exec(start string, s string, pos int) (int, []any, []action.Binding, error) {
	idx, ok := p.index[start]
	if !ok {
		return Failed, nil, nil, fmt.Errorf("undefined rule: %v", start)
	}

	var args []any
	var kwargs []action.Binding
	stack := make([]frame, 0, 64)
	// The bottom backtrack entry routes an unrecoverable failure to the
	// fail instruction at address 0; the entry above it is a call entry
	// whose return address is the pass instruction at the end of the
	// program, which reports the final position.
	stack = append(stack,
		frame{retIdx: 0, savedPos: 0, markPos: -1},
		frame{retIdx: len(p.insts) - 1, savedPos: -1, markPos: -1, argsLen: -1, kwargsLen: -1},
	)

	for len(stack) > 0 {
		inst := &p.insts[idx]

		if inst.Marking {
			stack = append(stack, frame{
				retIdx:    0,
				savedPos:  -1,
				markPos:   pos,
				argsLen:   len(args),
				kwargsLen: len(kwargs),
			})
		}

		switch inst.Op {
		case OpScan:
			pos = inst.Scanner.Scan(s, pos)
			if pos < 0 {
				idx = Failed
			}

		case OpBranch:
			stack = append(stack, frame{
				retIdx:    idx + inst.Oploc,
				savedPos:  pos,
				markPos:   -1,
				argsLen:   len(args),
				kwargsLen: len(kwargs),
			})
			idx++
			continue

		case OpCall:
			stack = append(stack, frame{
				retIdx:    idx + 1,
				savedPos:  -1,
				markPos:   -1,
				argsLen:   -1,
				kwargsLen: -1,
			})
			idx = inst.Oploc
			continue

		case OpCommit:
			stack = stack[:len(stack)-1]
			idx += inst.Oploc
			continue

		case OpUpdate:
			top := &stack[len(stack)-1]
			top.savedPos = pos
			top.argsLen = len(args)
			top.kwargsLen = len(kwargs)
			idx += inst.Oploc
			continue

		case OpRestore:
			pos = stack[len(stack)-1].savedPos
			stack = stack[:len(stack)-1]
			idx += inst.Oploc
			continue

		case OpFailTwice:
			pos = stack[len(stack)-1].savedPos
			stack = stack[:len(stack)-1]
			idx = Failed

		case OpReturn:
			idx = stack[len(stack)-1].retIdx
			stack = stack[:len(stack)-1]
			continue

		case OpPass:
			return pos, args, kwargs, nil

		case OpFail:
			idx = Failed

		case OpNoop:
			// fall through to post-processing

		default:
			return Failed, nil, nil, fmt.Errorf("invalid opcode: %v", inst.Op)
		}

		if idx == Failed {
			// Unwind to the nearest backtrack entry, abandoning the
			// mark and call entries above it and any values emitted
			// since it was pushed.
			n := len(stack) - 1
			for n >= 0 && stack[n].savedPos < 0 {
				n--
			}
			if n < 0 {
				break
			}
			fr := stack[n]
			stack = stack[:n]
			idx = fr.retIdx
			pos = fr.savedPos
			args = args[:fr.argsLen]
			kwargs = kwargs[:fr.kwargsLen]
			continue
		}

		if inst.Capturing {
			fr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			args = append(args[:fr.argsLen], s[fr.markPos:pos])
			kwargs = kwargs[:fr.kwargsLen]
		}

		if inst.Action != nil {
			fr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			localArgs := make([]any, len(args)-fr.argsLen)
			copy(localArgs, args[fr.argsLen:])
			localKwargs := make([]action.Binding, len(kwargs)-fr.kwargsLen)
			copy(localKwargs, kwargs[fr.kwargsLen:])
			newArgs, newKwargs, err := inst.Action.Invoke(s, fr.markPos, pos, localArgs, localKwargs)
			if err != nil {
				return Failed, nil, nil, err
			}
			args = append(args[:fr.argsLen], newArgs...)
			kwargs = append(kwargs[:fr.kwargsLen], newKwargs...)
		}

		idx++
	}

	return Failed, nil, nil, nil
}
