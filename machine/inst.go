package machine

import (
	"github.com/sudare9/pema/action"
)

// OpCode identifies a machine instruction. The numeric values follow
// the machine's convention that OpFail doubles as the failure address.
type OpCode int

const (
	OpFail OpCode = iota - 1
	OpPass
	OpBranch
	OpCommit
	OpUpdate
	OpRestore
	OpFailTwice
	OpCall
	OpReturn
	OpJump
	OpScan
	OpNoop
)

func (op OpCode) String() string {
	switch op {
	case OpFail:
		return "fail"
	case OpPass:
		return "pass"
	case OpBranch:
		return "branch"
	case OpCommit:
		return "commit"
	case OpUpdate:
		return "update"
	case OpRestore:
		return "restore"
	case OpFailTwice:
		return "failtwice"
	case OpCall:
		return "call"
	case OpReturn:
		return "return"
	case OpJump:
		return "jump"
	case OpScan:
		return "scan"
	case OpNoop:
		return "noop"
	}
	return "unknown"
}

// manipulatesStack reports whether the opcode pushes or pops frames as
// part of its own dispatch. Marking, capturing, and actions are never
// placed on these opcodes; the compiler inserts a noop carrier instead.
func (op OpCode) manipulatesStack() bool {
	switch op {
	case OpCall, OpCommit, OpUpdate, OpRestore, OpFailTwice, OpReturn:
		return true
	}
	return false
}

// Instruction is one step of a compiled program.
//
// Oploc is a relative offset for branching instructions and a resolved
// absolute address for OpCall. Marking pushes a mark frame before the
// instruction executes; Capturing emits the substring between the mark
// and the cursor after it executes; Action, when set, transforms the
// values emitted since the mark.
type Instruction struct {
	Op        OpCode
	Oploc     int
	Scanner   Scanner
	Marking   bool
	Capturing bool
	Action    action.Action

	// name is the unresolved call target. It is set only during
	// compilation and kept afterwards for listings.
	name string
}
