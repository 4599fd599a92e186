package machine

import (
	"fmt"
	"sort"
	"strings"
)

// Program is an immutable, linear instruction sequence produced by
// Compile. Address 0 always holds the failure sentinel, each rule body
// ends with a return, and the last instruction is the success sentinel.
// A program may be shared by concurrent matches.
type Program struct {
	insts []Instruction
	index map[string]int
	start string
}

// Start returns the name of the grammar's start rule.
func (p *Program) Start() string {
	return p.start
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.insts)
}

// Address returns the entry address of the rule named name.
func (p *Program) Address(name string) (int, bool) {
	addr, ok := p.index[name]
	return addr, ok
}

// RuleNames returns all rule names ordered by entry address.
func (p *Program) RuleNames() []string {
	names := make([]string, 0, len(p.index))
	for name := range p.index {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.index[names[i]] < p.index[names[j]]
	})
	return names
}

// Listing renders the program one instruction per line, with rule
// labels interleaved at their entry addresses.
func (p *Program) Listing() string {
	labels := map[int]string{}
	for name, addr := range p.index {
		labels[addr] = name
	}

	var b strings.Builder
	for i, inst := range p.insts {
		if name, ok := labels[i]; ok {
			fmt.Fprintf(&b, "%v:\n", name)
		}
		fmt.Fprintf(&b, "%04d  %v", i, inst.Op)
		switch inst.Op {
		case OpBranch, OpCommit, OpUpdate, OpRestore, OpJump:
			fmt.Fprintf(&b, " %+d", inst.Oploc)
		case OpCall:
			fmt.Fprintf(&b, " %04d ; %v", inst.Oploc, inst.name)
		case OpScan:
			fmt.Fprintf(&b, " %v", inst.Scanner)
		}
		var flags []string
		if inst.Marking {
			flags = append(flags, "mark")
		}
		if inst.Capturing {
			flags = append(flags, "cap")
		}
		if inst.Action != nil {
			flags = append(flags, "act")
		}
		if len(flags) > 0 {
			fmt.Fprintf(&b, " [%v]", strings.Join(flags, ","))
		}
		b.WriteString("\n")
	}
	return b.String()
}
