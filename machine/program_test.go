package machine

import (
	"strings"
	"testing"

	"github.com/sudare9/pema/grammar"
)

func TestProgram_Listing(t *testing.T) {
	g := grammar.NewGrammar("Start")
	g.Define("A", grammar.Capture(grammar.OneOrMore(grammar.Class(grammar.Ranges("0-9"), false))))
	g.Define("Start", grammar.Choice(
		grammar.Nonterminal("A"),
		grammar.Literal("x"),
	))
	prog, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}

	want := `A:
0001  scan [0-9]{1,} [mark,cap]
0002  return
Start:
0003  branch +3
0004  call 0001 ; A
0005  commit +2
0006  scan "x"
0007  return
0008  pass
`
	got := prog.Listing()
	// The failure sentinel always leads.
	if !strings.HasPrefix(got, "0000  fail\n") {
		t.Fatalf("unexpected listing head:\n%v", got)
	}
	if got[len("0000  fail\n"):] != want {
		t.Fatalf("unexpected listing; want:\n%v\ngot:\n%v", want, got)
	}

	names := prog.RuleNames()
	if len(names) != 2 || names[0] != "A" || names[1] != "Start" {
		t.Fatalf("unexpected rule names: %v", names)
	}
	if prog.Start() != "Start" {
		t.Fatalf("unexpected start rule: %v", prog.Start())
	}
	if prog.Len() != 9 {
		t.Fatalf("unexpected program length: %v", prog.Len())
	}
}
