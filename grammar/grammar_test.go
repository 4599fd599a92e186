package grammar

import (
	"reflect"
	"strings"
	"testing"

	"github.com/sudare9/pema/action"
)

func TestGrammar_Finalize(t *testing.T) {
	tests := []struct {
		caption string
		build   func() *Grammar
		err     string
	}{
		{
			caption: "a closed grammar finalizes",
			build: func() *Grammar {
				g := NewGrammar("Start")
				g.Define("A", Literal("a"))
				g.Define("Start", Nonterminal("A"))
				return g
			},
		},
		{
			caption: "a grammar needs at least one rule",
			build: func() *Grammar {
				return NewGrammar("Start")
			},
			err: "at least one rule",
		},
		{
			caption: "the start rule must be defined",
			build: func() *Grammar {
				g := NewGrammar("Start")
				g.Define("A", Literal("a"))
				return g
			},
			err: "start rule is not defined",
		},
		{
			caption: "every nonterminal must refer to a defined rule",
			build: func() *Grammar {
				g := NewGrammar("Start")
				g.Define("Start", Sequence(Literal("a"), Nonterminal("Nope")))
				return g
			},
			err: "undefined rule",
		},
		{
			caption: "a repeat of a repeat is rejected",
			build: func() *Grammar {
				g := NewGrammar("Start")
				g.Define("Start", ZeroOrMore(Optional(Dot())))
				return g
			},
			err: "multiple repeat operators",
		},
		{
			caption: "a class range must be ordered",
			build: func() *Grammar {
				g := NewGrammar("Start")
				g.Define("Start", Class([]CharRange{{Lo: 'z', Hi: 'a'}}, false))
				return g
			},
			err: "malformed character class range",
		},
		{
			caption: "an action on an undefined rule is rejected",
			build: func() *Grammar {
				g := NewGrammar("Start")
				g.Define("Start", Literal("a"))
				g.SetAction("Nope", action.Constant(1))
				return g
			},
			err: "undefined rule",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			err := tt.build().Finalize()
			if tt.err == "" {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			if err == nil {
				t.Fatal("an error must occur")
			}
			if !strings.Contains(err.Error(), tt.err) {
				t.Fatalf("unexpected error; want: …%v…, got: %v", tt.err, err)
			}
		})
	}
}

func TestGrammar_FinalizeTwice(t *testing.T) {
	g := NewGrammar("Start")
	g.Define("Start", Literal("a"))
	err := g.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	err = g.Finalize()
	if err == nil {
		t.Fatal("an error must occur")
	}
}

func TestGrammar_FinalizeAttachesActions(t *testing.T) {
	act := action.Constant(1)

	g := NewGrammar("Start")
	g.Define("Start", Literal("a"))
	g.SetAction("Start", act)
	err := g.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	e := g.Rule("Start")
	if e.Op != OpRule {
		t.Fatalf("the rule must be wrapped; got: %v", e.Op)
	}
	if e.Action != act {
		t.Fatalf("unexpected action: %#v", e.Action)
	}
	if e.Name != "Start" {
		t.Fatalf("unexpected rule name: %v", e.Name)
	}
	if e.Expr.Op != OpLiteral {
		t.Fatalf("unexpected rule body: %v", e.Expr.Op)
	}
}

func TestGrammar_FinalizeReplacesRuleAction(t *testing.T) {
	act := action.Constant(2)

	g := NewGrammar("Start")
	g.Define("Start", Rule(Literal("a"), action.Constant(1)))
	g.SetAction("Start", act)
	err := g.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	e := g.Rule("Start")
	if e.Op != OpRule || e.Action != act {
		t.Fatalf("the registered action must replace the rule's own: %#v", e)
	}
	if e.Expr.Op != OpLiteral {
		t.Fatalf("unexpected rule body: %v", e.Expr.Op)
	}
}

func TestGrammar_RuleOrder(t *testing.T) {
	g := NewGrammar("Start")
	g.Define("C", Literal("c"))
	g.Define("A", Literal("a"))
	g.Define("Start", Sequence(Nonterminal("C"), Nonterminal("A")))
	g.Define("A", Literal("a2"))

	want := []string{"C", "A", "Start"}
	if !reflect.DeepEqual(g.RuleNames(), want) {
		t.Fatalf("unexpected rule order; want: %v, got: %v", want, g.RuleNames())
	}
	if g.Rule("A").Str != "a2" {
		t.Fatalf("a redefinition must replace the expression; got: %v", g.Rule("A").Str)
	}
}

func TestSequence_Flattening(t *testing.T) {
	a := Literal("a")
	b := Literal("b")
	c := Literal("c")

	e := Sequence(Sequence(a, b), c)
	if e.Op != OpSequence || len(e.Exprs) != 3 {
		t.Fatalf("unexpected expression: %v", e)
	}

	if Sequence(a) != a {
		t.Fatal("a sequence of one expression must be that expression")
	}

	e = Choice(Choice(a, b), c)
	if e.Op != OpChoice || len(e.Exprs) != 3 {
		t.Fatalf("unexpected expression: %v", e)
	}

	if Choice(a) != a {
		t.Fatal("a choice of one expression must be that expression")
	}
}

func TestRanges(t *testing.T) {
	tests := []struct {
		caption string
		spec    string
		want    []CharRange
	}{
		{
			caption: "ranges and discrete characters mix",
			spec:    "a-z0-9_",
			want: []CharRange{
				{Lo: 'a', Hi: 'z'},
				{Lo: '0', Hi: '9'},
				{Lo: '_', Hi: '_'},
			},
		},
		{
			caption: "a lone character",
			spec:    "x",
			want: []CharRange{
				{Lo: 'x', Hi: 'x'},
			},
		},
		{
			caption: "a trailing dash stands for itself",
			spec:    "a-z-",
			want: []CharRange{
				{Lo: 'a', Hi: 'z'},
				{Lo: '-', Hi: '-'},
			},
		},
		{
			caption: "the empty description is empty",
			spec:    "",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			got := Ranges(tt.spec)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected ranges; want: %#v, got: %#v", tt.want, got)
			}
		})
	}
}

func TestExpr_String(t *testing.T) {
	tests := []struct {
		caption string
		expr    *Expr
		want    string
	}{
		{
			caption: "a sequence inside a choice needs no parentheses",
			expr:    Choice(Sequence(Literal("a"), Literal("b")), Literal("c")),
			want:    `"a" "b" / "c"`,
		},
		{
			caption: "a choice inside a sequence is parenthesized",
			expr:    Sequence(Choice(Literal("a"), Literal("b")), Literal("c")),
			want:    `("a" / "b") "c"`,
		},
		{
			caption: "a lookahead over a choice is parenthesized",
			expr:    Not(Choice(Literal("a"), Literal("b"))),
			want:    `!("a" / "b")`,
		},
		{
			caption: "a repeated sequence is parenthesized",
			expr:    ZeroOrMore(Sequence(Literal("a"), Literal("b"))),
			want:    `("a" "b")*`,
		},
		{
			caption: "primaries never need parentheses",
			expr:    OneOrMore(Class(Ranges("0-9"), false)),
			want:    `[0-9]+`,
		},
		{
			caption: "a negated class",
			expr:    Class(Ranges("0-9"), true),
			want:    `[^0-9]`,
		},
		{
			caption: "a binding",
			expr:    Bind("x", Capture(OneOrMore(Class(Ranges("0-9"), false)))),
			want:    `x:(~[0-9]+)`,
		},
		{
			caption: "dot and regex",
			expr:    Sequence(Dot(), Regex("[0-9]+")),
			want:    ". `[0-9]+`",
		},
		{
			caption: "a rule is transparent",
			expr:    Rule(Optional(Literal("a")), nil),
			want:    `"a"?`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			got := tt.expr.String()
			if got != tt.want {
				t.Fatalf("unexpected format; want: %v, got: %v", tt.want, got)
			}
		})
	}
}
