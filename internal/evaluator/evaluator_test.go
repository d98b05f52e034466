package evaluator

import (
	"strings"
	"testing"

	"github.com/loomlang/loom/internal/ast"
)

func TestLiterals(t *testing.T) {
	e, _ := newTestEvaluator()

	tests := []struct {
		name string
		node ast.Expr
		want string
	}{
		{"int", intLit(42), "42"},
		{"float", floatLit(2.5), "2.5"},
		{"bool", boolLit(true), "true"},
		{"text", textLit("hi"), `"hi"`},
		{"list", &ast.ListLit{Elements: []ast.Expr{intLit(1), intLit(2)}}, "[1, 2]"},
		{"tuple", &ast.TupleLit{Elements: []ast.Expr{intLit(1), textLit("a")}}, `(1, "a")`},
		{"ctor", &ast.CtorLit{Name: "Some", Args: []ast.Expr{intLit(7)}}, "Some(7)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Eval(tt.node, e.GlobalEnv)
			if got.Inspect() != tt.want {
				t.Errorf("want %s, got %s", tt.want, got.Inspect())
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	e, _ := newTestEvaluator()

	tests := []struct {
		name string
		node ast.Expr
		want string
	}{
		{"add", binop("+", intLit(1), intLit(2)), "3"},
		{"mixed add promotes", binop("+", intLit(1), floatLit(2.5)), "3.5"},
		{"sub", binop("-", intLit(10), intLit(4)), "6"},
		{"mul", binop("*", intLit(6), intLit(7)), "42"},
		{"int div", binop("/", intLit(7), intLit(2)), "3"},
		{"mod", binop("%", intLit(7), intLit(2)), "1"},
		{"eq numeric cross-type", binop("==", intLit(1), floatLit(1.0)), "true"},
		{"neq", binop("!=", intLit(1), intLit(2)), "true"},
		{"lt", binop("<", intLit(1), intLit(2)), "true"},
		{"ge", binop(">=", floatLit(2.0), intLit(2)), "true"},
		{"text concat", binop("++", textLit("ab"), textLit("cd")), `"abcd"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Eval(tt.node, e.GlobalEnv)
			if got.Inspect() != tt.want {
				t.Errorf("want %s, got %s", tt.want, got.Inspect())
			}
		})
	}

	t.Run("division by zero", func(t *testing.T) {
		got := e.Eval(binop("/", intLit(1), intLit(0)), e.GlobalEnv)
		mustMessageError(t, got)
	})
}

func TestShortCircuit(t *testing.T) {
	e, _ := newTestEvaluator()

	// The right side is an unbound name; it must never evaluate.
	and := binop("&&", boolLit(false), ident("nope"))
	if got := e.Eval(and, e.GlobalEnv); got != FalseValue {
		t.Errorf("false && _ should be false, got %s", got.Inspect())
	}
	or := binop("||", boolLit(true), ident("nope"))
	if got := e.Eval(or, e.GlobalEnv); got != TrueValue {
		t.Errorf("true || _ should be true, got %s", got.Inspect())
	}
}

func TestIf(t *testing.T) {
	e, _ := newTestEvaluator()

	node := &ast.If{Cond: binop("<", intLit(1), intLit(2)), Then: intLit(10), Else: intLit(20)}
	mustInt(t, e.Eval(node, e.GlobalEnv), 10)

	bad := &ast.If{Cond: intLit(1), Then: intLit(10), Else: intLit(20)}
	mustMessageError(t, e.Eval(bad, e.GlobalEnv))
}

func TestCurriedApplication(t *testing.T) {
	e, _ := newTestEvaluator()

	// λx.λy. x + y, applied one argument at a time.
	add := lambda("x", lambda("y", binop("+", ident("x"), ident("y"))))
	partial := e.Eval(&ast.Apply{Fn: add, Arg: intLit(1)}, e.GlobalEnv)
	if _, okC := partial.(*Closure); !okC {
		t.Fatalf("partial application should yield a closure, got %s", partial.Type())
	}
	mustInt(t, e.ApplyFunction(partial, []Object{&Integer{Value: 2}}), 3)

	// Builtin under-application keeps a partial prefix.
	assertEq := Builtins["assertEq"]
	half := e.ApplyFunction(assertEq, []Object{&Integer{Value: 1}})
	b, okB := half.(*Builtin)
	if !okB || len(b.Applied) != 1 {
		t.Fatalf("under-applied builtin should carry its prefix, got %s", half.Inspect())
	}
}

func TestUnboundName(t *testing.T) {
	e, _ := newTestEvaluator()
	err := mustMessageError(t, e.Eval(ident("missing"), e.GlobalEnv))
	if !strings.Contains(err.Message, "missing") {
		t.Errorf("error should name the binding: %s", err.Message)
	}
}

func TestDottedNameResolvesThroughNamespace(t *testing.T) {
	e, _ := newTestEvaluator()
	got := e.Eval(ident("channel.make"), e.GlobalEnv)
	if _, okB := got.(*Builtin); !okB {
		t.Fatalf("channel.make should resolve to a builtin, got %s (%s)", got.Type(), got.Inspect())
	}

	// The bare name "map" is the effect combinator; the collection
	// namespace stays reachable through dotted names.
	bare := e.Eval(ident("map"), e.GlobalEnv)
	if b, okB := bare.(*Builtin); !okB || b.Name != "map" {
		t.Fatalf("map should resolve to the effect combinator, got %s", bare.Inspect())
	}
	put := e.Eval(ident("map.put"), e.GlobalEnv)
	if b, okB := put.(*Builtin); !okB || b.Name != "map.put" {
		t.Fatalf("map.put should resolve through the namespace table, got %s", put.Inspect())
	}
}

func TestMatch(t *testing.T) {
	e, _ := newTestEvaluator()

	subject := &ast.CtorLit{Name: "Some", Args: []ast.Expr{intLit(5)}}
	node := &ast.Match{
		Subject: subject,
		Arms: []ast.MatchArm{
			{
				Pattern: &ast.CtorPat{Name: "Some", Args: []ast.Pattern{varPat("x")}},
				Guard:   binop(">", ident("x"), intLit(10)),
				Body:    textLit("big"),
			},
			{
				Pattern: &ast.CtorPat{Name: "Some", Args: []ast.Pattern{varPat("x")}},
				Body:    ident("x"),
			},
			{Pattern: &ast.WildcardPat{}, Body: intLit(0)},
		},
	}
	mustInt(t, e.Eval(node, e.GlobalEnv), 5)

	nonExhaustive := &ast.Match{
		Subject: intLit(3),
		Arms: []ast.MatchArm{
			{Pattern: &ast.LiteralPat{Value: int64(1)}, Body: textLit("one")},
		},
	}
	mustMessageError(t, e.Eval(nonExhaustive, e.GlobalEnv))
}

func TestMatchListRest(t *testing.T) {
	e, _ := newTestEvaluator()

	node := &ast.Match{
		Subject: &ast.ListLit{Elements: []ast.Expr{intLit(1), intLit(2), intLit(3)}},
		Arms: []ast.MatchArm{
			{
				Pattern: &ast.ListPat{Elements: []ast.Pattern{varPat("h")}, Rest: varPat("t")},
				Body:    ident("t"),
			},
		},
	}
	got := e.Eval(node, e.GlobalEnv)
	if got.Inspect() != "[2, 3]" {
		t.Errorf("rest should bind the suffix, got %s", got.Inspect())
	}
}

func TestNumericLiteralPatternMatchesAcrossRepresentations(t *testing.T) {
	e, _ := newTestEvaluator()

	node := &ast.Match{
		Subject: floatLit(1.0),
		Arms: []ast.MatchArm{
			{Pattern: &ast.LiteralPat{Value: int64(1)}, Body: textLit("one")},
			{Pattern: &ast.WildcardPat{}, Body: textLit("other")},
		},
	}
	got := e.Eval(node, e.GlobalEnv)
	if got.Inspect() != `"one"` {
		t.Errorf("1 should match 1.0 numerically, got %s", got.Inspect())
	}
}

func TestInterpText(t *testing.T) {
	e, _ := newTestEvaluator()

	node := &ast.InterpText{Parts: []ast.InterpPart{
		{Text: "x = "},
		{Expr: binop("+", intLit(1), intLit(2))},
		{Text: "!"},
	}}
	got := e.Eval(node, e.GlobalEnv)
	if got.Inspect() != `"x = 3!"` {
		t.Errorf("got %s", got.Inspect())
	}
}

func TestRecordLit(t *testing.T) {
	e, _ := newTestEvaluator()

	node := &ast.RecordLit{Fields: []ast.RecordField{
		{Key: "b", Value: intLit(2)},
		{Key: "a", Value: intLit(1)},
	}}
	got := e.Eval(node, e.GlobalEnv)
	rec, okR := got.(*Record)
	if !okR {
		t.Fatalf("want record, got %s", got.Type())
	}
	mustInt(t, rec.Get("a"), 1)
	mustInt(t, rec.Get("b"), 2)
}

func TestPlainBlock(t *testing.T) {
	e, _ := newTestEvaluator()

	node := &ast.Block{Kind: ast.PlainBlock, Stmts: []ast.BlockStmt{
		{Bind: "x", Expr: intLit(2)},
		{Bind: "y", Expr: binop("*", ident("x"), intLit(3))},
		{Expr: binop("+", ident("x"), ident("y"))},
	}}
	mustInt(t, e.Eval(node, e.GlobalEnv), 8)
}

func TestGenerateBlockIsALoweringBug(t *testing.T) {
	e, _ := newTestEvaluator()
	got := e.Eval(&ast.Block{Kind: ast.GenerateBlock}, e.GlobalEnv)
	err := mustMessageError(t, got)
	if !strings.Contains(err.Message, "lowered") {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestMultiClauseDispatch(t *testing.T) {
	e, _ := newTestEvaluator()

	// fib-style clauses: literal 0 and 1, then a variable fallback.
	clauseFor := func(pat ast.Pattern, body ast.Expr) Object {
		return NewThunk("f", &ast.Lambda{Param: pat, Body: body}, e.GlobalEnv)
	}
	mc := &MultiClause{Name: "f", Clauses: []Object{
		clauseFor(&ast.LiteralPat{Value: int64(0)}, textLit("zero")),
		clauseFor(&ast.LiteralPat{Value: int64(1)}, textLit("one")),
		clauseFor(varPat("n"), textLit("many")),
	}}

	tests := []struct {
		arg  int64
		want string
	}{
		{0, `"zero"`},
		{1, `"one"`},
		{9, `"many"`},
	}
	for _, tt := range tests {
		got := e.ApplyFunction(mc, []Object{&Integer{Value: tt.arg}})
		if got.Inspect() != tt.want {
			t.Errorf("f(%d): want %s, got %s", tt.arg, tt.want, got.Inspect())
		}
	}

	noMatch := &MultiClause{Name: "g", Clauses: []Object{
		clauseFor(&ast.LiteralPat{Value: int64(0)}, textLit("zero")),
	}}
	mustMessageError(t, e.ApplyFunction(noMatch, []Object{&Integer{Value: 5}}))
}
