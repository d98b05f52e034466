package evaluator

import (
	"bytes"
	"testing"

	"github.com/loomlang/loom/internal/ast"
)

// newTestEvaluator returns an evaluator with a captured output buffer
// and a global env holding the builtin surface.
func newTestEvaluator() (*Evaluator, *bytes.Buffer) {
	out := &bytes.Buffer{}
	e := New()
	e.Out = out
	env := NewEnvironment()
	RegisterInto(env)
	e.GlobalEnv = env
	return e, out
}

func rootFx(e *Evaluator) *EffectContext {
	return &EffectContext{E: e, Token: e.RootToken()}
}

// runExpr evaluates node in the global env and, when it yields an
// effect, runs it.
func runExpr(t *testing.T, e *Evaluator, node ast.Expr) Object {
	t.Helper()
	v := e.Eval(node, e.GlobalEnv)
	if _, isEff := v.(*Effect); isEff {
		return RunEffect(rootFx(e), v)
	}
	return v
}

func mustInt(t *testing.T, obj Object, want int64) {
	t.Helper()
	i, okI := obj.(*Integer)
	if !okI {
		t.Fatalf("want integer %d, got %s (%s)", want, obj.Type(), obj.Inspect())
	}
	if i.Value != want {
		t.Fatalf("want %d, got %d", want, i.Value)
	}
}

func mustCtor(t *testing.T, obj Object, name string) *Constructor {
	t.Helper()
	c, okC := obj.(*Constructor)
	if !okC {
		t.Fatalf("want constructor %s, got %s (%s)", name, obj.Type(), obj.Inspect())
	}
	if c.Name != name {
		t.Fatalf("want constructor %s, got %s", name, c.Inspect())
	}
	return c
}

func mustFailurePayload(t *testing.T, obj Object) Object {
	t.Helper()
	err, okE := obj.(*RuntimeError)
	if !okE || err.Kind != ErrPayload {
		t.Fatalf("want a payload failure, got %s", obj.Inspect())
	}
	return err.Payload
}

func mustMessageError(t *testing.T, obj Object) *RuntimeError {
	t.Helper()
	err, okE := obj.(*RuntimeError)
	if !okE || err.Kind != ErrMessage {
		t.Fatalf("want a message error, got %s", obj.Inspect())
	}
	return err
}

// ast shorthand for test expressions

func ident(name string) *ast.Ident        { return &ast.Ident{Name: name} }
func intLit(v int64) *ast.IntLit          { return &ast.IntLit{Value: v} }
func floatLit(v float64) *ast.FloatLit    { return &ast.FloatLit{Value: v} }
func textLit(v string) *ast.TextLit       { return &ast.TextLit{Value: v} }
func boolLit(v bool) *ast.BoolLit         { return &ast.BoolLit{Value: v} }
func varPat(name string) *ast.VarPat      { return &ast.VarPat{Name: name} }

func apply(fn ast.Expr, args ...ast.Expr) ast.Expr {
	out := fn
	for _, a := range args {
		out = &ast.Apply{Fn: out, Arg: a}
	}
	return out
}

func lambda(param string, body ast.Expr) *ast.Lambda {
	return &ast.Lambda{Param: varPat(param), Body: body}
}

func binop(op string, l, r ast.Expr) *ast.BinOp {
	return &ast.BinOp{Op: op, Left: l, Right: r}
}
