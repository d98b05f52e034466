package evaluator

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/loomlang/loom/internal/ast"
	"github.com/loomlang/loom/internal/config"
)

// Evaluator is the recursive expression interpreter. One evaluator is
// shared per run; concurrency primitives Fork it so every worker
// goroutine gets its own recursion-depth counter while sharing the
// global environment, the output writer and the fuel budget.
type Evaluator struct {
	Out   io.Writer
	outMu *sync.Mutex

	// GlobalEnv is write-once: built at startup, read-only afterwards.
	GlobalEnv *Environment

	rootToken *CancelToken
	fuel      *int64 // atomic step budget; nil when unbounded
	evalDepth int
}

func New() *Evaluator {
	return &Evaluator{
		Out:       os.Stdout,
		outMu:     &sync.Mutex{},
		rootToken: NewRootToken(),
	}
}

// Fork returns an evaluator for a worker goroutine: shared globals,
// writer and fuel, fresh depth counter.
func (e *Evaluator) Fork() *Evaluator {
	return &Evaluator{
		Out:       e.Out,
		outMu:     e.outMu,
		GlobalEnv: e.GlobalEnv,
		rootToken: e.rootToken,
		fuel:      e.fuel,
	}
}

// RootToken is the token at the top of this run's cancellation tree.
func (e *Evaluator) RootToken() *CancelToken { return e.rootToken }

// SetFuel bounds total evaluation steps across all threads of the run.
func (e *Evaluator) SetFuel(budget int64) {
	v := budget
	e.fuel = &v
}

// chargeFuel burns one step. On exhaustion the whole run is cancelled
// so in-flight workers stop at their next poll point.
func (e *Evaluator) chargeFuel() *RuntimeError {
	if e.fuel == nil {
		return nil
	}
	if atomic.AddInt64(e.fuel, -1) < 0 {
		e.rootToken.Cancel()
		return &RuntimeError{Kind: ErrFuel}
	}
	return nil
}

func (e *Evaluator) write(s string) {
	e.outMu.Lock()
	io.WriteString(e.Out, s)
	e.outMu.Unlock()
}

// Eval evaluates a lowered expression in env. Evaluation is strict and
// left-to-right; laziness lives in thunks only.
func (e *Evaluator) Eval(node ast.Expr, env *Environment) Object {
	if err := e.chargeFuel(); err != nil {
		return err
	}
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	if e.evalDepth > config.MaxEvalDepth {
		return newError("evaluation depth limit exceeded (%d)", config.MaxEvalDepth)
	}

	switch node := node.(type) {
	case *ast.Ident:
		return e.evalIdent(node, env)
	case *ast.IntLit:
		return &Integer{Value: node.Value}
	case *ast.FloatLit:
		return &Float{Value: node.Value}
	case *ast.BoolLit:
		return nativeBool(node.Value)
	case *ast.TextLit:
		return &Text{Value: node.Value}
	case *ast.SigilLit:
		return NewSigil(node.Tag, node.Body, node.Flags)
	case *ast.InterpText:
		return e.evalInterpText(node, env)
	case *ast.ListLit:
		return e.evalListLit(node, env)
	case *ast.TupleLit:
		return e.evalTupleLit(node, env)
	case *ast.RecordLit:
		return e.evalRecordLit(node, env)
	case *ast.CtorLit:
		return e.evalCtorLit(node, env)
	case *ast.Lambda:
		return &Closure{Param: node.Param, Body: node.Body, Env: env}
	case *ast.Apply:
		fn := e.Eval(node.Fn, env)
		if isError(fn) {
			return fn
		}
		arg := e.Eval(node.Arg, env)
		if isError(arg) {
			return arg
		}
		return e.ApplyFunction(fn, []Object{arg})
	case *ast.If:
		return e.evalIf(node, env)
	case *ast.BinOp:
		return e.evalBinOp(node, env)
	case *ast.Match:
		return e.evalMatch(node, env)
	case *ast.Block:
		return e.evalBlock(node, env)
	}
	return newError("unknown expression node %T", node)
}

func (e *Evaluator) evalIdent(node *ast.Ident, env *Environment) Object {
	if val, ok := env.Get(node.Name); ok {
		return force(e, val)
	}
	// Namespace member: "channel.make" resolves through the "channel"
	// record when no binding carries the dotted name itself. The
	// builtin namespace table is consulted last so "map.put" still
	// resolves while the bare name "map" means the effect combinator.
	if i := strings.IndexByte(node.Name, '.'); i > 0 {
		base, member := node.Name[:i], node.Name[i+1:]
		if bound, ok := env.Get(base); ok {
			if rec, ok := force(e, bound).(*Record); ok {
				if v := rec.Get(member); v != nil {
					return force(e, v)
				}
			}
		}
		if rec, ok := Namespaces[base]; ok {
			if v := rec.Get(member); v != nil {
				return force(e, v)
			}
		}
	}
	return newError("unbound name %q", node.Name)
}

func (e *Evaluator) evalIf(node *ast.If, env *Environment) Object {
	cond := e.Eval(node.Cond, env)
	if isError(cond) {
		return cond
	}
	b, ok := cond.(*Boolean)
	if !ok {
		return newError("if condition must be a boolean, got %s", cond.Type())
	}
	if b.Value {
		return e.Eval(node.Then, env)
	}
	return e.Eval(node.Else, env)
}

func (e *Evaluator) evalMatch(node *ast.Match, env *Environment) Object {
	val := e.Eval(node.Subject, env)
	if isError(val) {
		return val
	}

	for _, arm := range node.Arms {
		bindings, matched := matchPattern(arm.Pattern, val)
		if !matched {
			continue
		}
		armEnv := NewEnclosedEnvironment(env)
		for k, v := range bindings {
			armEnv.Set(k, v)
		}
		if arm.Guard != nil {
			guard := e.Eval(arm.Guard, armEnv)
			if isError(guard) {
				return guard
			}
			if b, ok := guard.(*Boolean); !ok || !b.Value {
				continue
			}
		}
		return e.Eval(arm.Body, armEnv)
	}
	return newError("non-exhaustive match: no pattern matched %s", val.Inspect())
}

func (e *Evaluator) evalInterpText(node *ast.InterpText, env *Environment) Object {
	var out strings.Builder
	for _, part := range node.Parts {
		if part.Expr == nil {
			out.WriteString(part.Text)
			continue
		}
		v := e.Eval(part.Expr, env)
		if isError(v) {
			return v
		}
		out.WriteString(inspectText(v))
	}
	return &Text{Value: out.String()}
}

func (e *Evaluator) evalListLit(node *ast.ListLit, env *Environment) Object {
	elements := make([]Object, 0, len(node.Elements))
	for _, el := range node.Elements {
		v := e.Eval(el, env)
		if isError(v) {
			return v
		}
		elements = append(elements, v)
	}
	return NewList(elements)
}

func (e *Evaluator) evalTupleLit(node *ast.TupleLit, env *Environment) Object {
	elements := make([]Object, 0, len(node.Elements))
	for _, el := range node.Elements {
		v := e.Eval(el, env)
		if isError(v) {
			return v
		}
		elements = append(elements, v)
	}
	return &Tuple{Elements: elements}
}

func (e *Evaluator) evalRecordLit(node *ast.RecordLit, env *Environment) Object {
	fields := make([]RecordEntry, 0, len(node.Fields))
	for _, f := range node.Fields {
		v := e.Eval(f.Value, env)
		if isError(v) {
			return v
		}
		fields = append(fields, RecordEntry{Key: f.Key, Value: v})
	}
	return NewRecord(fields)
}

func (e *Evaluator) evalCtorLit(node *ast.CtorLit, env *Environment) Object {
	args := make([]Object, 0, len(node.Args))
	for _, a := range node.Args {
		v := e.Eval(a, env)
		if isError(v) {
			return v
		}
		args = append(args, v)
	}
	return &Constructor{Name: node.Name, Args: args}
}

// inspectText renders a value for console output and interpolation:
// text without quotes, everything else as Inspect.
func inspectText(v Object) string {
	if t, ok := v.(*Text); ok {
		return t.Value
	}
	return v.Inspect()
}
