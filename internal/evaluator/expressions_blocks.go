package evaluator

import (
	"github.com/loomlang/loom/internal/ast"
)

func (e *Evaluator) evalBlock(node *ast.Block, env *Environment) Object {
	switch node.Kind {
	case ast.PlainBlock:
		return e.evalPlainBlock(node, env)
	case ast.EffectBlock:
		// Construction only: the statements run when the effect does.
		return NewEffect(func(fx *EffectContext) Object {
			return fx.E.runEffectStmts(node.Stmts, env, fx)
		})
	case ast.GenerateBlock:
		return newError("generate block reached the evaluator; generators must be lowered to fold form")
	case ast.ResourceBlock:
		return e.evalResourceBlock(node, env)
	}
	return newError("unknown block kind %d", node.Kind)
}

func (e *Evaluator) evalPlainBlock(node *ast.Block, env *Environment) Object {
	blockEnv := NewEnclosedEnvironment(env)
	var last Object = UnitValue
	for _, st := range node.Stmts {
		v := e.Eval(st.Expr, blockEnv)
		if isError(v) {
			return v
		}
		if st.Bind != "" {
			blockEnv.Set(st.Bind, v)
		}
		last = v
	}
	return last
}

// runEffectStmts sequences the statements of an effect block: each
// statement must evaluate to an effect, which is run before the next
// statement starts. Cancellation is polled between statements.
func (e *Evaluator) runEffectStmts(stmts []ast.BlockStmt, env *Environment, fx *EffectContext) Object {
	blockEnv := NewEnclosedEnvironment(env)
	var last Object = UnitValue
	for _, st := range stmts {
		if err := fx.check(); err != nil {
			return err
		}
		v := e.Eval(st.Expr, blockEnv)
		if isError(v) {
			return v
		}
		res := RunEffect(fx, v)
		if isError(res) {
			return res
		}
		if st.Bind != "" {
			blockEnv.Set(st.Bind, res)
		}
		last = res
	}
	return last
}

// evalResourceBlock builds the effect for a resource block: run the
// acquisition effect, bind the acquired value, run the body, and run
// the release effect exactly once on every exit path out of the body —
// normal completion, failure, or cancellation. Release is shielded
// from the surrounding cancellation tree so it completes even when the
// scope is already cancelled. A failed acquisition never enters the
// body and never releases.
func (e *Evaluator) evalResourceBlock(node *ast.Block, env *Environment) Object {
	return NewEffect(func(fx *EffectContext) Object {
		acq := fx.E.Eval(node.Acquire, env)
		if isError(acq) {
			return acq
		}
		acquired := RunEffect(fx, acq)
		if isError(acquired) {
			return acquired
		}

		bodyEnv := NewEnclosedEnvironment(env)
		if node.Binding != "" {
			bodyEnv.Set(node.Binding, acquired)
		}

		bodyRes := fx.E.runEffectStmts(node.Stmts, bodyEnv, fx)

		var relRes Object = UnitValue
		if rel := fx.E.Eval(node.Release, bodyEnv); isError(rel) {
			relRes = rel
		} else {
			relRes = runShielded(fx, rel)
		}

		if isError(bodyRes) {
			return bodyRes
		}
		if isError(relRes) {
			return relRes
		}
		return bodyRes
	})
}
