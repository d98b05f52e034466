package evaluator

import (
	"github.com/loomlang/loom/internal/config"
)

// The monadic core of the effect protocol. Every builtin here only
// *constructs* effects; nothing observable happens until RunEffect.

func init() {
	registerBuiltin(&Builtin{
		Name:  config.PureFuncName,
		Arity: 1,
		Fn: func(e *Evaluator, args ...Object) Object {
			v := args[0]
			return NewEffect(func(fx *EffectContext) Object {
				return v
			})
		},
	})

	registerBuiltin(&Builtin{
		Name:  config.FailFuncName,
		Arity: 1,
		Fn: func(e *Evaluator, args ...Object) Object {
			payload := args[0]
			return NewEffect(func(fx *EffectContext) Object {
				return newPayloadError(payload)
			})
		},
	})

	registerBuiltin(&Builtin{
		Name:  config.BindFuncName,
		Arity: 2,
		Fn: func(e *Evaluator, args ...Object) Object {
			eff, f := args[0], args[1]
			return NewEffect(func(fx *EffectContext) Object {
				res := RunEffect(fx, eff)
				if isError(res) {
					return res
				}
				next := fx.E.ApplyFunction(f, []Object{res})
				if isError(next) {
					return next
				}
				return RunEffect(fx, next)
			})
		},
	})

	// attempt converts a payload failure into Err and a success into
	// Ok. Cancellation and internal errors propagate unconverted.
	registerBuiltin(&Builtin{
		Name:  config.AttemptFuncName,
		Arity: 1,
		Fn: func(e *Evaluator, args ...Object) Object {
			eff := args[0]
			return NewEffect(func(fx *EffectContext) Object {
				res := RunEffect(fx, eff)
				if err, failed := res.(*RuntimeError); failed {
					if err.Kind == ErrPayload {
						return errValue(err.Payload)
					}
					return err
				}
				return okValue(res)
			})
		},
	})

	// load marks a value as the effect to be run rather than further
	// combined. Identity on effects, an error on anything else.
	registerBuiltin(&Builtin{
		Name:  config.LoadFuncName,
		Arity: 1,
		Fn: func(e *Evaluator, args ...Object) Object {
			v := force(e, args[0])
			if isError(v) {
				return v
			}
			if _, isEffect := v.(*Effect); !isEffect {
				return newError("load expects an effect, got %s", v.Type())
			}
			return v
		},
	})

	registerBuiltin(&Builtin{
		Name:  config.MapFuncName,
		Arity: 2,
		Fn: func(e *Evaluator, args ...Object) Object {
			eff, f := args[0], args[1]
			return NewEffect(func(fx *EffectContext) Object {
				res := RunEffect(fx, eff)
				if isError(res) {
					return res
				}
				return fx.E.ApplyFunction(f, []Object{res})
			})
		},
	})

	registerBuiltin(&Builtin{
		Name:  config.ChainFuncName,
		Arity: 2,
		Fn: func(e *Evaluator, args ...Object) Object {
			first, second := args[0], args[1]
			return NewEffect(func(fx *EffectContext) Object {
				res := RunEffect(fx, first)
				if isError(res) {
					return res
				}
				return RunEffect(fx, second)
			})
		},
	})

	registerBuiltin(&Builtin{
		Name:  config.AssertEqFuncName,
		Arity: 2,
		Fn: func(e *Evaluator, args ...Object) Object {
			a, b := args[0], args[1]
			return NewEffect(func(fx *EffectContext) Object {
				if ObjectsEqual(a, b) {
					return UnitValue
				}
				return newPayloadError(&Text{
					Value: "assertEq: " + a.Inspect() + " != " + b.Inspect(),
				})
			})
		},
	})

	// foldGen applies a lowered generator to a step function and a
	// seed, in that order. Generators arrive as two-argument-curried
	// callables; how they were constructed is the lowering stage's
	// business.
	registerBuiltin(&Builtin{
		Name:  config.FoldGenFuncName,
		Arity: 3,
		Fn: func(e *Evaluator, args ...Object) Object {
			gen, step, seed := args[0], args[1], args[2]
			return e.ApplyFunction(gen, []Object{step, seed})
		},
	})
}
