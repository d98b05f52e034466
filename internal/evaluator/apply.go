package evaluator

// ApplyFunction applies a callable to arguments, one at a time.
// Application is curried: applying a Closure/Builtin/MultiClause with
// fewer arguments than its arity yields a new partially-applied
// callable; reaching full arity invokes the body. Over-application
// applies the result to the remaining arguments in turn.
func (e *Evaluator) ApplyFunction(fn Object, args []Object) Object {
	for {
		fn = force(e, fn)
		if isError(fn) {
			return fn
		}
		if len(args) == 0 {
			return fn
		}

		switch f := fn.(type) {
		case *Closure:
			res, matched := e.applyClosure(f, args[0])
			if !matched {
				return newError("non-exhaustive match: argument %s does not match the parameter pattern of %s",
					args[0].Inspect(), f.Inspect())
			}
			if isError(res) {
				return res
			}
			fn = res
			args = args[1:]

		case *Builtin:
			needed := f.Arity - len(f.Applied)
			if len(args) < needed {
				applied := make([]Object, 0, len(f.Applied)+len(args))
				applied = append(applied, f.Applied...)
				applied = append(applied, args...)
				return &Builtin{Name: f.Name, Arity: f.Arity, Fn: f.Fn, Applied: applied}
			}
			callArgs := make([]Object, 0, f.Arity)
			callArgs = append(callArgs, f.Applied...)
			callArgs = append(callArgs, args[:needed]...)
			res := f.Fn(e, callArgs...)
			if isError(res) {
				return res
			}
			fn = res
			args = args[needed:]

		case *MultiClause:
			res, matched := e.dispatchClauses(f, args[0])
			if !matched {
				return newError("non-exhaustive match: no clause of %s matches %s", f.Name, args[0].Inspect())
			}
			if isError(res) {
				return res
			}
			fn = res
			args = args[1:]

		default:
			return newError("not a function: %s", fn.Type())
		}
	}
}

// applyClosure matches the argument against the parameter pattern and,
// on success, runs the body. The matched flag distinguishes "pattern
// did not match" (so a multi-clause dispatcher can try the next clause)
// from a failure inside the body.
func (e *Evaluator) applyClosure(f *Closure, arg Object) (Object, bool) {
	bindings, matched := matchPattern(f.Param, arg)
	if !matched {
		return nil, false
	}
	env := NewEnclosedEnvironment(f.Env)
	for k, v := range bindings {
		env.Set(k, v)
	}
	return e.Eval(f.Body, env), true
}

// dispatchClauses tries each candidate clause in declaration order; the
// first clause whose parameter pattern matches the argument runs.
func (e *Evaluator) dispatchClauses(m *MultiClause, arg Object) (Object, bool) {
	for _, clause := range m.Clauses {
		c := force(e, clause)
		if isError(c) {
			return c, true
		}
		cl, ok := c.(*Closure)
		if !ok {
			return newError("clause of %s is not a function: %s", m.Name, c.Type()), true
		}
		if res, matched := e.applyClosure(cl, arg); matched {
			return res, true
		}
	}
	return nil, false
}
