package evaluator

import (
	"io"
	"strings"

	"github.com/loomlang/loom/internal/config"
	"github.com/loomlang/loom/internal/program"
)

// RunOptions configure an entry-point run.
type RunOptions struct {
	Out  io.Writer // program output; defaults to os.Stdout
	Fuel int64     // total step budget; 0 means unbounded
}

// TestResult is the outcome of one test binding.
type TestResult struct {
	Name    string
	Passed  bool
	Message string // failure rendering; empty on pass
}

// BuildGlobalEnv builds the write-once global environment for prog on e:
// builtins first, then every definition as a lazy thunk over the global
// env itself so definitions may reference each other in any order.
// Same-name definitions group into one multi-clause callable in
// declaration order; a definition shadowing a builtin name is dropped.
func BuildGlobalEnv(e *Evaluator, prog *program.Program) *Environment {
	env := NewEnvironment()
	RegisterInto(env)

	grouped := make(map[string][]*Thunk, len(prog.Defs))
	order := make([]string, 0, len(prog.Defs))
	for _, def := range prog.Defs {
		if IsBuiltinName(def.Name) {
			continue
		}
		if _, seen := grouped[def.Name]; !seen {
			order = append(order, def.Name)
		}
		grouped[def.Name] = append(grouped[def.Name], NewThunk(def.Name, def.Expr, env))
	}

	for _, name := range order {
		thunks := grouped[name]
		if len(thunks) == 1 {
			env.Set(name, thunks[0])
			continue
		}
		clauses := make([]Object, len(thunks))
		for i, t := range thunks {
			clauses[i] = t
		}
		env.Set(name, &MultiClause{Name: name, Clauses: clauses})
	}

	e.GlobalEnv = env
	return env
}

// Run resolves main, which must evaluate to an effect, and runs it under
// a fresh root token. The returned object is the effect's result; a fuel
// budget of zero means unbounded.
func Run(prog *program.Program, opts RunOptions) Object {
	e := newRunEvaluator(opts)
	BuildGlobalEnv(e, prog)
	return runBinding(e, config.MainBindingName)
}

// RunWithFuel is Run with an explicit step budget.
func RunWithFuel(prog *program.Program, budget int64) Object {
	return Run(prog, RunOptions{Fuel: budget})
}

// RunTestSuite runs each named binding as an independent effect under
// its own root token. With no names, every binding whose name starts
// with the test prefix runs, in declaration order. Thunk caches are
// shared across tests; cancellation and fuel are not.
func RunTestSuite(prog *program.Program, names []string, opts RunOptions) []TestResult {
	base := newRunEvaluator(opts)
	env := BuildGlobalEnv(base, prog)

	if len(names) == 0 {
		for _, name := range prog.Names() {
			if strings.HasPrefix(name, config.TestBindingPrefix) {
				names = append(names, name)
			}
		}
	}

	results := make([]TestResult, 0, len(names))
	for _, name := range names {
		e := newRunEvaluator(opts)
		e.GlobalEnv = env
		result := runBinding(e, name)
		if err, failed := result.(*RuntimeError); failed {
			results = append(results, TestResult{Name: name, Message: err.Inspect()})
			continue
		}
		results = append(results, TestResult{Name: name, Passed: true})
	}
	return results
}

func newRunEvaluator(opts RunOptions) *Evaluator {
	e := New()
	if opts.Out != nil {
		e.Out = opts.Out
	}
	if opts.Fuel > 0 {
		e.SetFuel(opts.Fuel)
	}
	return e
}

func runBinding(e *Evaluator, name string) Object {
	bound, okB := e.GlobalEnv.Get(name)
	if !okB {
		return newError("no %q binding in program", name)
	}
	val := force(e, bound)
	if isError(val) {
		return val
	}
	if _, okE := val.(*Effect); !okE {
		return newError("%q must be an effect, got %s", name, val.Type())
	}
	return RunEffect(&EffectContext{E: e, Token: e.rootToken}, val)
}

// IsFailure reports whether a run result is a program failure. Fuel
// exhaustion and cancellation are stops, not failures.
func IsFailure(result Object) bool { return isFailure(result) }

// IsFuelExhausted reports whether a run stopped on an empty budget.
func IsFuelExhausted(result Object) bool {
	err, okE := result.(*RuntimeError)
	return okE && err.Kind == ErrFuel
}

// ResultMessage renders a run result for the console.
func ResultMessage(result Object) string { return result.Inspect() }
