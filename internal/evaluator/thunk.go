package evaluator

import (
	"sync"
	"unsafe"

	"github.com/petermattis/goid"

	"github.com/loomlang/loom/internal/ast"
)

type thunkState int

const (
	thunkPending thunkState = iota
	thunkInProgress
	thunkDone
)

// Thunk is a deferred, memoized computation: an expression plus its
// captured environment. It is forced at most once; the first forcer
// computes and caches the result (success or failure) for all
// subsequent readers. A forcer that re-enters its own in-progress thunk
// reports a definition cycle instead of deadlocking; a concurrent
// forcer on another goroutine waits for the first to finish.
type Thunk struct {
	mu     sync.Mutex
	state  thunkState
	result Object
	forcer int64         // goroutine id of the in-progress forcer
	done   chan struct{} // closed when state becomes done

	Name string // definition name, for cycle reports
	Expr ast.Expr
	Env  *Environment
}

func NewThunk(name string, expr ast.Expr, env *Environment) *Thunk {
	return &Thunk{Name: name, Expr: expr, Env: env}
}

func (t *Thunk) Type() ObjectType { return THUNK_OBJ }
func (t *Thunk) Inspect() string  { return "<thunk " + t.Name + ">" }
func (t *Thunk) Hash() uint32     { return uint32(uintptr(unsafe.Pointer(t))) }

// Force evaluates the thunk body, memoizing the result.
func (t *Thunk) Force(e *Evaluator) Object {
	self := goid.Get()

	t.mu.Lock()
	switch t.state {
	case thunkDone:
		res := t.result
		t.mu.Unlock()
		return res
	case thunkInProgress:
		if t.forcer == self {
			t.mu.Unlock()
			return newError("definition cycle: %q depends on itself", t.Name)
		}
		done := t.done
		t.mu.Unlock()
		<-done
		t.mu.Lock()
		res := t.result
		t.mu.Unlock()
		return res
	}
	t.state = thunkInProgress
	t.forcer = self
	t.done = make(chan struct{})
	t.mu.Unlock()

	res := e.Eval(t.Expr, t.Env)

	t.mu.Lock()
	t.state = thunkDone
	t.result = res
	close(t.done)
	t.mu.Unlock()
	return res
}

// force resolves thunks to their underlying value; other objects pass
// through unchanged.
func force(e *Evaluator, obj Object) Object {
	for {
		t, ok := obj.(*Thunk)
		if !ok {
			return obj
		}
		obj = t.Force(e)
	}
}
