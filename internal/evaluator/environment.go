package evaluator

import "sync"

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Environment is a chain of name-to-value scopes. A child scope may
// shadow but never mutates its parent. The global environment at the
// root of every chain is write-once: built during startup, read-only
// afterwards.
type Environment struct {
	mu    sync.RWMutex
	store map[string]Object
	outer *Environment
}

// Get walks the scope chain. Absence of a name is a lowering bug, not a
// language-level runtime error; callers report it as such.
func (e *Environment) Get(name string) (Object, bool) {
	e.mu.RLock()
	obj, ok := e.store[name]
	e.mu.RUnlock()
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

// Set inserts or overwrites in the current scope only.
func (e *Environment) Set(name string, val Object) Object {
	e.mu.Lock()
	e.store[name] = val
	e.mu.Unlock()
	return val
}
