package evaluator

import (
	"strconv"
	"strings"
	"unsafe"

	"github.com/loomlang/loom/internal/ast"
)

// Constructor is a user-defined (or builtin Some/None/Ok/Err) sum-type
// value: a name applied to zero or more arguments.
type Constructor struct {
	Name string
	Args []Object
}

func (c *Constructor) Type() ObjectType { return CONSTRUCTOR_OBJ }
func (c *Constructor) Inspect() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.Inspect()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (c *Constructor) Hash() uint32 {
	h := hashString(c.Name)
	for _, a := range c.Args {
		h = 31*h + a.Hash()
	}
	return h
}

// Closure is a user function: one parameter pattern, a body, and the
// captured environment. Multi-parameter functions are lowered to nested
// closures.
type Closure struct {
	Name  string // definition name, empty for lambdas
	Param ast.Pattern
	Body  ast.Expr
	Env   *Environment
}

func (c *Closure) Type() ObjectType { return CLOSURE_OBJ }
func (c *Closure) Inspect() string {
	if c.Name != "" {
		return "fn " + c.Name
	}
	return "fn(...)"
}
func (c *Closure) Hash() uint32 { return uint32(uintptr(unsafe.Pointer(c))) }

// BuiltinFunc is the native implementation of a builtin. It receives
// exactly Arity arguments once the curried application is saturated.
type BuiltinFunc func(e *Evaluator, args ...Object) Object

// Builtin is a native function with an arity and a partially-applied
// argument prefix.
type Builtin struct {
	Name    string
	Arity   int
	Fn      BuiltinFunc
	Applied []Object
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin " + b.Name }
func (b *Builtin) Hash() uint32     { return hashString(b.Name) }

// MultiClause is a callable representing several pattern-matching
// equations for one name, tried in declaration order. Clauses are
// thunk-backed callables (or plain closures).
type MultiClause struct {
	Name    string
	Clauses []Object
}

func (m *MultiClause) Type() ObjectType { return MULTICLAUSE_OBJ }
func (m *MultiClause) Inspect() string {
	return "fn " + m.Name + " <" + strconv.Itoa(len(m.Clauses)) + " clauses>"
}
func (m *MultiClause) Hash() uint32 { return uint32(uintptr(unsafe.Pointer(m))) }
