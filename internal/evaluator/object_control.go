package evaluator

import (
	"fmt"
	"unsafe"
)

// ErrorKind is the failure taxonomy.
type ErrorKind int

const (
	// ErrMessage is an internal/native error: a bug in the program or
	// its lowering (type mismatch at a builtin boundary, unbound name,
	// non-exhaustive match). Never converted by attempt.
	ErrMessage ErrorKind = iota
	// ErrPayload is a language-level failure carrying an arbitrary
	// payload value, raised by fail or a builtin's documented failure
	// case. Recoverable via attempt.
	ErrPayload
	// ErrCancelled is the cooperative cancellation signal. Never
	// converted by attempt; swallowed only at the combinator boundary
	// that initiated the cancellation.
	ErrCancelled
	// ErrFuel reports fuel exhaustion. The entry point treats it as
	// "ran out of time", not as failure.
	ErrFuel
)

// RuntimeError is a failed evaluation. It flows through the evaluator
// as an ordinary Object so that every consumer can short-circuit on it.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Payload Object // set for ErrPayload only
}

func (e *RuntimeError) Type() ObjectType { return ERROR_OBJ }
func (e *RuntimeError) Inspect() string {
	switch e.Kind {
	case ErrPayload:
		return "error: " + e.Payload.Inspect()
	case ErrCancelled:
		return "cancelled"
	case ErrFuel:
		return "fuel exhausted"
	default:
		return "ERROR: " + e.Message
	}
}
func (e *RuntimeError) Hash() uint32 { return hashString(e.Inspect()) }

func newError(format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: ErrMessage, Message: fmt.Sprintf(format, args...)}
}

func newPayloadError(payload Object) *RuntimeError {
	return &RuntimeError{Kind: ErrPayload, Payload: payload}
}

func newCancelledError() *RuntimeError {
	return &RuntimeError{Kind: ErrCancelled}
}

func isError(obj Object) bool {
	_, ok := obj.(*RuntimeError)
	return ok
}

// isFailure reports a payload or message error: a result that par/race
// treat as a branch failure. Cancellation is not a failure.
func isFailure(obj Object) bool {
	if err, ok := obj.(*RuntimeError); ok {
		return err.Kind == ErrMessage || err.Kind == ErrPayload
	}
	return false
}

func isCancelled(obj Object) bool {
	err, ok := obj.(*RuntimeError)
	return ok && err.Kind == ErrCancelled
}

func isFuelStop(obj Object) bool {
	err, ok := obj.(*RuntimeError)
	return ok && err.Kind == ErrFuel
}

// EffectContext is the execution context threaded through a running
// effect: the evaluator doing the work and the cancellation token of
// the current scope.
type EffectContext struct {
	E     *Evaluator
	Token *CancelToken
}

// check polls the cancellation token.
func (fx *EffectContext) check() *RuntimeError {
	if fx.Token.IsCancelled() {
		return newCancelledError()
	}
	return nil
}

// child returns a context one scope down.
func (fx *EffectContext) child(tok *CancelToken) *EffectContext {
	return &EffectContext{E: fx.E, Token: tok}
}

// Effect is a suspended side-effecting computation: a description, not
// an execution. Constructing an Effect never performs anything; running
// it through RunEffect is the only place observable effects occur.
type Effect struct {
	perform func(fx *EffectContext) Object
}

func NewEffect(perform func(fx *EffectContext) Object) *Effect {
	return &Effect{perform: perform}
}

func (e *Effect) Type() ObjectType { return EFFECT_OBJ }
func (e *Effect) Inspect() string  { return "<effect>" }
func (e *Effect) Hash() uint32     { return uint32(uintptr(unsafe.Pointer(e))) }

// Resource is a suspended acquire/release pair. Acquire is an Effect;
// Release is a callable applied to the acquired value, yielding the
// release effect.
type Resource struct {
	Acquire Object
	Release Object
}

func (r *Resource) Type() ObjectType { return RESOURCE_OBJ }
func (r *Resource) Inspect() string  { return "<resource>" }
func (r *Resource) Hash() uint32     { return uint32(uintptr(unsafe.Pointer(r))) }
