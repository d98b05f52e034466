package evaluator

import (
	"time"

	"github.com/google/uuid"

	"github.com/loomlang/loom/internal/config"
)

// Structured concurrency: every concurrently-running effect gets its
// own goroutine and its own child cancellation token. Combinators join
// through bounded-interval polling, never indefinite blocking, and a
// combinator that cancels a branch always drains it before returning.

func init() {
	registerNamespace("channel", map[string]Object{
		"make":  nsBuiltin("channel", "make", 1, channelMake),
		"send":  nsBuiltin("channel", "send", 2, channelSend),
		"recv":  nsBuiltin("channel", "recv", 1, channelRecv),
		"close": nsBuiltin("channel", "close", 1, channelClose),
	})

	registerNamespace("concurrent", map[string]Object{
		"scope":         nsBuiltin("concurrent", "scope", 1, concurrentScope),
		"par":           nsBuiltin("concurrent", "par", 2, concurrentPar),
		"race":          nsBuiltin("concurrent", "race", 2, concurrentRace),
		"spawnDetached": nsBuiltin("concurrent", "spawnDetached", 1, concurrentSpawnDetached),
	})

	registerNamespace("resource", map[string]Object{
		"make": nsBuiltin("resource", "make", 2, resourceMake),
		"use":  nsBuiltin("resource", "use", 2, resourceUse),
	})
}

var closedValue = &Constructor{Name: config.ClosedCtorName}

func channelMake(e *Evaluator, args ...Object) Object {
	return NewEffect(func(fx *EffectContext) Object {
		st := &channelState{}
		send := &SendHandle{ID: uuid.New(), ch: st}
		recv := &RecvHandle{ID: uuid.New(), ch: st}
		return &Tuple{Elements: []Object{send, recv}}
	})
}

func channelSend(e *Evaluator, args ...Object) Object {
	h, okH := args[0].(*SendHandle)
	if !okH {
		return newError("channel.send expects a send handle, got %s", args[0].Type())
	}
	v := args[1]
	return NewEffect(func(fx *EffectContext) Object {
		h.ch.mu.Lock()
		defer h.ch.mu.Unlock()
		if h.ch.closed {
			return newPayloadError(closedValue)
		}
		h.ch.items = append(h.ch.items, v)
		return UnitValue
	})
}

func channelRecv(e *Evaluator, args ...Object) Object {
	h, okH := args[0].(*RecvHandle)
	if !okH {
		return newError("channel.recv expects a recv handle, got %s", args[0].Type())
	}
	return NewEffect(func(fx *EffectContext) Object {
		for {
			if err := fx.check(); err != nil {
				return err
			}
			h.ch.mu.Lock()
			if len(h.ch.items) > 0 {
				v := h.ch.items[0]
				h.ch.items = h.ch.items[1:]
				h.ch.mu.Unlock()
				return okValue(v)
			}
			if h.ch.closed {
				h.ch.mu.Unlock()
				return errValue(closedValue)
			}
			h.ch.mu.Unlock()
			time.Sleep(config.CancelPollInterval)
		}
	})
}

func channelClose(e *Evaluator, args ...Object) Object {
	h, okH := args[0].(*SendHandle)
	if !okH {
		return newError("channel.close expects a send handle, got %s", args[0].Type())
	}
	return NewEffect(func(fx *EffectContext) Object {
		h.ch.mu.Lock()
		h.ch.closed = true
		h.ch.mu.Unlock()
		return UnitValue
	})
}

// concurrentScope runs an effect in a fresh child cancellation scope
// and unconditionally cancels that scope on exit, so no work spawned
// transitively inside can outlive the call.
func concurrentScope(e *Evaluator, args ...Object) Object {
	eff := args[0]
	return NewEffect(func(fx *EffectContext) Object {
		child := NewChildToken(fx.Token)
		defer child.Cancel()
		return RunEffect(fx.child(child), eff)
	})
}

// branch runs one effect on its own goroutine under its own child
// token. done is closed after result is written.
type branch struct {
	token  *CancelToken
	result Object
	done   chan struct{}
}

func spawnBranch(fx *EffectContext, eff Object) *branch {
	b := &branch{token: NewChildToken(fx.Token), done: make(chan struct{})}
	worker := fx.E.Fork()
	go func() {
		defer close(b.done)
		b.result = RunEffect(&EffectContext{E: worker, Token: b.token}, eff)
	}()
	return b
}

// await blocks until the branch finishes, re-checking the caller's
// token at bounded intervals. The branch observes ancestor
// cancellation through its own token; the poll here only bounds the
// join latency.
func (b *branch) await(fx *EffectContext) Object {
	for {
		select {
		case <-b.done:
			return b.result
		case <-time.After(config.CancelPollInterval):
			if fx.Token.IsCancelled() {
				b.token.Cancel()
			}
		}
	}
}

// awaitEither blocks until one of the two branches finishes and
// reports which.
func awaitEither(fx *EffectContext, b1, b2 *branch) int {
	for {
		select {
		case <-b1.done:
			return 1
		case <-b2.done:
			return 2
		case <-time.After(config.CancelPollInterval):
			if fx.Token.IsCancelled() {
				b1.token.Cancel()
				b2.token.Cancel()
			}
		}
	}
}

// concurrentPar runs two effects concurrently and waits for both. If
// either fails it cancels the other, but still waits the other out
// before returning. Succeeds with a pair only when both succeeded; on a
// tie the left failure wins.
func concurrentPar(e *Evaluator, args ...Object) Object {
	e1, e2 := args[0], args[1]
	return NewEffect(func(fx *EffectContext) Object {
		b1 := spawnBranch(fx, e1)
		b2 := spawnBranch(fx, e2)

		switch awaitEither(fx, b1, b2) {
		case 1:
			if isFailure(b1.result) {
				b2.token.Cancel()
			}
			b2.await(fx)
		default:
			if isFailure(b2.result) {
				b1.token.Cancel()
			}
			b1.await(fx)
		}

		// Fuel exhaustion stops the whole run and never flows into a
		// pair as data.
		if isFuelStop(b1.result) {
			return b1.result
		}
		if isFuelStop(b2.result) {
			return b2.result
		}

		// Left failure wins the tie; a branch cancelled because its
		// sibling failed is an expected outcome, not a failure.
		if isFailure(b1.result) {
			return b1.result
		}
		if isFailure(b2.result) {
			return b2.result
		}
		if isCancelled(b1.result) || isCancelled(b2.result) {
			return newCancelledError()
		}
		return &Tuple{Elements: []Object{b1.result, b2.result}}
	})
}

// concurrentRace runs two effects concurrently and returns as soon as
// either finishes, cancelling and then draining the loser first so no
// loser thread runs past the return.
func concurrentRace(e *Evaluator, args ...Object) Object {
	e1, e2 := args[0], args[1]
	return NewEffect(func(fx *EffectContext) Object {
		b1 := spawnBranch(fx, e1)
		b2 := spawnBranch(fx, e2)

		var winner, loser *branch
		if awaitEither(fx, b1, b2) == 1 {
			winner, loser = b1, b2
		} else {
			winner, loser = b2, b1
		}
		loser.token.Cancel()
		loser.await(fx)

		if isCancelled(winner.result) && !fx.Token.IsCancelled() {
			// The winner observed a cancellation that did not come
			// from above; nothing meaningful to return.
			return newCancelledError()
		}
		return winner.result
	})
}

// concurrentSpawnDetached runs an effect on a new thread attached one
// level up: its scope is a child of the *parent* of the current scope,
// so it deliberately outlives the immediate enclosing scope while
// staying bounded by the grandparent. No result is observable.
func concurrentSpawnDetached(e *Evaluator, args ...Object) Object {
	eff := args[0]
	return NewEffect(func(fx *EffectContext) Object {
		attach := fx.Token.Parent()
		if attach == nil {
			attach = fx.Token
		}
		token := NewChildToken(attach)
		worker := fx.E.Fork()
		go func() {
			_ = RunEffect(&EffectContext{E: worker, Token: token}, eff)
		}()
		return UnitValue
	})
}

func resourceMake(e *Evaluator, args ...Object) Object {
	return &Resource{Acquire: args[0], Release: args[1]}
}

// resourceUse acquires, applies the body function to the acquired
// value, and releases exactly once on every exit path.
func resourceUse(e *Evaluator, args ...Object) Object {
	res, okR := args[0].(*Resource)
	if !okR {
		return newError("resource.use expects a resource, got %s", args[0].Type())
	}
	bodyFn := args[1]
	return NewEffect(func(fx *EffectContext) Object {
		acquired := RunEffect(fx, res.Acquire)
		if isError(acquired) {
			return acquired
		}

		var bodyRes Object
		if body := fx.E.ApplyFunction(bodyFn, []Object{acquired}); isError(body) {
			bodyRes = body
		} else {
			bodyRes = RunEffect(fx, body)
		}

		var relRes Object = UnitValue
		if rel := fx.E.ApplyFunction(res.Release, []Object{acquired}); isError(rel) {
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
