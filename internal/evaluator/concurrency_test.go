package evaluator

import (
	"sync/atomic"
	"testing"
	"time"
)

// sleepEffect completes with v after d, polling cancellation.
func sleepEffect(d time.Duration, v Object) *Effect {
	return NewEffect(func(fx *EffectContext) Object {
		deadline := time.Now().Add(d)
		for time.Now().Before(deadline) {
			if err := fx.check(); err != nil {
				return err
			}
			time.Sleep(time.Millisecond)
		}
		return v
	})
}

// spinUntilCancelled loops until its scope is cancelled, recording that
// it observed the cancellation.
func spinUntilCancelled(observed *atomic.Bool) *Effect {
	return NewEffect(func(fx *EffectContext) Object {
		for {
			if err := fx.check(); err != nil {
				observed.Store(true)
				return err
			}
			time.Sleep(time.Millisecond)
		}
	})
}

func makeChannel(t *testing.T, e *Evaluator) (*SendHandle, *RecvHandle) {
	t.Helper()
	eff := e.ApplyFunction(Namespaces["channel"].Get("make"), []Object{UnitValue})
	pair, okP := RunEffect(rootFx(e), eff).(*Tuple)
	if !okP {
		t.Fatal("channel.make should yield a handle pair")
	}
	return pair.Elements[0].(*SendHandle), pair.Elements[1].(*RecvHandle)
}

func TestChannelSendRecv(t *testing.T) {
	e, _ := newTestEvaluator()
	send, recv := makeChannel(t, e)

	sendEff := e.ApplyFunction(Namespaces["channel"].Get("send"), []Object{send, &Integer{Value: 5}})
	if got := RunEffect(rootFx(e), sendEff); got != UnitValue {
		t.Fatalf("send failed: %s", got.Inspect())
	}

	recvEff := e.ApplyFunction(Namespaces["channel"].Get("recv"), []Object{recv})
	c := mustCtor(t, RunEffect(rootFx(e), recvEff), "Ok")
	mustInt(t, c.Args[0], 5)
}

func TestChannelClose(t *testing.T) {
	e, _ := newTestEvaluator()
	send, recv := makeChannel(t, e)

	// A buffered value survives the close; after draining, recv
	// reports Err(Closed) and send fails with a Closed payload.
	RunEffect(rootFx(e), e.ApplyFunction(Namespaces["channel"].Get("send"), []Object{send, &Integer{Value: 1}}))
	RunEffect(rootFx(e), e.ApplyFunction(Namespaces["channel"].Get("close"), []Object{send}))

	first := RunEffect(rootFx(e), e.ApplyFunction(Namespaces["channel"].Get("recv"), []Object{recv}))
	mustCtor(t, first, "Ok")

	drained := RunEffect(rootFx(e), e.ApplyFunction(Namespaces["channel"].Get("recv"), []Object{recv}))
	c := mustCtor(t, drained, "Err")
	mustCtor(t, c.Args[0], "Closed")

	rejected := RunEffect(rootFx(e), e.ApplyFunction(Namespaces["channel"].Get("send"), []Object{send, &Integer{Value: 2}}))
	payload := mustFailurePayload(t, rejected)
	mustCtor(t, payload, "Closed")
}

func TestChannelRecvUnblocksOnCancellation(t *testing.T) {
	e, _ := newTestEvaluator()
	_, recv := makeChannel(t, e)

	child := NewChildToken(e.RootToken())
	done := make(chan Object, 1)
	go func() {
		eff := e.ApplyFunction(Namespaces["channel"].Get("recv"), []Object{recv})
		done <- RunEffect(&EffectContext{E: e.Fork(), Token: child}, eff)
	}()

	time.Sleep(10 * time.Millisecond)
	child.Cancel()

	select {
	case got := <-done:
		if !isCancelled(got) {
			t.Errorf("blocked recv should return cancelled, got %s", got.Inspect())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("recv did not observe cancellation")
	}
}

func TestParSuccess(t *testing.T) {
	e, _ := newTestEvaluator()

	eff := e.ApplyFunction(Namespaces["concurrent"].Get("par"), []Object{
		sleepEffect(5*time.Millisecond, &Integer{Value: 1}),
		sleepEffect(15*time.Millisecond, &Integer{Value: 2}),
	})
	pair, okP := RunEffect(rootFx(e), eff).(*Tuple)
	if !okP {
		t.Fatal("par of two successes should yield a pair")
	}
	mustInt(t, pair.Elements[0], 1)
	mustInt(t, pair.Elements[1], 2)
}

func TestParLeftFailureWinsTie(t *testing.T) {
	e, _ := newTestEvaluator()

	failEff := func(msg string) Object {
		return e.ApplyFunction(Builtins["fail"], []Object{&Text{Value: msg}})
	}
	// The outcome must not depend on which goroutine gets scheduled
	// first, so run the pair repeatedly.
	for i := 0; i < 50; i++ {
		eff := e.ApplyFunction(Namespaces["concurrent"].Get("par"), []Object{failEff("a"), failEff("b")})
		payload := mustFailurePayload(t, RunEffect(rootFx(e), eff))
		if payload.Inspect() != `"a"` {
			t.Fatalf("iteration %d: left failure should win the tie, got %s", i, payload.Inspect())
		}
	}
}

func TestParPropagatesFuelExhaustion(t *testing.T) {
	e, _ := newTestEvaluator()
	e.SetFuel(5)

	burner := NewEffect(func(fx *EffectContext) Object {
		for {
			if err := fx.E.chargeFuel(); err != nil {
				return err
			}
		}
	})
	eff := e.ApplyFunction(Namespaces["concurrent"].Get("par"), []Object{
		burner,
		sleepEffect(20*time.Millisecond, &Integer{Value: 9}),
	})
	res := RunEffect(rootFx(e), eff)
	err, okE := res.(*RuntimeError)
	if !okE || err.Kind != ErrFuel {
		t.Fatalf("an exhausted budget should stop the whole pair, got %s", res.Inspect())
	}
}

func TestParFailureCancelsAndDrainsSibling(t *testing.T) {
	e, _ := newTestEvaluator()

	var observed atomic.Bool
	eff := e.ApplyFunction(Namespaces["concurrent"].Get("par"), []Object{
		e.ApplyFunction(Builtins["fail"], []Object{&Text{Value: "boom"}}),
		spinUntilCancelled(&observed),
	})
	payload := mustFailurePayload(t, RunEffect(rootFx(e), eff))
	if payload.Inspect() != `"boom"` {
		t.Errorf("failure should surface, got %s", payload.Inspect())
	}
	// par returns only after draining, so the sibling has already
	// observed its cancellation.
	if !observed.Load() {
		t.Error("sibling was not drained before par returned")
	}
}

func TestRaceWinnerDrainsLoser(t *testing.T) {
	e, _ := newTestEvaluator()

	var observed atomic.Bool
	eff := e.ApplyFunction(Namespaces["concurrent"].Get("race"), []Object{
		sleepEffect(5*time.Millisecond, &Text{Value: "fast"}),
		spinUntilCancelled(&observed),
	})
	got := RunEffect(rootFx(e), eff)
	if got.Inspect() != `"fast"` {
		t.Errorf("race should return the winner, got %s", got.Inspect())
	}
	if !observed.Load() {
		t.Error("loser was not drained before race returned")
	}
}

func TestRacePropagatesWinnerFailure(t *testing.T) {
	e, _ := newTestEvaluator()

	eff := e.ApplyFunction(Namespaces["concurrent"].Get("race"), []Object{
		e.ApplyFunction(Builtins["fail"], []Object{&Text{Value: "lost anyway"}}),
		sleepEffect(50*time.Millisecond, &Integer{Value: 1}),
	})
	payload := mustFailurePayload(t, RunEffect(rootFx(e), eff))
	if payload.Inspect() != `"lost anyway"` {
		t.Errorf("winner failure should propagate, got %s", payload.Inspect())
	}
}

func TestScopeCancelsTransitiveWork(t *testing.T) {
	e, _ := newTestEvaluator()

	var observed atomic.Bool
	body := NewEffect(func(fx *EffectContext) Object {
		// Leak a branch on purpose; the scope must reap it.
		spawnBranch(fx, spinUntilCancelled(&observed))
		return UnitValue
	})
	eff := e.ApplyFunction(Namespaces["concurrent"].Get("scope"), []Object{body})
	if got := RunEffect(rootFx(e), eff); isError(got) {
		t.Fatalf("scope failed: %s", got.Inspect())
	}

	deadline := time.Now().Add(2 * time.Second)
	for !observed.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !observed.Load() {
		t.Error("work spawned inside the scope outlived it")
	}
	if e.RootToken().IsCancelled() {
		t.Error("scope exit must not cancel the surrounding scope")
	}
}

func TestSpawnDetachedOutlivesItsScope(t *testing.T) {
	e, _ := newTestEvaluator()

	started := make(chan struct{})
	var observed atomic.Bool
	detached := NewEffect(func(fx *EffectContext) Object {
		close(started)
		for {
			if err := fx.check(); err != nil {
				observed.Store(true)
				return err
			}
			time.Sleep(time.Millisecond)
		}
	})

	// The detach happens inside a scope; the detached effect attaches
	// one level up and must survive the scope's exit cancellation.
	body := NewEffect(func(fx *EffectContext) Object {
		return RunEffect(fx, e.ApplyFunction(Namespaces["concurrent"].Get("spawnDetached"), []Object{detached}))
	})
	eff := e.ApplyFunction(Namespaces["concurrent"].Get("scope"), []Object{body})
	if got := RunEffect(rootFx(e), eff); isError(got) {
		t.Fatalf("scope failed: %s", got.Inspect())
	}

	<-started
	time.Sleep(30 * time.Millisecond)
	if observed.Load() {
		t.Fatal("detached effect was cancelled by its spawning scope's exit")
	}

	// Root cancellation still bounds the detached work.
	e.RootToken().Cancel()
	deadline := time.Now().Add(2 * time.Second)
	for !observed.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !observed.Load() {
		t.Error("detached effect ignored root cancellation")
	}
}

func TestCancellationIsCooperative(t *testing.T) {
	e, _ := newTestEvaluator()

	child := NewChildToken(e.RootToken())
	grandchild := NewChildToken(child)

	child.Cancel()
	if !grandchild.IsCancelled() {
		t.Error("a descendant must observe an ancestor's cancellation")
	}
	if e.RootToken().IsCancelled() {
		t.Error("cancelling a child must not cancel its parent")
	}
}
