package evaluator

import (
	"testing"
)

func nsCall(t *testing.T, e *Evaluator, ns, name string, args ...Object) Object {
	t.Helper()
	fn := Namespaces[ns].Get(name)
	if fn == nil {
		t.Fatalf("no builtin %s.%s", ns, name)
	}
	return e.ApplyFunction(fn, args)
}

func TestMapNamespace(t *testing.T) {
	e, _ := newTestEvaluator()
	empty := Namespaces["map"].Get("empty")

	one := &Text{Value: "one"}
	m := nsCall(t, e, "map", "put", empty, &Integer{Value: 1}, one)
	mustInt(t, nsCall(t, e, "map", "size", m), 1)

	got := mustCtor(t, nsCall(t, e, "map", "get", m, &Integer{Value: 1}), "Some")
	if got.Args[0] != one {
		t.Errorf("get should return the stored value, got %s", got.Args[0].Inspect())
	}
	// Numeric keys unify across representations.
	mustCtor(t, nsCall(t, e, "map", "get", m, &Float{Value: 1.0}), "Some")
	mustCtor(t, nsCall(t, e, "map", "get", m, &Integer{Value: 2}), "None")

	removed := nsCall(t, e, "map", "remove", m, &Integer{Value: 1})
	mustInt(t, nsCall(t, e, "map", "size", removed), 0)
	mustInt(t, nsCall(t, e, "map", "size", m), 1)
}

func TestSetNamespace(t *testing.T) {
	e, _ := newTestEvaluator()
	empty := Namespaces["set"].Get("empty")

	s := nsCall(t, e, "set", "insert", empty, &Integer{Value: 1})
	s = nsCall(t, e, "set", "insert", s, &Integer{Value: 1})
	mustInt(t, nsCall(t, e, "set", "size", s), 1)
	if nsCall(t, e, "set", "contains", s, &Integer{Value: 1}) != TrueValue {
		t.Error("inserted element should be contained")
	}
}

func TestQueueNamespace(t *testing.T) {
	e, _ := newTestEvaluator()
	q := Namespaces["queue"].Get("empty")

	q = nsCall(t, e, "queue", "push", q, &Integer{Value: 1})
	q = nsCall(t, e, "queue", "push", q, &Integer{Value: 2})

	popped := mustCtor(t, nsCall(t, e, "queue", "pop", q), "Some")
	pair := popped.Args[0].(*Tuple)
	mustInt(t, pair.Elements[0], 1)
	mustInt(t, nsCall(t, e, "queue", "size", pair.Elements[1]), 1)

	mustCtor(t, nsCall(t, e, "queue", "pop", Namespaces["queue"].Get("empty")), "None")
}

func TestHeapNamespace(t *testing.T) {
	e, _ := newTestEvaluator()
	h := Namespaces["heap"].Get("empty")

	for _, n := range []int64{3, 1, 2} {
		h = nsCall(t, e, "heap", "push", h, &Integer{Value: n})
	}
	peeked := mustCtor(t, nsCall(t, e, "heap", "peek", h), "Some")
	mustInt(t, peeked.Args[0], 1)

	mustMessageError(t, nsCall(t, e, "heap", "push", h, &Text{Value: "x"}))
}

func TestListNamespace(t *testing.T) {
	e, _ := newTestEvaluator()
	l := NewList([]Object{&Integer{Value: 1}, &Integer{Value: 2}, &Integer{Value: 3}})

	mustInt(t, nsCall(t, e, "list", "len", l), 3)
	got := mustCtor(t, nsCall(t, e, "list", "get", l, &Integer{Value: 1}), "Some")
	mustInt(t, got.Args[0], 2)
	mustCtor(t, nsCall(t, e, "list", "get", l, &Integer{Value: 9}), "None")

	tail := nsCall(t, e, "list", "tail", l)
	if tail.Inspect() != "[2, 3]" {
		t.Errorf("tail: got %s", tail.Inspect())
	}
	if l.Len() != 3 {
		t.Error("list operations must not mutate the receiver")
	}
}
