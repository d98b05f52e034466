package evaluator

import (
	"math/big"
	"testing"
)

func TestObjectsEqualNumeric(t *testing.T) {
	tests := []struct {
		name string
		a, b Object
		want bool
	}{
		{"int int", &Integer{Value: 3}, &Integer{Value: 3}, true},
		{"int float", &Integer{Value: 1}, &Float{Value: 1.0}, true},
		{"int float off", &Integer{Value: 1}, &Float{Value: 1.5}, false},
		{"int bigint", &Integer{Value: 7}, &BigInt{Value: big.NewInt(7)}, true},
		{"rational int", &Rational{Value: big.NewRat(4, 2)}, &Integer{Value: 2}, true},
		{"float nan", &Float{Value: nan()}, &Float{Value: nan()}, false},
		{"numeric vs text", &Integer{Value: 1}, &Text{Value: "1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectsEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("ObjectsEqual(%s, %s) = %v, want %v", tt.a.Inspect(), tt.b.Inspect(), got, tt.want)
			}
		})
	}
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}

func TestObjectsEqualContainers(t *testing.T) {
	one := &Integer{Value: 1}
	two := &Integer{Value: 2}

	t.Run("lists compare by value", func(t *testing.T) {
		a := NewList([]Object{one, two})
		b := NewList([]Object{&Integer{Value: 1}, &Float{Value: 2.0}})
		if !ObjectsEqual(a, b) {
			t.Error("lists with numerically equal elements should be equal")
		}
	})

	t.Run("maps ignore insertion order", func(t *testing.T) {
		a := EmptyMap().Put(one, &Text{Value: "a"}).Put(two, &Text{Value: "b"})
		b := EmptyMap().Put(two, &Text{Value: "b"}).Put(one, &Text{Value: "a"})
		if !ObjectsEqual(&MapObject{Map: a}, &MapObject{Map: b}) {
			t.Error("maps with the same entries should be equal regardless of order")
		}
	})

	t.Run("queues compare in order", func(t *testing.T) {
		a := EmptyQueue().Push(one).Push(two)
		b := EmptyQueue().Push(two).Push(one)
		if ObjectsEqual(&QueueObject{Queue: a}, &QueueObject{Queue: b}) {
			t.Error("queues with different element order must not be equal")
		}
	})

	t.Run("records compare by fields", func(t *testing.T) {
		a := NewRecord([]RecordEntry{{Key: "x", Value: one}, {Key: "y", Value: two}})
		b := NewRecord([]RecordEntry{{Key: "y", Value: two}, {Key: "x", Value: one}})
		if !ObjectsEqual(a, b) {
			t.Error("records with the same fields should be equal")
		}
	})
}

func TestCompareObjects(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Object
		want   int
		wantOk bool
	}{
		{"ints", &Integer{Value: 1}, &Integer{Value: 2}, -1, true},
		{"mixed numeric", &Float{Value: 2.5}, &Integer{Value: 2}, 1, true},
		{"text", &Text{Value: "a"}, &Text{Value: "b"}, -1, true},
		{"equal tuples", &Tuple{Elements: []Object{&Integer{Value: 1}}}, &Tuple{Elements: []Object{&Integer{Value: 1}}}, 0, true},
		{"incomparable", &Integer{Value: 1}, &Text{Value: "a"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, okC := CompareObjects(tt.a, tt.b)
			if okC != tt.wantOk || (okC && got != tt.want) {
				t.Errorf("CompareObjects = (%d, %v), want (%d, %v)", got, okC, tt.want, tt.wantOk)
			}
		})
	}
}

func TestPersistentMap(t *testing.T) {
	m := EmptyMap()
	const n = 1000
	for i := 0; i < n; i++ {
		m = m.Put(&Integer{Value: int64(i)}, &Integer{Value: int64(i * i)})
	}
	if m.Len() != n {
		t.Fatalf("want %d entries, got %d", n, m.Len())
	}
	for i := 0; i < n; i += 97 {
		v := m.Get(&Integer{Value: int64(i)})
		if v == nil {
			t.Fatalf("key %d missing", i)
		}
		mustInt(t, v, int64(i*i))
	}

	// Removal leaves the original untouched.
	removed := m.Remove(&Integer{Value: 0})
	if removed.Len() != n-1 || m.Len() != n {
		t.Error("Remove must not mutate the receiver")
	}
	if removed.Contains(&Integer{Value: 0}) {
		t.Error("removed key still present")
	}
}

func TestPersistentVectorAcrossTailBoundary(t *testing.T) {
	v := EmptyVector()
	const n = 100 // crosses the 32-wide tail twice
	for i := 0; i < n; i++ {
		v = v.Append(&Integer{Value: int64(i)})
	}
	if v.Len() != n {
		t.Fatalf("want %d, got %d", n, v.Len())
	}
	for i := 0; i < n; i++ {
		mustInt(t, v.Get(i), int64(i))
	}
}

func TestPersistentQueueFIFO(t *testing.T) {
	q := EmptyQueue()
	for i := 1; i <= 3; i++ {
		q = q.Push(&Integer{Value: int64(i)})
	}
	for i := 1; i <= 3; i++ {
		v, rest, okP := q.Pop()
		if !okP {
			t.Fatalf("pop %d failed", i)
		}
		mustInt(t, v, int64(i))
		q = rest
	}
	if _, _, okP := q.Pop(); okP {
		t.Error("pop on empty queue should report not-ok")
	}
}

func TestPersistentDequeBothEnds(t *testing.T) {
	d := EmptyDeque().PushBack(&Integer{Value: 2}).PushFront(&Integer{Value: 1}).PushBack(&Integer{Value: 3})

	v, d2, okF := d.PopFront()
	if !okF {
		t.Fatal("popFront failed")
	}
	mustInt(t, v, 1)

	v, _, okB := d2.PopBack()
	if !okB {
		t.Fatal("popBack failed")
	}
	mustInt(t, v, 3)

	// The original deque is untouched.
	if d.Len() != 3 {
		t.Errorf("receiver mutated: len %d", d.Len())
	}
}

func TestPersistentHeapOrdering(t *testing.T) {
	h := EmptyHeap()
	for _, n := range []int64{5, 1, 4, 2, 3} {
		next, okP := h.Push(&Integer{Value: n})
		if !okP {
			t.Fatalf("push %d rejected", n)
		}
		h = next
	}
	for want := int64(1); want <= 5; want++ {
		v, rest, okP := h.Pop()
		if !okP {
			t.Fatalf("pop %d failed", want)
		}
		mustInt(t, v, want)
		h = rest
	}
}

func TestHeapRejectsIncomparable(t *testing.T) {
	h, _ := EmptyHeap().Push(&Integer{Value: 1})
	if _, okP := h.Push(&Text{Value: "a"}); okP {
		t.Error("heap must reject elements incomparable with its contents")
	}
}

func TestSigilRegexCompilation(t *testing.T) {
	s := NewSigil("r", "ab+c", "i")
	if s.Compiled == nil {
		t.Fatal("r-tagged sigil should compile")
	}
	if !s.Compiled.MatchString("xABBC") {
		t.Error("i flag should make the match case-insensitive")
	}

	plain := NewSigil("w", "some words", "")
	if plain.Compiled != nil {
		t.Error("non-regex sigils should not compile")
	}
}
