package evaluator

import (
	"bytes"
	"math/big"
)

// ObjectsEqual performs a deep structural equality check. It is total:
// any two objects can be compared without side effects or panics.
// Container equality is value-based, order-independent for Map/Set.
// Function-like and handle values compare by identity.
func ObjectsEqual(a, b Object) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	// Numbers compare across representations: 1 == 1.0 == 1N
	if isNumeric(a) && isNumeric(b) {
		cmp, ok := compareNumeric(a, b)
		return ok && cmp == 0
	}

	if a.Type() != b.Type() {
		return false
	}

	switch aVal := a.(type) {
	case *Unit:
		return true
	case *Boolean:
		return aVal.Value == b.(*Boolean).Value
	case *Text:
		return aVal.Value == b.(*Text).Value
	case *Bytes:
		return bytes.Equal(aVal.Value, b.(*Bytes).Value)
	case *DateTime:
		return aVal.Value.Equal(b.(*DateTime).Value)
	case *Sigil:
		bVal := b.(*Sigil)
		return aVal.Tag == bVal.Tag && aVal.Body == bVal.Body && aVal.Flags == bVal.Flags
	case *List:
		bVal := b.(*List)
		if aVal.Len() != bVal.Len() {
			return false
		}
		for i := 0; i < aVal.Len(); i++ {
			if !ObjectsEqual(aVal.Get(i), bVal.Get(i)) {
				return false
			}
		}
		return true
	case *Tuple:
		bVal := b.(*Tuple)
		if len(aVal.Elements) != len(bVal.Elements) {
			return false
		}
		for i := range aVal.Elements {
			if !ObjectsEqual(aVal.Elements[i], bVal.Elements[i]) {
				return false
			}
		}
		return true
	case *Record:
		bVal := b.(*Record)
		if len(aVal.Fields) != len(bVal.Fields) {
			return false
		}
		// Fields are key-sorted, so lockstep comparison suffices
		for i := range aVal.Fields {
			if aVal.Fields[i].Key != bVal.Fields[i].Key {
				return false
			}
			if !ObjectsEqual(aVal.Fields[i].Value, bVal.Fields[i].Value) {
				return false
			}
		}
		return true
	case *Constructor:
		bVal := b.(*Constructor)
		if aVal.Name != bVal.Name || len(aVal.Args) != len(bVal.Args) {
			return false
		}
		for i := range aVal.Args {
			if !ObjectsEqual(aVal.Args[i], bVal.Args[i]) {
				return false
			}
		}
		return true
	case *MapObject:
		bVal := b.(*MapObject)
		if aVal.Map.Len() != bVal.Map.Len() {
			return false
		}
		for _, it := range aVal.Map.Items() {
			other := bVal.Map.Get(it.Key)
			if other == nil || !ObjectsEqual(it.Value, other) {
				return false
			}
		}
		return true
	case *SetObject:
		bVal := b.(*SetObject)
		if aVal.Map.Len() != bVal.Map.Len() {
			return false
		}
		for _, it := range aVal.Map.Items() {
			if !bVal.Map.Contains(it.Key) {
				return false
			}
		}
		return true
	case *QueueObject:
		return objectSlicesEqual(aVal.Queue.ToSlice(), b.(*QueueObject).Queue.ToSlice())
	case *DequeObject:
		return objectSlicesEqual(aVal.Deque.ToSlice(), b.(*DequeObject).Deque.ToSlice())
	case *HeapObject:
		return objectSlicesEqual(aVal.Heap.ToSortedSlice(), b.(*HeapObject).Heap.ToSortedSlice())
	}

	// Closures, builtins, effects, thunks, handles: identity only, and
	// a == b was already checked.
	return false
}

func objectSlicesEqual(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ObjectsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func isNumeric(o Object) bool {
	switch o.(type) {
	case *Integer, *Float, *BigInt, *Rational, *Decimal:
		return true
	}
	return false
}

// compareNumeric compares two numeric objects of any representation.
// Returns -1/0/1 and whether the comparison applied.
func compareNumeric(a, b Object) (int, bool) {
	// Fast path: same machine representation
	if ai, ok := a.(*Integer); ok {
		if bi, ok := b.(*Integer); ok {
			switch {
			case ai.Value < bi.Value:
				return -1, true
			case ai.Value > bi.Value:
				return 1, true
			}
			return 0, true
		}
	}
	if af, ok := a.(*Float); ok {
		if bf, ok := b.(*Float); ok {
			switch {
			case af.Value < bf.Value:
				return -1, true
			case af.Value > bf.Value:
				return 1, true
			case af.Value == bf.Value:
				return 0, true
			}
			// NaN on either side compares with nothing
			return 0, false
		}
	}

	ar, ok := numericToRat(a)
	if !ok {
		return 0, false
	}
	br, ok := numericToRat(b)
	if !ok {
		return 0, false
	}
	return ar.Cmp(br), true
}

// numericToRat widens any numeric representation to a rational for
// cross-representation comparison.
func numericToRat(o Object) (*big.Rat, bool) {
	switch v := o.(type) {
	case *Integer:
		return new(big.Rat).SetInt64(v.Value), true
	case *Float:
		r := new(big.Rat).SetFloat64(v.Value)
		if r == nil {
			// NaN or infinity
			return nil, false
		}
		return r, true
	case *BigInt:
		return new(big.Rat).SetInt(v.Value), true
	case *Rational:
		return v.Value, true
	case *Decimal:
		r, _ := v.Value.Rat(nil)
		if r == nil {
			return nil, false
		}
		return r, true
	}
	return nil, false
}
