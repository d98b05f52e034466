package evaluator

import (
	"bytes"
	"strings"
)

// CompareObjects orders two objects. Numbers order across
// representations; text, bytes, booleans and date-times order
// naturally; tuples and lists order lexicographically. Returns
// -1/0/1 and whether the two objects are comparable at all.
func CompareObjects(a, b Object) (int, bool) {
	if isNumeric(a) && isNumeric(b) {
		return compareNumeric(a, b)
	}
	switch av := a.(type) {
	case *Text:
		if bv, ok := b.(*Text); ok {
			return strings.Compare(av.Value, bv.Value), true
		}
	case *Bytes:
		if bv, ok := b.(*Bytes); ok {
			return bytes.Compare(av.Value, bv.Value), true
		}
	case *Boolean:
		if bv, ok := b.(*Boolean); ok {
			switch {
			case av.Value == bv.Value:
				return 0, true
			case !av.Value:
				return -1, true
			}
			return 1, true
		}
	case *DateTime:
		if bv, ok := b.(*DateTime); ok {
			switch {
			case av.Value.Before(bv.Value):
				return -1, true
			case av.Value.After(bv.Value):
				return 1, true
			}
			return 0, true
		}
	case *Unit:
		if _, ok := b.(*Unit); ok {
			return 0, true
		}
	case *Tuple:
		if bv, ok := b.(*Tuple); ok {
			return compareObjectSlices(av.Elements, bv.Elements)
		}
	case *List:
		if bv, ok := b.(*List); ok {
			return compareObjectSlices(av.ToSlice(), bv.ToSlice())
		}
	}
	return 0, false
}

func compareObjectSlices(a, b []Object) (int, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		cmp, ok := CompareObjects(a[i], b[i])
		if !ok {
			return 0, false
		}
		if cmp != 0 {
			return cmp, true
		}
	}
	switch {
	case len(a) < len(b):
		return -1, true
	case len(a) > len(b):
		return 1, true
	}
	return 0, true
}
