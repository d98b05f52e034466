package evaluator

import (
	"math/big"

	"github.com/loomlang/loom/internal/ast"
)

// matchPattern checks a value against a pattern, purely structurally.
// On success it returns the variable bindings the pattern introduces.
func matchPattern(pat ast.Pattern, val Object) (map[string]Object, bool) {
	bindings := make(map[string]Object)
	if matchInto(pat, val, bindings) {
		return bindings, true
	}
	return nil, false
}

func matchInto(pat ast.Pattern, val Object, bindings map[string]Object) bool {
	switch p := pat.(type) {
	case *ast.WildcardPat:
		return true

	case *ast.VarPat:
		bindings[p.Name] = val
		return true

	case *ast.LiteralPat:
		return literalMatches(p.Value, val)

	case *ast.SigilPat:
		// Raw text comparison of the three components; no pattern
		// normalization, so matching is spelling-sensitive.
		s, ok := val.(*Sigil)
		return ok && s.Tag == p.Tag && s.Body == p.Body && s.Flags == p.Flags

	case *ast.CtorPat:
		c, ok := val.(*Constructor)
		if !ok || c.Name != p.Name || len(c.Args) != len(p.Args) {
			return false
		}
		for i, sub := range p.Args {
			if !matchInto(sub, c.Args[i], bindings) {
				return false
			}
		}
		return true

	case *ast.TuplePat:
		t, ok := val.(*Tuple)
		if !ok || len(t.Elements) != len(p.Elements) {
			return false
		}
		for i, sub := range p.Elements {
			if !matchInto(sub, t.Elements[i], bindings) {
				return false
			}
		}
		return true

	case *ast.ListPat:
		l, ok := val.(*List)
		if !ok {
			return false
		}
		if p.Rest == nil {
			if l.Len() != len(p.Elements) {
				return false
			}
		} else if l.Len() < len(p.Elements) {
			return false
		}
		for i, sub := range p.Elements {
			if !matchInto(sub, l.Get(i), bindings) {
				return false
			}
		}
		if p.Rest != nil {
			return matchInto(p.Rest, l.Drop(len(p.Elements)), bindings)
		}
		return true

	case *ast.RecordPat:
		r, ok := val.(*Record)
		if !ok {
			return false
		}
		for key, sub := range p.Fields {
			field := r.Get(key)
			if field == nil || !matchInto(sub, field, bindings) {
				return false
			}
		}
		return true
	}
	return false
}

// literalMatches compares a pattern literal against a runtime value.
// Numeric literals compare as numbers across every numeric
// representation, not as text.
func literalMatches(lit interface{}, val Object) bool {
	switch l := lit.(type) {
	case int64:
		return ObjectsEqual(&Integer{Value: l}, val)
	case float64:
		return ObjectsEqual(&Float{Value: l}, val)
	case bool:
		b, ok := val.(*Boolean)
		return ok && b.Value == l
	case string:
		t, ok := val.(*Text)
		return ok && t.Value == l
	case *big.Int:
		return ObjectsEqual(&BigInt{Value: l}, val)
	}
	return false
}
