package evaluator

import (
	"math/big"

	"github.com/loomlang/loom/internal/ast"
)

func (e *Evaluator) evalBinOp(node *ast.BinOp, env *Environment) Object {
	// Short-circuit boolean operators
	switch node.Op {
	case "&&", "||":
		left := e.Eval(node.Left, env)
		if isError(left) {
			return left
		}
		lb, ok := left.(*Boolean)
		if !ok {
			return newError("operator %s expects booleans, got %s", node.Op, left.Type())
		}
		if node.Op == "&&" && !lb.Value {
			return FalseValue
		}
		if node.Op == "||" && lb.Value {
			return TrueValue
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		rb, ok := right.(*Boolean)
		if !ok {
			return newError("operator %s expects booleans, got %s", node.Op, right.Type())
		}
		return nativeBool(rb.Value)
	}

	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	return evalInfix(node.Op, left, right)
}

func evalInfix(op string, left, right Object) Object {
	switch op {
	case "==":
		return nativeBool(ObjectsEqual(left, right))
	case "!=":
		return nativeBool(!ObjectsEqual(left, right))
	case "<", "<=", ">", ">=":
		cmp, ok := CompareObjects(left, right)
		if !ok {
			return newError("cannot compare %s and %s", left.Type(), right.Type())
		}
		switch op {
		case "<":
			return nativeBool(cmp < 0)
		case "<=":
			return nativeBool(cmp <= 0)
		case ">":
			return nativeBool(cmp > 0)
		}
		return nativeBool(cmp >= 0)
	case "++":
		return evalConcat(left, right)
	case "+", "-", "*", "/", "%":
		return evalArith(op, left, right)
	}
	return newError("unknown operator %q", op)
}

func evalConcat(left, right Object) Object {
	switch l := left.(type) {
	case *Text:
		if r, ok := right.(*Text); ok {
			return &Text{Value: l.Value + r.Value}
		}
	case *Bytes:
		if r, ok := right.(*Bytes); ok {
			joined := make([]byte, 0, len(l.Value)+len(r.Value))
			joined = append(joined, l.Value...)
			joined = append(joined, r.Value...)
			return &Bytes{Value: joined}
		}
	case *List:
		if r, ok := right.(*List); ok {
			out := l.vector
			for _, el := range r.ToSlice() {
				out = out.Append(el)
			}
			return newListFromVector(out)
		}
	}
	return newError("operator ++ expects two texts, byte strings or lists, got %s and %s",
		left.Type(), right.Type())
}

// evalArith applies an arithmetic operator across the numeric tower,
// promoting to the wider representation: Decimal > Rational > Float >
// BigInt > Integer.
func evalArith(op string, left, right Object) Object {
	if !isNumeric(left) || !isNumeric(right) {
		return newError("operator %s expects numbers, got %s and %s", op, left.Type(), right.Type())
	}

	_, lDec := left.(*Decimal)
	_, rDec := right.(*Decimal)
	if lDec || rDec {
		return arithDecimal(op, left, right)
	}

	_, lRat := left.(*Rational)
	_, rRat := right.(*Rational)
	if lRat || rRat {
		return arithRational(op, left, right)
	}

	_, lF := left.(*Float)
	_, rF := right.(*Float)
	if lF || rF {
		return arithFloat(op, left, right)
	}

	_, lB := left.(*BigInt)
	_, rB := right.(*BigInt)
	if lB || rB {
		return arithBigInt(op, left, right)
	}

	return arithInteger(op, left.(*Integer).Value, right.(*Integer).Value)
}

func arithInteger(op string, a, b int64) Object {
	switch op {
	case "+":
		return &Integer{Value: a + b}
	case "-":
		return &Integer{Value: a - b}
	case "*":
		return &Integer{Value: a * b}
	case "/":
		if b == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: a / b}
	case "%":
		if b == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: a % b}
	}
	return newError("unknown operator %q", op)
}

func toBigInt(o Object) *big.Int {
	switch v := o.(type) {
	case *Integer:
		return big.NewInt(v.Value)
	case *BigInt:
		return v.Value
	}
	return nil
}

func arithBigInt(op string, left, right Object) Object {
	a, b := toBigInt(left), toBigInt(right)
	if a == nil || b == nil {
		return newError("operator %s expects integers, got %s and %s", op, left.Type(), right.Type())
	}
	out := new(big.Int)
	switch op {
	case "+":
		return &BigInt{Value: out.Add(a, b)}
	case "-":
		return &BigInt{Value: out.Sub(a, b)}
	case "*":
		return &BigInt{Value: out.Mul(a, b)}
	case "/":
		if b.Sign() == 0 {
			return newError("division by zero")
		}
		return &BigInt{Value: out.Quo(a, b)}
	case "%":
		if b.Sign() == 0 {
			return newError("division by zero")
		}
		return &BigInt{Value: out.Rem(a, b)}
	}
	return newError("unknown operator %q", op)
}

func toFloat(o Object) (float64, bool) {
	switch v := o.(type) {
	case *Integer:
		return float64(v.Value), true
	case *Float:
		return v.Value, true
	case *BigInt:
		f, _ := new(big.Float).SetInt(v.Value).Float64()
		return f, true
	}
	return 0, false
}

func arithFloat(op string, left, right Object) Object {
	a, okA := toFloat(left)
	b, okB := toFloat(right)
	if !okA || !okB {
		return newError("operator %s cannot mix %s and %s", op, left.Type(), right.Type())
	}
	switch op {
	case "+":
		return &Float{Value: a + b}
	case "-":
		return &Float{Value: a - b}
	case "*":
		return &Float{Value: a * b}
	case "/":
		if b == 0 {
			return newError("division by zero")
		}
		return &Float{Value: a / b}
	case "%":
		return newError("operator %% expects integers, got %s and %s", left.Type(), right.Type())
	}
	return newError("unknown operator %q", op)
}

func arithRational(op string, left, right Object) Object {
	a, okA := numericToRat(left)
	b, okB := numericToRat(right)
	if !okA || !okB {
		return newError("operator %s cannot mix %s and %s", op, left.Type(), right.Type())
	}
	out := new(big.Rat)
	switch op {
	case "+":
		return &Rational{Value: out.Add(a, b)}
	case "-":
		return &Rational{Value: out.Sub(a, b)}
	case "*":
		return &Rational{Value: out.Mul(a, b)}
	case "/":
		if b.Sign() == 0 {
			return newError("division by zero")
		}
		return &Rational{Value: out.Quo(a, b)}
	case "%":
		return newError("operator %% expects integers, got %s and %s", left.Type(), right.Type())
	}
	return newError("unknown operator %q", op)
}

func toDecimal(o Object) (*big.Float, bool) {
	switch v := o.(type) {
	case *Integer:
		return new(big.Float).SetInt64(v.Value), true
	case *Float:
		return big.NewFloat(v.Value), true
	case *BigInt:
		return new(big.Float).SetInt(v.Value), true
	case *Rational:
		return new(big.Float).SetRat(v.Value), true
	case *Decimal:
		return v.Value, true
	}
	return nil, false
}

func arithDecimal(op string, left, right Object) Object {
	a, okA := toDecimal(left)
	b, okB := toDecimal(right)
	if !okA || !okB {
		return newError("operator %s cannot mix %s and %s", op, left.Type(), right.Type())
	}
	out := new(big.Float)
	switch op {
	case "+":
		return &Decimal{Value: out.Add(a, b)}
	case "-":
		return &Decimal{Value: out.Sub(a, b)}
	case "*":
		return &Decimal{Value: out.Mul(a, b)}
	case "/":
		if b.Sign() == 0 {
			return newError("division by zero")
		}
		return &Decimal{Value: out.Quo(a, b)}
	case "%":
		return newError("operator %% expects integers, got %s and %s", left.Type(), right.Type())
	}
	return newError("unknown operator %q", op)
}
