package evaluator

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"time"
)

// Unit is the single inhabitant of the unit type.
type Unit struct{}

func (u *Unit) Type() ObjectType { return UNIT_OBJ }
func (u *Unit) Inspect() string  { return "()" }
func (u *Unit) Hash() uint32     { return 0 }

// UnitValue is shared; Unit carries no state.
var UnitValue = &Unit{}

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1231
	}
	return 1237
}

var (
	TrueValue  = &Boolean{Value: true}
	FalseValue = &Boolean{Value: false}
)

func nativeBool(v bool) *Boolean {
	if v {
		return TrueValue
	}
	return FalseValue
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) Hash() uint32     { return uint32(i.Value) ^ uint32(i.Value>>32) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return strconv.FormatFloat(f.Value, 'g', -1, 64) }
func (f *Float) Hash() uint32 {
	// Equal integral floats hash like the matching integer would
	if f.Value == float64(int64(f.Value)) {
		i := int64(f.Value)
		return uint32(i) ^ uint32(i>>32)
	}
	return hashString(f.Inspect())
}

type Text struct {
	Value string
}

func (t *Text) Type() ObjectType { return TEXT_OBJ }
func (t *Text) Inspect() string  { return strconv.Quote(t.Value) }
func (t *Text) Hash() uint32     { return hashString(t.Value) }

type Bytes struct {
	Value []byte
}

func (b *Bytes) Type() ObjectType { return BYTES_OBJ }
func (b *Bytes) Inspect() string  { return "0x" + hex.EncodeToString(b.Value) }
func (b *Bytes) Hash() uint32     { return hashString(string(b.Value)) }

type DateTime struct {
	Value time.Time
}

func (d *DateTime) Type() ObjectType { return DATETIME_OBJ }
func (d *DateTime) Inspect() string  { return d.Value.Format(time.RFC3339Nano) }
func (d *DateTime) Hash() uint32 {
	n := d.Value.UnixNano()
	return uint32(n) ^ uint32(n>>32)
}

type BigInt struct {
	Value *big.Int
}

func (b *BigInt) Type() ObjectType { return BIG_INT_OBJ }
func (b *BigInt) Inspect() string  { return b.Value.String() }
func (b *BigInt) Hash() uint32 {
	if b.Value.IsInt64() {
		i := b.Value.Int64()
		return uint32(i) ^ uint32(i>>32)
	}
	return hashString(b.Value.String())
}

type Rational struct {
	Value *big.Rat
}

func (r *Rational) Type() ObjectType { return RATIONAL_OBJ }
func (r *Rational) Inspect() string  { return r.Value.RatString() }
func (r *Rational) Hash() uint32 {
	// Integral rationals hash like the matching integer would
	if r.Value.IsInt() && r.Value.Num().IsInt64() {
		i := r.Value.Num().Int64()
		return uint32(i) ^ uint32(i>>32)
	}
	return hashString(r.Value.RatString())
}

type Decimal struct {
	Value *big.Float
}

func (d *Decimal) Type() ObjectType { return DECIMAL_OBJ }
func (d *Decimal) Inspect() string  { return d.Value.Text('g', -1) }
func (d *Decimal) Hash() uint32 {
	// Integral decimals hash like the matching integer would
	if i, acc := d.Value.Int64(); acc == big.Exact {
		return uint32(i) ^ uint32(i>>32)
	}
	return hashString(d.Value.Text('g', -1))
}

// Sigil is a tagged literal such as ~r/ab+c/i. The tag, body and flags
// are kept as the raw source text; r-tagged sigils additionally carry
// the compiled pattern. Pattern matching on sigils compares the three
// text components only.
type Sigil struct {
	Tag      string
	Body     string
	Flags    string
	Compiled *regexp.Regexp // nil unless Tag is "r" and Body compiled
}

func NewSigil(tag, body, flags string) *Sigil {
	s := &Sigil{Tag: tag, Body: body, Flags: flags}
	if tag == "r" {
		src := body
		if flags != "" {
			src = "(?" + flags + ")" + body
		}
		if re, err := regexp.Compile(src); err == nil {
			s.Compiled = re
		}
	}
	return s
}

func (s *Sigil) Type() ObjectType { return SIGIL_OBJ }
func (s *Sigil) Inspect() string  { return fmt.Sprintf("~%s/%s/%s", s.Tag, s.Body, s.Flags) }
func (s *Sigil) Hash() uint32     { return hashString(s.Tag + "\x00" + s.Body + "\x00" + s.Flags) }
