package ast

// Pattern is the base interface for lowered pattern nodes.
type Pattern interface {
	patternNode()
}

// WildcardPat matches anything and binds nothing.
type WildcardPat struct{}

// VarPat matches anything and binds it to Name.
type VarPat struct {
	Name string
}

// LiteralPat matches a literal value. Value holds one of int64, float64,
// bool or string (for text literals). Numeric literals compare as
// numbers against the scrutinee, not as text.
type LiteralPat struct {
	Value interface{}
}

// SigilPat matches a sigil literal. The tag, body and flags components
// compare independently as raw text; no normalization is applied, so two
// sigils that compile to the same pattern but are spelled differently do
// not match each other.
type SigilPat struct {
	Tag   string
	Body  string
	Flags string
}

// CtorPat matches a constructor value by name and recurses into its
// arguments.
type CtorPat struct {
	Name string
	Args []Pattern
}

// TuplePat matches a tuple of exactly len(Elements) elements.
type TuplePat struct {
	Elements []Pattern
}

// ListPat matches a list. Without Rest the list length must equal
// len(Elements); with Rest, the list must have at least len(Elements)
// elements and Rest binds the remaining suffix as a list.
type ListPat struct {
	Elements []Pattern
	Rest     Pattern
}

// RecordPat matches a record by a subset of its fields.
type RecordPat struct {
	Fields map[string]Pattern
}

func (*WildcardPat) patternNode() {}
func (*VarPat) patternNode()      {}
func (*LiteralPat) patternNode()  {}
func (*SigilPat) patternNode()    {}
func (*CtorPat) patternNode()     {}
func (*TuplePat) patternNode()    {}
func (*ListPat) patternNode()     {}
func (*RecordPat) patternNode()   {}
