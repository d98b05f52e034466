package ast

// The lowered expression form. The frontend (parser, type checker and the
// lowering pipeline) flattens every program into a table of named
// definitions over these nodes; the evaluator consumes them as-is and
// performs no further desugaring.

// Expr is the base interface for all lowered expression nodes.
type Expr interface {
	exprNode()
}

// Ident references a binding by name. Lowering emits both an unqualified
// and a module-qualified name for every definition, so Name may contain
// a dot (e.g. "queue.push").
type Ident struct {
	Name string
}

// IntLit is a machine-word integer literal.
type IntLit struct {
	Value int64
}

// FloatLit is a floating point literal.
type FloatLit struct {
	Value float64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

// TextLit is a text literal.
type TextLit struct {
	Value string
}

// SigilLit is a tagged literal such as ~r/ab+c/i: a tag naming the sigil
// kind, the raw body, and trailing flags. The evaluator keeps all three
// as raw text.
type SigilLit struct {
	Tag   string
	Body  string
	Flags string
}

// InterpPart is one segment of an interpolated text literal: either a
// fixed text chunk (Expr == nil) or an embedded expression.
type InterpPart struct {
	Text string
	Expr Expr
}

// InterpText is an interpolated text literal.
type InterpText struct {
	Parts []InterpPart
}

// ListLit is a list literal.
type ListLit struct {
	Elements []Expr
}

// TupleLit is a tuple literal.
type TupleLit struct {
	Elements []Expr
}

// RecordField is one field of a record literal.
type RecordField struct {
	Key   string
	Value Expr
}

// RecordLit is a record literal.
type RecordLit struct {
	Fields []RecordField
}

// CtorLit constructs a sum-type value: Name applied to zero or more
// argument expressions.
type CtorLit struct {
	Name string
	Args []Expr
}

// Lambda is a single-parameter function literal. Multi-parameter
// functions are lowered to nested lambdas; the parameter is a full
// pattern so a lambda can double as one clause of a multi-clause
// definition.
type Lambda struct {
	Param Pattern
	Body  Expr
}

// Apply applies Fn to a single argument. Multi-argument calls are
// lowered to chains of Apply nodes.
type Apply struct {
	Fn  Expr
	Arg Expr
}

// If is a conditional expression. Else is never nil in lowered form.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

// BinOp is a binary operator application.
type BinOp struct {
	Op    string
	Left  Expr
	Right Expr
}

// MatchArm is one arm of a match expression. Guard may be nil.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr
	Body    Expr
}

// Match is a pattern match over Subject, arms tried in order.
type Match struct {
	Subject Expr
	Arms    []MatchArm
}

// BlockKind discriminates the four block forms.
type BlockKind int

const (
	PlainBlock BlockKind = iota
	EffectBlock
	GenerateBlock
	ResourceBlock
)

func (k BlockKind) String() string {
	switch k {
	case PlainBlock:
		return "plain"
	case EffectBlock:
		return "effect"
	case GenerateBlock:
		return "generate"
	case ResourceBlock:
		return "resource"
	}
	return "unknown"
}

// BlockStmt is one statement of a block: an expression with an optional
// binder for its result.
type BlockStmt struct {
	Bind string // "" when the result is not bound
	Expr Expr
}

// Block is one of the four block forms. For ResourceBlock, Acquire is
// the acquisition effect, Binding names the acquired value in the body
// and in Release, and Release is the release effect expression. The
// other kinds use only Stmts.
type Block struct {
	Kind    BlockKind
	Stmts   []BlockStmt
	Acquire Expr
	Binding string
	Release Expr
}

func (*Ident) exprNode()      {}
func (*IntLit) exprNode()     {}
func (*FloatLit) exprNode()   {}
func (*BoolLit) exprNode()    {}
func (*TextLit) exprNode()    {}
func (*SigilLit) exprNode()   {}
func (*InterpText) exprNode() {}
func (*ListLit) exprNode()    {}
func (*TupleLit) exprNode()   {}
func (*RecordLit) exprNode()  {}
func (*CtorLit) exprNode()    {}
func (*Lambda) exprNode()     {}
func (*Apply) exprNode()      {}
func (*If) exprNode()         {}
func (*BinOp) exprNode()      {}
func (*Match) exprNode()      {}
func (*Block) exprNode()      {}
