package ast

import "orec/common"

// Identifier represents a named value: a binding, a static datum, or a
// pinned register.
type Identifier struct {
	ASTBase

	// The identifier name.
	Name string

	// The symbol the identifier resolves to.  Set by the resolver.
	Sym *common.Symbol
}

// NumberLit represents an unsigned integer literal.
type NumberLit struct {
	ASTBase

	// The literal value.
	Value uint64
}

// StringLit represents a string literal with escapes already processed.
type StringLit struct {
	ASTBase

	// The literal text.
	Value string
}

// The different binary operators.
const (
	OpAdd = iota // +
	OpSub        // -
)

// BinaryExpr represents a left-associative binary operation.
type BinaryExpr struct {
	ASTBase

	// The operator: must be one of the operators enumerated above.
	Op int

	// The operands.
	Lhs, Rhs ASTExpr
}

// CallExpr represents a `$` label invocation.
type CallExpr struct {
	ASTBase

	// The name of the invoked label.
	Name string

	// The call arguments in positional order.
	Args []ASTExpr

	// The label definition being invoked.  Set by the resolver.
	Def *LabelDef
}
