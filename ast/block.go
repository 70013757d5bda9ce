package ast

import "orec/report"

// Block represents a `{}` enclosed sequence of statements.
type Block struct {
	ASTBase

	// The statements comprising the block.
	Stmts []ASTNode
}

// CondBlock represents a conditional block or loop.  The single-statement
// arrow form is parsed into a one-statement body so that both spellings
// produce identical trees.
type CondBlock struct {
	ASTBase

	// The block name if one was given.
	Name string

	// The span of the block name.
	NameSpan *report.TextSpan

	// Whether the block repeats while the condition holds.
	Loop bool

	// The guarding condition.
	Cond *Condition

	// The block body.
	Body *Block

	// The generated assembly label for the block.  Set by the resolver for
	// named blocks; the generator assigns labels to anonymous ones.
	LabelName string
}

// The different condition operators.
const (
	CondEq = iota // =
	CondNe        // !=
	CondLt        // <
	CondGt        // >
	CondLe        // <=
	CondGe        // >=
)

// Condition represents a comparison between two simple operands.  All
// comparisons are unsigned.
type Condition struct {
	ASTBase

	// The condition operator: must be one of the operators enumerated above.
	Op int

	// The comparison operands.
	Lhs, Rhs ASTExpr
}
