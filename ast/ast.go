package ast

import "orec/report"

// The abstract interface for all AST nodes.
type ASTNode interface {
	// The text span of the AST.
	Span() *report.TextSpan
}

// ASTExpr is the abstract interface for all AST expressions.
type ASTExpr interface {
	ASTNode
}

// A utility base struct for all AST nodes.
type ASTBase struct {
	// The span over which the AST node occurs.
	span *report.TextSpan
}

// NewASTBaseOn creates a new AST base with the given span.
func NewASTBaseOn(span *report.TextSpan) ASTBase {
	return ASTBase{span: span}
}

// NewASTBaseOver creates a new AST base spanning over two spans.
func NewASTBaseOver(start, end *report.TextSpan) ASTBase {
	return ASTBase{span: report.NewSpanOver(start, end)}
}

func (ab ASTBase) Span() *report.TextSpan {
	return ab.span
}

// -----------------------------------------------------------------------------

// Program represents the ordered sequence of top-level items in one source
// file: directives, syscall blocks, static data blocks, and label
// definitions.
type Program struct {
	// The machine-description directives, in source order.
	Directives []*Directive

	// The syscall declaration blocks, in source order.
	Syscalls []*SyscallDecl

	// The attribute-tagged static data blocks, in source order.
	Statics []*StaticBlock

	// The label/function definitions, in source order.
	Labels []*LabelDef
}
