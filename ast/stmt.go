package ast

import (
	"orec/common"
	"orec/report"
	"orec/types"
)

// VarDecl represents a `%` binding declaration.  Either Width and the
// optional initializer are set, or PinnedAlias names the register alias the
// binding is pinned to.
type VarDecl struct {
	ASTBase

	// The binding name.
	Name string

	// The span of the binding name.
	NameSpan *report.TextSpan

	// The declared byte width.  WidthNone for pinned bindings.
	Width types.Width

	// The initializer literal if one was given.
	HasInit bool
	Init    uint64

	// The register alias this binding is pinned to, or empty.
	PinnedAlias string

	// The span of the pinned alias.
	PinnedSpan *report.TextSpan

	// The symbol this declaration binds.  Set by the resolver.
	Sym *common.Symbol

	// Whether this declaration shadows an existing binding and therefore
	// allocates no new storage.  Set by the resolver.
	Shadow bool
}

// The different mutation operators.
const (
	OpInc = iota // ++
	OpDec        // --
	OpSet        // =
)

// MutateStmt represents a `'` mutation statement.
type MutateStmt struct {
	ASTBase

	// The name of the binding being mutated.
	Name string

	// The span of the binding name.
	NameSpan *report.TextSpan

	// The mutation operator: must be one of the operators enumerated above.
	Op int

	// The assigned value.  Nil unless Op is OpSet.
	Value ASTExpr

	// The symbol being mutated.  Set by the resolver.
	Sym *common.Symbol
}

// JumpStmt represents a `jmp` statement targeting a named block.
type JumpStmt struct {
	ASTBase

	// The target block name.
	Target string

	// The span of the target name.
	TargetSpan *report.TextSpan

	// The generated label the jump resolves to.  Set by the resolver.
	ResolvedLabel string
}

// SyscallStmt represents a `*` syscall invocation statement.
type SyscallStmt struct {
	ASTBase

	// The name of the invoked syscall.
	Name string

	// The span of the syscall name.
	NameSpan *report.TextSpan

	// The invocation arguments in positional order.
	Args []ASTExpr
}

// PutsStmt represents the `$puts` builtin applied to a string literal.
type PutsStmt struct {
	ASTBase

	// The string literal argument.
	Text *StringLit
}

// ReturnStmt represents a `return` statement.
type ReturnStmt struct {
	ASTBase

	// The returned value, or nil for a bare return.
	Value ASTExpr
}
