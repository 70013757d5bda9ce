package ast

import (
	"orec/common"
	"orec/report"
	"orec/types"
)

// Directive represents a single `:` machine-description directive.  The
// directive's arguments are kept raw: the architecture registry interprets
// and validates them.
type Directive struct {
	ASTBase

	// The directive name, eg. `WORD` or `SYSCALL_CONV`.
	Name string

	// The span of the directive name.
	NameSpan *report.TextSpan

	// The directive arguments in source order.  For `SYSCALL_CONV` these are
	// the syscall-number register followed by the argument registers.
	Args []*DirectiveArg

	// The return-register argument following `->` on a `SYSCALL_CONV`
	// directive.  Nil for all other directives.
	ConvRet *DirectiveArg
}

// DirectiveArg is one raw argument to a directive.
type DirectiveArg struct {
	// The literal text of the argument.
	Value string

	// The parsed numeric value if the argument was a number literal.
	Num uint64

	// Whether the argument was a number literal.
	IsNum bool

	// The span of the argument.
	Span *report.TextSpan
}

// -----------------------------------------------------------------------------

// SyscallDecl represents a syscall declaration block:
// `name { = code; label spec; ... }`.
type SyscallDecl struct {
	ASTBase

	// The syscall name.
	Name string

	// The span of the syscall name.
	NameSpan *report.TextSpan

	// The numeric syscall code.
	Code uint64

	// The span of the code literal.
	CodeSpan *report.TextSpan

	// The declared parameters in positional order.
	Params []*SyscallParam
}

// SyscallParam is one parameter specification of a syscall declaration.  The
// label is documentation only: it is not semantically load-bearing.
type SyscallParam struct {
	// The human-readable parameter label.
	Label string

	// The parameter kind.
	Kind types.ParamKind

	// The byte width for fixed-width parameters.
	Width types.Width

	// The span of the parameter specification.
	Span *report.TextSpan
}

// -----------------------------------------------------------------------------

// StaticBlock represents an attribute-tagged block of static data
// declarations.
type StaticBlock struct {
	ASTBase

	// The section attribute tagging the block.
	Attr string

	// The span of the attribute name.
	AttrSpan *report.TextSpan

	// The data entries of the block.
	Entries []*StaticEntry
}

// StaticEntry is a single `NAME width: value` static data declaration.
type StaticEntry struct {
	ASTBase

	// The entry name.
	Name string

	// The span of the entry name.
	NameSpan *report.TextSpan

	// The entry's byte width.
	Width types.Width

	// The literal value: an unsigned integer or a string.
	IsStr bool
	Str   string
	Num   uint64
}

// -----------------------------------------------------------------------------

// LabelDef represents a label/function definition.
type LabelDef struct {
	ASTBase

	// The label name.
	Name string

	// The span of the label name.
	NameSpan *report.TextSpan

	// The declared parameters.
	Params []*LabelParam

	// The declared return width, or WidthNone.
	RetWidth types.Width

	// Whether the label's body is expanded at every call site.
	Inline bool

	// Whether the label is the program entry point.
	Entry bool

	// The label body.
	Body *Block

	// The symbol defined by this label.  Set by the resolver.
	Sym *common.Symbol
}

// LabelParam is a single parameter of a label definition.
type LabelParam struct {
	// The parameter name.
	Name string

	// The parameter's byte width.
	Width types.Width

	// The span of the parameter.
	Span *report.TextSpan

	// The storage symbol backing the parameter.  Set by the resolver.
	Sym *common.Symbol
}
