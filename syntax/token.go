package syntax

import "orec/report"

// Token represents a single lexical token of Ore source text.
type Token struct {
	// The token kind: one of the enumerated token kinds.
	Kind int

	// The token's text value.
	Value string

	// The span of source text the token occupies.
	Span *report.TextSpan
}

// Enumeration of the different token kinds.
const (
	TOK_IDENT = iota

	TOK_NUMLIT
	TOK_STRINGLIT

	TOK_LOOP
	TOK_JMP
	TOK_RETURN
	TOK_INLINE
	TOK_ENTRY
	TOK_PTR
	TOK_WORD

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACE
	TOK_RBRACE
	TOK_COMMA
	TOK_COLON
	TOK_SEMI

	TOK_ARROW
	TOK_FATARROW

	TOK_ASSIGN
	TOK_NEQ
	TOK_LT
	TOK_GT
	TOK_LTEQ
	TOK_GTEQ

	TOK_PLUS
	TOK_MINUS
	TOK_INC
	TOK_DEC

	TOK_PERCENT
	TOK_APOS
	TOK_STAR
	TOK_DOLLAR
	TOK_ATSIGN

	TOK_EOF
)
