package syntax

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"orec/ast"
	"orec/report"
	"orec/unit"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse as well as any
// semantic actions they perform during parsing.

// Parser is the parser for an Ore source file.  It is a recursive descent
// parser: it moves over the file token by token and decides what to parse
// based on the token it is currently positioned on and its context (implicit
// from the callstack of parsing functions).  All parsing functions assume
// that they begin with the parser centered on the first token of their
// production and must consume all tokens (including the last) of their
// production, leaving the parser on the next token.  Parse failures panic
// with a local error; the top-level loop catches them, reports, and skips
// forward to the next top-level item so later errors still surface.
type Parser struct {
	// file is the Ore source file being parsed.
	file *unit.SourceFile

	// lexer is the Lexer this parser is using to lex the source file.
	lexer *Lexer

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the previous token the parser was positioned on.
	lookbehind *Token
}

// NewParser creates a new parser for the given file and file reader.
func NewParser(file *unit.SourceFile, r *bufio.Reader) *Parser {
	return &Parser{
		file:  file,
		lexer: NewLexer(r),
	}
}

// Parse parses the file and writes the resulting program to the source file.
// It returns whether parsing succeeded.
func (p *Parser) Parse() bool {
	prog := &ast.Program{}
	p.file.Prog = prog

	p.next()

	for !p.has(TOK_EOF) {
		p.parseTopLevel(prog)
	}

	return p.file.Rep.ShouldProceed()
}

// parseTopLevel parses one top-level item, recovering from parse failures by
// skipping to the end of the malformed item.
func (p *Parser) parseTopLevel(prog *ast.Program) {
	defer func() {
		if x := recover(); x != nil {
			if lerr, ok := x.(*report.LocalError); ok {
				p.file.Rep.ReportError(p.file.Context, lerr.Span, lerr.Kind, lerr.Message)
				p.recover()
			} else {
				panic(x)
			}
		}
	}()

	p.parseItem(prog)
}

// recover skips the parser forward past the malformed top-level item: over
// any open braces to the matching close, or to the start of the next
// directive.
func (p *Parser) recover() {
	depth := 0
	for {
		switch p.tok.Kind {
		case TOK_EOF:
			return
		case TOK_LBRACE:
			depth++
		case TOK_RBRACE:
			if depth <= 1 {
				p.safeNext()
				return
			}

			depth--
		case TOK_COLON:
			if depth == 0 {
				return
			}
		}

		p.safeNext()
	}
}

// safeNext moves the parser forward one token, skipping over unlexable input.
func (p *Parser) safeNext() {
	for {
		tok, err := p.lexer.NextToken()
		if err == nil {
			p.lookbehind = p.tok
			p.tok = tok
			return
		}

		if _, ok := err.(*report.LocalError); !ok {
			panic(err)
		}
	}
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	tok, err := p.lexer.NextToken()
	if err != nil {
		panic(err)
	}

	p.lookbehind = p.tok
	p.tok = tok
}

// has returns true if the parser is on a token of a given kind.
func (p *Parser) has(kind int) bool {
	return p.tok.Kind == kind
}

// want asserts that the parser is on a token of the given kind, rejecting the
// token if not.  It consumes and returns the matched token.
func (p *Parser) want(kind int) *Token {
	if !p.has(kind) {
		p.reject()
	}

	tok := p.tok
	p.next()
	return tok
}

// reject reports an unexpected token error on the current token.
func (p *Parser) reject() {
	var msg string
	switch p.tok.Kind {
	case TOK_EOF:
		msg = "unexpected end of file"
	default:
		msg = fmt.Sprintf("unexpected token: `%s`", p.tok.Value)
	}

	panic(report.Raise(p.tok.Span, report.KindSyntax, msg))
}

// error raises an error on a given token.  The function takes a message and
// arguments to format into it.
func (p *Parser) error(tok *Token, msg string, args ...interface{}) {
	panic(report.Raise(tok.Span, report.KindSyntax, msg, args...))
}

// recError reports an error without aborting the current production.
func (p *Parser) recError(span *report.TextSpan, kind int, msg string, args ...interface{}) {
	p.file.Rep.ReportError(p.file.Context, span, kind, msg, args...)
}

// -----------------------------------------------------------------------------

// parseUint parses the value of a numeric literal token.
func (p *Parser) parseUint(tok *Token) uint64 {
	text := tok.Value
	base := 10

	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x':
			base = 16
			text = text[2:]
		case 'o':
			base = 8
			text = text[2:]
		case 'b':
			base = 2
			text = text[2:]
		}
	}

	value, err := strconv.ParseUint(strings.ReplaceAll(text, "_", ""), base, 64)
	if err != nil {
		p.error(tok, "numeric literal out of range")
	}

	return value
}

// sameLine returns whether the current token begins on the same source line
// as the given token.  Some productions (directives, bare call arguments,
// return values) end at a line boundary since Ore statements carry no
// terminators.
func (p *Parser) sameLine(tok *Token) bool {
	return p.tok.Span.StartLine == tok.Span.EndLine
}
