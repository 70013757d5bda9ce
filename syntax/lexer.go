package syntax

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"orec/report"
)

// Lexer is responsible for tokenizing a source file.
type Lexer struct {
	file    *bufio.Reader
	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a new lexer for the given source file.
func NewLexer(file *bufio.Reader) *Lexer {
	return &Lexer{
		file:    file,
		tokBuff: &strings.Builder{},
		line:    0,
		col:     0,
	}
}

// NextToken retrieves the next token from the input file. If the file has
// ended, this will be an EOF token.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		}

		switch c {
		case '\n', '\t', ' ', '\r', '\v', '\f':
			l.skip()
		case '/':
			if err := l.lexComment(); err != nil {
				return nil, err
			}
		case '"':
			return l.lexStringLit()
		default:
			if isDecimalDigit(c) {
				return l.lexNumericLit()
			} else if isFirstIdentChar(c) {
				return l.lexIdentOrKeyword()
			} else {
				return l.lexPunctOrOper()
			}
		}
	}

	l.mark()
	return &Token{Kind: TOK_EOF, Span: l.getSpan()}, nil
}

// -----------------------------------------------------------------------------

// symbolPatterns maps symbol strings (patterns) to their punctuation/operator
// token kind.
var symbolPatterns = map[string]int{
	"+":  TOK_PLUS,
	"-":  TOK_MINUS,
	"++": TOK_INC,
	"--": TOK_DEC,

	"=":  TOK_ASSIGN,
	"!=": TOK_NEQ,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,

	"->": TOK_ARROW,
	"=>": TOK_FATARROW,

	"(": TOK_LPAREN,
	")": TOK_RPAREN,
	"{": TOK_LBRACE,
	"}": TOK_RBRACE,
	",": TOK_COMMA,
	":": TOK_COLON,
	";": TOK_SEMI,

	"%": TOK_PERCENT,
	"'": TOK_APOS,
	"*": TOK_STAR,
	"$": TOK_DOLLAR,
	"@": TOK_ATSIGN,
}

// lexPunctOrOper lexes a punctuation or operator symbol using maximal munch.
// A leading rune need not be a symbol on its own: `!` is only valid as the
// start of `!=`.
func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	l.eat()

	kind, ok := symbolPatterns[l.tokBuff.String()]

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		if c == -1 {
			break
		}

		if _kind, found := symbolPatterns[l.tokBuff.String()+string(c)]; found {
			l.eat()
			kind = _kind
			ok = true
		} else {
			break
		}
	}

	if !ok {
		return nil, report.Raise(l.getSpan(), report.KindSyntax, "unknown rune")
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"loop":   TOK_LOOP,
	"jmp":    TOK_JMP,
	"return": TOK_RETURN,
	"inline": TOK_INLINE,
	"entry":  TOK_ENTRY,
	"ptr":    TOK_PTR,
	"word":   TOK_WORD,
}

// lexIdentOrKeyword lexes an identifier or a keyword.  Identifiers may begin
// with `.` so section names like `.data` lex as single tokens.
func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if !isFirstIdentChar(c) && !isDecimalDigit(c) {
			break
		}

		l.eat()
	}

	var kind int
	if _kind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		kind = _kind
	} else {
		kind = TOK_IDENT
	}

	return l.makeToken(kind), nil
}

// -----------------------------------------------------------------------------

// lexNumericLit lexes an unsigned numeric literal.  Literals may be written
// in decimal, hexadecimal (`0x`), octal (`0o`), or binary (`0b`) and may
// contain `_` separators.
func (l *Lexer) lexNumericLit() (*Token, error) {
	l.mark()
	c, _ := l.eat()

	// Determine the base of the literal.
	base := 10
	mustHaveDigit := false
	if c == '0' {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case 'x':
			base = 16
			l.eat()
			mustHaveDigit = true
		case 'o':
			base = 8
			l.eat()
			mustHaveDigit = true
		case 'b':
			base = 2
			l.eat()
			mustHaveDigit = true
		}
	}

numLexLoop:
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			break
		} else if c == '_' {
			// Skip all _ that occur in the literal.
			l.skip()
			continue
		}

		switch base {
		case 2:
			if c == '0' || c == '1' {
				l.eat()
			} else {
				break numLexLoop
			}
		case 8:
			if '0' <= c && c <= '7' {
				l.eat()
			} else {
				break numLexLoop
			}
		case 10:
			if isDecimalDigit(c) {
				l.eat()
			} else {
				break numLexLoop
			}
		case 16:
			if isHexDigit(c) {
				l.eat()
			} else {
				break numLexLoop
			}
		}

		mustHaveDigit = false
	}

	if mustHaveDigit {
		return nil, report.Raise(l.getSpan(), report.KindSyntax, "incomplete numeric literal")
	}

	return l.makeToken(TOK_NUMLIT), nil
}

// -----------------------------------------------------------------------------

// lexStringLit lexes a string literal.  Escape sequences are processed here:
// the token's value holds the literal's actual bytes.
func (l *Lexer) lexStringLit() (*Token, error) {
	l.mark()
	l.skip()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}

		switch c {
		case -1:
			return nil, report.Raise(l.getSpan(), report.KindSyntax, "unclosed string literal")
		case '"':
			l.skip()
			return l.makeToken(TOK_STRINGLIT), nil
		case '\\':
			l.skip()
			if err = l.lexEscapeSequence(); err != nil {
				return nil, err
			}
		case '\n':
			return nil, report.Raise(l.getSpan(), report.KindSyntax, "string cannot contain a newline")
		default:
			l.eat()
		}
	}
}

// lexEscapeSequence consumes an escape sequence and writes its value to the
// token buffer.  This assumes the leading `\` has already been skipped.
func (l *Lexer) lexEscapeSequence() error {
	c, err := l.skip()
	if err != nil {
		return err
	}

	switch c {
	case -1:
		return report.Raise(l.getSpan(), report.KindSyntax, "expected escape sequence not end of file")
	case 'n':
		l.tokBuff.WriteByte('\n')
	case 't':
		l.tokBuff.WriteByte('\t')
	case 'r':
		l.tokBuff.WriteByte('\r')
	case '0':
		l.tokBuff.WriteByte(0)
	case '\\':
		l.tokBuff.WriteByte('\\')
	case '"':
		l.tokBuff.WriteByte('"')
	default:
		return report.Raise(l.getSpan(), report.KindSyntax, "unknown escape sequence: `\\%c`", c)
	}

	return nil
}

// -----------------------------------------------------------------------------

// lexComment lexes a line or block comment.  A lone `/` is an error: Ore has
// no division operator.
func (l *Lexer) lexComment() error {
	l.mark()
	l.skip()

	c, err := l.peek()
	if err != nil {
		return err
	}

	switch c {
	case '/':
		for ; err == nil && c != '\n' && c != -1; c, err = l.skip() {
		}
	case '*':
		for {
			c, err = l.skip()
			if err != nil || c == -1 {
				break
			}

			if c == '*' {
				c, err = l.skip()
				if err != nil || c == -1 || c == '/' {
					break
				}
			}
		}
	default:
		return report.Raise(l.getSpan(), report.KindSyntax, "unknown rune")
	}

	return err
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start line and column to its current position.
func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span based on the lexer's current state.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the lexer encounters an EOF, -1 is returned as the rune value.
func (l *Lexer) eat() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)
	l.tokBuff.WriteRune(c)

	return c, nil
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the lexer encounters an EOF, -1 is returned as the rune
// value.
func (l *Lexer) skip() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	l.updatePos(c)

	return c, nil
}

// peek returns the next rune in the file without moving the lexer forward or
// writing the rune to the token buffer.  If the lexer encounters an EOF, -1 is
// returned as rune value.
func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}

		return 0, err
	}

	if err = l.file.UnreadRune(); err != nil {
		return 0, err
	}

	return c, nil
}

// updatePos updates the lexer's position based on input character.
func (l *Lexer) updatePos(c rune) {
	switch c {
	case '\n':
		l.line++
		l.col = 0
	case '\t':
		l.col += 4
	default:
		l.col++
	}
}

// -----------------------------------------------------------------------------

// isDecimalDigit returns whether c is a decimal digit.
func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

// isHexDigit returns whether c is a hexadecimal digit.
func isHexDigit(c rune) bool {
	return isDecimalDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// isFirstIdentChar returns whether c could be the first rune of an identifier.
func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_' || c == '.'
}
