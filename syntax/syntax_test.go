package syntax

import (
	"bufio"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"orec/ast"
	"orec/report"
	"orec/types"
	"orec/unit"
)

// lexAll tokenizes src and returns all tokens up to and including EOF,
// failing the test on any lexical error.
func lexAll(t *testing.T, src string) []*Token {
	t.Helper()

	l := NewLexer(bufio.NewReader(strings.NewReader(src)))

	var toks []*Token
	for {
		tok, err := l.NextToken()
		be.Err(t, err, nil)

		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			return toks
		}
	}
}

func kindsOf(toks []*Token) []int {
	kinds := make([]int, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}

	return kinds
}

func TestLexSymbolsAndKeywords(t *testing.T) {
	toks := lexAll(t, "loop jmp return inline entry ptr word foo -> => <= >= ++ -- != { } ( ) : ; , % ' * $ @")

	be.Equal(t, kindsOf(toks), []int{
		TOK_LOOP, TOK_JMP, TOK_RETURN, TOK_INLINE, TOK_ENTRY, TOK_PTR, TOK_WORD,
		TOK_IDENT,
		TOK_ARROW, TOK_FATARROW, TOK_LTEQ, TOK_GTEQ, TOK_INC, TOK_DEC, TOK_NEQ,
		TOK_LBRACE, TOK_RBRACE, TOK_LPAREN, TOK_RPAREN,
		TOK_COLON, TOK_SEMI, TOK_COMMA,
		TOK_PERCENT, TOK_APOS, TOK_STAR, TOK_DOLLAR, TOK_ATSIGN,
		TOK_EOF,
	})
}

func TestLexSectionIdent(t *testing.T) {
	toks := lexAll(t, ".data")

	be.Equal(t, toks[0].Kind, TOK_IDENT)
	be.Equal(t, toks[0].Value, ".data")
}

func TestLexNumericLiterals(t *testing.T) {
	toks := lexAll(t, "42 0x1F 0b1010 0o17 1_000_000")

	values := []string{"42", "0x1F", "0b1010", "0o17", "1000000"}
	for i, want := range values {
		be.Equal(t, toks[i].Kind, TOK_NUMLIT)
		be.Equal(t, toks[i].Value, want)
	}
}

func TestLexIncompleteNumericLiteral(t *testing.T) {
	l := NewLexer(bufio.NewReader(strings.NewReader("0x")))

	_, err := l.NextToken()
	be.True(t, err != nil)
}

func TestLexStringEscapes(t *testing.T) {
	toks := lexAll(t, `"hi\n\t\r\0\\\""`)

	be.Equal(t, toks[0].Kind, TOK_STRINGLIT)
	be.Equal(t, toks[0].Value, "hi\n\t\r\x00\\\"")
}

func TestLexUnclosedString(t *testing.T) {
	l := NewLexer(bufio.NewReader(strings.NewReader(`"hi`)))

	_, err := l.NextToken()
	be.True(t, err != nil)
}

func TestLexComments(t *testing.T) {
	toks := lexAll(t, "a // to the end of the line\nb /* in\nthe middle */ c")

	be.Equal(t, kindsOf(toks), []int{TOK_IDENT, TOK_IDENT, TOK_IDENT, TOK_EOF})
	be.Equal(t, toks[2].Value, "c")
}

func TestLexLoneSlash(t *testing.T) {
	l := NewLexer(bufio.NewReader(strings.NewReader("a / b")))

	tok, err := l.NextToken()
	be.Err(t, err, nil)
	be.Equal(t, tok.Value, "a")

	_, err = l.NextToken()
	be.True(t, err != nil)
}

func TestLexSpans(t *testing.T) {
	toks := lexAll(t, "foo\n  bar")

	be.Equal(t, toks[0].Span.StartLine, 0)
	be.Equal(t, toks[0].Span.StartCol, 0)
	be.Equal(t, toks[0].Span.EndCol, 3)

	be.Equal(t, toks[1].Span.StartLine, 1)
	be.Equal(t, toks[1].Span.StartCol, 2)
}

// -----------------------------------------------------------------------------

// parseSource parses src into a fresh source file with a silent reporter.
func parseSource(src string) (*unit.SourceFile, bool) {
	file := unit.NewSourceFile("test.ore", "test.ore", report.NewReporter(report.LogLevelSilent))
	p := NewParser(file, bufio.NewReader(strings.NewReader(src)))
	return file, p.Parse()
}

func TestParseDirectives(t *testing.T) {
	file, ok := parseSource(":WORD 64\n:SYSCALL_CONV num a0 a1 -> acc")
	be.True(t, ok)
	be.Equal(t, len(file.Prog.Directives), 2)

	word := file.Prog.Directives[0]
	be.Equal(t, word.Name, "WORD")
	be.Equal(t, len(word.Args), 1)
	be.True(t, word.Args[0].IsNum)
	be.Equal(t, word.Args[0].Num, uint64(64))

	conv := file.Prog.Directives[1]
	be.Equal(t, conv.Name, "SYSCALL_CONV")
	be.Equal(t, len(conv.Args), 3)
	be.Equal(t, conv.Args[1].Value, "a0")
	be.True(t, conv.ConvRet != nil)
	be.Equal(t, conv.ConvRet.Value, "acc")
}

func TestParseDirectiveLineScoping(t *testing.T) {
	file, ok := parseSource(":ATTR static .data\n:WORD 64")
	be.True(t, ok)
	be.Equal(t, len(file.Prog.Directives), 2)
	be.Equal(t, len(file.Prog.Directives[0].Args), 2)
	be.Equal(t, file.Prog.Directives[0].Args[1].Value, ".data")
}

func TestParseSyscallDecl(t *testing.T) {
	file, ok := parseSource("write { = 1; fd 4; buf ptr; count word }")
	be.True(t, ok)
	be.Equal(t, len(file.Prog.Syscalls), 1)

	decl := file.Prog.Syscalls[0]
	be.Equal(t, decl.Name, "write")
	be.Equal(t, decl.Code, uint64(1))
	be.Equal(t, len(decl.Params), 3)
	be.Equal(t, decl.Params[0].Label, "fd")
	be.Equal(t, decl.Params[0].Kind, types.ParamFixed)
	be.Equal(t, decl.Params[0].Width, types.Width(4))
	be.Equal(t, decl.Params[1].Kind, types.ParamPointer)
	be.Equal(t, decl.Params[2].Kind, types.ParamWord)
}

func TestParseStaticBlock(t *testing.T) {
	file, ok := parseSource("static {\n  MSG 1: \"hi\"\n  COUNT 8: 42\n}")
	be.True(t, ok)
	be.Equal(t, len(file.Prog.Statics), 1)

	block := file.Prog.Statics[0]
	be.Equal(t, block.Attr, "static")
	be.Equal(t, len(block.Entries), 2)
	be.True(t, block.Entries[0].IsStr)
	be.Equal(t, block.Entries[0].Str, "hi")
	be.True(t, !block.Entries[1].IsStr)
	be.Equal(t, block.Entries[1].Num, uint64(42))
}

func TestParseLabelDef(t *testing.T) {
	file, ok := parseSource("add(a: 8, b: 8) -> 8 {\n  return a + b\n}")
	be.True(t, ok)
	be.Equal(t, len(file.Prog.Labels), 1)

	def := file.Prog.Labels[0]
	be.Equal(t, def.Name, "add")
	be.Equal(t, len(def.Params), 2)
	be.Equal(t, def.Params[1].Name, "b")
	be.Equal(t, def.Params[1].Width, types.Width(8))
	be.Equal(t, def.RetWidth, types.Width(8))
	be.True(t, !def.Inline && !def.Entry)

	be.Equal(t, len(def.Body.Stmts), 1)
	ret, ok := def.Body.Stmts[0].(*ast.ReturnStmt)
	be.True(t, ok)

	bin, ok := ret.Value.(*ast.BinaryExpr)
	be.True(t, ok)
	be.Equal(t, bin.Op, ast.OpAdd)
}

func TestParseLabelQualifiers(t *testing.T) {
	file, ok := parseSource("inline entry main() { return }")
	be.True(t, ok)

	def := file.Prog.Labels[0]
	be.True(t, def.Inline)
	be.True(t, def.Entry)
}

func TestParseSingleStatementLabel(t *testing.T) {
	file, ok := parseSource("noop(): return")
	be.True(t, ok)

	def := file.Prog.Labels[0]
	be.Equal(t, len(def.Body.Stmts), 1)
	_, ok = def.Body.Stmts[0].(*ast.ReturnStmt)
	be.True(t, ok)
}

func TestParseVarDecls(t *testing.T) {
	file, ok := parseSource("main() {\n  %x 8 = 5\n  %y 4\n  %z @acc\n}")
	be.True(t, ok)

	stmts := file.Prog.Labels[0].Body.Stmts

	x := stmts[0].(*ast.VarDecl)
	be.Equal(t, x.Width, types.Width(8))
	be.True(t, x.HasInit)
	be.Equal(t, x.Init, uint64(5))

	y := stmts[1].(*ast.VarDecl)
	be.Equal(t, y.Width, types.Width(4))
	be.True(t, !y.HasInit)

	z := stmts[2].(*ast.VarDecl)
	be.Equal(t, z.PinnedAlias, "acc")
	be.Equal(t, z.Width, types.WidthNone)
}

func TestParseMutations(t *testing.T) {
	file, ok := parseSource("main() {\n  'x ++\n  'x --\n  'x = y - 1\n}")
	be.True(t, ok)

	stmts := file.Prog.Labels[0].Body.Stmts
	be.Equal(t, stmts[0].(*ast.MutateStmt).Op, ast.OpInc)
	be.Equal(t, stmts[1].(*ast.MutateStmt).Op, ast.OpDec)

	set := stmts[2].(*ast.MutateStmt)
	be.Equal(t, set.Op, ast.OpSet)
	be.Equal(t, set.Value.(*ast.BinaryExpr).Op, ast.OpSub)
}

// The arrow form parses into a one-statement body identical in shape to the
// braced spelling.
func TestParseCondSugar(t *testing.T) {
	braced, ok := parseSource("main() {\n  (x != 0) { 'x -- }\n}")
	be.True(t, ok)

	arrow, ok := parseSource("main() {\n  (x != 0) => 'x --\n}")
	be.True(t, ok)

	bb := braced.Prog.Labels[0].Body.Stmts[0].(*ast.CondBlock)
	ab := arrow.Prog.Labels[0].Body.Stmts[0].(*ast.CondBlock)

	be.Equal(t, bb.Cond.Op, ab.Cond.Op)
	be.Equal(t, len(bb.Body.Stmts), 1)
	be.Equal(t, len(ab.Body.Stmts), 1)

	_, ok = bb.Body.Stmts[0].(*ast.MutateStmt)
	be.True(t, ok)
	_, ok = ab.Body.Stmts[0].(*ast.MutateStmt)
	be.True(t, ok)
}

func TestParseNamedLoop(t *testing.T) {
	file, ok := parseSource("main() {\n  loop outer (i < 10) {\n    jmp outer\n  }\n}")
	be.True(t, ok)

	block := file.Prog.Labels[0].Body.Stmts[0].(*ast.CondBlock)
	be.True(t, block.Loop)
	be.Equal(t, block.Name, "outer")
	be.Equal(t, block.Cond.Op, ast.CondLt)

	jump := block.Body.Stmts[0].(*ast.JumpStmt)
	be.Equal(t, jump.Target, "outer")
}

func TestParseSyscallStmt(t *testing.T) {
	file, ok := parseSource("main() {\n  *write 1, MSG, 3\n}")
	be.True(t, ok)

	sc := file.Prog.Labels[0].Body.Stmts[0].(*ast.SyscallStmt)
	be.Equal(t, sc.Name, "write")
	be.Equal(t, len(sc.Args), 3)
}

func TestParseCallForms(t *testing.T) {
	file, ok := parseSource("main() {\n  $tick\n  $add(1, 2)\n  $show 3\n  $puts \"hi\"\n}")
	be.True(t, ok)

	stmts := file.Prog.Labels[0].Body.Stmts

	bare := stmts[0].(*ast.CallExpr)
	be.Equal(t, bare.Name, "tick")
	be.Equal(t, len(bare.Args), 0)

	parens := stmts[1].(*ast.CallExpr)
	be.Equal(t, len(parens.Args), 2)

	single := stmts[2].(*ast.CallExpr)
	be.Equal(t, len(single.Args), 1)

	puts := stmts[3].(*ast.PutsStmt)
	be.Equal(t, puts.Text.Value, "hi")
}

// A bare call argument on the next line belongs to the next statement, not
// the call.
func TestParseBareCallLineScoping(t *testing.T) {
	file, ok := parseSource("main() {\n  $tick\n  'x ++\n}")
	be.True(t, ok)

	stmts := file.Prog.Labels[0].Body.Stmts
	be.Equal(t, len(stmts), 2)
	be.Equal(t, len(stmts[0].(*ast.CallExpr).Args), 0)
}

func TestParseReturnForms(t *testing.T) {
	file, ok := parseSource("a(): return\nb(): return 5")
	be.True(t, ok)

	bare := file.Prog.Labels[0].Body.Stmts[0].(*ast.ReturnStmt)
	be.True(t, bare.Value == nil)

	valued := file.Prog.Labels[1].Body.Stmts[0].(*ast.ReturnStmt)
	be.Equal(t, valued.Value.(*ast.NumberLit).Value, uint64(5))
}

func TestParseErrorReported(t *testing.T) {
	file, ok := parseSource("main() {\n  %x\n}")
	be.True(t, !ok)
	be.True(t, len(file.Rep.Errors()) > 0)
	be.Equal(t, file.Rep.Errors()[0].Kind, report.KindSyntax)
}

func TestParseOutOfRangeLiteral(t *testing.T) {
	_, ok := parseSource("main() {\n  %x 8 = 0xFFFF_FFFF_FFFF_FFFF_F\n}")
	be.True(t, !ok)
}

// Recovery skips to the next top-level item so later errors still surface.
func TestParseRecovery(t *testing.T) {
	file, ok := parseSource("main( {\n}\n:WORD 64\nother() {\n  %y\n}")
	be.True(t, !ok)
	be.True(t, len(file.Rep.Errors()) >= 2)
	be.Equal(t, len(file.Prog.Directives), 1)
}
