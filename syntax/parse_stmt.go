package syntax

import (
	"orec/ast"
	"orec/types"
)

// stmt := var_decl | mutation | cond_block | loop_block | jump | syscall_stmt
//       | call_stmt | return_stmt ;
func (p *Parser) parseStmt() ast.ASTNode {
	switch p.tok.Kind {
	case TOK_PERCENT:
		return p.parseVarDecl()
	case TOK_APOS:
		return p.parseMutation()
	case TOK_LOOP:
		startTok := p.want(TOK_LOOP)

		var nameTok *Token
		if p.has(TOK_IDENT) {
			nameTok = p.tok
			p.next()
		}

		return p.parseCondBlock(startTok, nameTok, true)
	case TOK_IDENT:
		nameTok := p.want(TOK_IDENT)
		return p.parseCondBlock(nameTok, nameTok, false)
	case TOK_LPAREN:
		return p.parseCondBlock(p.tok, nil, false)
	case TOK_JMP:
		return p.parseJump()
	case TOK_STAR:
		return p.parseSyscallStmt()
	case TOK_DOLLAR:
		return p.parseCallStmt()
	case TOK_RETURN:
		return p.parseReturn()
	default:
		p.reject()
		return nil
	}
}

// -----------------------------------------------------------------------------

// var_decl := '%' 'IDENT' ('NUMLIT' ['=' 'NUMLIT'] | '@' 'IDENT') ;
// Initializers are compile-time values baked into the binding's storage, not
// runtime assignments.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	startTok := p.want(TOK_PERCENT)
	nameTok := p.want(TOK_IDENT)

	decl := &ast.VarDecl{
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
	}

	if p.has(TOK_ATSIGN) {
		p.next()
		aliasTok := p.want(TOK_IDENT)
		decl.PinnedAlias = aliasTok.Value
		decl.PinnedSpan = aliasTok.Span
	} else {
		widthTok := p.want(TOK_NUMLIT)
		decl.Width = types.Width(p.parseUint(widthTok))

		if p.has(TOK_ASSIGN) {
			p.next()
			initTok := p.want(TOK_NUMLIT)
			decl.HasInit = true
			decl.Init = p.parseUint(initTok)
		}
	}

	decl.ASTBase = ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span)
	return decl
}

// mutation := '\'' 'IDENT' ('++' | '--' | '=' expr) ;
func (p *Parser) parseMutation() *ast.MutateStmt {
	startTok := p.want(TOK_APOS)
	nameTok := p.want(TOK_IDENT)

	stmt := &ast.MutateStmt{
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
	}

	switch p.tok.Kind {
	case TOK_INC:
		stmt.Op = ast.OpInc
		p.next()
	case TOK_DEC:
		stmt.Op = ast.OpDec
		p.next()
	case TOK_ASSIGN:
		stmt.Op = ast.OpSet
		p.next()
		stmt.Value = p.parseExpr()
	default:
		p.reject()
	}

	stmt.ASTBase = ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span)
	return stmt
}

// jump := 'jmp' 'IDENT' ;
func (p *Parser) parseJump() *ast.JumpStmt {
	startTok := p.want(TOK_JMP)
	targetTok := p.want(TOK_IDENT)

	return &ast.JumpStmt{
		ASTBase:    ast.NewASTBaseOver(startTok.Span, targetTok.Span),
		Target:     targetTok.Value,
		TargetSpan: targetTok.Span,
	}
}

// -----------------------------------------------------------------------------

// syscall_stmt := '*' 'IDENT' [expr {',' expr}] ;
// Arguments end at a line boundary.
func (p *Parser) parseSyscallStmt() *ast.SyscallStmt {
	startTok := p.want(TOK_STAR)
	nameTok := p.want(TOK_IDENT)

	stmt := &ast.SyscallStmt{
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
	}

	if p.sameLine(nameTok) && p.startsExpr() {
		stmt.Args = append(stmt.Args, p.parseExpr())

		for p.has(TOK_COMMA) {
			p.next()
			stmt.Args = append(stmt.Args, p.parseExpr())
		}
	}

	stmt.ASTBase = ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span)
	return stmt
}

// call_stmt := '$' 'IDENT' ('(' [expr {',' expr}] ')' | [expr]) ;
// `$puts "lit"` is the builtin print intrinsic.  A bare argument must sit on
// the same line as the call.
func (p *Parser) parseCallStmt() ast.ASTNode {
	startTok := p.want(TOK_DOLLAR)
	nameTok := p.want(TOK_IDENT)

	if nameTok.Value == "puts" && p.has(TOK_STRINGLIT) {
		litTok := p.want(TOK_STRINGLIT)

		return &ast.PutsStmt{
			ASTBase: ast.NewASTBaseOver(startTok.Span, litTok.Span),
			Text: &ast.StringLit{
				ASTBase: ast.NewASTBaseOn(litTok.Span),
				Value:   litTok.Value,
			},
		}
	}

	call := &ast.CallExpr{
		Name: nameTok.Value,
	}

	if p.has(TOK_LPAREN) {
		p.next()

		if !p.has(TOK_RPAREN) {
			call.Args = append(call.Args, p.parseExpr())

			for p.has(TOK_COMMA) {
				p.next()
				call.Args = append(call.Args, p.parseExpr())
			}
		}

		p.want(TOK_RPAREN)
	} else if p.sameLine(nameTok) && p.startsExpr() {
		call.Args = append(call.Args, p.parseExpr())
	}

	call.ASTBase = ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span)
	return call
}

// return_stmt := 'return' [expr] ;
// A returned value must sit on the same line as the keyword.
func (p *Parser) parseReturn() *ast.ReturnStmt {
	startTok := p.want(TOK_RETURN)

	stmt := &ast.ReturnStmt{}
	if p.sameLine(startTok) && p.startsExpr() {
		stmt.Value = p.parseExpr()
	}

	stmt.ASTBase = ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span)
	return stmt
}
