package syntax

import "orec/ast"

// block := '{' {stmt [';']} '}' ;
func (p *Parser) parseBlock() *ast.Block {
	startTok := p.want(TOK_LBRACE)

	block := &ast.Block{}
	for !p.has(TOK_RBRACE) {
		if p.has(TOK_SEMI) {
			p.next()
			continue
		}

		block.Stmts = append(block.Stmts, p.parseStmt())
	}

	endTok := p.want(TOK_RBRACE)
	block.ASTBase = ast.NewASTBaseOver(startTok.Span, endTok.Span)
	return block
}

// cond_block := ['IDENT'] '(' condition ')' (block | '=>' stmt) ;
// loop_block := 'loop' ['IDENT'] '(' condition ')' (block | '=>' stmt) ;
// The optional `loop` keyword and name have already been consumed.  The arrow
// form parses into a one-statement body: both spellings produce identical
// trees and are lowered identically.
func (p *Parser) parseCondBlock(startTok, nameTok *Token, loop bool) *ast.CondBlock {
	block := &ast.CondBlock{Loop: loop}
	if nameTok != nil {
		block.Name = nameTok.Value
		block.NameSpan = nameTok.Span
	}

	p.want(TOK_LPAREN)
	block.Cond = p.parseCondition()
	p.want(TOK_RPAREN)

	if p.has(TOK_FATARROW) {
		p.next()
		stmt := p.parseStmt()
		block.Body = &ast.Block{
			ASTBase: ast.NewASTBaseOn(stmt.Span()),
			Stmts:   []ast.ASTNode{stmt},
		}
	} else {
		block.Body = p.parseBlock()
	}

	block.ASTBase = ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span)
	return block
}
