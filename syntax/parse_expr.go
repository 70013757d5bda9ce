package syntax

import "orec/ast"

// condOperators maps condition operator token kinds to condition operators.
var condOperators = map[int]int{
	TOK_ASSIGN: ast.CondEq,
	TOK_NEQ:    ast.CondNe,
	TOK_LT:     ast.CondLt,
	TOK_GT:     ast.CondGt,
	TOK_LTEQ:   ast.CondLe,
	TOK_GTEQ:   ast.CondGe,
}

// condition := cond_operand cond_oper cond_operand ;
// cond_operand := 'IDENT' | 'NUMLIT' ;
// cond_oper := '=' | '!=' | '<' | '>' | '<=' | '>=' ;
// All comparisons are unsigned; operands are restricted to identifiers and
// literals so a condition always lowers to a single compare.
func (p *Parser) parseCondition() *ast.Condition {
	lhs := p.parseCondOperand()

	op, ok := condOperators[p.tok.Kind]
	if !ok {
		p.reject()
	}
	p.next()

	rhs := p.parseCondOperand()

	return &ast.Condition{
		ASTBase: ast.NewASTBaseOver(lhs.Span(), rhs.Span()),
		Op:      op,
		Lhs:     lhs,
		Rhs:     rhs,
	}
}

func (p *Parser) parseCondOperand() ast.ASTExpr {
	switch p.tok.Kind {
	case TOK_IDENT:
		tok := p.want(TOK_IDENT)
		return &ast.Identifier{ASTBase: ast.NewASTBaseOn(tok.Span), Name: tok.Value}
	case TOK_NUMLIT:
		tok := p.want(TOK_NUMLIT)
		return &ast.NumberLit{ASTBase: ast.NewASTBaseOn(tok.Span), Value: p.parseUint(tok)}
	default:
		p.reject()
		return nil
	}
}

// -----------------------------------------------------------------------------

// expr := atom {('+' | '-') atom} ;
func (p *Parser) parseExpr() ast.ASTExpr {
	expr := p.parseAtom()

	for p.has(TOK_PLUS) || p.has(TOK_MINUS) {
		op := ast.OpAdd
		if p.has(TOK_MINUS) {
			op = ast.OpSub
		}
		p.next()

		rhs := p.parseAtom()
		expr = &ast.BinaryExpr{
			ASTBase: ast.NewASTBaseOver(expr.Span(), rhs.Span()),
			Op:      op,
			Lhs:     expr,
			Rhs:     rhs,
		}
	}

	return expr
}

// atom := 'IDENT' | 'NUMLIT' | 'STRINGLIT' | call_expr | '(' expr ')' ;
// call_expr := '$' 'IDENT' '(' [expr {',' expr}] ')' ;
func (p *Parser) parseAtom() ast.ASTExpr {
	switch p.tok.Kind {
	case TOK_IDENT:
		tok := p.want(TOK_IDENT)
		return &ast.Identifier{ASTBase: ast.NewASTBaseOn(tok.Span), Name: tok.Value}
	case TOK_NUMLIT:
		tok := p.want(TOK_NUMLIT)
		return &ast.NumberLit{ASTBase: ast.NewASTBaseOn(tok.Span), Value: p.parseUint(tok)}
	case TOK_STRINGLIT:
		tok := p.want(TOK_STRINGLIT)
		return &ast.StringLit{ASTBase: ast.NewASTBaseOn(tok.Span), Value: tok.Value}
	case TOK_DOLLAR:
		startTok := p.want(TOK_DOLLAR)
		nameTok := p.want(TOK_IDENT)

		call := &ast.CallExpr{Name: nameTok.Value}

		p.want(TOK_LPAREN)
		if !p.has(TOK_RPAREN) {
			call.Args = append(call.Args, p.parseExpr())

			for p.has(TOK_COMMA) {
				p.next()
				call.Args = append(call.Args, p.parseExpr())
			}
		}
		endTok := p.want(TOK_RPAREN)

		call.ASTBase = ast.NewASTBaseOver(startTok.Span, endTok.Span)
		return call
	case TOK_LPAREN:
		p.next()
		expr := p.parseExpr()
		p.want(TOK_RPAREN)
		return expr
	default:
		p.reject()
		return nil
	}
}

// startsExpr returns whether the current token can begin an expression in a
// bare (unparenthesized) argument position.
func (p *Parser) startsExpr() bool {
	switch p.tok.Kind {
	case TOK_IDENT, TOK_NUMLIT, TOK_STRINGLIT, TOK_DOLLAR:
		return true
	default:
		return false
	}
}
