package syntax

import (
	"orec/ast"
	"orec/types"
)

// item := directive | label_def | syscall_decl | static_block ;
func (p *Parser) parseItem(prog *ast.Program) {
	switch p.tok.Kind {
	case TOK_COLON:
		prog.Directives = append(prog.Directives, p.parseDirective())
	case TOK_INLINE, TOK_ENTRY:
		prog.Labels = append(prog.Labels, p.parseLabelDef())
	case TOK_IDENT:
		nameTok := p.tok
		p.next()

		switch p.tok.Kind {
		case TOK_LPAREN:
			prog.Labels = append(prog.Labels, p.parseLabelRest(nameTok, false, false))
		case TOK_LBRACE:
			p.next()

			// A leading `= code` marks a syscall declaration; anything else is
			// a block of static data tagged with the attribute `nameTok`.
			if p.has(TOK_ASSIGN) {
				prog.Syscalls = append(prog.Syscalls, p.parseSyscallBody(nameTok))
			} else {
				prog.Statics = append(prog.Statics, p.parseStaticBody(nameTok))
			}
		default:
			p.reject()
		}
	case TOK_SEMI:
		p.next()
	default:
		p.reject()
	}
}

// -----------------------------------------------------------------------------

// directive := ':' 'IDENT' {dir_arg} ['->' dir_arg] ;
// dir_arg := 'IDENT' | 'NUMLIT' ;
// Directives are line scoped: arguments end at the first token on a new line.
func (p *Parser) parseDirective() *ast.Directive {
	startTok := p.want(TOK_COLON)
	nameTok := p.want(TOK_IDENT)

	dir := &ast.Directive{
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
	}

	for p.sameLine(nameTok) {
		switch p.tok.Kind {
		case TOK_IDENT, TOK_NUMLIT, TOK_PTR, TOK_WORD:
			dir.Args = append(dir.Args, p.parseDirectiveArg())
		case TOK_ARROW:
			p.next()
			dir.ConvRet = p.parseDirectiveArg()
		default:
			p.reject()
		}
	}

	dir.ASTBase = ast.NewASTBaseOver(startTok.Span, p.lookbehind.Span)
	return dir
}

func (p *Parser) parseDirectiveArg() *ast.DirectiveArg {
	switch p.tok.Kind {
	case TOK_NUMLIT:
		tok := p.want(TOK_NUMLIT)
		return &ast.DirectiveArg{Value: tok.Value, Num: p.parseUint(tok), IsNum: true, Span: tok.Span}
	default:
		tok := p.tok
		p.next()
		return &ast.DirectiveArg{Value: tok.Value, Span: tok.Span}
	}
}

// -----------------------------------------------------------------------------

// syscall_decl := 'IDENT' '{' '=' 'NUMLIT' {';' syscall_param} [';'] '}' ;
// syscall_param := 'IDENT' param_spec ;
// param_spec := 'NUMLIT' | 'ptr' | 'word' ;
// The leading name and `{` have already been consumed.
func (p *Parser) parseSyscallBody(nameTok *Token) *ast.SyscallDecl {
	p.want(TOK_ASSIGN)
	codeTok := p.want(TOK_NUMLIT)

	decl := &ast.SyscallDecl{
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
		Code:     p.parseUint(codeTok),
		CodeSpan: codeTok.Span,
	}

	for p.has(TOK_SEMI) {
		p.next()

		if p.has(TOK_RBRACE) {
			break
		}

		labelTok := p.want(TOK_IDENT)
		param := &ast.SyscallParam{Label: labelTok.Value}

		switch p.tok.Kind {
		case TOK_NUMLIT:
			widthTok := p.want(TOK_NUMLIT)
			param.Kind = types.ParamFixed
			param.Width = types.Width(p.parseUint(widthTok))
			param.Span = ast.NewASTBaseOver(labelTok.Span, widthTok.Span).Span()
		case TOK_PTR:
			specTok := p.want(TOK_PTR)
			param.Kind = types.ParamPointer
			param.Span = ast.NewASTBaseOver(labelTok.Span, specTok.Span).Span()
		case TOK_WORD:
			specTok := p.want(TOK_WORD)
			param.Kind = types.ParamWord
			param.Span = ast.NewASTBaseOver(labelTok.Span, specTok.Span).Span()
		default:
			p.reject()
		}

		decl.Params = append(decl.Params, param)
	}

	endTok := p.want(TOK_RBRACE)
	decl.ASTBase = ast.NewASTBaseOver(nameTok.Span, endTok.Span)
	return decl
}

// -----------------------------------------------------------------------------

// static_block := 'IDENT' '{' {static_entry [';']} '}' ;
// static_entry := 'IDENT' 'NUMLIT' ':' ('NUMLIT' | 'STRINGLIT') ;
// The leading attribute name and `{` have already been consumed.
func (p *Parser) parseStaticBody(attrTok *Token) *ast.StaticBlock {
	block := &ast.StaticBlock{
		Attr:     attrTok.Value,
		AttrSpan: attrTok.Span,
	}

	for !p.has(TOK_RBRACE) {
		if p.has(TOK_SEMI) {
			p.next()
			continue
		}

		nameTok := p.want(TOK_IDENT)
		widthTok := p.want(TOK_NUMLIT)
		p.want(TOK_COLON)

		entry := &ast.StaticEntry{
			Name:     nameTok.Value,
			NameSpan: nameTok.Span,
			Width:    types.Width(p.parseUint(widthTok)),
		}

		switch p.tok.Kind {
		case TOK_NUMLIT:
			valueTok := p.want(TOK_NUMLIT)
			entry.Num = p.parseUint(valueTok)
			entry.ASTBase = ast.NewASTBaseOver(nameTok.Span, valueTok.Span)
		case TOK_STRINGLIT:
			valueTok := p.want(TOK_STRINGLIT)
			entry.IsStr = true
			entry.Str = valueTok.Value
			entry.ASTBase = ast.NewASTBaseOver(nameTok.Span, valueTok.Span)
		default:
			p.reject()
		}

		block.Entries = append(block.Entries, entry)
	}

	endTok := p.want(TOK_RBRACE)
	block.ASTBase = ast.NewASTBaseOver(attrTok.Span, endTok.Span)
	return block
}

// -----------------------------------------------------------------------------

// label_def := ['inline'] ['entry'] 'IDENT' '(' [label_params] ')'
//              ['->' 'NUMLIT'] (block | ':' stmt) ;
func (p *Parser) parseLabelDef() *ast.LabelDef {
	var inline, entry bool

	for {
		switch p.tok.Kind {
		case TOK_INLINE:
			if inline {
				p.reject()
			}

			inline = true
			p.next()
			continue
		case TOK_ENTRY:
			if entry {
				p.reject()
			}

			entry = true
			p.next()
			continue
		}

		break
	}

	nameTok := p.want(TOK_IDENT)
	return p.parseLabelRest(nameTok, inline, entry)
}

// label_params := label_param {',' label_param} ;
// label_param := 'IDENT' ':' 'NUMLIT' ;
// The qualifiers and name have already been consumed.
func (p *Parser) parseLabelRest(nameTok *Token, inline, entry bool) *ast.LabelDef {
	def := &ast.LabelDef{
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
		Inline:   inline,
		Entry:    entry,
		RetWidth: types.WidthNone,
	}

	p.want(TOK_LPAREN)

	if !p.has(TOK_RPAREN) {
		for {
			paramTok := p.want(TOK_IDENT)
			p.want(TOK_COLON)
			widthTok := p.want(TOK_NUMLIT)

			def.Params = append(def.Params, &ast.LabelParam{
				Name:  paramTok.Value,
				Width: types.Width(p.parseUint(widthTok)),
				Span:  ast.NewASTBaseOver(paramTok.Span, widthTok.Span).Span(),
			})

			if p.has(TOK_COMMA) {
				p.next()
				continue
			}

			break
		}
	}

	p.want(TOK_RPAREN)

	if p.has(TOK_ARROW) {
		p.next()
		widthTok := p.want(TOK_NUMLIT)
		def.RetWidth = types.Width(p.parseUint(widthTok))
	}

	// The single-statement form `name(): stmt` parses into a one-statement
	// body so both spellings produce identical trees.
	if p.has(TOK_COLON) {
		p.next()
		stmt := p.parseStmt()
		def.Body = &ast.Block{
			ASTBase: ast.NewASTBaseOn(stmt.Span()),
			Stmts:   []ast.ASTNode{stmt},
		}
	} else {
		def.Body = p.parseBlock()
	}

	def.ASTBase = ast.NewASTBaseOver(nameTok.Span, p.lookbehind.Span)
	return def
}
