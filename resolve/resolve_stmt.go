package resolve

import (
	"orec/ast"
	"orec/common"
	"orec/report"
)

// resolveBlock resolves the statements of a block inside a fresh scope.
// Named blocks are registered before any statement is resolved so a `jmp` may
// target a block defined later in the same scope.
func (r *Resolver) resolveBlock(block *ast.Block) {
	r.pushScope()
	defer r.popScope()

	labelScope := r.labelScopes[len(r.labelScopes)-1]
	for _, stmt := range block.Stmts {
		cb, ok := stmt.(*ast.CondBlock)
		if !ok || cb.Name == "" {
			continue
		}

		if _, ok := labelScope[cb.Name]; ok {
			r.recError(cb.NameSpan, report.KindLabel,
				"multiple blocks named `%s` in one scope", cb.Name)
			continue
		}

		cb.LabelName = r.blockLabel(cb.Name)
		labelScope[cb.Name] = cb.LabelName
	}

	for _, stmt := range block.Stmts {
		r.resolveStmt(stmt)
	}
}

// resolveStmt resolves a single statement.
func (r *Resolver) resolveStmt(stmt ast.ASTNode) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		r.resolveVarDecl(v)
	case *ast.MutateStmt:
		v.Sym = r.lookup(v.Name, v.NameSpan)
		if v.Sym.DefKind == common.DefKindLabel {
			r.error(v.NameSpan, report.KindName, "cannot mutate label `%s`", v.Name)
		}

		if v.Op == ast.OpSet {
			r.resolveExpr(v.Value)
		}
	case *ast.CondBlock:
		r.resolveCondBlock(v)
	case *ast.JumpStmt:
		r.resolveJump(v)
	case *ast.SyscallStmt:
		for _, arg := range v.Args {
			r.resolveExpr(arg)
		}
	case *ast.CallExpr:
		r.resolveCall(v)
	case *ast.PutsStmt:
		// nothing to resolve
	case *ast.ReturnStmt:
		r.resolveReturn(v)
	}
}

// -----------------------------------------------------------------------------

// resolveVarDecl resolves a binding declaration.  A declaration whose name is
// already visible resolves to the existing binding's storage slot rather than
// allocating a new one: mutations inside the block act on the same slot and
// its value survives the block.
func (r *Resolver) resolveVarDecl(decl *ast.VarDecl) {
	if decl.PinnedAlias != "" {
		if r.curLabel.Inline {
			r.error(decl.PinnedSpan, report.KindRegister,
				"pinned binding `%s` not allowed in an inline label", decl.Name)
		}

		// Pinned bindings hold whole values, so they take the alias's
		// word-width register.
		reg, ok := r.desc.Register(decl.PinnedAlias, r.desc.WordWidth())
		if !ok {
			if r.desc.HasAlias(decl.PinnedAlias) {
				r.error(decl.PinnedSpan, report.KindRegister,
					"no word-width register declared for alias `%s`", decl.PinnedAlias)
			}

			r.error(decl.PinnedSpan, report.KindRegister,
				"unknown register alias: `%s`", decl.PinnedAlias)
		}

		if r.lookupShadow(decl.Name) != nil {
			r.error(decl.NameSpan, report.KindRegister,
				"pinned binding `%s` cannot shadow an existing binding", decl.Name)
		}

		decl.Sym = &common.Symbol{
			Name:    decl.Name,
			DefSpan: decl.NameSpan,
			Width:   reg.Width,
			DefKind: common.DefKindPinned,
			Reg:     reg.Phys,
		}
		r.defineLocal(decl.Sym)
		return
	}

	if !r.desc.SupportsWidth(decl.Width) {
		r.error(decl.NameSpan, report.KindWidth,
			"unknown width: %d bytes", int(decl.Width))
	}

	if existing := r.lookupShadow(decl.Name); existing != nil {
		if existing.DefKind == common.DefKindPinned {
			r.error(decl.NameSpan, report.KindRegister,
				"cannot shadow pinned binding `%s`", decl.Name)
		}

		if existing.Width != decl.Width {
			r.error(decl.NameSpan, report.KindWidth,
				"binding `%s` redeclared with width %d but has width %d",
				decl.Name, int(decl.Width), int(existing.Width))
		}

		// The shadow's initializer is not applied: the slot was initialized
		// where the binding was first declared, which is what lets a
		// loop-carried counter survive each iteration's redeclaration.
		decl.Shadow = true
		decl.Sym = existing
		return
	}

	sym := &common.Symbol{
		Name:      decl.Name,
		DefSpan:   decl.NameSpan,
		Width:     decl.Width,
		DefKind:   common.DefKindSlot,
		InitValue: decl.Init,
	}
	r.file.AllocSlot(decl.Name, sym)
	r.defineLocal(sym)
	decl.Sym = sym
}

// resolveCondBlock resolves a conditional or loop block.  Named blocks were
// already labeled by the enclosing block's pre-scan; anonymous ones get a
// generated label here.
func (r *Resolver) resolveCondBlock(cb *ast.CondBlock) {
	if cb.LabelName == "" {
		cb.LabelName = r.blockLabel("")
	}

	r.resolveExpr(cb.Cond.Lhs)
	r.resolveExpr(cb.Cond.Rhs)

	r.resolveBlock(cb.Body)
}

// resolveJump resolves a jump's target to a named block label.  A name that
// exists somewhere in the program but not in a visible scope is reported as
// unreachable rather than undefined.
func (r *Resolver) resolveJump(stmt *ast.JumpStmt) {
	for i := len(r.labelScopes) - 1; i > -1; i-- {
		if lbl, ok := r.labelScopes[i][stmt.Target]; ok {
			stmt.ResolvedLabel = lbl
			return
		}
	}

	if _, ok := r.namedBlocks[stmt.Target]; ok {
		r.error(stmt.TargetSpan, report.KindLabel,
			"jump target `%s` is not reachable from this scope", stmt.Target)
	}

	r.error(stmt.TargetSpan, report.KindName, "undefined symbol: `%s`", stmt.Target)
}

// resolveReturn resolves a return statement against the enclosing label's
// declared return width.
func (r *Resolver) resolveReturn(stmt *ast.ReturnStmt) {
	if stmt.Value != nil {
		r.resolveExpr(stmt.Value)

		if r.curLabel.RetWidth == 0 {
			r.recError(stmt.Span(), report.KindReturn,
				"label `%s` has no return width", r.curLabel.Name)
		}
	} else if r.curLabel.RetWidth != 0 {
		r.recError(stmt.Span(), report.KindReturn,
			"label `%s` returns %d bytes but return carries no value",
			r.curLabel.Name, int(r.curLabel.RetWidth))
	}
}

// -----------------------------------------------------------------------------

// resolveExpr resolves the identifiers of an expression.
func (r *Resolver) resolveExpr(expr ast.ASTExpr) {
	switch v := expr.(type) {
	case *ast.Identifier:
		v.Sym = r.lookup(v.Name, v.Span())
		if v.Sym.DefKind == common.DefKindLabel {
			r.error(v.Span(), report.KindName,
				"label `%s` cannot be used as a value", v.Name)
		}
	case *ast.BinaryExpr:
		r.resolveExpr(v.Lhs)

		// Arithmetic accumulates left to right through a single register, so
		// only the leftmost operand of a chain may itself be compound.
		switch v.Rhs.(type) {
		case *ast.Identifier, *ast.NumberLit:
		default:
			r.error(v.Rhs.Span(), report.KindSyntax,
				"only the first operand of an expression may be compound")
		}

		r.resolveExpr(v.Rhs)
	case *ast.CallExpr:
		r.resolveCall(v)
	}
}

// resolveCall resolves a call's target label and checks its arity.
func (r *Resolver) resolveCall(call *ast.CallExpr) {
	def, ok := r.file.Labels[call.Name]
	if !ok {
		r.error(call.Span(), report.KindName, "undefined symbol: `$%s`", call.Name)
	}

	if len(call.Args) != len(def.Params) {
		r.error(call.Span(), report.KindArity,
			"label `%s` takes %d arguments but %d were given",
			call.Name, len(def.Params), len(call.Args))
	}

	call.Def = def

	for _, arg := range call.Args {
		r.resolveExpr(arg)
	}
}
