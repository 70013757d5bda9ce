package generate

import (
	"orec/ast"
	"orec/common"
	"orec/report"
)

// genBlockStmts emits the statements of a block.
func (g *Generator) genBlockStmts(block *ast.Block) {
	for _, stmt := range block.Stmts {
		g.genStmt(stmt)
	}
}

// genStmt emits a single statement.
func (g *Generator) genStmt(stmt ast.ASTNode) {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		// Storage slots are emitted as initialized data: a declaration
		// produces no instructions, and a shadow never reinitializes.
	case *ast.MutateStmt:
		g.genMutation(v)
	case *ast.CondBlock:
		g.genCondBlock(v)
	case *ast.JumpStmt:
		g.instr("jmp %s", g.localLabel(v.ResolvedLabel))
	case *ast.SyscallStmt:
		g.genSyscall(v)
	case *ast.CallExpr:
		g.genCall(v)
	case *ast.PutsStmt:
		g.genPuts(v)
	case *ast.ReturnStmt:
		g.genReturn(v)
	}
}

// -----------------------------------------------------------------------------

// genMutation emits an increment, decrement, or assignment on a binding.
func (g *Generator) genMutation(stmt *ast.MutateStmt) {
	switch stmt.Op {
	case ast.OpInc:
		g.instr("inc %s", g.symOperand(stmt.Sym))
	case ast.OpDec:
		g.instr("dec %s", g.symOperand(stmt.Sym))
	case ast.OpSet:
		g.genStore(stmt.Sym, stmt.Value)
	}
}

// genStore evaluates an expression and stores the result into a symbol.
// Immediates and registers store directly; anything else goes through the
// accumulator since the target is always a memory slot or register.
func (g *Generator) genStore(sym *common.Symbol, value ast.ASTExpr) {
	dst := g.symOperand(sym)

	switch v := value.(type) {
	case *ast.NumberLit:
		g.instr("mov %s, %d", dst, v.Value)
		return
	case *ast.Identifier:
		if v.Sym.DefKind == common.DefKindPinned {
			if v.Sym.Width != sym.Width {
				g.recError(value.Span(), report.KindWidth,
					"operand has width %d but %d bytes are expected",
					int(v.Sym.Width), int(sym.Width))
				return
			}

			g.instr("mov %s, %s", dst, v.Sym.Reg)
			return
		}
	}

	g.genExprToAcc(value, sym.Width)
	g.instr("mov %s, %s", dst, g.accAt(sym.Width, value.Span()))
}

// genReturn emits a return: the value lands in the convention's return
// register.  Inside an inline expansion control transfers to the expansion's
// end label instead of a return instruction.
func (g *Generator) genReturn(stmt *ast.ReturnStmt) {
	if stmt.Value != nil {
		g.genExprToAcc(stmt.Value, g.curRet)
	}

	if len(g.inlineEnds) > 0 {
		g.instr("jmp %s", g.inlineEnds[len(g.inlineEnds)-1])
		return
	}

	g.instr("ret")
}

// -----------------------------------------------------------------------------

// genCall emits a function call.  Inline targets expand in place; routines
// get their arguments moved into the convention's argument registers followed
// by a call instruction.  The result is left in the return register.
func (g *Generator) genCall(call *ast.CallExpr) {
	if call.Def.Inline {
		g.genInlineExpansion(call)
		return
	}

	conv := g.table.Conv()
	if len(call.Args) > len(conv.Args) {
		g.recError(call.Span(), report.KindConvention,
			"call to `%s` passes %d arguments but the convention names %d argument registers",
			call.Name, len(call.Args), len(conv.Args))
		return
	}

	for i, arg := range call.Args {
		operand, ok := g.operand(arg)
		if !ok {
			g.recError(arg.Span(), report.KindSyntax,
				"call arguments must be simple values")
			return
		}

		param := call.Def.Params[i]
		if w, known := g.exprWidth(arg); known && w != param.Width {
			g.recError(arg.Span(), report.KindWidth,
				"argument has width %d but parameter `%s` takes %d",
				int(w), param.Name, int(param.Width))
		}

		// A literal moves into the full register; a memory operand fixes the
		// move's size, so the register has to match the parameter width.
		reg := conv.Args[i].Phys
		if isMemOperand(arg) {
			reg = g.regAt(conv.Args[i], param.Width, arg.Span())
		}

		g.instr("mov %s, %s", reg, operand)
	}

	g.instr("call %s", call.Name)
}
