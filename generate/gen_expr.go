package generate

import (
	"fmt"

	"orec/ast"
	"orec/common"
	"orec/report"
	"orec/types"
)

// operand renders an expression as a single instruction operand.  The boolean
// reports whether the expression is simple enough to be one: compound
// expressions have to go through the accumulator instead.
func (g *Generator) operand(expr ast.ASTExpr) (string, bool) {
	switch v := expr.(type) {
	case *ast.NumberLit:
		return fmt.Sprintf("%d", v.Value), true
	case *ast.Identifier:
		return g.symOperand(v.Sym), true
	case *ast.StringLit:
		return g.poolString(v.Value), true
	default:
		return "", false
	}
}

// symOperand renders a symbol as an instruction operand: pinned bindings are
// their physical register, slots and statics are sized memory operands.
func (g *Generator) symOperand(sym *common.Symbol) string {
	if sym.DefKind == common.DefKindPinned {
		return sym.Reg
	}

	return fmt.Sprintf("%s [%s]", sym.Width.SizeKeyword(), sym.StorageName)
}

// isMemOperand reports whether an expression renders to a memory operand.
func isMemOperand(expr ast.ASTExpr) bool {
	ident, ok := expr.(*ast.Identifier)
	return ok && ident.Sym.DefKind != common.DefKindPinned
}

// exprWidth returns the byte width of an expression's value where one is
// statically known.  Literals and compound expressions fit any width.
func (g *Generator) exprWidth(expr ast.ASTExpr) (types.Width, bool) {
	if ident, ok := expr.(*ast.Identifier); ok {
		return ident.Sym.Width, true
	}

	return types.WidthNone, false
}

// -----------------------------------------------------------------------------

// genExprToAcc evaluates an expression into the accumulator at the given
// width.  Addition and subtraction chains accumulate left to right; a call's
// result is already in the accumulator since it is the convention's return
// register.
func (g *Generator) genExprToAcc(expr ast.ASTExpr, w types.Width) {
	switch v := expr.(type) {
	case *ast.BinaryExpr:
		g.genExprToAcc(v.Lhs, w)

		g.checkWidth(v.Rhs, w)
		operand, _ := g.operand(v.Rhs)
		if v.Op == ast.OpAdd {
			g.instr("add %s, %s", g.accAt(w, v.Rhs.Span()), operand)
		} else {
			g.instr("sub %s, %s", g.accAt(w, v.Rhs.Span()), operand)
		}
	case *ast.CallExpr:
		if v.Def.RetWidth != 0 && v.Def.RetWidth != w {
			g.recError(v.Span(), report.KindWidth,
				"call to `%s` yields %d bytes but %d are expected",
				v.Name, int(v.Def.RetWidth), int(w))
		}

		g.genCall(v)
	default:
		g.checkWidth(expr, w)
		operand, _ := g.operand(expr)
		g.instr("mov %s, %s", g.accAt(w, expr.Span()), operand)
	}
}

// checkWidth reports a mismatch for operands whose width is statically known.
func (g *Generator) checkWidth(expr ast.ASTExpr, w types.Width) {
	if ow, known := g.exprWidth(expr); known && ow != w {
		g.recError(expr.Span(), report.KindWidth,
			"operand has width %d but %d bytes are expected", int(ow), int(w))
	}
}

// -----------------------------------------------------------------------------

// poolString interns a string literal and returns the label of its pooled
// data.  Pooled literals are emitted NUL terminated so their length can be
// recovered by a sentinel scan.
func (g *Generator) poolString(s string) string {
	for i, pooled := range g.strPool {
		if pooled == s {
			return fmt.Sprintf(".Lstr%d", i)
		}
	}

	g.strPool = append(g.strPool, s)
	return fmt.Sprintf(".Lstr%d", len(g.strPool)-1)
}
