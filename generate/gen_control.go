package generate

import (
	"orec/ast"
	"orec/report"
)

// condJumps maps condition operators to the branch taken when the condition
// holds.  All comparisons are unsigned.
var condJumps = map[int]string{
	ast.CondEq: "je",
	ast.CondNe: "jne",
	ast.CondLt: "jb",
	ast.CondGt: "ja",
	ast.CondLe: "jbe",
	ast.CondGe: "jae",
}

// condNegJumps maps condition operators to the branch taken when the
// condition fails.
var condNegJumps = map[int]string{
	ast.CondEq: "jne",
	ast.CondNe: "je",
	ast.CondLt: "jae",
	ast.CondGt: "jbe",
	ast.CondLe: "ja",
	ast.CondGe: "jb",
}

// genCondBlock lowers a conditional or loop block.  Both are the same
// construction: a labeled block entered through a conditional branch.
//
//	<lbl>:
//	  <compare>
//	  <neg-jump> <lbl>_end
//	  <body>
//	  <compare>           loops only
//	  <pos-jump> <lbl>    loops only
//	<lbl>_end:
//
// The block label is the jump target of `jmp` for named blocks; the condition
// is evaluated at the block start, so jumping to a loop's label re-tests its
// condition before re-entering the body.
func (g *Generator) genCondBlock(cb *ast.CondBlock) {
	endLabel := cb.LabelName + "_end"

	g.label(cb.LabelName)
	g.genCompare(cb.Cond)
	g.instr("%s %s", condNegJumps[cb.Cond.Op], g.localLabel(endLabel))

	g.genBlockStmts(cb.Body)

	if cb.Loop {
		g.genCompare(cb.Cond)
		g.instr("%s %s", condJumps[cb.Cond.Op], g.localLabel(cb.LabelName))
	}

	g.label(endLabel)
}

// genCompare emits the compare for a condition.  When both operands are in
// memory the left one is staged through the accumulator at the operand width.
func (g *Generator) genCompare(cond *ast.Condition) {
	lw, lok := g.exprWidth(cond.Lhs)
	rw, rok := g.exprWidth(cond.Rhs)
	if lok && rok && lw != rw {
		g.recError(cond.Rhs.Span(), report.KindWidth,
			"cannot compare a %d byte value with a %d byte value", int(lw), int(rw))
		return
	}

	w := g.desc.WordWidth()
	if lok {
		w = lw
	} else if rok {
		w = rw
	}

	lhs, _ := g.operand(cond.Lhs)
	rhs, _ := g.operand(cond.Rhs)

	if isMemOperand(cond.Lhs) && isMemOperand(cond.Rhs) {
		acc := g.accAt(w, cond.Lhs.Span())
		g.instr("mov %s, %s", acc, lhs)
		g.instr("cmp %s, %s", acc, rhs)
		return
	}

	g.instr("cmp %s, %s", lhs, rhs)
}
