package generate

import (
	"fmt"

	"orec/ast"
	"orec/report"
)

// genLabels emits all out-of-line routines followed by the entry routine and
// returns the entry label.  Inline labels emit nothing here: their bodies are
// expanded at call sites.
func (g *Generator) genLabels() *ast.LabelDef {
	var entry *ast.LabelDef

	for _, def := range g.file.Prog.Labels {
		if def.Entry {
			entry = def
			continue
		}

		if def.Inline {
			continue
		}

		g.genRoutine(def)
	}

	if entry != nil {
		g.genRoutine(entry)
	}

	return entry
}

// genRoutine emits a label as a standalone routine: a prologue binding each
// parameter's slot from its convention argument register, the body, and a
// trailing return when the body does not end in one.
func (g *Generator) genRoutine(def *ast.LabelDef) {
	conv := g.table.Conv()
	if len(def.Params) > len(conv.Args) {
		g.recError(def.NameSpan, report.KindConvention,
			"label `%s` takes %d parameters but the convention names %d argument registers",
			def.Name, len(def.Params), len(conv.Args))
		return
	}

	g.code.WriteByte('\n')
	g.label(def.Name)
	g.curRet = def.RetWidth

	for i, param := range def.Params {
		arg := g.regAt(conv.Args[i], param.Width, param.Span)
		g.instr("mov %s [%s], %s",
			param.Width.SizeKeyword(), param.Sym.StorageName, arg)
	}

	g.genBlockStmts(def.Body)

	if !endsInReturn(def.Body) {
		g.instr("ret")
	}
}

// endsInReturn reports whether a block's final statement is a return.
func endsInReturn(block *ast.Block) bool {
	if len(block.Stmts) == 0 {
		return false
	}

	_, ok := block.Stmts[len(block.Stmts)-1].(*ast.ReturnStmt)
	return ok
}

// -----------------------------------------------------------------------------

// genInlineExpansion emits an inline label's body at a call site.  Arguments
// are bound into the label's parameter slots, block labels are suffixed so
// repeated expansions stay distinct, and `return` jumps to the expansion's
// end label with the value already in the accumulator.
func (g *Generator) genInlineExpansion(call *ast.CallExpr) {
	def := call.Def

	for i, param := range def.Params {
		g.genStore(param.Sym, call.Args[i])
	}

	id := g.inlineCount
	g.inlineCount++

	end := fmt.Sprintf("%s%d", g.localLabel(".Lie"), id)
	outerSuffix := g.suffix
	outerRet := g.curRet
	g.suffix = fmt.Sprintf("%s_i%d", outerSuffix, id)
	g.curRet = def.RetWidth
	g.inlineEnds = append(g.inlineEnds, end)

	g.genBlockStmts(def.Body)

	g.inlineEnds = g.inlineEnds[:len(g.inlineEnds)-1]
	g.suffix = outerSuffix
	g.curRet = outerRet

	g.code.WriteString(end + ":\n")
}
