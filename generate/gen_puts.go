package generate

import (
	"fmt"

	"orec/ast"
	"orec/common"
	"orec/report"
)

// genPuts expands the print intrinsic.  The literal's length is not baked in:
// a scan loop walks the pooled literal counting bytes until the NUL sentinel,
// then the target's `write` syscall is invoked on file descriptor 1 with the
// literal's address and the counted length.
//
//	  mov <arg1>, .LstrN
//	  mov qword [vK_puts], 0
//	.LpM:
//	  cmp byte [<arg1>], 0
//	  je .LpM_end
//	  inc qword [vK_puts]
//	  inc <arg1>
//	  jmp .LpM
//	.LpM_end:
//	  mov <arg0>, 1
//	  mov <arg1>, .LstrN
//	  mov <arg2>, qword [vK_puts]
//	  mov <num>, <write code>
//	  <entry>
func (g *Generator) genPuts(stmt *ast.PutsStmt) {
	sc, ok := g.table.Lookup("write")
	if !ok {
		g.recError(stmt.Span(), report.KindSyscall,
			"print intrinsic requires a `write` syscall declaration")
		return
	}

	conv := g.table.Conv()
	if len(conv.Args) < 3 {
		g.recError(stmt.Span(), report.KindConvention,
			"print intrinsic requires a convention with at least 3 argument registers")
		return
	}

	strLabel := g.poolString(stmt.Text.Value)

	counter := &common.Symbol{
		Name:    "puts",
		DefSpan: stmt.Span(),
		Width:   g.desc.WordWidth(),
		DefKind: common.DefKindSlot,
	}
	g.file.AllocSlot("puts", counter)
	count := g.symOperand(counter)

	scanLabel := fmt.Sprintf(".Lp%d", g.putsCount)
	g.putsCount++

	ptr := conv.Args[1].Phys

	g.instr("mov %s, %s", ptr, strLabel)
	g.instr("mov %s, 0", count)
	g.label(scanLabel)
	g.instr("cmp byte [%s], 0", ptr)
	g.instr("je %s", g.localLabel(scanLabel+"_end"))
	g.instr("inc %s", count)
	g.instr("inc %s", ptr)
	g.instr("jmp %s", g.localLabel(scanLabel))
	g.label(scanLabel + "_end")

	g.instr("mov %s, 1", conv.Args[0].Phys)
	g.instr("mov %s, %s", ptr, strLabel)
	g.instr("mov %s, %s", conv.Args[2].Phys, count)
	g.instr("mov %s, %d", conv.NumberReg.Phys, sc.Code)
	g.instr("%s", conv.EntryInstr())
}
