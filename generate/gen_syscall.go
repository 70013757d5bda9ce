package generate

import (
	"orec/arch"
	"orec/ast"
	"orec/common"
	"orec/report"
	"orec/types"
)

// genSyscall emits a syscall invocation: every argument and width is checked
// before any instruction is emitted, then the arguments move into the
// convention's argument registers in positional order, the syscall number
// into the number register, and the entry instruction follows.  The result is
// left in the convention's return register.
func (g *Generator) genSyscall(stmt *ast.SyscallStmt) {
	sc, ok := g.table.Lookup(stmt.Name)
	if !ok {
		g.recError(stmt.NameSpan, report.KindSyscall, "unknown syscall: `%s`", stmt.Name)
		return
	}

	if len(stmt.Args) != len(sc.Params) {
		g.recError(stmt.Span(), report.KindArity,
			"syscall `%s` takes %d arguments but %d were given",
			sc.Name, len(sc.Params), len(stmt.Args))
		return
	}

	operands := make([]string, len(stmt.Args))
	for i, arg := range stmt.Args {
		operand, ok := g.syscallOperand(arg, sc.Params[i])
		if !ok {
			return
		}

		operands[i] = operand
	}

	conv := g.table.Conv()
	for i, operand := range operands {
		// The checks above guarantee a memory operand is exactly as wide as
		// its parameter, so the argument register narrows to match it.
		reg := conv.Args[i].Phys
		if isMemOperand(stmt.Args[i]) {
			reg = g.regAt(conv.Args[i], sc.Params[i].Width, stmt.Args[i].Span())
		}

		g.instr("mov %s, %s", reg, operand)
	}

	g.instr("mov %s, %d", conv.NumberReg.Phys, sc.Code)
	g.instr("%s", conv.EntryInstr())
}

// syscallOperand renders one syscall argument, checking it against the
// parameter's spec.  Pointer parameters take an address: a static symbol, a
// string literal, or a word-wide binding holding one.
func (g *Generator) syscallOperand(arg ast.ASTExpr, param arch.ParamSpec) (string, bool) {
	switch v := arg.(type) {
	case *ast.NumberLit:
		if param.Kind == types.ParamPointer {
			g.recError(arg.Span(), report.KindWidth,
				"parameter `%s` takes a pointer, not a literal", param.Label)
			return "", false
		}

		operand, _ := g.operand(arg)
		return operand, true
	case *ast.StringLit:
		if param.Kind != types.ParamPointer {
			g.recError(arg.Span(), report.KindWidth,
				"parameter `%s` does not take a pointer", param.Label)
			return "", false
		}

		return g.poolString(v.Value), true
	case *ast.Identifier:
		if param.Kind == types.ParamPointer {
			// A static symbol passes its address; a binding passes its value,
			// which must be word wide to hold an address.
			if v.Sym.DefKind == common.DefKindStatic {
				return v.Sym.StorageName, true
			}

			if v.Sym.Width != g.desc.WordWidth() {
				g.recError(arg.Span(), report.KindWidth,
					"pointer argument for `%s` has width %d, not a machine word",
					param.Label, int(v.Sym.Width))
				return "", false
			}

			return g.symOperand(v.Sym), true
		}

		if v.Sym.Width != param.Width {
			g.recError(arg.Span(), report.KindWidth,
				"argument has width %d but parameter `%s` takes %d",
				int(v.Sym.Width), param.Label, int(param.Width))
			return "", false
		}

		return g.symOperand(v.Sym), true
	default:
		g.recError(arg.Span(), report.KindSyntax,
			"syscall arguments must be simple values")
		return "", false
	}
}
