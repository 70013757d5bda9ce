package cmd

import (
	"fmt"
	"strings"

	"orec/ast"
	"orec/report"
	"orec/unit"
)

// dumpProgram prints the resolved program: every label with its parameters
// and storage, every block with the assembly label sugar desugared to, and
// every binding with the slot it resolved to.  Used by `orec build -d`.
func dumpProgram(file *unit.SourceFile) {
	report.DisplayInfoMessage("Program", file.Context.ReprPath)

	for _, def := range file.Prog.Labels {
		var quals strings.Builder
		if def.Inline {
			quals.WriteString("inline ")
		}
		if def.Entry {
			quals.WriteString("entry ")
		}

		params := make([]string, len(def.Params))
		for i, p := range def.Params {
			params[i] = fmt.Sprintf("%s:%d -> [%s]", p.Name, int(p.Width), p.Sym.StorageName)
		}

		fmt.Printf("%s%s(%s)", quals.String(), def.Name, strings.Join(params, ", "))
		if def.RetWidth != 0 {
			fmt.Printf(" -> %d", int(def.RetWidth))
		}
		fmt.Println()

		dumpBlock(def.Body, 1)
	}
}

func dumpBlock(block *ast.Block, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, stmt := range block.Stmts {
		switch v := stmt.(type) {
		case *ast.VarDecl:
			switch {
			case v.PinnedAlias != "":
				fmt.Printf("%s%%%s @%s -> %s\n", indent, v.Name, v.PinnedAlias, v.Sym.Reg)
			case v.Shadow:
				fmt.Printf("%s%%%s (shadow of [%s])\n", indent, v.Name, v.Sym.StorageName)
			default:
				fmt.Printf("%s%%%s %d = %d -> [%s]\n",
					indent, v.Name, int(v.Width), v.Init, v.Sym.StorageName)
			}
		case *ast.MutateStmt:
			fmt.Printf("%s'%s %s\n", indent, v.Name, mutateOpStrings[v.Op])
		case *ast.CondBlock:
			form := "cond"
			if v.Loop {
				form = "loop"
			}

			fmt.Printf("%s%s %s:\n", indent, form, v.LabelName)
			dumpBlock(v.Body, depth+1)
		case *ast.JumpStmt:
			fmt.Printf("%sjmp %s -> %s\n", indent, v.Target, v.ResolvedLabel)
		case *ast.SyscallStmt:
			fmt.Printf("%s*%s (%d args)\n", indent, v.Name, len(v.Args))
		case *ast.CallExpr:
			fmt.Printf("%s$%s (%d args)\n", indent, v.Name, len(v.Args))
		case *ast.PutsStmt:
			fmt.Printf("%s$puts %q\n", indent, v.Text.Value)
		case *ast.ReturnStmt:
			if v.Value != nil {
				fmt.Printf("%sreturn <value>\n", indent)
			} else {
				fmt.Printf("%sreturn\n", indent)
			}
		}
	}
}

var mutateOpStrings = map[int]string{
	ast.OpInc: "++",
	ast.OpDec: "--",
	ast.OpSet: "=",
}
